package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"movie_backend/internal/feature/auth/domain/entity"
	"movie_backend/internal/feature/auth/usecase"
)

// UsersCollection is the collection accounts are stored in.
const UsersCollection = "users"

type userDocument struct {
	ID               bson.ObjectID `bson:"_id,omitempty"`
	Username         string        `bson:"username"`
	Email            string        `bson:"email"`
	PasswordHash     string        `bson:"password"`
	SubscriptionPlan string        `bson:"subscriptionPlan"`
	CreatedAt        time.Time     `bson:"createdAt"`
}

func (d userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:               d.ID.Hex(),
		Username:         d.Username,
		Email:            d.Email,
		PasswordHash:     d.PasswordHash,
		SubscriptionPlan: entity.Plan(d.SubscriptionPlan),
		CreatedAt:        d.CreatedAt,
	}
}

// userMongo はUserRepositoryインターフェースのMongoDB実装です。
type userMongo struct {
	coll *mongo.Collection
}

var _ usecase.UserRepository = (*userMongo)(nil)

// NewUserMongoRepository returns an account store backed by the users collection of db.
func NewUserMongoRepository(db *mongo.Database) *userMongo {
	return &userMongo{coll: db.Collection(UsersCollection)}
}

// EnsureIndexes creates the unique indexes on username and on email.
func (r *userMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("username_unique")},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_unique")},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

// Create inserts the account. A unique index violation becomes usecase.ErrUserAlreadyExists.
func (r *userMongo) Create(ctx context.Context, u *entity.User) error {
	doc := userDocument{
		ID:               bson.NewObjectID(),
		Username:         u.Username,
		Email:            u.Email,
		PasswordHash:     u.PasswordHash,
		SubscriptionPlan: string(u.SubscriptionPlan),
		CreatedAt:        u.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrUserAlreadyExists
		}
		return err
	}
	u.ID = doc.ID.Hex()
	return nil
}

// FindByEmail returns the account with its password hash, or usecase.ErrUserNotFound.
func (r *userMongo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, usecase.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *userMongo) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "username", Value: username}},
	}}}
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
