// Package adapters provides the movie store implementations for the catalog feature.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"movie_backend/internal/feature/catalog/domain/entity"
	"movie_backend/internal/feature/catalog/usecase"
)

// MoviesCollection is the collection movies are stored in.
const MoviesCollection = "movies"

// movieDocument is the stored shape of a movie.
type movieDocument struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	ReleaseYear int           `bson:"releaseYear"`
	Genre       []string      `bson:"genre"`
	Rating      float64       `bson:"rating"`
	PosterURL   string        `bson:"posterUrl"`
	Director    string        `bson:"director"`
	Cast        []string      `bson:"cast"`
	Duration    int           `bson:"duration"`
	StreamURL   string        `bson:"streamUrl,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt"`
}

func toMovieDocument(m *entity.Movie) movieDocument {
	cast := m.Cast
	if cast == nil {
		cast = []string{}
	}
	return movieDocument{
		Title:       m.Title,
		Description: m.Description,
		ReleaseYear: m.ReleaseYear,
		Genre:       m.Genre,
		Rating:      m.Rating,
		PosterURL:   m.PosterURL,
		Director:    m.Director,
		Cast:        cast,
		Duration:    m.Duration,
		StreamURL:   m.StreamURL,
		CreatedAt:   m.CreatedAt,
	}
}

func (d movieDocument) toEntity() entity.Movie {
	return entity.Movie{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		ReleaseYear: d.ReleaseYear,
		Genre:       d.Genre,
		Rating:      d.Rating,
		PosterURL:   d.PosterURL,
		Director:    d.Director,
		Cast:        d.Cast,
		Duration:    d.Duration,
		StreamURL:   d.StreamURL,
		CreatedAt:   d.CreatedAt,
	}
}

// movieMongo is the MongoDB implementation of usecase.MovieRepository and usecase.MovieSeeder.
type movieMongo struct {
	coll *mongo.Collection
}

var (
	_ usecase.MovieRepository = (*movieMongo)(nil)
	_ usecase.MovieSeeder     = (*movieMongo)(nil)
)

// NewMovieMongoRepository returns a movie store backed by the movies collection of db.
func NewMovieMongoRepository(db *mongo.Database) *movieMongo {
	return &movieMongo{coll: db.Collection(MoviesCollection)}
}

// EnsureIndexes creates the secondary indexes used by listing queries.
func (r *movieMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "genre", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}}},
		{Keys: bson.D{{Key: "releaseYear", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create movie indexes: %w", err)
	}
	return nil
}

// buildMovieFilter translates a MovieQuery into a find filter.
// The search text is quoted so it is always matched literally.
func buildMovieFilter(q entity.MovieQuery) bson.D {
	filter := bson.D{}
	if q.Search != "" {
		pattern := bson.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: pattern}},
			bson.D{{Key: "director", Value: pattern}},
			bson.D{{Key: "description", Value: pattern}},
		}})
	}
	if q.Genre != "" {
		// equality on an array field matches membership
		filter = append(filter, bson.E{Key: "genre", Value: q.Genre})
	}
	return filter
}

func buildMovieSort(order entity.SortOrder) bson.D {
	switch order {
	case entity.SortRatingDesc:
		return bson.D{{Key: "rating", Value: -1}}
	case entity.SortRatingAsc:
		return bson.D{{Key: "rating", Value: 1}}
	case entity.SortYearDesc:
		return bson.D{{Key: "releaseYear", Value: -1}}
	case entity.SortYearAsc:
		return bson.D{{Key: "releaseYear", Value: 1}}
	case entity.SortTitle:
		return bson.D{{Key: "title", Value: 1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

func (r *movieMongo) List(ctx context.Context, q entity.MovieQuery) ([]entity.Movie, error) {
	opts := options.Find().SetSort(buildMovieSort(q.Sort))
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	if q.Offset > 0 {
		opts.SetSkip(int64(q.Offset))
	}

	cur, err := r.coll.Find(ctx, buildMovieFilter(q), opts)
	if err != nil {
		return nil, err
	}
	var docs []movieDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	movies := make([]entity.Movie, 0, len(docs))
	for _, d := range docs {
		movies = append(movies, d.toEntity())
	}
	return movies, nil
}

func (r *movieMongo) FindByID(ctx context.Context, id string) (*entity.Movie, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, usecase.ErrMovieNotFound
	}
	var doc movieDocument
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, usecase.ErrMovieNotFound
	}
	if err != nil {
		return nil, err
	}
	m := doc.toEntity()
	return &m, nil
}

func (r *movieMongo) DistinctGenres(ctx context.Context) ([]string, error) {
	var genres []string
	if err := r.coll.Distinct(ctx, "genre", bson.D{}).Decode(&genres); err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *movieMongo) Create(ctx context.Context, m *entity.Movie) error {
	doc := toMovieDocument(m)
	doc.ID = bson.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	m.ID = doc.ID.Hex()
	return nil
}

func (r *movieMongo) Update(ctx context.Context, m *entity.Movie) error {
	oid, err := bson.ObjectIDFromHex(m.ID)
	if err != nil {
		return usecase.ErrMovieNotFound
	}
	doc := toMovieDocument(m)
	doc.ID = oid
	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: oid}}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return usecase.ErrMovieNotFound
	}
	return nil
}

func (r *movieMongo) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return usecase.ErrMovieNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return usecase.ErrMovieNotFound
	}
	return nil
}

// DeleteAll empties the collection and returns how many movies were removed.
func (r *movieMongo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CreateMany inserts movies in one batch.
func (r *movieMongo) CreateMany(ctx context.Context, movies []entity.Movie) (int, error) {
	if len(movies) == 0 {
		return 0, nil
	}
	docs := make([]any, 0, len(movies))
	for i := range movies {
		doc := toMovieDocument(&movies[i])
		doc.ID = bson.NewObjectID()
		docs = append(docs, doc)
	}
	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}
