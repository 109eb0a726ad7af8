// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"movie_backend/internal/feature/auth/domain/entity"
	"movie_backend/internal/feature/auth/usecase"
)

// userGorm はUserRepositoryインターフェースのGORM実装です（PostgreSQL / SQLite）。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGormRepository は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
func NewUserGormRepository(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// MigrateUsers creates or updates the users table and its unique indexes.
func MigrateUsers(db *gorm.DB) error {
	return db.AutoMigrate(&UserModel{})
}

// Create はユーザーをデータベースに追加し、IDを設定します。
// ユニーク制約違反はusecase.ErrUserAlreadyExistsに変換します（TranslateErrorが必要）。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	m := FromEntity(u)
	m.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrUserAlreadyExists
		}
		return err
	}
	u.ID = m.ID
	u.CreatedAt = m.CreatedAt
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// ExistsByEmailOrUsername はメールアドレスまたはユーザー名が使用済みかを返します。
func (r *userGorm) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("email = ? OR username = ?", email, username).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
