package adapters

import (
	"time"

	"movie_backend/internal/feature/auth/domain/entity"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID               string    `gorm:"primaryKey;size:36"`
	Username         string    `gorm:"uniqueIndex;size:255;not null"`
	Email            string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash     string    `gorm:"column:password;size:255;not null"`
	SubscriptionPlan string    `gorm:"size:16;not null;default:free"`
	CreatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts the GORM model to a domain entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:               m.ID,
		Username:         m.Username,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash,
		SubscriptionPlan: entity.Plan(m.SubscriptionPlan),
		CreatedAt:        m.CreatedAt,
	}
}

// FromEntity converts a domain entity to the GORM model.
func FromEntity(u *entity.User) *UserModel {
	return &UserModel{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		PasswordHash:     u.PasswordHash,
		SubscriptionPlan: string(u.SubscriptionPlan),
		CreatedAt:        u.CreatedAt,
	}
}
