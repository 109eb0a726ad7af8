package dto

import "movie_backend/internal/feature/auth/domain/entity"

// UserRes is the public projection of an account. The password hash is never included.
type UserRes struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	SubscriptionPlan string `json:"subscriptionPlan"`
}

// NewUserRes projects u.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		SubscriptionPlan: string(u.SubscriptionPlan),
	}
}

// AuthRes is returned by signup and login.
type AuthRes struct {
	Success bool    `json:"success"`
	Token   string  `json:"token"`
	User    UserRes `json:"user"`
}

// ErrorRes is the body of every error response.
type ErrorRes struct {
	Message string `json:"message"`
}
