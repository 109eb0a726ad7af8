package metrics

import (
	"context"
	"time"

	"movie_backend/internal/feature/auth/domain/entity"
	"movie_backend/internal/feature/auth/usecase"
)

const userRepo = "users"

// InstrumentedUserRepository decorates a UserRepository with store metrics.
type InstrumentedUserRepository struct {
	inner usecase.UserRepository
	m     *Metrics
}

var _ usecase.UserRepository = (*InstrumentedUserRepository)(nil)

// NewInstrumentedUserRepository wraps inner. A nil m returns inner unchanged.
func NewInstrumentedUserRepository(m *Metrics, inner usecase.UserRepository) usecase.UserRepository {
	if m == nil {
		return inner
	}
	return &InstrumentedUserRepository{inner: inner, m: m}
}

func (r *InstrumentedUserRepository) Create(ctx context.Context, u *entity.User) error {
	start := time.Now()
	err := r.inner.Create(ctx, u)
	r.m.observe(userRepo, "create", start, err, usecase.ErrUserAlreadyExists)
	return err
}

func (r *InstrumentedUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	start := time.Now()
	u, err := r.inner.FindByEmail(ctx, email)
	r.m.observe(userRepo, "find_by_email", start, err, usecase.ErrUserNotFound)
	return u, err
}

func (r *InstrumentedUserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	start := time.Now()
	ok, err := r.inner.ExistsByEmailOrUsername(ctx, email, username)
	r.m.observe(userRepo, "exists", start, err)
	return ok, err
}
