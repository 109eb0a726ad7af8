package mongodb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit wins", Config{URI: "mongodb://localhost:27017/fromuri", Database: "explicit"}, "explicit"},
		{"from uri path", Config{URI: "mongodb://localhost:27017/fromuri"}, "fromuri"},
		{"default", Config{URI: "mongodb://localhost:27017"}, DefaultDatabase},
		{"unparsable uri", Config{URI: "::::"}, DefaultDatabase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DatabaseName(tt.cfg))
		})
	}
}

func TestConnect_RequiresURI(t *testing.T) {
	t.Parallel()

	_, err := Connect(context.Background(), Config{})

	assert.Error(t, err)
}

type ensurerFunc func(ctx context.Context) error

func (f ensurerFunc) EnsureIndexes(ctx context.Context) error { return f(ctx) }

func TestEnsureIndexes_StopsAtFirstError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	calls := 0
	count := ensurerFunc(func(context.Context) error {
		calls++
		return nil
	})
	fail := ensurerFunc(func(context.Context) error { return boom })

	err := EnsureIndexes(context.Background(), count, fail, count)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}
