package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"movie_backend/internal/feature/catalog/domain/entity"
)

// wireNames maps entity field names to the names clients send.
var wireNames = map[string]string{
	"Title":       "title",
	"Description": "description",
	"ReleaseYear": "releaseYear",
	"Genre":       "genre",
	"Rating":      "rating",
	"PosterURL":   "posterUrl",
	"Director":    "director",
	"Cast":        "cast",
	"Duration":    "duration",
}

// movieValidator checks the required-field and range constraints of a Movie.
type movieValidator struct {
	v *validator.Validate
}

func newMovieValidator() *movieValidator {
	return &movieValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (mv *movieValidator) Validate(m *entity.Movie) error {
	err := mv.v.Struct(m)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate movie: %w", err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}
	return &ValidationError{Problems: problems}
}

func describe(fe validator.FieldError) string {
	field := fe.StructField()
	// dive errors come back as "Genre[2]"
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	name, ok := wireNames[field]
	if !ok {
		name = field
	}
	switch {
	case field == "Rating":
		return "rating must be between 0 and 10"
	case field == "Genre" && fe.Tag() == "min":
		return "genre must contain at least one tag"
	case fe.Tag() == "required" && strings.Contains(fe.StructField(), "["):
		return name + " entries must not be empty"
	default:
		return name + " is required"
	}
}
