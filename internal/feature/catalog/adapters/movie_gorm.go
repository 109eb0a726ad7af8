package adapters

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"movie_backend/internal/feature/catalog/domain/entity"
	"movie_backend/internal/feature/catalog/usecase"
)

// movieModel is the relational row for a movie. Genres live in movie_genres so that
// membership filters and the distinct-genre list are plain indexed queries.
type movieModel struct {
	ID          string            `gorm:"primaryKey;size:36"`
	Title       string            `gorm:"not null;index"`
	Description string            `gorm:"not null"`
	ReleaseYear int               `gorm:"not null;index"`
	Genres      []movieGenreModel `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
	Rating      float64           `gorm:"not null;default:0;index"`
	PosterURL   string            `gorm:"not null"`
	Director    string            `gorm:"not null"`
	Cast        []string          `gorm:"serializer:json"`
	Duration    int               `gorm:"not null"`
	StreamURL   string
	CreatedAt   time.Time `gorm:"index"`
}

func (movieModel) TableName() string { return "movies" }

type movieGenreModel struct {
	MovieID  string `gorm:"primaryKey;size:36"`
	Position int    `gorm:"primaryKey"`
	Genre    string `gorm:"not null;index"`
}

func (movieGenreModel) TableName() string { return "movie_genres" }

// MigrateMovies creates or updates the movie tables.
func MigrateMovies(db *gorm.DB) error {
	return db.AutoMigrate(&movieModel{}, &movieGenreModel{})
}

func toMovieModel(m *entity.Movie) movieModel {
	genres := make([]movieGenreModel, 0, len(m.Genre))
	for i, g := range m.Genre {
		genres = append(genres, movieGenreModel{MovieID: m.ID, Position: i, Genre: g})
	}
	cast := m.Cast
	if cast == nil {
		cast = []string{}
	}
	return movieModel{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ReleaseYear: m.ReleaseYear,
		Genres:      genres,
		Rating:      m.Rating,
		PosterURL:   m.PosterURL,
		Director:    m.Director,
		Cast:        cast,
		Duration:    m.Duration,
		StreamURL:   m.StreamURL,
		CreatedAt:   m.CreatedAt,
	}
}

func (mm movieModel) toEntity() entity.Movie {
	genres := make([]string, 0, len(mm.Genres))
	for _, g := range mm.Genres {
		genres = append(genres, g.Genre)
	}
	return entity.Movie{
		ID:          mm.ID,
		Title:       mm.Title,
		Description: mm.Description,
		ReleaseYear: mm.ReleaseYear,
		Genre:       genres,
		Rating:      mm.Rating,
		PosterURL:   mm.PosterURL,
		Director:    mm.Director,
		Cast:        mm.Cast,
		Duration:    mm.Duration,
		StreamURL:   mm.StreamURL,
		CreatedAt:   mm.CreatedAt,
	}
}

// movieGorm is the SQL implementation of usecase.MovieRepository and usecase.MovieSeeder.
type movieGorm struct {
	db *gorm.DB
}

var (
	_ usecase.MovieRepository = (*movieGorm)(nil)
	_ usecase.MovieSeeder     = (*movieGorm)(nil)
)

// NewMovieGormRepository returns a movie store on top of db.
func NewMovieGormRepository(db *gorm.DB) *movieGorm {
	return &movieGorm{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

var sqlOrder = map[entity.SortOrder]string{
	entity.SortNewest:     "created_at DESC",
	entity.SortRatingDesc: "rating DESC",
	entity.SortRatingAsc:  "rating ASC",
	entity.SortYearDesc:   "release_year DESC",
	entity.SortYearAsc:    "release_year ASC",
	entity.SortTitle:      "title ASC",
}

// orderClause returns the ORDER BY for s. On postgres titles sort by byte order
// ("C" collation) so the SQL and mongo backends agree.
func orderClause(dialect string, s entity.SortOrder) string {
	if s == entity.SortTitle && dialect == "postgres" {
		return `title COLLATE "C" ASC`
	}
	order, ok := sqlOrder[s]
	if !ok {
		order = sqlOrder[entity.SortNewest]
	}
	return order
}

func orderedGenres(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *movieGorm) List(ctx context.Context, q entity.MovieQuery) ([]entity.Movie, error) {
	tx := r.db.WithContext(ctx).Model(&movieModel{})
	if q.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(q.Search)) + "%"
		tx = tx.Where(
			`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(director) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}
	if q.Genre != "" {
		tx = tx.Where("id IN (?)", r.db.Model(&movieGenreModel{}).Select("movie_id").Where("genre = ?", q.Genre))
	}
	tx = tx.Order(orderClause(r.db.Dialector.Name(), q.Sort))
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	var rows []movieModel
	if err := tx.Preload("Genres", orderedGenres).Find(&rows).Error; err != nil {
		return nil, err
	}
	movies := make([]entity.Movie, 0, len(rows))
	for _, row := range rows {
		movies = append(movies, row.toEntity())
	}
	return movies, nil
}

func (r *movieGorm) FindByID(ctx context.Context, id string) (*entity.Movie, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, usecase.ErrMovieNotFound
	}
	var row movieModel
	err := r.db.WithContext(ctx).Preload("Genres", orderedGenres).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrMovieNotFound
	}
	if err != nil {
		return nil, err
	}
	m := row.toEntity()
	return &m, nil
}

func (r *movieGorm) DistinctGenres(ctx context.Context) ([]string, error) {
	var genres []string
	if err := r.db.WithContext(ctx).Model(&movieGenreModel{}).Distinct().Pluck("genre", &genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *movieGorm) Create(ctx context.Context, m *entity.Movie) error {
	m.ID = uuid.NewString()
	row := toMovieModel(m)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		m.ID = ""
		return err
	}
	return nil
}

// Update replaces every column of the movie and rewrites its genre rows.
func (r *movieGorm) Update(ctx context.Context, m *entity.Movie) error {
	if _, err := uuid.Parse(m.ID); err != nil {
		return usecase.ErrMovieNotFound
	}
	row := toMovieModel(m)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&movieModel{}).Where("id = ?", m.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return usecase.ErrMovieNotFound
		}
		if err := tx.Omit(clause.Associations).Save(&row).Error; err != nil {
			return err
		}
		if err := tx.Where("movie_id = ?", m.ID).Delete(&movieGenreModel{}).Error; err != nil {
			return err
		}
		if len(row.Genres) == 0 {
			return nil
		}
		return tx.Create(&row.Genres).Error
	})
}

func (r *movieGorm) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return usecase.ErrMovieNotFound
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("movie_id = ?", id).Delete(&movieGenreModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&movieModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrMovieNotFound
		}
		return nil
	})
}

// DeleteAll empties both movie tables and returns how many movies were removed.
func (r *movieGorm) DeleteAll(ctx context.Context) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&movieGenreModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("1 = 1").Delete(&movieModel{})
		removed = res.RowsAffected
		return res.Error
	})
	return removed, err
}

// CreateMany inserts movies in batches inside one transaction.
func (r *movieGorm) CreateMany(ctx context.Context, movies []entity.Movie) (int, error) {
	if len(movies) == 0 {
		return 0, nil
	}
	rows := make([]movieModel, 0, len(movies))
	for i := range movies {
		m := movies[i]
		m.ID = uuid.NewString()
		rows = append(rows, toMovieModel(&m))
	}
	if err := r.db.WithContext(ctx).CreateInBatches(rows, 100).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}
