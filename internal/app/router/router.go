// Package router builds the gin engine and the route table.
package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	authhandler "movie_backend/internal/feature/auth/transport/handler"
	cataloghandler "movie_backend/internal/feature/catalog/transport/handler"
	"movie_backend/internal/platform/http/handler"
	"movie_backend/internal/platform/http/middleware"
	jwtmw "movie_backend/internal/platform/jwt"
	"movie_backend/internal/platform/metrics"
	"movie_backend/internal/platform/telemetry"
)

// Deps はルータが必要とする依存関係です。
// Metrics と TracerProvider は nil の場合、それぞれ無効になります。
type Deps struct {
	BasePath string

	Auth     *authhandler.AuthHandler
	Movies   *cataloghandler.MovieHandler
	Verifier *jwtmw.Verifier

	AllowedOrigins []string
	CORSEnforce    bool

	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	TracerProvider trace.TracerProvider
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Logger),
		middleware.RequestLogger(d.Logger),
		middleware.CORS(d.AllowedOrigins, d.CORSEnforce, d.Logger),
	)
	if d.TracerProvider != nil {
		r.Use(telemetry.Middleware(d.TracerProvider))
	}
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		// /metrics はプレフィックスの外に置く
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	api := r.Group(d.BasePath)

	// 認証不要
	// 導通確認用
	api.GET("/health", handler.Health)
	api.HEAD("/health", handler.Health)

	auth := api.Group("/auth")
	{
		// 新規ユーザー登録
		auth.POST("/signup", d.Auth.Signup)
		// ログイン（JWT 発行）
		auth.POST("/login", d.Auth.Login)
	}

	movies := api.Group("/movies")
	{
		movies.GET("", d.Movies.List)
		movies.GET("/genres/list", d.Movies.Genres)
		movies.GET("/:id", d.Movies.Get)

		// 書き込み系は JWT が必要
		protected := movies.Group("")
		protected.Use(jwtmw.AuthRequired(d.Verifier))
		protected.POST("", d.Movies.Create)
		protected.PUT("/:id", d.Movies.Update)
		protected.DELETE("/:id", d.Movies.Delete)
	}

	return r
}
