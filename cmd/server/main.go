package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"movie_backend/internal/app/di"
	"movie_backend/internal/app/router"
	"movie_backend/internal/config"
	authhandler "movie_backend/internal/feature/auth/transport/handler"
	authusecase "movie_backend/internal/feature/auth/usecase"
	cataloghandler "movie_backend/internal/feature/catalog/transport/handler"
	catalogusecase "movie_backend/internal/feature/catalog/usecase"
	jwtmw "movie_backend/internal/platform/jwt"
	"movie_backend/internal/platform/logger"
	"movie_backend/internal/platform/metrics"
	"movie_backend/internal/platform/telemetry"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing
	var tp trace.TracerProvider
	if cfg.TracingEnabled {
		shutdown, err := telemetry.InitTracer("movie-api", version, nil)
		if err != nil {
			return err
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				slog.Error("failed to shut down tracer", "error", err)
			}
		}()
		tp = otel.GetTracerProvider()
	}

	// Store
	store, err := di.NewStore(ctx, &cfg.StoreConfig)
	if err != nil {
		return err
	}
	defer func() {
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(cctx); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	// メトリクスでリポジトリをラップ
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}
	movieRepo := metrics.NewInstrumentedMovieRepository(m, store.Movies)
	userRepo := metrics.NewInstrumentedUserRepository(m, store.Users)

	// Usecase
	movieUC := catalogusecase.NewMovieUsecase(movieRepo)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiresIn))

	// ルータ生成
	engine := router.NewRouter(router.Deps{
		BasePath:       cfg.APIBasePath,
		Auth:           authhandler.NewAuthHandler(authUC),
		Movies:         cataloghandler.NewMovieHandler(movieUC),
		Verifier:       jwtmw.NewVerifier(cfg.JWTSecret),
		AllowedOrigins: cfg.AllowedOrigins(),
		CORSEnforce:    cfg.CORSEnforce,
		Logger:         log,
		Metrics:        m,
		TracerProvider: tp,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "env", cfg.AppEnv, "store", cfg.StoreDriver, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
