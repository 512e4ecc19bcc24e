package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	catalogmemory "github.com/Sam99132/full-stack-backend/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Sam99132/full-stack-backend/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Sam99132/full-stack-backend/internal/domains/catalog/application"
	catalogports "github.com/Sam99132/full-stack-backend/internal/domains/catalog/ports"
	ordersmemory "github.com/Sam99132/full-stack-backend/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Sam99132/full-stack-backend/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Sam99132/full-stack-backend/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Sam99132/full-stack-backend/internal/domains/orders/application"
	ordersports "github.com/Sam99132/full-stack-backend/internal/domains/orders/ports"
	usersmemory "github.com/Sam99132/full-stack-backend/internal/domains/users/adapters/memory"
	usersorderhistory "github.com/Sam99132/full-stack-backend/internal/domains/users/adapters/orderhistory"
	userspostgres "github.com/Sam99132/full-stack-backend/internal/domains/users/adapters/persistence/postgres"
	userstoken "github.com/Sam99132/full-stack-backend/internal/domains/users/adapters/token"
	usersapp "github.com/Sam99132/full-stack-backend/internal/domains/users/application"
	usersports "github.com/Sam99132/full-stack-backend/internal/domains/users/ports"
	"github.com/Sam99132/full-stack-backend/internal/httpapi"
	platformmigrations "github.com/Sam99132/full-stack-backend/internal/platform/migrations"
	platformobservability "github.com/Sam99132/full-stack-backend/internal/platform/observability"
	platformpostgres "github.com/Sam99132/full-stack-backend/internal/platform/postgres"
)

// Run boots the storefront HTTP API with observability, repositories, and
// services wired. It blocks until ctx is cancelled, then drains the server.
func Run(ctx context.Context) error {
	const serviceName = "storefront-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	db, cleanupDB := connectDatabase(ctx, cfg, logger)
	defer cleanupDB()

	userRepo, productRepo, orderRepo := buildRepositories(db)

	tokens, err := userstoken.NewJWT(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to configure token signing: %w", err)
	}

	userService := usersapp.NewService(userRepo, tokens, usersorderhistory.New(orderRepo))
	productService := catalogapp.NewService(productRepo)
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	router := httpapi.NewRouter(httpapi.APIs{
		Auth:     httpapi.NewAuthAPI(userService),
		Products: httpapi.NewProductAPI(productService),
		Orders:   httpapi.NewOrderAPI(orderService, logger),
		Users:    httpapi.NewUserAPI(userService),
	}, httpapi.RouterConfig{
		CORSOrigin: cfg.CORSOrigin,
		Verifier:   tokens,
	})
	router.Use(otelgin.Middleware(serviceName))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("storefront API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
		drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down storefront API")
		if err := server.Shutdown(drainCtx); err != nil {
			logger.Error("failed to drain storefront API", slog.String("error", err.Error()))
			return err
		}
		return nil
	}
}

// connectDatabase attaches postgres when a DSN is configured, running schema
// migrations on success. A nil db selects the in-memory repositories.
func connectDatabase(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	db, cleanup := platformpostgres.ConnectWithFallback(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return nil, cleanup
	}
	if err := platformmigrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to memory", slog.String("error", err.Error()))
		cleanup()
		return nil, func() {}
	}
	logger.Info("repositories configured with postgres")
	return db, cleanup
}

func buildRepositories(db *gorm.DB) (usersports.Repository, catalogports.Repository, ordersports.Repository) {
	if db != nil {
		return userspostgres.NewRepository(db), catalogpostgres.NewRepository(db), orderspostgres.NewRepository(db)
	}
	userRepo := usersmemory.NewRepository()
	productRepo := catalogmemory.NewRepository()
	return userRepo, productRepo, ordersmemory.NewRepository(productRepo, userRepo)
}
