package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/brightsmile/booking-api/internal/api"
	"github.com/brightsmile/booking-api/internal/api/middleware"
	"github.com/brightsmile/booking-api/internal/core/service"
	"github.com/brightsmile/booking-api/internal/infrastructure/db/mongo"
	"github.com/brightsmile/booking-api/internal/infrastructure/db/postgres"
	"github.com/brightsmile/booking-api/internal/infrastructure/db/redis"
	"github.com/brightsmile/booking-api/internal/infrastructure/http/handlers"
	"github.com/brightsmile/booking-api/internal/infrastructure/queue"
	"github.com/brightsmile/booking-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply schema migrations before serving")
	return cmd
}

func serve(ctx context.Context, migrate bool) error {
	cfg, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	log := logger.Get()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// --- Stores ---
	pg, err := postgres.Connect(ctx, postgres.Config{
		DSN:          cfg.Postgres.DSN,
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Postgres.MaxIdleConns,
	})
	if err != nil {
		return err
	}
	defer pg.Close()

	if migrate {
		if err := postgres.Migrate(ctx, pg); err != nil {
			return err
		}
		log.Info().Msg("migrations applied")
	}

	mongoClient, mongoDB, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongo.Disconnect(mongoClient); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	events := mongo.NewEventRepository(mongoDB)
	if err := events.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("mongo indexes: %w", err)
	}

	// --- Services ---
	users := postgres.NewUserRepository(pg)
	slots := postgres.NewTimeSlotRepository(pg)
	appointments := postgres.NewAppointmentRepository(pg)

	audit := service.NewAuditService(events, appointments, redis.NewDedupChecker(rdb), logger.Component("audit"))

	// Workers outlive the request context so queued events are drained after
	// the server stops accepting requests.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, audit, logger.Component("dispatcher"))
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	limiter.StartCleanup(ctx)

	e := api.NewRouter(api.Dependencies{
		Log:          logger.Component("http"),
		JWTSecret:    cfg.JWTSecret,
		Location:     loc,
		Auth:         service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL),
		TimeSlots:    service.NewTimeSlotService(slots),
		Appointments: service.NewAppointmentService(appointments, redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL), dispatcher),
		Audit:        audit,
		Readiness:    handlers.NewHealthDependenciesHandler(pg, mongoDB, rdb),
		RateLimiter:  limiter,
	})

	// --- Serve ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("timezone", loc.String()).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
