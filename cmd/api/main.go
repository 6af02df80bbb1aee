package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-activities/internal/config"
	"github.com/noah-isme/gema-activities/internal/database"
	"github.com/noah-isme/gema-activities/internal/handler"
	"github.com/noah-isme/gema-activities/internal/middleware"
	"github.com/noah-isme/gema-activities/internal/repository"
	"github.com/noah-isme/gema-activities/internal/router"
	"github.com/noah-isme/gema-activities/internal/seed"
	"github.com/noah-isme/gema-activities/internal/service"
	"github.com/noah-isme/gema-activities/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.LogLevel)

	catalogue, err := seed.Load(cfg.SeedFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load activity catalogue")
	}

	activityRepo := repository.NewMemoryActivityRepository()
	if err := activityRepo.Seed(context.Background(), catalogue); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed activity registry")
	}
	logger.Info().Int("activities", len(catalogue)).Str("seed_file", cfg.SeedFile).Msg("activity registry seeded")

	var probes []handler.HealthProbe

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		probes = append(probes, handler.HealthProbe{Name: "redis", Check: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to nats")
		}
		defer natsConn.Close()
		probes = append(probes, handler.HealthProbe{Name: "nats", Check: func(context.Context) error {
			if !natsConn.IsConnected() {
				return fmt.Errorf("nats: %s", natsConn.Status())
			}
			return nil
		}})
	}

	channel := ""
	if cfg.EventsEnabled() {
		channel = cfg.EventsChannel
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	broadcaster := service.NewRosterBroadcaster(redisClient, natsConn, channel, logger)
	activityService := service.NewActivityService(activityRepo, broadcaster, validate, logger)

	activityHandler := handler.NewActivityHandler(activityService, logger)
	rosterStreamHandler := handler.NewRosterStreamHandler(broadcaster, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fiberErr, ok := err.(*fiber.Error); ok {
				code = fiberErr.Code
			}
			return utils.SendError(c, code, err.Error())
		},
	})

	middleware.Register(app, middleware.Config{
		Logger:    &logger,
		AccessLog: cfg.AppEnv == "development",
	})
	router.Register(app, cfg, router.Dependencies{
		ActivityHandler:     activityHandler,
		RosterStreamHandler: rosterStreamHandler,
		HealthProbes:        probes,
		RosterGuard:         middleware.RateLimit("roster", cfg.RateLimitMax, cfg.RateLimitWindow),
	})

	go func() {
		logger.Info().Str("address", cfg.HTTPAddress()).Msg("http server listening")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, cfg.ShutdownTimeout, logger)
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}

	return zerolog.New(os.Stdout).Level(parsed).With().Timestamp().Logger()
}

func waitForShutdown(app *fiber.App, timeout time.Duration, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
