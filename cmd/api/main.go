package main

import (
	"context"
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

	"github.com/noah-isme/animeaux-api/internal/config"
	"github.com/noah-isme/animeaux-api/internal/cron"
	"github.com/noah-isme/animeaux-api/internal/database"
	"github.com/noah-isme/animeaux-api/internal/handler"
	"github.com/noah-isme/animeaux-api/internal/middleware"
	"github.com/noah-isme/animeaux-api/internal/models"
	"github.com/noah-isme/animeaux-api/internal/observability"
	"github.com/noah-isme/animeaux-api/internal/repository"
	"github.com/noah-isme/animeaux-api/internal/router"
	"github.com/noah-isme/animeaux-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", cfg.AppName).Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(&models.User{}, &models.FosterFamily{}, &models.Animal{}, &models.ActivityLog{}); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, activity list cache disabled")
	}

	var natsConn *nats.Conn
	if cfg.NatsURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NatsURL, cfg.AppName)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer func() {
			if err := natsConn.Drain(); err != nil {
				logger.Warn().Err(err).Msg("failed to drain nats connection")
			}
		}()
	}

	observability.RegisterMetrics()
	validate := validator.New(validator.WithRequiredStructEnabled())

	activityOptions := service.ActivityServiceOptions{
		Reporter: observability.NewLogReporter(logger, "activity_recorder", middleware.CorrelationIDFromContext),
		Cache:    redisClient,
		CacheTTL: cfg.ActivityCacheTTL,
	}
	if natsConn != nil {
		activityOptions.Publisher = natsConn
		activityOptions.Subject = cfg.ActivitySubject()
	}

	activityRepo := repository.NewActivityLogRepository(db)
	animalRepo := repository.NewAnimalRepository(db)
	fosterFamilyRepo := repository.NewFosterFamilyRepository(db)

	activityService := service.NewActivityService(activityRepo, validate, activityOptions, logger)
	animalService := service.NewAnimalService(animalRepo, validate, activityService, logger)
	fosterFamilyService := service.NewFosterFamilyService(fosterFamilyRepo, validate, activityService, logger)
	availabilityJob := service.NewFosterFamilyAvailabilityJob(fosterFamilyRepo, activityService, nil, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.AllowOrigins,
		AccessLog:    cfg.AppEnv == "development",
	})
	router.Register(app, cfg, router.Dependencies{
		AnimalHandler:        handler.NewAnimalHandler(animalService, logger),
		FosterFamilyHandler:  handler.NewFosterFamilyHandler(fosterFamilyService, logger),
		AdminActivityHandler: handler.NewAdminActivityHandler(activityService, logger),
		JWTMiddleware:        middleware.JWTProtected(cfg.JWTSecret),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := cron.NewRunner(cfg.CronInterval, logger, availabilityJob)
	runner.Start(ctx)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	shutdown(app, runner, logger)
}

func shutdown(app *fiber.App, runner *cron.Runner, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	runner.Wait()

	logger.Info().Msg("server stopped")
}
