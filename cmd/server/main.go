package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/asmamiga/tourism-website-sub001/internal/booking"
	"github.com/asmamiga/tourism-website-sub001/internal/config"
	"github.com/asmamiga/tourism-website-sub001/internal/database"
	"github.com/asmamiga/tourism-website-sub001/internal/handler"
	"github.com/asmamiga/tourism-website-sub001/internal/queue"
	"github.com/asmamiga/tourism-website-sub001/internal/repository"
	"github.com/asmamiga/tourism-website-sub001/internal/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.Env == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := database.Migrate(migrateCtx, db); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unreachable; rate limiting and caching disabled")
	}

	store := repository.NewSQLStore(db)
	userRepo := repository.NewUserRepo(db)
	resourceRepo := repository.NewResourceRepo(db)
	unitRepo := repository.NewCapacityUnitRepo(db)
	reservationRepo := repository.NewReservationRepo(db)

	allocator := booking.NewAllocator(store, booking.AllocatorConfig{
		LazyExpansion:    cfg.LazyExpansion,
		ExpansionCeiling: cfg.ExpansionCeiling,
	}, logger)
	ledger := booking.NewLedger(store, cfg.CancelLeadTime, logger)

	amqpURL := os.Getenv("RABBITMQ_URL")
	if amqpURL == "" {
		amqpURL = os.Getenv("AMQP_URL")
	}
	publisher := queue.NewPublisher(amqpURL, logger)
	go queue.StartReservationConsumer(amqpURL, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	router.Register(e, router.Deps{
		Cfg:          cfg,
		RateLimit:    config.LoadRateLimitConfig(),
		Cache:        config.LoadCacheConfig(),
		Redis:        rdb,
		Auth:         handler.NewAuthHandler(cfg, userRepo),
		Availability: handler.NewAvailabilityHandler(allocator),
		Reservations: handler.NewReservationHandler(allocator, ledger, reservationRepo, publisher),
		Resources:    handler.NewResourceHandler(resourceRepo, unitRepo, reservationRepo),
	})

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
