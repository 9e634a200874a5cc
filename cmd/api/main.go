package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Eursukkul/doctor-booking/config"
	"github.com/Eursukkul/doctor-booking/internal/handler"
	"github.com/Eursukkul/doctor-booking/internal/middleware"
	"github.com/Eursukkul/doctor-booking/internal/notification"
	"github.com/Eursukkul/doctor-booking/internal/repository"
	"github.com/Eursukkul/doctor-booking/internal/service"
	"github.com/Eursukkul/doctor-booking/pkg/database"
	"github.com/Eursukkul/doctor-booking/pkg/logger"
	"github.com/Eursukkul/doctor-booking/pkg/metrics"
	"github.com/Eursukkul/doctor-booking/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New("doctor-booking", cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	if cfg.JWTSecret == "" {
		zl.Fatal("JWT_SECRET must be set")
	}

	// Prices go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	db, err := database.NewPostgresDB(cfg.DSN(), database.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	// RabbitMQ publisher: booking confirmations for the mailer
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.NotificationQueue, zl)
	if err != nil {
		zl.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer publisher.Close()

	m := metrics.New("doctor_booking")

	// Repositories
	doctorRepo := repository.NewDoctorRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	userRepo := repository.NewUserRepository(db)

	if _, err := service.NewDoctorSeeder(doctorRepo, zl).Run(context.Background()); err != nil {
		zl.Fatal("failed to seed doctors", zap.Error(err))
	}

	// Services
	dispatcher := notification.NewDispatcher(publisher, m, zl)
	bookingSvc := service.NewBookingService(bookingRepo, doctorRepo, userRepo, dispatcher, m, zl)
	doctorSvc := service.NewDoctorService(doctorRepo, cfg.DoctorCacheTTL)
	masterSvc := service.NewMasterService(service.NewMasterData())

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.NewErrorHandler(zl)
	e.Validator = middleware.NewRequestValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			zl.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(middleware.RequestMetrics(m))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "doctor-booking"})
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	handler.NewMasterHandler(masterSvc).RegisterRoutes(e)
	handler.NewDoctorHandler(doctorSvc).RegisterRoutes(e)
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  rate.Limit(cfg.RateLimitRPS),
		Burst: cfg.RateLimitBurst,
	})
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e,
		middleware.JWTAuth([]byte(cfg.JWTSecret)),
		limiter.RateLimit(),
	)

	go func() {
		zl.Info("doctor booking API starting", zap.String("port", cfg.ServerPort))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server stopped", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
	zl.Info("doctor booking API stopped")
}
