package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Eursukkul/booking-microservice/booking-flow/config"
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/consumer"
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/gateway"
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/handler"
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/middleware"
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/repository"
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/service"
	"github.com/Eursukkul/booking-microservice/booking-flow/pkg/database"
	"github.com/Eursukkul/booking-microservice/booking-flow/pkg/logger"
	"github.com/Eursukkul/booking-microservice/booking-flow/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer lg.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpClient := &http.Client{Timeout: 15 * time.Second}

	// Reservation backend
	var reservations gateway.ReservationGateway
	if cfg.NeedsDatabase() {
		db, err := database.NewPostgresDB(cfg.DSN())
		if err != nil {
			lg.Fatal("failed to open database", zap.Error(err))
		}
		rateRepo := repository.NewRateRepository(db)
		reservationRepo := repository.NewReservationRepository(db)
		reservations = gateway.NewDBReservationGateway(rateRepo, reservationRepo, lg)

		// RabbitMQ consumer: sync nightly rates from the property side
		if cfg.RateSyncEnabled {
			mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, rabbitmq.PricingExchange,
				rabbitmq.RatesQueue, rabbitmq.RatesBindingKey, lg)
			if err != nil {
				lg.Fatal("failed to connect to RabbitMQ", zap.Error(err))
			}
			defer mqConsumer.Close()

			msgs, err := mqConsumer.Consume()
			if err != nil {
				lg.Fatal("failed to start consuming", zap.Error(err))
			}
			consumer.NewRateConsumer(rateRepo, lg).Start(ctx, msgs)
		}
	} else {
		reservations = gateway.NewHTTPReservationGateway(cfg.ReservationAPIURL, httpClient, lg)
	}

	// Notification backend
	var notifications gateway.NotificationGateway
	switch cfg.NotificationBackend {
	case config.BackendRabbitMQ:
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, rabbitmq.BookingExchange, lg)
		if err != nil {
			lg.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		defer publisher.Close()
		notifications = gateway.NewMQNotificationGateway(publisher)
	default:
		notifications = gateway.NewHTTPNotificationGateway(cfg.EmailAPIURL, httpClient, lg)
	}

	sessions := service.NewSessionService(service.Dependencies{
		Reservations:  reservations,
		Notifications: notifications,
		Users:         middleware.ContextUsers{},
		DialogSync: service.DialogSyncFunc(func(isOpen bool) {
			lg.Debug("dialog toggled", zap.Bool("is_open", isOpen))
		}),
		Email: service.EmailSettings{
			BCC:        cfg.EmailBCC,
			TemplateID: cfg.EmailTemplateID,
		},
		Logger:         lg,
		SessionIdleTTL: cfg.SessionIdleTTL,
	})
	sessions.StartSweeper(ctx, cfg.SessionSweepInterval)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = middleware.NewRequestValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(lg)
	e.Use(middleware.RequestLogger(lg))
	e.Use(echoMw.Recover())
	e.Use(middleware.CurrentUser())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "booking-flow"})
	})

	handler.NewBookingHandler(sessions).RegisterRoutes(e)

	lg.Info("booking flow service starting",
		zap.String("port", cfg.ServerPort),
		zap.String("reservation_backend", cfg.ReservationBackend),
		zap.String("notification_backend", cfg.NotificationBackend))
	if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
		lg.Fatal("server stopped", zap.Error(err))
	}
}
