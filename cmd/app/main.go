package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/courtbooking/config"
	"github.com/Domenick1991/courtbooking/internal/bootstrap"
	"github.com/Domenick1991/courtbooking/internal/cache"
	"github.com/Domenick1991/courtbooking/internal/kafka"
	"github.com/Domenick1991/courtbooking/internal/repository"
	"github.com/Domenick1991/courtbooking/internal/service/booking"
	"github.com/Domenick1991/courtbooking/internal/service/courts"
	"github.com/Domenick1991/courtbooking/internal/service/notifications"
	"github.com/Domenick1991/courtbooking/internal/service/products"
	"github.com/Domenick1991/courtbooking/internal/service/reports"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.CourtsTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	courtRepo := repository.NewCourtRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	services := bootstrap.Services{
		Bookings: booking.NewBookingService(
			bookingRepo,
			courtRepo,
			producer,
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		),
		Courts:        courts.NewCourtService(courtRepo, redisCache),
		Products:      products.NewProductService(productRepo, bookingRepo),
		Reports:       reports.NewReportService(reportRepo),
		Notifications: notifications.NewNotificationService(notificationRepo),
	}

	if err := bootstrap.Run(ctx, cfg, services); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
