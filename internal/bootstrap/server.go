package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/courtbooking/api"
	"github.com/Domenick1991/courtbooking/config"
	"github.com/Domenick1991/courtbooking/internal/auth"
	"github.com/Domenick1991/courtbooking/internal/domain"
	"github.com/Domenick1991/courtbooking/internal/service/booking"
	"github.com/Domenick1991/courtbooking/internal/service/courts"
	"github.com/Domenick1991/courtbooking/internal/service/notifications"
	"github.com/Domenick1991/courtbooking/internal/service/products"
	"github.com/Domenick1991/courtbooking/internal/service/reports"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Bookings      booking.BookingUseCase
	Courts        courts.CourtUseCase
	Products      products.ProductUseCase
	Reports       reports.ReportUseCase
	Notifications notifications.NotificationUseCase
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg, svc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter wires handlers onto the public and staff route trees. Staff
// routes sit behind bearer auth; catalog, config and report management is
// additionally admin-only.
func NewRouter(cfg *config.Config, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	public := router.Group("/api/public")
	api.NewPublicHandler(svc.Bookings, svc.Courts).Register(public)

	staff := router.Group("/api")
	staff.Use(auth.Middleware(cfg.Auth.JWTSecret))

	admin := staff.Group("")
	admin.Use(auth.RequireRoles(domain.UserRoleAdmin))

	api.NewBookingHandler(svc.Bookings).Register(staff.Group("/bookings"))
	api.NewCourtHandler(svc.Courts).Register(staff, admin)
	api.NewProductHandler(svc.Products).Register(staff, admin)
	api.NewReportHandler(svc.Reports).Register(admin)
	api.NewNotificationHandler(svc.Notifications).Register(staff)

	return router
}
