package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/config"
	"github.com/yeremiapane/restaurant-reservations/controllers"
	"github.com/yeremiapane/restaurant-reservations/database"
	"github.com/yeremiapane/restaurant-reservations/middlewares"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/router"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg.DB, utils.InfoLogger)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate database: %v", err)
	}

	sender := services.NewEmailSender(cfg.Email)
	if sender == nil {
		utils.InfoLogger.Warn("Email is not configured, reservation emails are disabled")
	}
	dispatcher := services.NewNotificationDispatcher(sender, &services.EmailRenderer{
		Restaurant: cfg.RestaurantName,
		SiteURL:    cfg.SiteURL,
		Location:   cfg.Location,
	}, services.DispatcherConfig{
		From:       cfg.Email.From,
		AdminEmail: cfg.Email.AdminEmail,
		BaseDelay:  cfg.Email.RetryBaseDelay,
	}, utils.ErrorLogger)

	reservationSvc := services.NewReservationService(
		services.NewGormReservationStore(db),
		services.NewReservationValidator(time.Now, cfg.Location, cfg.LeadTime),
		dispatcher,
	)

	r := router.SetupRouter(
		controllers.NewReservationController(reservationSvc),
		controllers.NewContentController(services.NewGormContentStore(db), models.SiteSettings{
			Name:         cfg.RestaurantName,
			Email:        cfg.Email.AdminEmail,
			OpeningHours: config.String("DEFAULT_OPENING_HOURS", "Tuesday - Sunday, 12:00 - 14:30 and 19:00 - 22:30"),
		}),
		router.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			BookingLimiter: middlewares.NewRateLimiter(cfg.BookingRPS, cfg.BookingBurst),
		},
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.ErrorLogger.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutdown signal received, shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Printf("Server forced to shutdown: %v", err)
	}

	// let queued emails finish their retries
	dispatcher.Wait()
	utils.InfoLogger.Println("Server stopped gracefully")
}
