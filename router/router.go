package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/controllers"
	"github.com/yeremiapane/restaurant-reservations/middlewares"
)

type Options struct {
	AllowedOrigins []string
	BookingLimiter *middlewares.RateLimiter
}

func SetupRouter(reservationCtrl *controllers.ReservationController, contentCtrl *controllers.ContentController, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	if len(opts.AllowedOrigins) > 0 {
		r.Use(middlewares.CORSMiddlewares(opts.AllowedOrigins))
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Content (read-only)
	r.GET("/menu", contentCtrl.GetMenu)
	r.GET("/site-settings", contentCtrl.GetSiteSettings)

	// Reservations
	reservations := r.Group("/reservations")
	{
		create := []gin.HandlerFunc{reservationCtrl.CreateReservation}
		if opts.BookingLimiter != nil {
			create = append([]gin.HandlerFunc{opts.BookingLimiter.RateLimit()}, create...)
		}
		reservations.POST("", create...)
		reservations.GET("/:id", reservationCtrl.GetReservation)
		reservations.PATCH("/:id", reservationCtrl.UpdateReservation)
	}

	return r
}
