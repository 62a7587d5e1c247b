package routes

import (
	"net/http"
	"time"

	"bookingdesk/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterDashboardRoutes exposes the live bookings view.
func RegisterDashboardRoutes(r *gin.Engine, h *handlers.DashboardHandler) {
	api := r.Group("/api/dashboard")
	{
		api.GET("/bookings", h.GetBookingsHandler)
		api.GET("/bookings/stream", h.StreamBookingsHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *handlers.DashboardHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Cache-Control", "Last-Event-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterDashboardRoutes(r, h)
}
