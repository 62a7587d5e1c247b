package handlers

import (
	"io"
	"net/http"

	"bookingdesk/models"
	"bookingdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingFeed is the live bookings projection served by the dashboard.
type BookingFeed interface {
	View() models.DashboardView
	Watch() (<-chan models.DashboardView, func())
}

type DashboardHandler struct {
	Feed BookingFeed
}

func NewDashboardHandler(feed BookingFeed) *DashboardHandler {
	return &DashboardHandler{Feed: feed}
}

// GetBookingsHandler returns the current dashboard view.
func (h *DashboardHandler) GetBookingsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Feed.View())
}

// StreamBookingsHandler pushes a "bookings" server-sent event with the full
// view every time the projection changes, starting with the current one.
func (h *DashboardHandler) StreamBookingsHandler(c *gin.Context) {
	logger := getLogger(c)
	views, cancel := h.Feed.Watch()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	sent := 0
	c.Stream(func(w io.Writer) bool {
		select {
		case view, ok := <-views:
			if !ok {
				return false
			}
			c.SSEvent("bookings", view)
			sent++
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
	logger.Debug("Dashboard stream closed", zap.Int("events", sent))
}

// HealthHandler reports the latest dependency health.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "message": "Hi, I'm the booking dashboard"})
}
