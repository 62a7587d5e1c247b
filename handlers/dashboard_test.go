package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bookingdesk/models"
	"bookingdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticFeed struct {
	views []models.DashboardView
}

func (f *staticFeed) View() models.DashboardView { return f.views[len(f.views)-1] }

func (f *staticFeed) Watch() (<-chan models.DashboardView, func()) {
	ch := make(chan models.DashboardView, len(f.views))
	for _, v := range f.views {
		ch <- v
	}
	close(ch)
	return ch, func() {}
}

// streamRecorder adds the close notification gin's streaming requires.
type streamRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *streamRecorder) CloseNotify() <-chan bool { return r.closed }

func newRouter(h *DashboardHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/bookings", h.GetBookingsHandler)
	r.GET("/bookings/stream", h.StreamBookingsHandler)
	r.GET("/health", HealthHandler)
	return r
}

func readyView() models.DashboardView {
	return models.DashboardView{
		State: models.FeedReady,
		Bookings: []models.Booking{
			{ID: "a", ServiceName: "Snorkelling", Price: 40},
			{ID: "b", ServiceName: "Dhow Cruise", Price: 75},
		},
	}
}

func TestGetBookingsHandler(t *testing.T) {
	r := newRouter(NewDashboardHandler(&staticFeed{views: []models.DashboardView{readyView()}}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Loading  bool                     `json:"loading"`
		State    string                   `json:"state"`
		Bookings []map[string]interface{} `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Loading)
	assert.Equal(t, "ready", body.State)
	require.Len(t, body.Bookings, 2)
	assert.Equal(t, "a", body.Bookings[0]["id"])
	assert.Equal(t, "Dhow Cruise", body.Bookings[1]["serviceName"])
}

func TestStreamBookingsHandler(t *testing.T) {
	loading := models.DashboardView{Loading: true, State: models.FeedLoading, Bookings: []models.Booking{}}
	r := newRouter(NewDashboardHandler(&staticFeed{views: []models.DashboardView{loading, readyView()}}))

	w := &streamRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool)}
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings/stream", nil))

	body := w.Body.String()
	assert.Equal(t, 2, strings.Count(body, "event:bookings"))
	assert.Contains(t, body, `"loading":true`)
	assert.Contains(t, body, `"serviceName":"Snorkelling"`)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
}

func TestHealthHandler(t *testing.T) {
	r := newRouter(NewDashboardHandler(&staticFeed{views: []models.DashboardView{readyView()}}))

	utils.RunHealthChecks(context.Background(), map[string]utils.HealthCheck{
		"store": func(context.Context) error { return nil },
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	utils.RunHealthChecks(context.Background(), map[string]utils.HealthCheck{
		"store": func(context.Context) error { return errors.New("down") },
	})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.WithinDuration(t, time.Now(), utils.GetHealthStatus().CheckedAt, time.Minute)
}
