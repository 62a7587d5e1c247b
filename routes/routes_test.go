package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	documentsRepo "bookingdesk/database/repository/documents"
	"bookingdesk/handlers"
	"bookingdesk/models"
	"bookingdesk/services/dashboard"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegisterRoutes_ServesLiveBookings(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := documentsRepo.NewMemoryStore()
	_, err := store.Add(context.Background(), "bookings", map[string]interface{}{"serviceName": "Snorkelling", "price": 40})
	require.NoError(t, err)

	feed := dashboard.NewFeed(store, "bookings", zap.NewNop())
	require.NoError(t, feed.Start(context.Background()))
	defer feed.Stop()
	assert.Eventually(t, func() bool { return feed.State() == models.FeedReady }, time.Second, 5*time.Millisecond)

	r := gin.New()
	RegisterRoutes(r, handlers.NewDashboardHandler(feed))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/bookings", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"serviceName":"Snorkelling"`)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
