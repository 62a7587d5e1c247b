package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookingdesk/config"
	"bookingdesk/database"
	"bookingdesk/handlers"
	"bookingdesk/middleware"
	"bookingdesk/routes"
	"bookingdesk/services/dashboard"
	"bookingdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, err := database.OpenStore(ctx, config.AppConfig, logger)
	if err != nil {
		logger.Fatal("main: failed to open document store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("main: failed to close document store", zap.Error(err))
		}
	}()

	utils.StartHealthMonitor(ctx, utils.HealthCheckInterval, map[string]utils.HealthCheck{
		"store": store.Ping,
	})

	feed := dashboard.NewFeed(store, config.AppConfig.BookingsCollection, logger)
	if err := feed.Start(ctx); err != nil {
		logger.Error("main: bookings feed failed to subscribe", zap.Error(err))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlers.NewDashboardHandler(feed))

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	// Streams end once the feed stops and closes its watchers.
	feed.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
