// File: voyago/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voyago/config"
	"voyago/handlers"
	"voyago/middleware"
	"voyago/routes"
	"voyago/services/generation"
	"voyago/services/pipeline"
	"voyago/services/providers/amadeus"
	"voyago/services/resolver"
	"voyago/services/tagger"
	"voyago/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitCache()
	utils.StartHealthMonitor(utils.GetCacheClient())

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Clients.
	geminiClient, err := generation.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize gemini client: %v", err)
	}
	defer geminiClient.Close()

	amadeusClient := amadeus.NewClient(
		config.AppConfig.AmadeusBaseURL,
		config.AppConfig.AmadeusAPIKey,
		config.AppConfig.AmadeusAPISecret,
		logger.Named("amadeus"),
	)

	// Services.
	contentGenerator := generation.NewContentGenerator(geminiClient, logger)
	entityTagger := tagger.New(geminiClient, logger)
	transportResolver := &resolver.TransportResolver{
		Provider: amadeusClient,
		Logger:   logger.Named("transport-resolver"),
	}
	hotelResolver := &resolver.HotelResolver{
		Provider: amadeusClient,
		Cities:   resolver.DefaultCityCodes(),
		Lookup:   amadeusClient,
		Logger:   logger.Named("hotel-resolver"),
	}
	pipelineService := pipeline.NewService(contentGenerator, entityTagger, transportResolver, hotelResolver)

	pipelineHandler := handlers.NewPipelineHandler(pipelineService, utils.GetCacheClient())
	routes.RegisterRoutes(router, pipelineHandler)

	// Start the HTTP server.
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

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
