package main

import (
	"net/http"
	"os"
	"time"

	"overnight-analyzer/internal/api/handlers"
	"overnight-analyzer/internal/api/middleware"
	"overnight-analyzer/internal/config"
	"overnight-analyzer/internal/data"
	"overnight-analyzer/internal/metrics"
	"overnight-analyzer/internal/pipeline"
	"overnight-analyzer/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	_ = godotenv.Load()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}
	log := util.NewLogger(cfg.LogLevel, os.Getenv("APP_ENV") != "production")

	client := data.NewClient(
		cfg.Provider.APIKey,
		cfg.Provider.BaseURL,
		time.Duration(cfg.Provider.TimeoutSeconds)*time.Second,
		log,
	)
	runner := pipeline.New(cfg, client, log)
	statusHandler := handlers.NewStatusHandler(runner, cfg.Output.Path, log)

	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api/v1")
	{
		api.GET("/status", statusHandler.GetStatus)
		api.GET("/metrics", statusHandler.GetMetrics)
		api.POST("/refresh", statusHandler.Refresh)
	}

	handler := cors.Default().Handler(router)

	log.Info().Str("port", port).Str("primary", cfg.Symbols.Primary).Msg("api listening")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
