package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/Rahul-web-hub/News-Sentiment-API/internal/app"
	"github.com/Rahul-web-hub/News-Sentiment-API/internal/config"
	"github.com/Rahul-web-hub/News-Sentiment-API/internal/handler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("error initializing app: %v", err)
	}
	defer a.Close()

	sentimentHandler := handler.NewSentimentHandler(a.Service, a.Cache)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.Server.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.Server.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)
	slog.Info("starting server", "port", cfg.Server.Port, "cache", cfg.Cache.Backend, "source", a.Source.Name())

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/news-sentiment", sentimentHandler.PostSentiment)
	r.GET("/news-sentiment/:symbol", sentimentHandler.GetSentiment)
	r.GET("/health", sentimentHandler.GetHealth)

	err = r.Run(":" + cfg.Server.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
