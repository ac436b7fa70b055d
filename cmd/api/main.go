package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"discussum/db"
	"discussum/internal/app"
	"discussum/internal/config"
	"discussum/internal/handler"
	"discussum/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	if cfg.RedisURL != "" {
		err = db.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer db.CloseRedis()
	}

	summarizePipeline, err := app.NewPipeline(cfg)
	if err != nil {
		log.Fatalf("error building pipeline: %v", err)
	}
	summarizeHandler := handler.NewSummarizeHandler(summarizePipeline)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/summarize", summarizeHandler.Summarize)

	if cfg.DatabaseURL != "" {
		err = db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("error connecting to DB: %v", err)
		}
		defer db.Close()

		userRepo := repository.NewUserRepository(db.DB)
		userHandler := handler.NewUserHandler(userRepo)
		r.POST("/users", userHandler.CreateUser)
		r.GET("/health", handler.NewHealthHandler(userRepo).GetHealth)
	} else {
		slog.Warn("DATABASE_URL not set, user store disabled")
		r.GET("/health", handler.NewHealthHandler(nil).GetHealth)
	}

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
