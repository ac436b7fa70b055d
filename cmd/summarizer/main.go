package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"discussum/db"
	"discussum/internal/app"
	"discussum/internal/config"
	"discussum/internal/pipeline"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	link := flag.String("link", "", "discussion link, e.g. https://canvas.example.edu/courses/1/discussion_topics/2")
	question := flag.String("question", "", "custom question; empty produces the general summary")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	ctx := context.Background()

	if cfg.RedisURL != "" {
		err = db.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer db.CloseRedis()
	}

	p, err := app.NewPipeline(cfg)
	if err != nil {
		log.Fatalf("error building pipeline: %v", err)
	}

	out, err := p.Run(ctx, pipeline.Input{Link: *link, CustomPrompt: *question})
	if err != nil {
		var perr *pipeline.Error
		if errors.As(err, &perr) {
			fmt.Fprintf(os.Stderr, "%d %s\n", perr.HTTPStatus(), perr.Message)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}

	fmt.Println(out.Summary)
}
