package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"discussum/db"
	"discussum/internal/roster"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	defaultFile := os.Getenv("ROSTER_FILE")
	if defaultFile == "" {
		defaultFile = "configs/roster.txt"
	}
	defaultKey := os.Getenv("ROSTER_REDIS_KEY")

	file := flag.String("file", defaultFile, "roster file, one display name per line")
	key := flag.String("key", defaultKey, "redis set holding the roster")
	flag.Parse()

	ctx := context.Background()

	err := db.ConnectRedis(ctx, os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	r, err := roster.LoadFile(*file)
	if err != nil {
		log.Fatalf("error loading roster: %v", err)
	}

	if r.Len() == 0 {
		slog.Error("roster file is empty, refusing to clear redis roster", "file", *file)
		return
	}

	source := roster.NewRedisSource(db.Redis, *key)
	err = source.Replace(ctx, r)
	if err != nil {
		log.Fatalf("error replacing roster: %v", err)
	}

	stored, err := source.Roster(ctx)
	if err != nil {
		log.Fatalf("error reading back roster: %v", err)
	}

	slog.Info("roster synced", "file", *file, "names", stored.Len())
}
