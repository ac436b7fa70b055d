// Package app wires configuration into a ready pipeline for the commands.
package app

import (
	"fmt"
	"log/slog"

	"discussum/db"
	"discussum/internal/config"
	"discussum/internal/pipeline"
	"discussum/internal/roster"
	"discussum/pkg/canvas"
	"discussum/pkg/llm"

	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
)

// RosterSource picks where the allow-list comes from: an inline ROSTER list
// wins, then a Redis set when Redis is connected, then the roster file.
func RosterSource(cfg config.Config) (roster.Source, error) {
	if cfg.Roster != "" {
		r := roster.ParseList(cfg.Roster)
		slog.Info("using inline roster", "names", r.Len())
		return roster.Static(r), nil
	}

	if db.Redis != nil {
		slog.Info("using redis roster", "key", cfg.RosterRedisKey)
		return roster.NewRedisSource(db.Redis, cfg.RosterRedisKey), nil
	}

	r, err := roster.LoadFile(cfg.RosterFile)
	if err != nil {
		return nil, err
	}
	slog.Info("using roster file", "path", cfg.RosterFile, "names", r.Len())
	return roster.Static(r), nil
}

func Completer(cfg config.Config) (llm.Completer, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		return llm.NewOpenAIClient(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel), nil
	case config.ProviderAnthropic:
		var opts []anthropicoption.RequestOption
		if cfg.LLMBaseURL != "" {
			opts = append(opts, anthropicoption.WithBaseURL(cfg.LLMBaseURL))
		}
		return llm.NewAnthropicClient(cfg.LLMAPIKey, cfg.LLMModel, opts...), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}

func NewPipeline(cfg config.Config) (*pipeline.Pipeline, error) {
	source, err := RosterSource(cfg)
	if err != nil {
		return nil, err
	}

	completer, err := Completer(cfg)
	if err != nil {
		return nil, err
	}

	fetcher := canvas.NewClient(cfg.CanvasToken, cfg.FetchPolicy())
	summarizer := llm.NewSummarizer(completer, llm.MarkerRejection(llm.DefaultRejectMarker), cfg.CompletionPolicy())

	return pipeline.New(fetcher, source, summarizer, cfg.MinContributors), nil
}
