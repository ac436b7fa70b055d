// Package pipeline sequences one summarization request: parse the link, fetch
// the discussion, format the transcript, build the prompt and summarize.
package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"discussum/internal/model"
	"discussum/internal/roster"
	"discussum/internal/transcript"
	"discussum/pkg/canvas"
	"discussum/pkg/llm"
)

type Stage string

const (
	StageParsingLink    Stage = "parsing_link"
	StageFetching       Stage = "fetching"
	StageFormatting     Stage = "formatting"
	StageBuildingPrompt Stage = "building_prompt"
	StageSummarizing    Stage = "summarizing"
	StageDone           Stage = "done"
)

type DiscussionFetcher interface {
	FetchDiscussion(ctx context.Context, ref model.DiscussionRef) (*model.DiscussionView, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, req llm.Request) (*llm.Result, error)
}

type Input struct {
	Link         string
	CustomPrompt string
}

type Output struct {
	Summary   string
	ModelUsed string
}

type Pipeline struct {
	fetcher         DiscussionFetcher
	roster          roster.Source
	summarizer      Summarizer
	minContributors int
}

func New(fetcher DiscussionFetcher, source roster.Source, summarizer Summarizer, minContributors int) *Pipeline {
	if minContributors <= 0 {
		minContributors = transcript.DefaultMinContributors
	}
	return &Pipeline{
		fetcher:         fetcher,
		roster:          source,
		summarizer:      summarizer,
		minContributors: minContributors,
	}
}

// Run executes every stage in order and stops at the first failure. Any
// returned error is a *Error.
func (p *Pipeline) Run(ctx context.Context, in Input) (*Output, error) {
	ref, err := canvas.ParseLink(in.Link)
	if err != nil {
		return nil, p.fail(StageParsingLink, &Error{Kind: InvalidLinkFormat, Message: msgInvalidLink, Err: err})
	}

	log := slog.With("host", ref.Host, "course_id", ref.CourseID, "discussion_id", ref.DiscussionID)

	view, err := p.fetcher.FetchDiscussion(ctx, ref)
	if err != nil {
		perr := &Error{Kind: UpstreamFetchFailed, Message: msgFetchFailed, Err: err}
		var statusErr *canvas.StatusError
		if errors.As(err, &statusErr) {
			perr.UpstreamStatus = statusErr.StatusCode
		}
		return nil, p.fail(StageFetching, perr)
	}

	allow, err := p.roster.Roster(ctx)
	if err != nil {
		return nil, p.fail(StageFormatting, Unexpected(err))
	}

	text, err := transcript.Format(*view, allow, p.minContributors)
	if err != nil {
		if errors.Is(err, transcript.ErrInsufficientContributors) {
			return nil, p.fail(StageFormatting, &Error{Kind: InsufficientContributors, Message: insufficientMessage(p.minContributors), Err: err})
		}
		return nil, p.fail(StageFormatting, Unexpected(err))
	}

	prompt := llm.NewPrompt(in.CustomPrompt)
	req := llm.BuildRequest(prompt, text)
	log.Debug("prompt built", "kind", prompt.Kind.String(), "transcript_chars", len(text))

	res, err := p.summarizer.Summarize(ctx, req)
	if err != nil {
		return nil, p.fail(StageSummarizing, &Error{Kind: SummarizationCallFailed, Message: msgSummaryFailed, Err: err})
	}

	if res.Rejected {
		return nil, p.fail(StageSummarizing, &Error{Kind: UpstreamRejected, Message: res.Reason})
	}

	log.Info("summary generated", "kind", prompt.Kind.String(), "model", res.ModelUsed, "stage", StageDone)

	return &Output{Summary: res.Text, ModelUsed: res.ModelUsed}, nil
}

func (p *Pipeline) fail(stage Stage, err *Error) *Error {
	attrs := []any{"stage", stage, "kind", err.Kind.String(), "status", err.HTTPStatus()}
	if err.Err != nil {
		attrs = append(attrs, "error", err.Err)
	}

	if err.HTTPStatus() >= 500 {
		slog.Error("summarize request failed", attrs...)
	} else {
		slog.Warn("summarize request failed", attrs...)
	}
	return err
}
