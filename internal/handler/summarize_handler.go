package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"discussum/internal/pipeline"

	"github.com/gin-gonic/gin"
)

type Summarizer interface {
	Run(ctx context.Context, in pipeline.Input) (*pipeline.Output, error)
}

type SummarizeHandler struct {
	pipeline Summarizer
}

func NewSummarizeHandler(p Summarizer) *SummarizeHandler {
	return &SummarizeHandler{pipeline: p}
}

func (h *SummarizeHandler) Summarize(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid summarize request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	out, err := h.pipeline.Run(c.Request.Context(), pipeline.Input{
		Link:         req.Link,
		CustomPrompt: req.CustomPrompt,
	})
	if err != nil {
		var perr *pipeline.Error
		if !errors.As(err, &perr) {
			perr = pipeline.Unexpected(err)
		}
		c.JSON(perr.HTTPStatus(), ErrorResponse{Error: perr.Message})
		return
	}

	c.JSON(http.StatusOK, SummarizeResponse{Summary: out.Summary})
}
