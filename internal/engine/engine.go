package engine

import (
	"context"

	"github.com/law-makers/toolscout/pkg/models"
	"github.com/rs/zerolog/log"
)

// Renderer is the interface that all rendering engines must implement
type Renderer interface {
	// Render loads the page at opts.URL and returns the final document
	Render(ctx context.Context, opts models.RenderOptions) (*models.PageData, error)

	// Name returns the name of the renderer implementation
	Name() string
}

// Progress receives human-readable progress during long renders.
// Implementations must not be used for control flow.
type Progress interface {
	Stage(msg string)
	Scrolled(attempt int, height int64)
}

// LogProgress reports progress through the global logger
type LogProgress struct{}

func (LogProgress) Stage(msg string) {
	log.Info().Msg(msg)
}

func (LogProgress) Scrolled(attempt int, height int64) {
	log.Info().Int("scrolls", attempt).Int64("height", height).Msg("Scrolling")
}

// NopProgress discards progress
type NopProgress struct{}

func (NopProgress) Stage(string)        {}
func (NopProgress) Scrolled(int, int64) {}
