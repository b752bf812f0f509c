// Package reqctx carries per-scrape run metadata through a context.
package reqctx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type key int

const runKey key = 0

// Run identifies one orchestrator invocation
type Run struct {
	ID        string
	Mode      string
	StartTime time.Time
}

// Elapsed returns the time since the run started
func (r *Run) Elapsed() time.Duration {
	return time.Since(r.StartTime)
}

// WithRun returns a child context carrying a fresh Run for mode
func WithRun(ctx context.Context, mode string) context.Context {
	return context.WithValue(ctx, runKey, &Run{
		ID:        generateID(),
		Mode:      mode,
		StartTime: time.Now(),
	})
}

// FromContext returns the Run stored in ctx, or a placeholder with ID "unknown"
func FromContext(ctx context.Context) *Run {
	if r, ok := ctx.Value(runKey).(*Run); ok {
		return r
	}
	return &Run{
		ID:        "unknown",
		StartTime: time.Now(),
	}
}

// Logger returns the global logger annotated with the run id and mode
func Logger(ctx context.Context) zerolog.Logger {
	r := FromContext(ctx)
	return log.With().Str("run_id", r.ID).Str("mode", r.Mode).Logger()
}

func generateID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
