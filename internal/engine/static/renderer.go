// Package static fetches listing pages over plain HTTP without running scripts.
// Only the server-rendered first page of cards is visible to it. Transport
// failures are reported as TIMEOUT or NETWORK_ERROR, bad statuses as SESSION_ERROR.
package static

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/toolscout/internal/engine"
	"github.com/law-makers/toolscout/internal/ratelimit"
	"github.com/law-makers/toolscout/pkg/models"
	"github.com/rs/zerolog/log"
)

// Renderer implements engine.Renderer with a single GET per call
type Renderer struct {
	limiter   ratelimit.Limiter
	client    *http.Client
	userAgent string
}

// NewRenderer creates a static Renderer. A nil client gets one with timeout.
func NewRenderer(lim ratelimit.Limiter, client *http.Client, timeout time.Duration, ua string) *Renderer {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Renderer{
		limiter:   lim,
		client:    client,
		userAgent: ua,
	}
}

// Name returns the name of this renderer
func (r *Renderer) Name() string {
	return "StaticRenderer"
}

// Render fetches opts.URL once. ScrollBudget is ignored.
func (r *Renderer) Render(ctx context.Context, opts models.RenderOptions) (*models.PageData, error) {
	start := time.Now()

	log.Debug().
		Str("url", opts.URL).
		Str("renderer", r.Name()).
		Msg("Starting fetch")

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, opts.URL); err != nil {
			return nil, engine.SessionError("rate limiter wait", err).WithDetail("url", opts.URL)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return nil, engine.SessionError("failed to create request", fmt.Errorf("%w: %v", engine.ErrInvalidURL, err))
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, transportError(err).WithDetail("url", opts.URL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, engine.SessionError("unexpected status", fmt.Errorf("%s", resp.Status)).
			WithDetail("url", opts.URL).
			WithDetail("status", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, engine.SessionError("failed to read body", err)
	}
	html := string(body)
	if strings.TrimSpace(html) == "" {
		return nil, engine.SessionError("failed to read document", engine.ErrEmptyDocument)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, engine.SessionError("failed to parse HTML", err)
	}

	page := &models.PageData{
		URL:          opts.URL,
		StatusCode:   resp.StatusCode,
		Title:        strings.TrimSpace(doc.Find("title").First().Text()),
		HTML:         html,
		FetchedAt:    time.Now(),
		ResponseTime: time.Since(start).Milliseconds(),
	}

	log.Debug().
		Str("url", opts.URL).
		Int("status", resp.StatusCode).
		Int64("response_time_ms", page.ResponseTime).
		Msg("Fetch completed")

	return page, nil
}

// transportError classifies a failed round trip as a timeout or a network error
func transportError(err error) *engine.EngineError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return engine.NewEngineError(engine.ErrCodeTimeout, "request timed out", err)
	}
	return engine.NewEngineError(engine.ErrCodeNetworkError, "failed to fetch URL", err)
}
