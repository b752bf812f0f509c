// Package dynamic renders lazily-loaded listing pages in headless Chrome.
package dynamic

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/law-makers/toolscout/internal/engine"
	"github.com/law-makers/toolscout/pkg/models"
	"github.com/rs/zerolog/log"
)

// RendererOptions configures a Renderer
type RendererOptions struct {
	Session         SessionOptions
	SettleDelay     time.Duration
	ScrollDelay     time.Duration
	ClickDelay      time.Duration
	StableThreshold int
	Progress        engine.Progress
}

// Renderer implements engine.Renderer with a fresh browser session per call
type Renderer struct {
	opts  RendererOptions
	sleep func(time.Duration)
}

// NewRenderer creates a browser-backed Renderer
func NewRenderer(opts RendererOptions) *Renderer {
	if opts.Progress == nil {
		opts.Progress = engine.LogProgress{}
	}
	return &Renderer{opts: opts, sleep: time.Sleep}
}

// Name returns the name of this renderer
func (r *Renderer) Name() string {
	return "BrowserRenderer"
}

// Render navigates to opts.URL, drives the lazy-load loop within
// opts.ScrollBudget and returns the final document. The browser session is
// closed before Render returns on every path.
func (r *Renderer) Render(ctx context.Context, opts models.RenderOptions) (*models.PageData, error) {
	start := time.Now()

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	r.opts.Progress.Stage("Starting browser")
	session, err := OpenSession(ctx, r.opts.Session)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	log.Debug().
		Str("url", opts.URL).
		Int("scroll_budget", opts.ScrollBudget).
		Dur("elapsed_ms", time.Since(start)).
		Msg("Session ready, navigating")

	// status of the main document, recorded once
	var status atomic.Int64
	chromedp.ListenTarget(session.Context(), func(ev interface{}) {
		if e, ok := ev.(*network.EventResponseReceived); ok && e.Type == network.ResourceTypeDocument {
			status.CompareAndSwap(0, e.Response.Status)
		}
	})

	r.opts.Progress.Stage("Loading " + opts.URL)
	if err := chromedp.Run(session.Context(), network.Enable(), chromedp.Navigate(opts.URL)); err != nil {
		return nil, engine.SessionError("failed to navigate", err).WithDetail("url", opts.URL)
	}
	if code := status.Load(); code >= 400 {
		return nil, engine.SessionError("unexpected status", fmt.Errorf("HTTP %d", code)).
			WithDetail("url", opts.URL).
			WithDetail("status", code)
	}
	r.sleep(r.opts.SettleDelay)

	r.opts.Progress.Stage("Scrolling to load content")
	stats, err := ScrollUntilStable(ctx, newBrowserPage(session.Context()), ScrollPolicy{
		Budget:          opts.ScrollBudget,
		StableThreshold: r.opts.StableThreshold,
		ScrollDelay:     r.opts.ScrollDelay,
		ClickDelay:      r.opts.ClickDelay,
	}, r.opts.Progress, r.sleep)
	if err != nil {
		return nil, engine.SessionError("scroll loop failed", err).WithDetail("scrolls", stats.Scrolls)
	}

	var html, title string
	if err := chromedp.Run(session.Context(),
		chromedp.Title(&title),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return nil, engine.SessionError("failed to read document", err)
	}
	if strings.TrimSpace(html) == "" {
		return nil, engine.SessionError("failed to read document", engine.ErrEmptyDocument)
	}

	page := &models.PageData{
		URL:          opts.URL,
		StatusCode:   int(status.Load()),
		Title:        title,
		HTML:         html,
		Scrolls:      stats.Scrolls,
		Height:       stats.Height,
		FetchedAt:    time.Now(),
		ResponseTime: time.Since(start).Milliseconds(),
	}

	log.Info().
		Str("url", opts.URL).
		Int("scrolls", stats.Scrolls).
		Int("clicks", stats.Clicks).
		Bool("stable", stats.Stable).
		Int64("height", stats.Height).
		Int64("response_time_ms", page.ResponseTime).
		Msg("Render completed")

	return page, nil
}
