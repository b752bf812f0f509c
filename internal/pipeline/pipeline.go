// Package pipeline drives a render, card extraction and filtering for each scrape mode.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/toolscout/internal/engine"
	"github.com/law-makers/toolscout/internal/engine/extract"
	"github.com/law-makers/toolscout/internal/filter"
	"github.com/law-makers/toolscout/internal/reqctx"
	"github.com/law-makers/toolscout/pkg/models"
)

// Options configures a Pipeline
type Options struct {
	// ListingURL is the full catalog page
	ListingURL string
	// NewlyAddedURL is the recent additions page
	NewlyAddedURL string
	// ShortBudget bounds scrolling on the newly-added page
	ShortBudget int
	// LongBudget bounds scrolling on the full catalog
	LongBudget int
	// Timeout caps a single render; zero means no cap
	Timeout  time.Duration
	Progress engine.Progress
}

// Pipeline runs one scrape at a time against a Renderer
type Pipeline struct {
	mu        sync.Mutex
	renderer  engine.Renderer
	extractor *extract.Extractor
	opts      Options
	now       func() time.Time
}

// New creates a Pipeline
func New(r engine.Renderer, x *extract.Extractor, opts Options) *Pipeline {
	if opts.Progress == nil {
		opts.Progress = engine.NopProgress{}
	}
	return &Pipeline{
		renderer:  r,
		extractor: x,
		opts:      opts,
		now:       time.Now,
	}
}

// ScrapeNewlyAdded returns every tool on the newly-added page
func (p *Pipeline) ScrapeNewlyAdded(ctx context.Context) models.ScrapeResult {
	return p.scrape(ctx, models.ModeNewlyAdded, p.opts.NewlyAddedURL, p.opts.ShortBudget, filter.Criteria{})
}

// ScrapeAllTools returns every tool on the main listing
func (p *Pipeline) ScrapeAllTools(ctx context.Context) models.ScrapeResult {
	return p.scrape(ctx, models.ModeFull, p.opts.ListingURL, p.opts.LongBudget, filter.Criteria{})
}

// ScrapeByCategory renders the full listing and keeps the records that match
// categories and pricing. The site is never queried with the filter; an empty
// set on either side matches everything.
func (p *Pipeline) ScrapeByCategory(ctx context.Context, categories, pricing []string) models.ScrapeResult {
	return p.scrape(ctx, models.ModeByCategory, p.opts.ListingURL, p.opts.LongBudget, filter.Criteria{
		Categories: categories,
		Pricing:    pricing,
	})
}

// Run dispatches req to the matching scrape mode
func (p *Pipeline) Run(ctx context.Context, req models.ScrapeRequest) (models.ScrapeResult, error) {
	switch req.Mode {
	case models.ModeNewlyAdded:
		return p.ScrapeNewlyAdded(ctx), nil
	case models.ModeFull:
		return p.ScrapeAllTools(ctx), nil
	case models.ModeByCategory:
		return p.ScrapeByCategory(ctx, req.Categories, req.Pricing), nil
	default:
		return models.ScrapeResult{}, engine.NewEngineError(engine.ErrCodeValidation,
			fmt.Sprintf("unknown scrape mode %q", req.Mode), nil)
	}
}

// scrape holds the pipeline lock for the whole run so that at most one
// browser session exists. Render failures yield an empty result.
func (p *Pipeline) scrape(ctx context.Context, mode models.ScrapeMode, url string, budget int, criteria filter.Criteria) (result models.ScrapeResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctx = reqctx.WithRun(ctx, string(mode))
	run := reqctx.FromContext(ctx)
	logger := reqctx.Logger(ctx)

	result = models.ScrapeResult{
		Mode:    mode,
		RunID:   run.ID,
		Records: []models.ToolRecord{},
	}

	defer func() {
		if r := recover(); r != nil {
			err := engine.SessionError("render panicked", fmt.Errorf("%v", r))
			logger.Error().Err(err).Msg("Scrape aborted")
			result.Records = []models.ToolRecord{}
			result.Count = 0
			result.CompletedAt = p.now()
		}
		logger.Debug().Dur("elapsed", run.Elapsed()).Msg("Session closed")
	}()

	logger.Info().Str("url", url).Int("scroll_budget", budget).Str("renderer", p.renderer.Name()).Msg("Session active")
	p.opts.Progress.Stage(fmt.Sprintf("Scraping %s", url))

	logger.Debug().Msg("Rendering")
	page, err := p.renderer.Render(ctx, models.RenderOptions{
		URL:          url,
		ScrollBudget: budget,
		Timeout:      p.opts.Timeout,
	})
	if err != nil {
		logger.Error().Err(err).Str("code", string(engine.CodeOf(err))).Msg("Render failed")
		result.CompletedAt = p.now()
		return result
	}

	logger.Debug().Int("html_bytes", len(page.HTML)).Int("scrolls", page.Scrolls).Msg("Parsing")
	p.opts.Progress.Stage("Parsing tool cards")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse rendered document")
		result.CompletedAt = p.now()
		return result
	}
	records := p.extractor.ExtractAll(doc)

	logger.Debug().Int("extracted", len(records)).Msg("Aggregating")
	if !criteria.IsEmpty() {
		records = criteria.Apply(records)
	}

	result.Records = records
	result.Count = len(records)
	result.CompletedAt = p.now()

	logger.Info().Int("count", result.Count).Msg("Scrape completed")
	return result
}
