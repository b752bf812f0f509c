// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/law-makers/toolscout/internal/config"
	"github.com/law-makers/toolscout/internal/engine"
	"github.com/law-makers/toolscout/internal/engine/dynamic"
	"github.com/law-makers/toolscout/internal/engine/extract"
	"github.com/law-makers/toolscout/internal/engine/static"
	"github.com/law-makers/toolscout/internal/pipeline"
	"github.com/law-makers/toolscout/internal/ratelimit"
	"github.com/law-makers/toolscout/internal/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once per CLI invocation and shared with the command that runs.
// No browser is started here: the browser renderer opens a session per scrape.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	RateLimiter ratelimit.Limiter
	HTTPClient  *http.Client
	Renderer    engine.Renderer
	Extractor   *extract.Extractor
	Pipeline    *pipeline.Pipeline
	Store       *store.Store
	progress    engine.Progress
	startTime   time.Time
}

// Option customises New
type Option func(*Application)

// WithProgress routes render progress to p instead of the log
func WithProgress(p engine.Progress) Option {
	return func(a *Application) { a.progress = p }
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates the rate limiter and HTTP client used by the static engine
//   - Selects the renderer named by cfg.Engine
//   - Creates the extractor, pipeline and record store
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	a := &Application{
		Config:    cfg,
		Logger:    &logger,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.progress == nil {
		a.progress = engine.LogProgress{}
	}

	a.RateLimiter = ratelimit.NewHostLimiter(cfg.StaticRateLimitRPS, cfg.StaticRateLimitBurst)
	a.HTTPClient = &http.Client{
		Timeout: cfg.HTTPTimeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	renderer, err := a.newRenderer()
	if err != nil {
		return nil, err
	}
	a.Renderer = renderer

	a.Extractor = extract.New(cfg.BaseURL)
	a.Pipeline = pipeline.New(a.Renderer, a.Extractor, pipeline.Options{
		ListingURL:    cfg.BaseURL,
		NewlyAddedURL: cfg.NewlyAddedURL(),
		ShortBudget:   cfg.ShortScrollBudget,
		LongBudget:    cfg.LongScrollBudget,
		Progress:      a.progress,
	})
	a.Store = store.New(cfg.CacheDir)

	logger.Debug().
		Str("renderer", a.Renderer.Name()).
		Str("base_url", cfg.BaseURL).
		Str("cache_dir", cfg.CacheDir).
		Msg("Application initialized")
	return a, nil
}

func (a *Application) newRenderer() (engine.Renderer, error) {
	cfg := a.Config
	switch cfg.Engine {
	case config.EngineStatic:
		return static.NewRenderer(a.RateLimiter, a.HTTPClient, cfg.HTTPTimeout, cfg.UserAgent), nil
	case config.EngineBrowser, "":
		return dynamic.NewRenderer(dynamic.RendererOptions{
			Session: dynamic.SessionOptions{
				Headless:   cfg.BrowserHeadless,
				UserAgent:  cfg.UserAgent,
				Proxy:      cfg.Proxy,
				ChromePath: cfg.ChromePath,
				WindowSize: config.DefaultWindowSize,
			},
			SettleDelay:     cfg.SettleDelay,
			ScrollDelay:     cfg.ScrollDelay,
			ClickDelay:      cfg.ClickDelay,
			StableThreshold: cfg.StableThreshold,
			Progress:        a.progress,
		}), nil
	default:
		return nil, engine.NewEngineError(engine.ErrCodeValidation, fmt.Sprintf("unknown engine %q", cfg.Engine), nil)
	}
}

// Close releases idle connections. Browser sessions are already closed by the
// renderer when each scrape returns.
func (a *Application) Close(ctx context.Context) error {
	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}
	a.Logger.Debug().Dur("uptime", a.Uptime()).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
