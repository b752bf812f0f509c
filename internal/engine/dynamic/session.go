package dynamic

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"
	"github.com/law-makers/toolscout/internal/config"
	"github.com/law-makers/toolscout/internal/engine"
	"github.com/rs/zerolog/log"
)

// SessionOptions configures a browser session
type SessionOptions struct {
	Headless   bool
	UserAgent  string
	Proxy      string
	ChromePath string
	WindowSize string
	ExtraArgs  []chromedp.ExecAllocatorOption
}

// Session owns one browser process for the duration of a render.
// Close releases it and is safe to call more than once.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	closeOnce   sync.Once
}

// allocatorOptions builds the Chrome flags for unattended operation
func allocatorOptions(opts SessionOptions, chromePath string) []chromedp.ExecAllocatorOption {
	if opts.UserAgent == "" {
		opts.UserAgent = config.DefaultUserAgent
	}
	if opts.WindowSize == "" {
		opts.WindowSize = config.DefaultWindowSize
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-software-rasterizer", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("window-size", opts.WindowSize),
		chromedp.UserAgent(opts.UserAgent),
	}

	if chromePath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(chromePath)}, allocOpts...)
	}

	if opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	if opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.Proxy))
	}

	return append(allocOpts, opts.ExtraArgs...)
}

// OpenSession launches a browser and returns once it is ready for commands.
// The browser is started eagerly so launch failures surface here rather than
// on the first navigation.
func OpenSession(parent context.Context, opts SessionOptions) (*Session, error) {
	chromePath := FindChrome(opts.ChromePath)
	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocatorOptions(opts, chromePath)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:         browserCtx,
		cancel:      browserCancel,
		allocCancel: allocCancel,
	}

	if err := chromedp.Run(browserCtx); err != nil {
		s.Close()
		if chromePath == "" {
			err = fmt.Errorf("%w: %v", engine.ErrBrowserNotFound, err)
		}
		return nil, engine.SessionError("failed to start browser", err)
	}

	log.Debug().
		Bool("headless", opts.Headless).
		Str("chrome", ChromeVersion(chromePath)).
		Msg("Browser session started")
	return s, nil
}

// Context returns the chromedp context bound to this session
func (s *Session) Context() context.Context {
	return s.ctx
}

// Close shuts the browser down and releases the allocator
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if err := chromedp.Cancel(s.ctx); err != nil {
			log.Debug().Err(err).Msg("Browser did not close cleanly")
		}
		s.cancel()
		s.allocCancel()
		log.Debug().Msg("Browser session closed")
	})
}
