package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel    = "info"
	DefaultJSONLog     = false
	DefaultUserAgent   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultEngine      = EngineBrowser

	// Directory being scraped
	DefaultBaseURL        = "https://www.futuretools.io"
	DefaultNewlyAddedPath = "/newly-added"

	// Render loop
	DefaultShortScrollBudget = 10
	DefaultLongScrollBudget  = 100
	DefaultStableThreshold   = 3
	DefaultSettleDelay       = 3 * time.Second
	DefaultScrollDelay       = 1500 * time.Millisecond
	DefaultClickDelay        = 3 * time.Second
	DefaultBrowserHeadless   = true
	DefaultWindowSize        = "1920,1080"

	// Static engine
	DefaultStaticRateLimitRPS   = 1.0
	DefaultStaticRateLimitBurst = 2

	// Record cache
	DefaultCacheDir = "."
)

// Engine names accepted by --engine
const (
	EngineBrowser = "browser"
	EngineStatic  = "static"
)
