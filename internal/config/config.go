package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	urlutil "github.com/law-makers/toolscout/internal/utils/url"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Target directory
	BaseURL        string
	NewlyAddedPath string

	// Rendering
	Engine            string
	HTTPTimeout       time.Duration
	UserAgent         string
	Proxy             string
	BrowserHeadless   bool
	ChromePath        string
	ShortScrollBudget int
	LongScrollBudget  int
	StableThreshold   int
	SettleDelay       time.Duration
	ScrollDelay       time.Duration
	ClickDelay        time.Duration

	// Static engine rate limiting
	StaticRateLimitRPS   float64
	StaticRateLimitBurst int

	// Record cache
	CacheDir string
}

// Default returns a Config populated with the default constants
func Default() *Config {
	return &Config{
		LogLevel:             DefaultLogLevel,
		JSONLog:              DefaultJSONLog,
		BaseURL:              DefaultBaseURL,
		NewlyAddedPath:       DefaultNewlyAddedPath,
		Engine:               DefaultEngine,
		HTTPTimeout:          DefaultHTTPTimeout,
		UserAgent:            DefaultUserAgent,
		BrowserHeadless:      DefaultBrowserHeadless,
		ShortScrollBudget:    DefaultShortScrollBudget,
		LongScrollBudget:     DefaultLongScrollBudget,
		StableThreshold:      DefaultStableThreshold,
		SettleDelay:          DefaultSettleDelay,
		ScrollDelay:          DefaultScrollDelay,
		ClickDelay:           DefaultClickDelay,
		StaticRateLimitRPS:   DefaultStaticRateLimitRPS,
		StaticRateLimitBurst: DefaultStaticRateLimitBurst,
		CacheDir:             DefaultCacheDir,
	}
}

// NewlyAddedURL returns the absolute URL of the newly-added listing
func (c *Config) NewlyAddedURL() string {
	return urlutil.JoinOrigin(c.BaseURL, c.NewlyAddedPath)
}

// Load builds a Config by combining defaults, environment variables, and CLI flags.
// Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := Default()

	// Override from environment variables
	if v := os.Getenv("TOOLSCOUT_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("TOOLSCOUT_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("TOOLSCOUT_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("TOOLSCOUT_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("TOOLSCOUT_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}

	// Read CLI flags if provided
	if cmd != nil {
		if f := cmd.Flags().Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := cmd.Flags().Lookup("proxy"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.Proxy = s
			}
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.HTTPTimeout = d
				}
			}
		}
		if f := cmd.Flags().Lookup("engine"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.Engine = strings.ToLower(s)
			}
		}
		if f := cmd.Flags().Lookup("cache-dir"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.CacheDir = s
			}
		}
		if f := cmd.Flags().Lookup("headless"); f != nil {
			cfg.BrowserHeadless = f.Value.String() != "false"
		}
		if f := cmd.Flags().Lookup("json"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := cmd.Flags().Lookup("quiet"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "error"
			}
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
