package config

import (
	"fmt"

	urlutil "github.com/law-makers/toolscout/internal/utils/url"
)

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if err := urlutil.ValidateURL(c.BaseURL); err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	if c.ShortScrollBudget <= 0 || c.LongScrollBudget <= 0 {
		return fmt.Errorf("scroll budgets must be > 0")
	}
	if c.StableThreshold <= 0 {
		return fmt.Errorf("stable threshold must be > 0")
	}
	if c.SettleDelay < 0 || c.ScrollDelay < 0 || c.ClickDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	switch c.Engine {
	case EngineBrowser, EngineStatic:
	default:
		return fmt.Errorf("unknown engine %q (must be %s or %s)", c.Engine, EngineBrowser, EngineStatic)
	}
	return nil
}
