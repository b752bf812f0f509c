package dynamic

import (
	"context"
	"time"

	"github.com/law-makers/toolscout/internal/engine"
	"github.com/rs/zerolog/log"
)

// progressEvery is how many scroll attempts pass between progress reports
const progressEvery = 10

// ScrollPolicy bounds and paces the lazy-load loop
type ScrollPolicy struct {
	Budget          int
	StableThreshold int
	ScrollDelay     time.Duration
	ClickDelay      time.Duration
}

// ScrollStats summarises a finished scroll loop
type ScrollStats struct {
	Scrolls int
	Clicks  int
	Height  int64
	Stable  bool
}

// ScrollUntilStable scrolls page until its height stops changing for
// StableThreshold consecutive attempts and no load-more control is visible,
// or until Budget attempts have been made. Reaching the budget is not an error.
func ScrollUntilStable(ctx context.Context, page Page, policy ScrollPolicy, progress engine.Progress, sleep func(time.Duration)) (ScrollStats, error) {
	var stats ScrollStats
	if progress == nil {
		progress = engine.NopProgress{}
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	threshold := policy.StableThreshold
	if threshold <= 0 {
		threshold = 1
	}

	last, err := page.ScrollHeight()
	if err != nil {
		return stats, err
	}
	stats.Height = last

	unchanged := 0
	for stats.Scrolls < policy.Budget {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if err := page.ScrollToBottom(); err != nil {
			return stats, err
		}
		stats.Scrolls++
		sleep(policy.ScrollDelay)

		height, err := page.ScrollHeight()
		if err != nil {
			return stats, err
		}

		if height == last {
			unchanged++
			if unchanged >= threshold {
				clicked, err := page.ClickLoadMore()
				if err != nil {
					log.Debug().Err(err).Msg("Load-more probe failed, treating page as loaded")
				}
				if err != nil || !clicked {
					stats.Height = height
					stats.Stable = true
					break
				}
				stats.Clicks++
				log.Debug().Int("clicks", stats.Clicks).Msg("Clicked load-more control")
				sleep(policy.ClickDelay)
				if height, err = page.ScrollHeight(); err != nil {
					return stats, err
				}
				unchanged = 0
			}
		} else {
			unchanged = 0
		}

		last = height
		stats.Height = height

		if stats.Scrolls%progressEvery == 0 {
			progress.Scrolled(stats.Scrolls, height)
		}
	}

	return stats, nil
}
