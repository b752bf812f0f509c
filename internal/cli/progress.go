package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// spinnerProgress renders render progress as a terminal spinner
type spinnerProgress struct {
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

func newSpinnerProgress(w io.Writer) *spinnerProgress {
	return &spinnerProgress{
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetDescription("Starting"),
			progressbar.OptionClearOnFinish(),
		),
	}
}

func (p *spinnerProgress) Stage(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bar.Describe(msg)
	_ = p.bar.Add(1)
}

func (p *spinnerProgress) Scrolled(attempt int, height int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bar.Describe(fmt.Sprintf("Scrolled %d times, page height %d", attempt, height))
	_ = p.bar.Add(1)
}

// Done clears the spinner line
func (p *spinnerProgress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Finish()
}
