package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/law-makers/toolscout/internal/ui"
	"github.com/law-makers/toolscout/pkg/models"
)

// descWidth truncates descriptions in the record table
const descWidth = 60

// printRecords writes records as an aligned table. limit <= 0 prints all.
func printRecords(out io.Writer, records []models.ToolRecord, limit int) {
	if len(records) == 0 {
		fmt.Fprintln(out, ui.Info("No tools found."))
		return
	}

	shown := records
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tCATEGORIES\tPRICING\tDESCRIPTION")
	_, _ = fmt.Fprintln(w, "----\t----------\t-------\t-----------")
	for _, r := range shown {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, r.Categories, r.Pricing, truncate(r.Description, descWidth))
	}
	_ = w.Flush()

	if len(shown) < len(records) {
		fmt.Fprintf(out, "%s\n", ui.Dim(fmt.Sprintf("... and %d more", len(records)-len(shown))))
	}
}

func printSummary(out io.Writer, res models.ScrapeResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Mode:\t%s\n", res.Mode)
	_, _ = fmt.Fprintf(w, "Run:\t%s\n", res.RunID)
	_, _ = fmt.Fprintf(w, "Tools:\t%d\n", res.Count)
	_, _ = fmt.Fprintf(w, "Completed:\t%s\n", res.CompletedAt.Local().Format(models.ScrapedAtLayout))
	_ = w.Flush()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}
