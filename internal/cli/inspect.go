package cli

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"

	"github.com/law-makers/toolscout/internal/engine/extract"
	"github.com/law-makers/toolscout/internal/ui"
	"github.com/law-makers/toolscout/internal/utils/output"
	urlutil "github.com/law-makers/toolscout/internal/utils/url"
	"github.com/law-makers/toolscout/pkg/models"
)

var (
	inspectLimit  int
	inspectBudget int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [url]",
	Short: "Show which card strategy matches a page and what gets extracted",
	Long: `Render a page, run the card cascade against it and print the first cards as
an indented tree next to the record extracted from each. Useful when the
directory markup changes and extraction starts coming back empty.

Without a URL the newly-added page is inspected.`,
	Example: `  toolscout inspect
  toolscout inspect https://www.futuretools.io --limit 1`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{progressAnnotation: "true"},
	RunE:        runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().IntVarP(&inspectLimit, "limit", "n", 3, "Number of cards to print")
	inspectCmd.Flags().IntVar(&inspectBudget, "scrolls", 1, "Scroll budget for the render")
}

func runInspect(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	target := a.Config.NewlyAddedURL()
	if len(args) == 1 {
		target = args[0]
	}
	if err := urlutil.ValidateURL(target); err != nil {
		return err
	}

	page, err := a.Renderer.Render(cmd.Context(), models.RenderOptions{URL: target, ScrollBudget: inspectBudget})
	finishProgress()
	if err != nil {
		return fmt.Errorf("render %s: %w", target, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s %s\n", ui.Section("Page"), page.Title)
	for _, st := range extract.DefaultCardStrategies {
		fmt.Fprintf(out, "  %-16s %d\n", st.Name, st.Find(doc.Selection).Length())
	}

	cards, strategy := a.Extractor.Locate(doc)
	if len(cards) == 0 {
		fmt.Fprintln(out, ui.Error("\nNo tool cards found"))
		return nil
	}
	fmt.Fprintf(out, "\n%s %s (%d cards)\n", ui.Section("Using"), strategy, len(cards))

	for i, card := range cards {
		if i >= inspectLimit {
			break
		}
		fmt.Fprintf(out, "\n%s\n", ui.Heading(fmt.Sprintf("Card %d", i+1)))
		fmt.Fprint(out, output.PrettyPrint(output.StripCard(card).Nodes[0]))

		rec, ok := a.Extractor.Extract(card)
		if !ok {
			fmt.Fprintln(out, ui.Error("  skipped: no name"))
			continue
		}
		fmt.Fprintf(out, "  %s %s\n  %s %s\n  %s %s\n  %s %s\n  %s %s\n",
			ui.Dim("name:"), rec.Name,
			ui.Dim("description:"), rec.Description,
			ui.Dim("categories:"), rec.Categories,
			ui.Dim("pricing:"), rec.Pricing,
			ui.Dim("url:"), rec.URL)
	}
	return nil
}
