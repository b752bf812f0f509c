package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/law-makers/toolscout/internal/store"
	"github.com/law-makers/toolscout/internal/ui"
	"github.com/law-makers/toolscout/internal/utils/output"
	"github.com/law-makers/toolscout/pkg/models"
)

var (
	noSave         bool
	scrapeOutput   string
	scrapeShow     int
	scrapeCategory []string
	scrapePricing  []string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape tools from FutureTools.io into the local cache",
	Long: `Render a directory page in headless Chrome, scrolling and clicking "load more"
until no new tools appear, then extract every tool card.

The result replaces the local cache unless --no-save is given. A run that
finds no tools leaves the previous cache untouched.`,
	Example: `  # Tools added recently (short scroll)
  toolscout scrape newly

  # The whole catalog
  toolscout scrape all --output tools.csv

  # Catalog filtered after scraping
  toolscout scrape category --category "Generative Art" --pricing Free --pricing Freemium`,
}

var scrapeNewlyCmd = &cobra.Command{
	Use:         "newly",
	Short:       "Scrape the newly-added page",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{progressAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScrape(cmd, models.ScrapeRequest{Mode: models.ModeNewlyAdded})
	},
}

var scrapeAllCmd = &cobra.Command{
	Use:         "all",
	Short:       "Scrape the complete catalog",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{progressAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScrape(cmd, models.ScrapeRequest{Mode: models.ModeFull})
	},
}

var scrapeCategoryCmd = &cobra.Command{
	Use:         "category",
	Short:       "Scrape the catalog and keep tools matching categories and pricing",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{progressAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScrape(cmd, models.ScrapeRequest{
			Mode:       models.ModeByCategory,
			Categories: scrapeCategory,
			Pricing:    scrapePricing,
		})
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	scrapeCmd.AddCommand(scrapeNewlyCmd, scrapeAllCmd, scrapeCategoryCmd)

	scrapeCmd.PersistentFlags().BoolVar(&noSave, "no-save", false, "Do not replace the local cache")
	scrapeCmd.PersistentFlags().StringVarP(&scrapeOutput, "output", "o", "", "Also export results (supports .csv, .json, .md)")
	scrapeCmd.PersistentFlags().IntVar(&scrapeShow, "show", 20, "Number of tools to print (0 for all)")

	scrapeCategoryCmd.Flags().StringArrayVarP(&scrapeCategory, "category", "c", nil, "Category to keep (repeatable)")
	scrapeCategoryCmd.Flags().StringArrayVarP(&scrapePricing, "pricing", "p", nil, "Pricing label to keep (repeatable)")
}

func runScrape(cmd *cobra.Command, req models.ScrapeRequest) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	res, err := a.Pipeline.Run(cmd.Context(), req)
	finishProgress()
	if err != nil {
		return err
	}
	if err := cmd.Context().Err(); err != nil {
		return fmt.Errorf("scrape interrupted: %w", err)
	}

	out := cmd.OutOrStdout()
	if !noSave {
		switch err := a.Store.Save(res); {
		case errors.Is(err, store.ErrNothingToSave):
			fmt.Fprintln(out, ui.Info("No tools found, cache left unchanged."))
		case err != nil:
			return fmt.Errorf("save cache: %w", err)
		default:
			fmt.Fprintf(out, "%s %s\n", ui.Success("✓ Cached"), a.Store.CachePath())
		}
	}

	if scrapeOutput != "" {
		if err := output.Save(res.Records, scrapeOutput); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Fprintf(out, "%s %s\n", ui.Success("✓ Saved to"), scrapeOutput)
	}

	if quiet(cmd) {
		return nil
	}
	fmt.Fprintln(out)
	printSummary(out, res)
	fmt.Fprintln(out)
	printRecords(out, res.Records, scrapeShow)
	return nil
}
