package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/law-makers/toolscout/internal/filter"
	"github.com/law-makers/toolscout/internal/store"
	"github.com/law-makers/toolscout/internal/ui"
	"github.com/law-makers/toolscout/internal/utils/output"
)

var (
	listQuery    string
	listCategory []string
	listPricing  []string
	listOutput   string
	listLimit    int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List and filter cached tools",
	Example: `  # Everything in the cache
  toolscout list

  # Search names and descriptions
  toolscout list --query video

  # Free music tools, exported as markdown
  toolscout list --category Music --pricing Free --output music.md`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listQuery, "query", "Q", "", "Case-insensitive search in name and description")
	listCmd.Flags().StringArrayVarP(&listCategory, "category", "c", nil, "Category to keep (repeatable)")
	listCmd.Flags().StringArrayVarP(&listPricing, "pricing", "p", nil, "Pricing label to keep (repeatable)")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "", "Export matching tools (supports .csv, .json, .md)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Maximum number of tools to print (0 for all)")
}

func runList(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}
	out := cmd.OutOrStdout()

	records, meta, err := a.Store.Load()
	if errors.Is(err, store.ErrNoCache) {
		fmt.Fprintln(out, ui.Info("No cached tools. Run \"toolscout scrape all\" first."))
		return nil
	}
	if err != nil {
		return fmt.Errorf("load cache: %w", err)
	}

	criteria := filter.Criteria{Query: listQuery, Categories: listCategory, Pricing: listPricing}
	matched := criteria.Apply(records)

	if listOutput != "" {
		if err := output.Save(matched, listOutput); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Fprintf(out, "%s %s\n", ui.Success("✓ Saved to"), listOutput)
	}

	if !quiet(cmd) {
		fmt.Fprintf(out, "%s\n\n", ui.Dim(fmt.Sprintf("%d of %d tools (cache updated %s)", len(matched), meta.ToolCount, meta.LastUpdate)))
		printRecords(out, matched, listLimit)
	}
	return nil
}
