package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/law-makers/toolscout/internal/filter"
	"github.com/law-makers/toolscout/internal/store"
	"github.com/law-makers/toolscout/internal/ui"
	"github.com/law-makers/toolscout/pkg/models"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Show known categories and pricing labels",
	Long: `Print the category and pricing vocabularies accepted by --category and
--pricing. Labels seen in the local cache are listed too when one exists.`,
	Args: cobra.NoArgs,
	RunE: runVocab,
}

func init() {
	rootCmd.AddCommand(vocabCmd)
}

func runVocab(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	writeLabels(out, "Categories", models.Categories)
	writeLabels(out, "Pricing filters", models.PricingFilters)

	a := GetAppFromCmd(cmd)
	if a == nil {
		return nil
	}
	records, _, err := a.Store.Load()
	if errors.Is(err, store.ErrNoCache) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load cache: %w", err)
	}
	cats, prices := filter.Vocabulary(records)
	writeLabels(out, "Categories in cache", cats)
	writeLabels(out, "Pricing in cache", prices)
	return nil
}

func writeLabels(w io.Writer, title string, labels []string) {
	fmt.Fprintf(w, "\n%s %s\n", ui.Section(title), ui.Dim(fmt.Sprintf("(%d)", len(labels))))
	if len(labels) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(labels, ", "))
}
