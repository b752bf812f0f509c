package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/law-makers/toolscout/internal/ui"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the local tool cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetAppFromCmd(cmd)
		if a == nil {
			return fmt.Errorf("application not initialized")
		}
		if err := a.Store.Clear(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("✓ Cache cleared"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
