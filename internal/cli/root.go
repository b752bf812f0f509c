// internal/cli/root.go
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/toolscout/internal/app"
	"github.com/law-makers/toolscout/internal/config"
)

// version is overridden at build time with -ldflags "-X ...cli.version=..."
var version = "0.1.0"

// progress is the spinner of the running command, nil when disabled
var progress *spinnerProgress

// progressAnnotation marks commands that render pages and show a spinner
const progressAnnotation = "progress"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "toolscout",
	Short: "Scrape and browse the FutureTools.io AI tool directory",
	Long: `Toolscout renders the FutureTools.io directory in headless Chrome, extracts a
record for every listed tool and keeps the latest results in a local cache.

Scrape the newly-added page, the whole catalog, or the catalog filtered by
category and pricing, then list, filter and export the cached records.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("Command failed")
		stop()
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)

	rootCmd.Flags().BoolP("help", "h", false, "Help for toolscout")
	rootCmd.Flags().Bool("version", false, "Version for toolscout")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpFunc(customHelpFunc)
	rootCmd.SetUsageFunc(customUsageFunc)

	// Initialize the application lazily so -h/--version never build it
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetAppFromCmd(cmd) != nil {
			return nil
		}

		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}

		var opts []app.Option
		if cmd.Annotations[progressAnnotation] == "true" && cfg.LogLevel == config.DefaultLogLevel && !cfg.JSONLog {
			progress = newSpinnerProgress(os.Stderr)
			opts = append(opts, app.WithProgress(progress))
			// spinner replaces info-level chatter
			cfg.LogLevel = "warn"
		}

		a, err := app.New(cmd.Context(), cfg, opts...)
		if err != nil {
			return err
		}
		SetApp(cmd, a)
		return nil
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		finishProgress()
		a := GetAppFromCmd(cmd)
		if a == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.Close(ctx)
	}
}

// finishProgress clears the spinner before results are printed
func finishProgress() {
	if progress != nil {
		progress.Done()
		progress = nil
	}
}

// quiet reports whether only errors should be printed
func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Flags().GetBool("quiet")
	return q
}
