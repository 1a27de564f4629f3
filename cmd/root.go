package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"walremap/internal/config"
	"walremap/internal/errors"

	"github.com/spf13/cobra"
)

var cfg = config.New()

var rootCmd = &cobra.Command{
	Use:   "walremap [options]",
	Short: "Convert the current Pywal color scheme into a Vicinae theme",
	Long: `Walremap reads the color scheme Pywal generates for the current wallpaper
and writes it as a Vicinae theme, creating the theme directory if needed.

A failed conversion is logged but does not change the exit status, so walremap
can run unattended from a Pywal hook. Use --watch to keep the theme in sync as
the wallpaper changes.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runConvert,
}

// Execute runs the root command and handles top-level error reporting.
// Interrupts cancel the command context, which ends watch mode cleanly.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		if errors.KindOf(err) == errors.ErrTypeConfig {
			fmt.Fprintln(os.Stderr, "Run 'walremap --help' for usage.")
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfg.Source, "source", config.DefaultSourcePath, "Pywal colors.json to read")
	rootCmd.PersistentFlags().StringVar(&cfg.Destination, "dest", config.DefaultDestinationPath, "Vicinae theme file to write")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose mode")
	rootCmd.PersistentFlags().BoolVar(&cfg.Debug, "debug", false, "Debug mode")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Quiet, "quiet", "q", false, "Quiet mode (warnings and errors only)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFile, "log", "", "Append diagnostics to this file (default: stderr)")

	rootCmd.Flags().BoolVarP(&cfg.Watch, "watch", "w", false, "Keep running and convert again whenever the source changes")
	rootCmd.Flags().DurationVar(&cfg.Debounce, "debounce", config.DefaultDebounce, "Quiet period before converting after a change (with --watch)")
	rootCmd.Flags().BoolVar(&cfg.Backup, "backup", false, "Keep a timestamped .bak copy of the previous theme")
	rootCmd.Flags().BoolVarP(&cfg.Preview, "preview", "p", false, "Print the generated palette as color swatches")

	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("debug", "quiet")

	rootCmd.AddCommand(restoreCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Watch {
		return executeWatch(cmd.Context(), cfg, cmd.OutOrStdout())
	}
	_, err := executeConvert(cfg, cmd.OutOrStdout())
	return err
}
