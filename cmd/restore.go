package cmd

import (
	"walremap/internal/config"
	"walremap/internal/errors"

	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <backup-file>",
	Short: "Put a backed-up theme back in place",
	Long: `Restore copies a backup written by --backup over the theme file given by
--dest (default: the Vicinae theme location).`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func runRestore(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	backupPath, err := config.ExpandPath(args[0])
	if err != nil {
		return errors.NewConfigErrorWithPath(args[0], "invalid backup path", err)
	}

	return executeRestore(cfg, backupPath)
}
