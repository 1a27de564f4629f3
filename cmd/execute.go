// Package cmd implements the command-line interface for walremap.
// It wires configuration, the diagnostics sink, the converter and the
// optional watcher, backup and preview stages together.
package cmd

import (
	"context"
	"io"

	"walremap/internal/backup"
	"walremap/internal/config"
	"walremap/internal/converter"
	"walremap/internal/errors"
	"walremap/internal/log"
	"walremap/internal/preview"
	"walremap/internal/watch"
)

func openLogger(cfg *config.Config) (*log.Logger, error) {
	logger, err := log.NewLogger(cfg)
	if err != nil {
		return nil, errors.NewConfigError("cannot set up logging", err)
	}
	return logger, nil
}

func newConverter(cfg *config.Config, logger *log.Logger) *converter.Converter {
	return converter.New(logger.Sink(),
		converter.WithBackup(backup.NewBackupManager(cfg.ShouldCreateBackup())))
}

// executeConvert runs a single conversion. The conversion outcome is
// reported through the logger; the returned error only covers setup, so a
// failed conversion still exits 0.
func executeConvert(cfg *config.Config, out io.Writer) (converter.Result, error) {
	logger, err := openLogger(cfg)
	if err != nil {
		return converter.Result{}, err
	}
	defer logger.Close()

	return convertOnce(cfg, newConverter(cfg, logger), logger, out), nil
}

func convertOnce(cfg *config.Config, conv *converter.Converter, logger *log.Logger, out io.Writer) converter.Result {
	result := conv.Convert(cfg.Source, cfg.Destination)
	logger.LogResult(result)

	if result.OK() && cfg.Preview {
		if err := preview.Render(out, result.Theme.Palette); err != nil {
			logger.Sink().WithError(err).Warn("failed to render preview")
		}
	}
	return result
}

// executeWatch converts once, then again after every change to the source,
// until ctx is cancelled.
func executeWatch(ctx context.Context, cfg *config.Config, out io.Writer) error {
	logger, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	conv := newConverter(cfg, logger)
	convertOnce(cfg, conv, logger, out)

	w := watch.New(cfg.Source, cfg.Debounce, logger.Sink())
	err = w.Run(ctx, nil, func() {
		convertOnce(cfg, conv, logger, out)
	})
	logger.WriteReport()
	return err
}

func executeRestore(cfg *config.Config, backupPath string) error {
	logger, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	manager := backup.NewBackupManager(true)
	if err := manager.RestoreFile(cfg.Destination, backupPath); err != nil {
		logger.Sink().WithError(err).Error("Theme restore failed")
		return err
	}

	logger.Sink().WithField("backup", backupPath).Infof("Restored Vicinae theme at %s", cfg.Destination)
	return nil
}
