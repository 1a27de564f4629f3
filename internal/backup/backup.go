// Package backup keeps copies of theme files before they are overwritten
// and restores them on request.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"walremap/internal/errors"
)

// Manager handles theme backup and restoration.
type Manager struct {
	enabled bool
	now     func() time.Time
}

// NewBackupManager creates a Manager. A disabled manager never copies anything.
func NewBackupManager(enabled bool) *Manager {
	return &Manager{
		enabled: enabled,
		now:     time.Now,
	}
}

// Enabled reports whether backups are taken.
func (bm *Manager) Enabled() bool {
	return bm.enabled
}

// BackupFile copies filePath to a timestamped sibling and returns its path.
// It returns an empty path when backups are disabled or there is nothing to
// back up yet.
func (bm *Manager) BackupFile(filePath string) (string, error) {
	if !bm.enabled {
		return "", nil
	}

	srcInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.NewBackupError(filePath, "failed to stat file", err)
	}
	if srcInfo.IsDir() {
		return "", errors.NewBackupError(filePath, "refusing to back up a directory", nil)
	}

	backupPath := bm.generateBackupPath(filePath)
	if err := copyFile(filePath, backupPath, srcInfo.Mode().Perm()); err != nil {
		_ = os.Remove(backupPath)
		return "", errors.NewBackupError(backupPath, "failed to create backup file", err)
	}

	return backupPath, nil
}

// RestoreFile overwrites originalPath with the contents of backupPath,
// creating the parent directory if it has since been removed.
func (bm *Manager) RestoreFile(originalPath, backupPath string) error {
	if backupPath == "" {
		return nil
	}

	backupInfo, err := os.Stat(backupPath)
	if os.IsNotExist(err) {
		return errors.NewBackupError(backupPath, "backup file not found", err)
	}
	if err != nil {
		return errors.NewBackupError(backupPath, "failed to stat backup file", err)
	}

	if err := os.MkdirAll(filepath.Dir(originalPath), 0755); err != nil {
		return errors.NewBackupError(originalPath, "failed to create theme directory", err)
	}

	if err := copyFile(backupPath, originalPath, backupInfo.Mode().Perm()); err != nil {
		return errors.NewBackupError(originalPath, "failed to restore file content", err)
	}

	return nil
}

// CleanupBackup removes a backup file. A missing backup is not an error.
func (bm *Manager) CleanupBackup(backupPath string) error {
	if backupPath == "" {
		return nil
	}

	err := os.Remove(backupPath)
	if err != nil && !os.IsNotExist(err) {
		return errors.NewBackupError(backupPath, "failed to remove backup file", err)
	}

	return nil
}

func (bm *Manager) generateBackupPath(originalPath string) string {
	dir := filepath.Dir(originalPath)
	base := filepath.Base(originalPath)
	timestamp := bm.now().Format("20060102_150405")

	candidate := filepath.Join(dir, fmt.Sprintf("%s.%s.bak", base, timestamp))
	// several conversions can land in the same second while watching
	for i := 1; fileExists(candidate); i++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s.%s.%d.bak", base, timestamp, i))
	}
	return candidate
}

func copyFile(src, dst string, perm os.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	if err := dstFile.Close(); err != nil {
		return err
	}

	return os.Chmod(dst, perm)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
