package install

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/uwuclxdy/plasmoid-updater/src/common/errors"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/kind"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/paths"
)

// backupComponent copies componentPath into
// <cache_home>/plasmoid-updater/backups/<timestamp>/<backup_subdir>/<directory_name>
// and returns the backup path for later restore. A file component is
// byte-copied, so its backup does not share data with the live file. A
// directory component is copied with copyDirNative, whose files are
// hardlinks to the live files when both sit on one filesystem.
func backupComponent(k kind.Kind, directoryName, componentPath string, now time.Time) (string, error) {
	timestamp := now.Format("2006-01-02T15-04-05")
	dest := filepath.Join(paths.BackupBaseDir(), timestamp, k.BackupSubdir(), directoryName)

	info, err := os.Stat(componentPath)
	if err != nil {
		return "", errors.ErrBackupFailed.WithCause(err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", errors.ErrBackupFailed.WithCause(err)
	}

	if info.IsDir() {
		if err := copyDirNative(componentPath, dest); err != nil {
			return "", errors.ErrBackupFailed.WithCause(err)
		}
	} else {
		if err := (shim{}).copyFile(componentPath, dest); err != nil {
			return "", errors.ErrBackupFailed.WithCause(err)
		}
	}

	return dest, nil
}

// restoreComponent reverses backupComponent: the (possibly partially
// installed) destination is removed and the backup copied back in its
// place.
func restoreComponent(backupPath, originalPath string) error {
	info, err := os.Stat(backupPath)
	if err != nil {
		return errors.ErrBackupFailed.WithCause(fmt.Errorf("backup missing at %s: %w", backupPath, err))
	}

	sh := shim{}
	if err := sh.removeAll(originalPath); err != nil {
		return errors.ErrBackupFailed.WithCause(err)
	}
	if err := sh.createDirAll(filepath.Dir(originalPath)); err != nil {
		return errors.ErrBackupFailed.WithCause(err)
	}

	if info.IsDir() {
		return sh.copyDir(backupPath, originalPath)
	}
	return sh.copyFile(backupPath, originalPath)
}
