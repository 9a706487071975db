// Package install implements the atomic install pipeline (spec.md §4.9):
// backup, download-with-checksum, extract, per-kind install strategy,
// metadata patch, and side-channel registry update, with rollback to the
// pre-install backup on any failure. Every filesystem mutation at a
// destination path routes through the privilege shim in privilege.go so
// system-owned paths work the same way whether the process is already
// elevated or needs to invoke sudo.
package install

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/uwuclxdy/plasmoid-updater/src/common/errors"
	"github.com/uwuclxdy/plasmoid-updater/src/common/logs"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/kind"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/paths"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/registry"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/types"
)

// Install runs the full pipeline for one update. On failure it rolls
// back to the pre-install backup and returns the original error (unless
// the rollback itself fails, in which case a compound error naming both
// failures is returned and the destination is left in an unspecified
// state — matching spec.md §4.9 step 7 literally).
func Install(ctx context.Context, update types.AvailableUpdate, log *logs.Logger) error {
	k := update.Installed.Kind
	directoryName := update.Installed.DirectoryName
	componentPath := update.Installed.Path

	backupPath, err := backupComponent(k, directoryName, componentPath, time.Now())
	if err != nil {
		return err
	}

	if installErr := runInstall(ctx, update, k, directoryName); installErr != nil {
		if restoreErr := restoreComponent(backupPath, componentPath); restoreErr != nil {
			return errors.ErrInstallFailed.WithMessagef(
				"install failed: %v; rollback also failed: %v", installErr, restoreErr)
		}
		log.Warn("install failed, rolled back to pre-install backup",
			"component", directoryName, "error", installErr)
		return installErr
	}

	return nil
}

// runInstall performs steps 2-5 of the pipeline (download through
// registry update). backup/rollback (steps 1 and 7) are the caller's
// responsibility.
func runInstall(ctx context.Context, update types.AvailableUpdate, k kind.Kind, directoryName string) error {
	downloadPath, err := download(ctx, update.DownloadURL, update.Checksum)
	if err != nil {
		return err
	}
	defer os.Remove(downloadPath)

	destPath := update.Installed.Path
	releaseDate := dateOnly(update.ReleaseDate)

	if isSingleFile(downloadPath, singleFileExtensions(k)) {
		if err := placeFile(destPath, downloadPath); err != nil {
			return err
		}
		return writeRegistry(k, directoryName, update, destPath, false, releaseDate)
	}

	extractedTo := extractDir(directoryName)
	defer os.RemoveAll(extractedTo)

	if err := extractArchive(downloadPath, extractedTo); err != nil {
		return err
	}

	if packagingType, hasPackaging := k.PackagingType(); hasPackaging {
		compDir, ok := locateComponentDir(extractedTo, k)
		if !ok {
			return errors.ErrMetadataNotFound.WithMessagef(
				"no metadata.json or metadata.desktop found in extracted archive for %s", directoryName)
		}
		if err := patchMetadata(compDir, packagingType, update.LatestVer); err != nil {
			return err
		}
		if err := installViaPackageTool(compDir, packagingType, isSystemPath(destPath)); err != nil {
			return err
		}
		return writeRegistry(k, directoryName, update, destPath, true, releaseDate)
	}

	compPath, ok := locateComponentDir(extractedTo, k)
	if !ok {
		return errors.ErrInstallFailed.WithMessagef(
			"could not locate a %s component in the extracted archive for %s", k.String(), directoryName)
	}

	isDir := componentIsDirectory(compPath)
	if isDir {
		if err := placeDir(destPath, compPath); err != nil {
			return err
		}
	} else if err := placeFile(destPath, compPath); err != nil {
		return err
	}
	return writeRegistry(k, directoryName, update, destPath, isDir, releaseDate)
}

// singleFileExtensions returns the set of extensions that mean "this
// download is already the component, route it straight to destination"
// for kinds that support that shortcut.
func singleFileExtensions(k kind.Kind) []string {
	switch k {
	case kind.ColorScheme:
		return colorSchemeExtensions
	case kind.Wallpaper:
		return wallpaperExtensions
	default:
		return nil
	}
}

// placeFile implements the replace-destination discipline (spec.md §4.9
// step 6) for a file component: remove whatever is at dest, create its
// parent, then copy src in — all through the privilege shim.
func placeFile(dest, src string) error {
	sh := shim{}
	if err := sh.removeAll(dest); err != nil {
		return errors.ErrInstallFailed.WithCause(err)
	}
	if err := sh.createDirAll(filepath.Dir(dest)); err != nil {
		return errors.ErrInstallFailed.WithCause(err)
	}
	if err := sh.copyFile(src, dest); err != nil {
		return errors.ErrInstallFailed.WithCause(err)
	}
	return nil
}

// placeDir is placeFile's directory-component counterpart.
func placeDir(dest, src string) error {
	sh := shim{}
	if err := sh.removeAll(dest); err != nil {
		return errors.ErrInstallFailed.WithCause(err)
	}
	if err := sh.createDirAll(filepath.Dir(dest)); err != nil {
		return errors.ErrInstallFailed.WithCause(err)
	}
	if err := sh.copyDir(src, dest); err != nil {
		return errors.ErrInstallFailed.WithCause(err)
	}
	return nil
}

// writeRegistry invokes the side-channel registry write path (§4.4) for
// a successfully installed component.
func writeRegistry(k kind.Kind, directoryName string, update types.AvailableUpdate, destPath string, isDir bool, releaseDate string) error {
	file, ok := k.SideChannelFile()
	if !ok {
		return nil
	}

	params := registry.WriteParams{
		DirectoryName: directoryName,
		Name:          update.Installed.Name,
		Version:       update.LatestVer,
		ContentID:     update.ContentID,
		PayloadURL:    update.DownloadURL,
		Path:          destPath,
		IsDirectory:   isDir,
		ReleaseDate:   releaseDate,
	}

	regPath := filepath.Join(paths.SideChannelDir(), file)
	if err := registry.Write(regPath, k, params); err != nil {
		return errors.Wrap(err, errors.DomainRegistry, "registry_write_failed", errors.Fatal,
			"failed to update side-channel registry")
	}
	return nil
}

// dateOnly keeps only the date portion of an ISO timestamp, matching
// the registry write path's releasedate field (spec.md §4.9 step 5).
func dateOnly(iso string) string {
	if len(iso) > 10 {
		return iso[:10]
	}
	return iso
}
