package install

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ulikunitz/xz"

	"github.com/uwuclxdy/plasmoid-updater/src/common/errors"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/paths"
)

// colorSchemeExtensions and wallpaperExtensions are the extensions
// (handed out per kind by singleFileExtensions in pipeline.go) that route
// a downloaded file straight to its destination instead of through
// extraction.
var colorSchemeExtensions = []string{".colors", ".colorscheme"}
var wallpaperExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".avif"}

// isSingleFile reports whether archivePath's extension means "this is
// already the component, don't extract it".
func isSingleFile(archivePath string, extraExtensions []string) bool {
	ext := strings.ToLower(filepath.Ext(archivePath))
	for _, e := range extraExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// extractDir creates a unique per-update staging directory under the
// module's temp directory, avoiding collisions between concurrent
// installs of the same kind.
func extractDir(directoryName string) string {
	return filepath.Join(paths.TempDir(), "extract-"+directoryName+"-"+uuid.NewString())
}

// extractArchive extracts archivePath into dir. A plain .tar.xz archive
// is decompressed with the pure-Go xz reader piped into bsdtar (avoiding
// a second native xz dependency); anything else is handed to bsdtar
// directly, matching the external-extractor shim spec.md §6 specifies.
func extractArchive(archivePath, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.ErrExtractionFailed.WithCause(err)
	}

	if strings.HasSuffix(strings.ToLower(archivePath), ".tar.xz") || strings.HasSuffix(strings.ToLower(archivePath), ".txz") {
		return extractTarXZ(archivePath, dir)
	}

	cmd := exec.Command("bsdtar", "-xf", archivePath, "-C", dir)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.ErrExtractionFailed.WithMessagef("bsdtar failed: %v: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// extractTarXZ decompresses archivePath with the pure-Go xz reader and
// pipes the resulting tar stream into bsdtar for the actual unpacking,
// since bsdtar itself may lack xz support on a minimal host.
func extractTarXZ(archivePath, dir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return errors.ErrExtractionFailed.WithCause(err)
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return errors.ErrExtractionFailed.WithCause(err)
	}

	cmd := exec.Command("bsdtar", "-xf", "-", "-C", dir)
	cmd.Stdin = xr
	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.ErrExtractionFailed.WithMessagef("bsdtar failed: %v: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
