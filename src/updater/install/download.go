package install

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/uwuclxdy/plasmoid-updater/src/common/errors"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/paths"
)

const downloadTimeout = 10 * time.Second

// download GETs downloadURL into <tmp>/plasmoid-updater/<filename>,
// hashing the stream with MD5 as it is written. If expectedChecksum is
// non-empty, a mismatch deletes the partial file and returns
// ErrChecksumMismatch.
func download(ctx context.Context, downloadURL, expectedChecksum string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return "", errors.ErrDownloadFailed.WithCause(err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", errors.ErrDownloadFailed.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.ErrDownloadFailed.WithMessagef("http status %d fetching %s", resp.StatusCode, downloadURL)
	}

	if err := os.MkdirAll(paths.TempDir(), 0o755); err != nil {
		return "", errors.ErrDownloadFailed.WithCause(err)
	}
	dest := filepath.Join(paths.TempDir(), downloadFilename(downloadURL))

	out, err := os.Create(dest)
	if err != nil {
		return "", errors.ErrDownloadFailed.WithCause(err)
	}

	hasher := md5.New()
	_, copyErr := io.Copy(out, io.TeeReader(resp.Body, hasher))
	closeErr := out.Close()
	if copyErr != nil {
		os.Remove(dest)
		return "", errors.ErrDownloadFailed.WithCause(copyErr)
	}
	if closeErr != nil {
		os.Remove(dest)
		return "", errors.ErrDownloadFailed.WithCause(closeErr)
	}

	if expectedChecksum != "" {
		actual := hex.EncodeToString(hasher.Sum(nil))
		if !strings.EqualFold(actual, expectedChecksum) {
			os.Remove(dest)
			return "", errors.Checksum(expectedChecksum, actual)
		}
	}

	return dest, nil
}

func downloadFilename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "download"
	}
	base := filepath.Base(u.Path)
	if base == "" || base == "/" || base == "." {
		return "download"
	}
	return base
}
