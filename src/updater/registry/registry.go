// Package registry reads and writes the per-kind knewstuff3 side-channel
// XML registry that the reference desktop's system settings application
// uses to know what is installed. Parsing and writing are both done with
// a streaming, token-level reader/writer pair: a state machine tracks
// the current element and the active entry, and the writer forwards
// every event verbatim except the specific text nodes being rewritten.
// This preserves unknown elements, which is required for compatibility
// with the reference desktop.
package registry

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/uwuclxdy/plasmoid-updater/src/updater/types"
)

// Document is a parsed registry file: its entries and whether the file
// exists. Write works from the raw file, not from a Document.
type Document struct {
	Entries []types.RegistryEntry
	Exists  bool
}

const (
	metadataJSONName    = "metadata.json"
	metadataDesktopName = "metadata.desktop"
)

// deriveComponentPath implements the directory-name/path derivation
// rule: if the installedfile's basename is a metadata file, the
// component is its parent directory; otherwise the installedfile path
// itself (minus a trailing "/*" glob, if present) is the component.
func deriveComponentPath(installedFile string) (dirName, resolvedPath string) {
	p := strings.TrimSuffix(installedFile, "/*")
	p = strings.TrimSuffix(p, "/")
	if p == "" {
		return "", ""
	}
	base := filepath.Base(p)
	if base == metadataJSONName || base == metadataDesktopName {
		parent := filepath.Dir(p)
		return filepath.Base(parent), parent
	}
	return base, p
}

// escapeXMLText escapes '&', '<', '>' — the three characters the
// reference desktop's own writer escapes in text nodes. Quotes are left
// untouched to keep round-trips byte-stable with files the desktop
// itself produced.
func escapeXMLText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// contentIDFromText parses a raw <id> text node into a uint64, returning
// false if it is empty or not a valid number.
func contentIDFromText(raw string) (uint64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
