package registry

import (
	"os"
	"path/filepath"

	"github.com/uwuclxdy/plasmoid-updater/src/updater/kind"
)

// IDCache maps directory_name to content id, built once per run by
// scanning every kind's side-channel registry file. Eliminates per-
// component file I/O during resolution.
type IDCache map[string]uint64

// BuildIDCache scans every kind's registry file in sideChannelDir and
// inserts every entry that yields both a directory name and a numeric
// id.
func BuildIDCache(sideChannelDir string) IDCache {
	cache := make(IDCache)
	for _, k := range kind.All() {
		file, ok := k.SideChannelFile()
		if !ok {
			continue
		}
		doc, err := Read(filepath.Join(sideChannelDir, file))
		if err != nil {
			if !os.IsNotExist(err) {
				// A malformed registry file does not abort the run; the
				// id cache simply lacks this kind's entries.
				continue
			}
			continue
		}
		for _, e := range doc.Entries {
			if e.DirectoryName == "" {
				continue
			}
			if id, ok := contentIDFromText(e.ID); ok {
				cache[e.DirectoryName] = id
			}
		}
	}
	return cache
}

// Lookup returns the cached content id for a directory name.
func (c IDCache) Lookup(directoryName string) (uint64, bool) {
	id, ok := c[directoryName]
	return id, ok
}
