// Package resolve maps an installed component's directory name to a
// catalog content id, short-circuiting across three tiers.
package resolve

import (
	"github.com/uwuclxdy/plasmoid-updater/src/updater/registry"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/types"
)

// Resolver holds the inputs shared across a run's resolution calls.
type Resolver struct {
	IDCache        registry.IDCache
	CatalogEntries []types.CatalogEntry
	FallbackTable  map[string]uint64
}

// Resolve attempts the three tiers in order and returns the first hit.
// ok is false if every tier misses, meaning the component is unresolved.
func (r Resolver) Resolve(c types.InstalledComponent) (uint64, bool) {
	if id, ok := r.IDCache.Lookup(c.DirectoryName); ok {
		return id, true
	}

	for _, entry := range r.CatalogEntries {
		if entry.Name == c.Name && c.Kind.MatchesTypeID(entry.TypeID) {
			return entry.ID, true
		}
	}

	if id, ok := r.FallbackTable[c.DirectoryName]; ok {
		return id, true
	}

	return 0, false
}
