// Package plan computes the minimal set of catalog requests needed to
// evaluate a set of installed components, per spec.md's traffic-shaping
// rule: every distinct kind gets an unconditional catalog page fetch,
// even when all ids are already known locally, because a single page
// fetch of up to 100 entries subsumes many targeted per-id fetches. Only
// locally known ids absent from those pages fall back to a targeted
// fetch.
package plan

import (
	"context"

	"github.com/uwuclxdy/plasmoid-updater/src/updater/catalog"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/kind"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/registry"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/types"
)

// Result is the catalog data assembled for a run: every fetched entry,
// as a flat list for the resolver and evaluator to consume.
type Result struct {
	Entries []types.CatalogEntry
}

// Plan resolves locally known ids, fetches catalog pages for every
// distinct kind present among components, then issues targeted fetches
// for any locally known id absent from those pages.
func Plan(ctx context.Context, client *catalog.Client, components []types.InstalledComponent, idCache registry.IDCache, fallback map[string]uint64) (Result, error) {
	kindSet := make(map[kind.Kind]bool)
	for _, c := range components {
		kindSet[c.Kind] = true
	}
	kinds := make([]kind.Kind, 0, len(kindSet))
	for k := range kindSet {
		kinds = append(kinds, k)
	}

	entries, err := client.FetchCatalog(ctx, kinds)
	if err != nil {
		return Result{}, err
	}

	knownOnPage := make(map[uint64]bool, len(entries))
	for _, e := range entries {
		knownOnPage[e.ID] = true
	}

	var missingIDs []uint64
	seen := make(map[uint64]bool)
	for _, c := range components {
		var id uint64
		var ok bool
		if v, found := idCache.Lookup(c.DirectoryName); found {
			id, ok = v, true
		} else if v, found := fallback[c.DirectoryName]; found {
			id, ok = v, true
		}
		if !ok || knownOnPage[id] || seen[id] {
			continue
		}
		seen[id] = true
		missingIDs = append(missingIDs, id)
	}

	if len(missingIDs) > 0 {
		targeted, err := client.FetchByIDs(ctx, missingIDs)
		if err != nil {
			return Result{}, err
		}
		entries = append(entries, targeted...)
	}

	return Result{Entries: entries}, nil
}
