package resolve

import (
	"testing"

	"github.com/uwuclxdy/plasmoid-updater/src/updater/kind"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/registry"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/types"
)

func TestResolveTierPriority(t *testing.T) {
	component := types.InstalledComponent{
		Name:          "My Widget",
		DirectoryName: "my-widget",
		Kind:          kind.PlasmaWidget,
	}

	t.Run("tier 1: id cache hit short-circuits everything else", func(t *testing.T) {
		r := Resolver{
			IDCache: registry.IDCache{"my-widget": 100},
			CatalogEntries: []types.CatalogEntry{
				{ID: 200, Name: "My Widget", TypeID: 705},
			},
			FallbackTable: map[string]uint64{"my-widget": 300},
		}
		id, ok := r.Resolve(component)
		if !ok || id != 100 {
			t.Errorf("Resolve() = (%d, %v), want (100, true)", id, ok)
		}
	})

	t.Run("tier 2: name+kind match when cache misses", func(t *testing.T) {
		r := Resolver{
			CatalogEntries: []types.CatalogEntry{
				{ID: 200, Name: "My Widget", TypeID: 705},
			},
			FallbackTable: map[string]uint64{"my-widget": 300},
		}
		id, ok := r.Resolve(component)
		if !ok || id != 200 {
			t.Errorf("Resolve() = (%d, %v), want (200, true)", id, ok)
		}
	})

	t.Run("tier 2 requires matching type id", func(t *testing.T) {
		r := Resolver{
			CatalogEntries: []types.CatalogEntry{
				{ID: 200, Name: "My Widget", TypeID: 299}, // wallpaper category, not widget
			},
			FallbackTable: map[string]uint64{"my-widget": 300},
		}
		id, ok := r.Resolve(component)
		if !ok || id != 300 {
			t.Errorf("Resolve() = (%d, %v), want fallback (300, true)", id, ok)
		}
	})

	t.Run("tier 3: fallback table when catalog has no name match", func(t *testing.T) {
		r := Resolver{
			FallbackTable: map[string]uint64{"my-widget": 300},
		}
		id, ok := r.Resolve(component)
		if !ok || id != 300 {
			t.Errorf("Resolve() = (%d, %v), want (300, true)", id, ok)
		}
	})

	t.Run("unresolved when every tier misses", func(t *testing.T) {
		r := Resolver{}
		if _, ok := r.Resolve(component); ok {
			t.Error("expected Resolve() to miss with no cache, catalog, or fallback data")
		}
	})
}
