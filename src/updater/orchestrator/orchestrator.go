// Package orchestrator wires discovery, the fetch planner, the
// identifier resolver, the update evaluator, and the install pipeline
// into the two top-level operations a caller drives: Check and Update
// (spec.md §4.10). It owns the only worker pools in the system: one for
// per-component evaluation during Check, one for per-update installs
// during Update.
package orchestrator

import (
	"context"
	"runtime"

	"github.com/uwuclxdy/plasmoid-updater/src/common/errors"
	"github.com/uwuclxdy/plasmoid-updater/src/common/logs"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/catalog"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/config"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/discovery"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/evaluate"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/install"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/paths"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/plan"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/registry"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/resolve"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/types"
)

// Selector is the optional UI collaborator Update consults to narrow
// the update set down interactively and confirm a post-update shell
// restart. A nil Selector selects every candidate update and never
// restarts under RestartPrompt — both per spec.md §1's "interactive
// selection prompts ... out of scope" boundary for the core.
type Selector interface {
	SelectUpdates(candidates []types.AvailableUpdate) ([]types.AvailableUpdate, error)
	ConfirmRestart() (bool, error)
}

// Engine holds the collaborators a run needs: the catalog client and a
// logger. Construct once and reuse across Check/Update calls so the
// catalog client's connection pool and diagnostic request counter are
// shared.
type Engine struct {
	Client *catalog.Client
	Log    *logs.Logger
}

// New builds an Engine. version is embedded in the catalog client's
// pinned User-Agent; baseURL empty uses the default store URL.
func New(version, baseURL string, log *logs.Logger) *Engine {
	return &Engine{
		Client: catalog.New(version, baseURL, log),
		Log:    log,
	}
}

// validateEnvironment aborts before any work starts if the process
// cannot possibly talk to a KDE Plasma install: spec.md §4.10 requires
// "the supported operating system and desktop".
func validateEnvironment() error {
	if runtime.GOOS != "linux" {
		return errors.New(errors.DomainInternal, "unsupported_os", errors.Fatal,
			"plasmoid-updater only supports Linux")
	}
	if !paths.IsDesktop() {
		return errors.New(errors.DomainInternal, "not_kde_session", errors.Fatal,
			"not running in a KDE Plasma session")
	}
	return nil
}

// evaluation is the per-component outcome of a Check run, exactly one
// field non-nil.
type evaluation struct {
	update     *types.AvailableUpdate
	unresolved *types.ComponentDiagnostic
	failure    *types.ComponentDiagnostic
}

// Check discovers installed components, plans and fetches the catalog
// data needed to evaluate them, and runs the evaluator over every
// component in parallel, returning three disjoint lists.
func (e *Engine) Check(ctx context.Context, cfg config.Config) (types.UpdateCheckResult, error) {
	if err := validateEnvironment(); err != nil {
		return types.UpdateCheckResult{}, err
	}

	components, err := discovery.FindInstalled(cfg.System, e.Log)
	if err != nil {
		return types.UpdateCheckResult{}, err
	}

	idCache := registry.BuildIDCache(paths.SideChannelDir())

	planResult, err := plan.Plan(ctx, e.Client, components, idCache, cfg.WidgetsIDTable)
	if err != nil {
		return types.UpdateCheckResult{}, err
	}

	entriesByID := make(map[uint64]types.CatalogEntry, len(planResult.Entries))
	for _, entry := range planResult.Entries {
		entriesByID[entry.ID] = entry
	}

	resolver := resolve.Resolver{
		IDCache:        idCache,
		CatalogEntries: planResult.Entries,
		FallbackTable:  cfg.WidgetsIDTable,
	}

	results := runPool(components, evaluationWorkers(), func(c types.InstalledComponent) evaluation {
		return evaluateComponent(c, resolver, entriesByID)
	})

	var result types.UpdateCheckResult
	for _, r := range results {
		switch {
		case r.update != nil:
			result.AddUpdate(*r.update)
		case r.unresolved != nil:
			result.AddUnresolved(*r.unresolved)
		case r.failure != nil:
			result.AddCheckFailure(*r.failure)
		}
	}
	return result, nil
}

func evaluateComponent(c types.InstalledComponent, resolver resolve.Resolver, entriesByID map[uint64]types.CatalogEntry) evaluation {
	contentID, ok := resolver.Resolve(c)
	if !ok {
		return evaluation{unresolved: &types.ComponentDiagnostic{
			Name:             c.Name,
			Reason:           "no matching catalog entry or fallback id",
			InstalledVersion: c.Version,
		}}
	}

	entry, ok := entriesByID[contentID]
	if !ok {
		return evaluation{unresolved: &types.ComponentDiagnostic{
			Name:             c.Name,
			Reason:           "resolved content id was not returned by the catalog fetch",
			InstalledVersion: c.Version,
			ContentID:        contentID,
		}}
	}

	if !evaluate.HasUpdate(c.Version, entry.Version, c.ReleaseDate, entry.ChangedDate) {
		return evaluation{}
	}

	update, err := evaluate.Build(c, contentID, entry)
	if err != nil {
		return evaluation{failure: &types.ComponentDiagnostic{
			Name:             c.Name,
			Reason:           err.Error(),
			InstalledVersion: c.Version,
			AvailableVersion: entry.Version,
			ContentID:        contentID,
		}}
	}
	return evaluation{update: &update}
}

// Update runs Check, filters excluded components, applies the optional
// interactive selector, installs what remains across a worker pool
// sized by cfg.Threads (0 means runtime.NumCPU()), and finally applies
// the restart policy.
func (e *Engine) Update(ctx context.Context, cfg config.Config, selector Selector) (types.UpdateSummary, error) {
	checkResult, err := e.Check(ctx, cfg)
	if err != nil {
		return types.UpdateSummary{}, err
	}

	var summary types.UpdateSummary
	var candidates []types.AvailableUpdate
	for _, u := range checkResult.Updates {
		if cfg.IsExcluded(u.Installed.Name, u.Installed.DirectoryName) {
			summary.AddSkipped(u.Installed.Name)
			continue
		}
		candidates = append(candidates, u)
	}

	selected := candidates
	if selector != nil && !cfg.Yes {
		selected, err = selector.SelectUpdates(candidates)
		if err != nil {
			return summary, err
		}
		recordDeclined(&summary, candidates, selected)
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	type installOutcome struct {
		name string
		err  error
	}
	results := runPool(selected, threads, func(u types.AvailableUpdate) installOutcome {
		return installOutcome{name: u.Installed.Name, err: install.Install(ctx, u, e.Log)}
	})

	for _, r := range results {
		if r.err != nil {
			summary.AddFailure(r.name, r.err.Error())
		} else {
			summary.AddSuccess(r.name)
		}
	}

	if shouldRestart(cfg, checkResult.Updates, summary.Succeeded, selector, e.Log) {
		if err := restartPlasmashell(); err != nil {
			e.Log.Warn("plasmashell restart failed", "error", err)
		}
	}

	return summary, nil
}

// recordDeclined appends a skipped entry for every candidate the
// selector did not carry through to selected.
func recordDeclined(summary *types.UpdateSummary, candidates, selected []types.AvailableUpdate) {
	keep := make(map[string]bool, len(selected))
	for _, u := range selected {
		keep[u.Installed.DirectoryName] = true
	}
	for _, u := range candidates {
		if !keep[u.Installed.DirectoryName] {
			summary.AddSkipped(u.Installed.Name)
		}
	}
}

// HasInstalledComponents is a thin convenience wrapper with no new
// logic, carried from original_source's public API surface.
func (e *Engine) HasInstalledComponents(system bool) (bool, error) {
	components, err := discovery.FindInstalled(system, e.Log)
	if err != nil {
		return false, err
	}
	return len(components) > 0, nil
}

// ListInstalled is a thin convenience wrapper around discovery.
func (e *Engine) ListInstalled(system bool) ([]types.InstalledComponent, error) {
	return discovery.FindInstalled(system, e.Log)
}

func evaluationWorkers() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}
