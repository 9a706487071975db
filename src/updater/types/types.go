// Package types holds the data model shared across the reconciliation
// engine: the records produced by discovery, the catalog, the resolver,
// and the evaluator, plus the accumulator result types the orchestrator
// returns to its caller.
package types

import "github.com/uwuclxdy/plasmoid-updater/src/updater/kind"

// InstalledComponent describes a component found on the local
// filesystem or in the side-channel registry. Immutable once created.
type InstalledComponent struct {
	Name          string
	DirectoryName string
	Version       string
	Kind          kind.Kind
	Path          string
	IsSystem      bool
	ReleaseDate   string
}

// CatalogEntry is a single content entry returned by the remote store.
type CatalogEntry struct {
	ID            uint64
	Name          string
	Version       string
	TypeID        uint16
	DownloadLinks []DownloadLink
	ChangedDate   string
}

// DownloadLink is one download slot on a CatalogEntry.
type DownloadLink struct {
	URL      string
	Version  string
	Checksum string // empty if not provided
	SizeKB   uint64 // 0 if not provided
}

// AvailableUpdate is the joined record handed to the install pipeline.
type AvailableUpdate struct {
	Installed    InstalledComponent
	ContentID    uint64
	LatestVer    string
	DownloadURL  string
	StoreURL     string
	ReleaseDate  string
	Checksum     string
	DownloadSize uint64 // bytes, 0 if unknown
}

// RegistryEntry is a parsed <stuff> element from a knewstuff3 registry
// file, projected from the raw XML representation.
type RegistryEntry struct {
	DirectoryName    string
	ResolvedPath     string
	Name             string
	Version          string
	ID               string // raw numeric id as text; may be empty
	InstalledFiles   []string
	UninstalledFiles []string
	ReleaseDate      string
	Payload          string
	Status           string
}

// InstalledPath returns the on-disk path this entry resolves to: the
// parent directory of a metadata file, or the installed file/directory
// itself.
func (e RegistryEntry) InstalledPath() string { return e.ResolvedPath }

// ComponentDiagnostic records why a component could not be resolved or
// could not be used once resolved.
type ComponentDiagnostic struct {
	Name             string
	Reason           string
	InstalledVersion string
	AvailableVersion string
	ContentID        uint64
}

// UpdateCheckResult is the outcome of a check run: three disjoint lists.
type UpdateCheckResult struct {
	Updates       []AvailableUpdate
	Unresolved    []ComponentDiagnostic
	CheckFailures []ComponentDiagnostic
}

// AddUpdate appends an available update.
func (r *UpdateCheckResult) AddUpdate(u AvailableUpdate) {
	r.Updates = append(r.Updates, u)
}

// AddUnresolved appends an unresolved-component diagnostic.
func (r *UpdateCheckResult) AddUnresolved(d ComponentDiagnostic) {
	r.Unresolved = append(r.Unresolved, d)
}

// AddCheckFailure appends a resolved-but-unusable diagnostic.
func (r *UpdateCheckResult) AddCheckFailure(d ComponentDiagnostic) {
	r.CheckFailures = append(r.CheckFailures, d)
}

// UpdateFailure records why a single update's install failed.
type UpdateFailure struct {
	Name   string
	Reason string
}

// UpdateSummary is the outcome of an update run.
type UpdateSummary struct {
	Succeeded []string
	Failed    []UpdateFailure
	Skipped   []string
}

// AddSuccess records a successfully installed component.
func (s *UpdateSummary) AddSuccess(name string) {
	s.Succeeded = append(s.Succeeded, name)
}

// AddFailure records a failed install with its reason.
func (s *UpdateSummary) AddFailure(name, reason string) {
	s.Failed = append(s.Failed, UpdateFailure{Name: name, Reason: reason})
}

// AddSkipped records a component excluded or declined before install.
func (s *UpdateSummary) AddSkipped(name string) {
	s.Skipped = append(s.Skipped, name)
}

// AnyRequiresRestart reports whether any successfully installed update's
// kind triggers a plasmashell restart under the Always policy.
func AnyRequiresRestart(updates []AvailableUpdate, succeededNames []string) bool {
	succeeded := make(map[string]bool, len(succeededNames))
	for _, n := range succeededNames {
		succeeded[n] = true
	}
	for _, u := range updates {
		if succeeded[u.Installed.Name] && u.Installed.Kind.RequiresShellRestart() {
			return true
		}
	}
	return false
}
