// Package config defines the configuration value the reconciliation
// engine receives. The engine never parses flags, environment variables,
// or config files itself — a collaborator (the cmd/ entrypoint, via
// common/cli) builds a Config and passes it in.
package config

// RestartBehavior controls whether the orchestrator asks to restart the
// desktop shell after a successful update run.
type RestartBehavior int

const (
	// RestartNever never restarts the shell. Default.
	RestartNever RestartBehavior = iota
	// RestartAlways restarts whenever at least one successful update's
	// kind requires it.
	RestartAlways
	// RestartPrompt delegates the decision to a UI collaborator.
	RestartPrompt
)

// Config is the configuration the engine consumes.
type Config struct {
	// System operates on system install paths; requires elevated
	// privileges.
	System bool

	// ExcludedPackages is matched against an installed component's name
	// OR directory name to skip it during update.
	ExcludedPackages []string

	// WidgetsIDTable is the third-tier resolver fallback, mapping
	// directory name to a known content id.
	WidgetsIDTable map[string]uint64

	// Restart selects the post-update restart policy.
	Restart RestartBehavior

	// Yes skips the interactive selector when a UI collaborator is
	// present.
	Yes bool

	// Threads sizes the install worker pool. Zero means "use the
	// number of logical processors".
	Threads int
}

// New returns a Config with the documented defaults.
func New() Config {
	return Config{
		WidgetsIDTable: make(map[string]uint64),
		Restart:        RestartNever,
	}
}

// IsExcluded reports whether a component's name or directory name
// matches the configured exclusion list.
func (c Config) IsExcluded(name, directoryName string) bool {
	for _, ex := range c.ExcludedPackages {
		if ex == name || ex == directoryName {
			return true
		}
	}
	return false
}
