package orchestrator

import (
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"

	"github.com/uwuclxdy/plasmoid-updater/src/common/errors"
	"github.com/uwuclxdy/plasmoid-updater/src/common/logs"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/config"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/types"
)

// restartPlasmashell restarts the desktop shell via systemctl --user
// (spec.md §6). When DBUS_SESSION_BUS_ADDRESS or XDG_RUNTIME_DIR is
// missing from the environment (as in an elevated context), the
// subprocess's environment (never the parent's) is patched with both,
// computed from the invoking user's uid.
func restartPlasmashell() error {
	cmd := exec.Command("systemctl", "--user", "restart", "plasma-plasmashell.service")
	cmd.Env = restartEnv()

	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return errors.ErrRestartFailed.WithMessagef("systemctl failed: %v: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// restartEnv returns the environment to run the restart subprocess
// with, injecting a session bus address only when one isn't already
// present.
func restartEnv() []string {
	env := os.Environ()
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") != "" && os.Getenv("XDG_RUNTIME_DIR") != "" {
		return env
	}

	uid := resolveUID()
	if uid == "" {
		return env
	}
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		env = append(env, "DBUS_SESSION_BUS_ADDRESS=unix:path=/run/user/"+uid+"/bus")
	}
	if os.Getenv("XDG_RUNTIME_DIR") == "" {
		env = append(env, "XDG_RUNTIME_DIR=/run/user/"+uid)
	}
	return env
}

// resolveUID prefers the UID environment variable, falling back to
// shelling out to `id -u`.
func resolveUID() string {
	if uid := os.Getenv("UID"); uid != "" {
		return uid
	}
	out, err := exec.Command("id", "-u").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// shouldRestart applies the restart policy (spec.md §4.10): Never never
// restarts; Always restarts only if at least one succeeded update's
// kind requires it; Prompt delegates to the selector, and only when one
// is present and stdin is a terminal (a non-interactive Prompt run
// never restarts, matching original_source's documented fallback).
func shouldRestart(cfg config.Config, updates []types.AvailableUpdate, succeeded []string, selector Selector, log *logs.Logger) bool {
	if cfg.Restart == config.RestartNever {
		return false
	}
	if !types.AnyRequiresRestart(updates, succeeded) {
		return false
	}

	switch cfg.Restart {
	case config.RestartAlways:
		return true
	case config.RestartPrompt:
		if selector == nil || !term.IsTerminal(int(os.Stdin.Fd())) {
			return false
		}
		ok, err := selector.ConfirmRestart()
		if err != nil {
			log.Warn("restart confirmation failed", "error", err)
			return false
		}
		return ok
	default:
		return false
	}
}
