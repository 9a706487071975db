package install

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/uwuclxdy/plasmoid-updater/src/common/errors"
)

// installViaPackageTool hands a prepared package directory to
// kpackagetool6 for upgrade-in-place (-u). --global is added when the
// component's install path is a system path. Stderr is surfaced
// verbatim in the returned error on a non-zero exit, per spec.md §6.
func installViaPackageTool(packageDir, packagingType string, global bool) error {
	args := []string{"-t", packagingType}
	if global {
		args = append(args, "--global")
	}
	args = append(args, "-u", packageDir)

	cmd := exec.Command("kpackagetool6", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return errors.ErrInstallFailed.WithMessagef("kpackagetool6 failed: %v: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
