package install

import (
	"io"
	"os"
	"os/exec"
	"strings"
)

// isSystemPath reports whether path falls under one of the fixed system
// directories that require elevated privileges to write.
func isSystemPath(path string) bool {
	for _, prefix := range []string{"/usr", "/lib", "/etc"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func isRoot() bool {
	return os.Geteuid() == 0
}

func needsSudo(path string) bool {
	return isSystemPath(path) && !isRoot()
}

// shim encapsulates filesystem mutations that must route through sudo
// when targeting a system path from an unprivileged process.
type shim struct{}

func (shim) copyFile(src, dst string) error {
	if needsSudo(dst) {
		return runSudo("cp", src, dst)
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(parentDir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

func (shim) copyDir(src, dst string) error {
	if needsSudo(dst) {
		return runSudo("cp", "-r", src, dst)
	}
	return copyDirNative(src, dst)
}

func (shim) createDirAll(path string) error {
	if needsSudo(path) {
		return runSudo("mkdir", "-p", path)
	}
	return os.MkdirAll(path, 0o755)
}

func (shim) removeFile(path string) error {
	if needsSudo(path) {
		return runSudo("rm", "-f", path)
	}
	return os.Remove(path)
}

func (shim) removeAll(path string) error {
	if needsSudo(path) {
		return runSudo("rm", "-rf", path)
	}
	return os.RemoveAll(path)
}

func (shim) writeFile(path string, data []byte) error {
	if needsSudo(path) {
		tmp, err := os.CreateTemp("", "plasmoid-updater-write-*")
		if err != nil {
			return err
		}
		defer os.Remove(tmp.Name())
		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			return err
		}
		tmp.Close()
		return runSudo("cp", tmp.Name(), path)
	}
	if err := os.MkdirAll(parentDir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func runSudo(args ...string) error {
	cmd := exec.Command("sudo", args...)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func parentDir(path string) string {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "."
	}
	return path[:i]
}
