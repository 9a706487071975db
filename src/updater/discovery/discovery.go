// Package discovery enumerates installed components by scanning install
// directories and parsing per-package metadata files, falling back to
// the side-channel registry for kinds that leave nothing on disk.
package discovery

import (
	"os"
	"path/filepath"

	"github.com/uwuclxdy/plasmoid-updater/src/common/logs"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/kind"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/paths"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/registry"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/types"
)

// FindInstalled enumerates installed components for either the user or
// the system install scope.
func FindInstalled(system bool, log *logs.Logger) ([]types.InstalledComponent, error) {
	var out []types.InstalledComponent
	scannedDirs := make(map[string]bool)

	kinds := kind.All()
	if !system {
		kinds = kind.AllUser()
	}

	for _, k := range kinds {
		if k.RegistryOnly() {
			entries, err := registryComponents(k, log)
			if err != nil {
				log.Warn("registry scan failed", "kind", k.String(), "error", err)
				continue
			}
			for i := range entries {
				entries[i].IsSystem = system
			}
			out = append(out, entries...)
			continue
		}

		dir := installDir(k, system)
		if dir == "" || scannedDirs[dir] {
			continue
		}
		scannedDirs[dir] = true

		comps, err := scanDirectory(dir, k, system, log)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Warn("directory scan failed", "dir", dir, "error", err)
			}
			continue
		}
		out = append(out, comps...)
	}

	return out, nil
}

func installDir(k kind.Kind, system bool) string {
	if system {
		return k.SystemInstallPath()
	}
	suffix, ok := k.UserInstallSuffix()
	if !ok {
		return ""
	}
	return filepath.Join(paths.DataHome(), suffix)
}

// scanDirectory enumerates subdirectories of dir, treating each as a
// candidate component.
func scanDirectory(dir string, k kind.Kind, system bool, log *logs.Logger) ([]types.InstalledComponent, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	releaseDates := registryReleaseDates(k, log)

	var out []types.InstalledComponent
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dirName := e.Name()
		compPath := filepath.Join(dir, dirName)

		name, version, ok := readComponentMetadata(compPath)
		if !ok {
			continue
		}
		if version == "" {
			version = "0.0.0"
		}
		if name == "" {
			name = dirName
		}

		out = append(out, types.InstalledComponent{
			Name:          name,
			DirectoryName: dirName,
			Version:       version,
			Kind:          k,
			Path:          compPath,
			IsSystem:      system,
			ReleaseDate:   releaseDates[dirName],
		})
	}
	return out, nil
}

// readComponentMetadata tries metadata.json then metadata.desktop.
func readComponentMetadata(compPath string) (name, version string, ok bool) {
	jsonPath := filepath.Join(compPath, "metadata.json")
	if name, version, err := readMetadataJSON(jsonPath); err == nil {
		return name, version, true
	}

	desktopPath := filepath.Join(compPath, "metadata.desktop")
	if name, version, err := readMetadataDesktop(desktopPath); err == nil {
		return name, version, true
	}

	return "", "", false
}

// registryReleaseDates returns directory_name -> release date for a
// kind's side-channel registry, used to backfill dates discovery itself
// cannot see (the filesystem carries no reliable timestamp semantics).
func registryReleaseDates(k kind.Kind, log *logs.Logger) map[string]string {
	out := make(map[string]string)
	file, ok := k.SideChannelFile()
	if !ok {
		return out
	}
	doc, err := registry.Read(filepath.Join(paths.SideChannelDir(), file))
	if err != nil {
		return out
	}
	for _, e := range doc.Entries {
		if e.DirectoryName != "" {
			out[e.DirectoryName] = e.ReleaseDate
		}
	}
	return out
}

// registryComponents discovers components for a registry-only kind by
// parsing its side-channel file and translating entries.
func registryComponents(k kind.Kind, log *logs.Logger) ([]types.InstalledComponent, error) {
	file, ok := k.SideChannelFile()
	if !ok {
		return nil, nil
	}
	doc, err := registry.Read(filepath.Join(paths.SideChannelDir(), file))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []types.InstalledComponent
	for _, e := range doc.Entries {
		if e.DirectoryName == "" {
			continue
		}
		version := e.Version
		if version == "" {
			version = "0.0.0"
		}
		name := e.Name
		if name == "" {
			name = e.DirectoryName
		}
		out = append(out, types.InstalledComponent{
			Name:          name,
			DirectoryName: e.DirectoryName,
			Version:       version,
			Kind:          k,
			Path:          e.InstalledPath(),
			ReleaseDate:   e.ReleaseDate,
		})
	}
	return out, nil
}
