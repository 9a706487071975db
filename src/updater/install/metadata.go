package install

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/uwuclxdy/plasmoid-updater/src/common/errors"
)

// patchMetadata rewrites a KPackage component's metadata.json in place —
// setting KPackageStructure to the kind's packaging type and
// KPlugin.Version to the new version — and, if a metadata.desktop
// sibling exists, rewrites its X-KDE-PluginInfo-Version= line too. Only
// called for kinds with a packaging type (spec.md §4.9 step 4).
func patchMetadata(componentDir, packagingType, newVersion string) error {
	if err := patchMetadataJSON(filepath.Join(componentDir, "metadata.json"), packagingType, newVersion); err != nil {
		return err
	}

	desktopPath := filepath.Join(componentDir, "metadata.desktop")
	if _, err := os.Stat(desktopPath); err == nil {
		return patchMetadataDesktop(desktopPath, newVersion)
	}
	return nil
}

// patchMetadataJSON sets KPackageStructure unconditionally and
// KPlugin.Version only when a KPlugin section already exists — if it's
// absent, the patch touches nothing but KPackageStructure (see spec.md
// §8's "KPlugin absent" boundary case).
func patchMetadataJSON(path, packagingType, newVersion string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.ErrMetadataNotFound.WithCause(err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.ErrMetadataParse.WithCause(err)
	}

	doc["KPackageStructure"] = marshalJSONString(packagingType)

	if kpluginRaw, ok := doc["KPlugin"]; ok {
		var kplugin map[string]json.RawMessage
		if err := json.Unmarshal(kpluginRaw, &kplugin); err == nil {
			kplugin["Version"] = marshalJSONString(newVersion)
			patched, err := json.Marshal(kplugin)
			if err != nil {
				return errors.ErrMetadataParse.WithCause(err)
			}
			doc["KPlugin"] = patched
		}
	}

	out, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return errors.ErrMetadataParse.WithCause(err)
	}

	return shim{}.writeFile(path, out)
}

func marshalJSONString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

// patchMetadataDesktop rewrites the X-KDE-PluginInfo-Version= line of an
// INI-style metadata.desktop file, leaving every other line untouched.
// A missing line is not an error: not every metadata.desktop carries a
// plugin-info version key.
func patchMetadataDesktop(path, newVersion string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.ErrMetadataNotFound.WithCause(err)
	}

	lines := strings.Split(string(raw), "\n")
	found := false
	for i, line := range lines {
		if strings.HasPrefix(line, "X-KDE-PluginInfo-Version=") {
			lines[i] = "X-KDE-PluginInfo-Version=" + newVersion
			found = true
		}
	}
	if !found {
		return nil
	}

	return shim{}.writeFile(path, []byte(strings.Join(lines, "\n")))
}
