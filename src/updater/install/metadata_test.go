package install

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPatchMetadataJSONUpdatesVersionAndStructure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.json")
	if err := os.WriteFile(path, []byte(`{"KPlugin":{"Name":"Widget","Version":"1.0.0"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := patchMetadataJSON(path, "Plasma/Applet", "2.0.0"); err != nil {
		t.Fatalf("patchMetadataJSON() error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}

	var structure string
	if err := json.Unmarshal(doc["KPackageStructure"], &structure); err != nil || structure != "Plasma/Applet" {
		t.Errorf("KPackageStructure = %q, want Plasma/Applet", structure)
	}

	var kplugin map[string]json.RawMessage
	if err := json.Unmarshal(doc["KPlugin"], &kplugin); err != nil {
		t.Fatal(err)
	}
	var version string
	if err := json.Unmarshal(kplugin["Version"], &version); err != nil || version != "2.0.0" {
		t.Errorf("KPlugin.Version = %q, want 2.0.0", version)
	}
	var name string
	if err := json.Unmarshal(kplugin["Name"], &name); err != nil || name != "Widget" {
		t.Errorf("KPlugin.Name = %q, want it preserved as Widget", name)
	}
}

func TestPatchMetadataJSONWithoutKPluginSectionOnlyTouchesStructure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.json")
	if err := os.WriteFile(path, []byte(`{"Id":"org.kde.widget"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := patchMetadataJSON(path, "Plasma/Applet", "2.0.0"); err != nil {
		t.Fatalf("patchMetadataJSON() error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	if _, ok := doc["KPlugin"]; ok {
		t.Error("expected no KPlugin section to be created when absent")
	}
	var structure string
	if err := json.Unmarshal(doc["KPackageStructure"], &structure); err != nil || structure != "Plasma/Applet" {
		t.Errorf("KPackageStructure = %q, want Plasma/Applet", structure)
	}
}

func TestPatchMetadataDesktopRewritesVersionLineOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.desktop")
	content := "[Desktop Entry]\nName=My Decoration\nX-KDE-PluginInfo-Version=1.0.0\nIcon=my-icon\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := patchMetadataDesktop(path, "2.0.0"); err != nil {
		t.Fatalf("patchMetadataDesktop() error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "X-KDE-PluginInfo-Version=2.0.0") {
		t.Errorf("expected rewritten version line, got:\n%s", raw)
	}
	if !strings.Contains(string(raw), "Name=My Decoration") {
		t.Errorf("expected unrelated lines preserved, got:\n%s", raw)
	}
}

func TestPatchMetadataDesktopNoVersionLineIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.desktop")
	content := "[Desktop Entry]\nName=My Decoration\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := patchMetadataDesktop(path, "2.0.0"); err != nil {
		t.Fatalf("patchMetadataDesktop() error: %v", err)
	}
}

func TestPatchMetadataSkipsDesktopWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "metadata.json"), []byte(`{"KPlugin":{"Version":"1.0.0"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := patchMetadata(dir, "Plasma/Applet", "2.0.0"); err != nil {
		t.Fatalf("patchMetadata() error: %v", err)
	}
}
