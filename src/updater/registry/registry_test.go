package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/uwuclxdy/plasmoid-updater/src/updater/kind"
)

const sampleRegistry = `<!DOCTYPE hotnewstuffregistry>
<hotnewstuffregistry>
 <stuff category="705">
  <name>Existing Widget</name>
  <version>1.0.0</version>
  <id>111</id>
  <installedfile>/home/user/.local/share/plasma/plasmoids/existing-widget/metadata.json</installedfile>
  <releasedate>2024-01-01</releasedate>
  <payload>https://example.test/existing.tar.xz</payload>
  <status>installed</status>
 </stuff>
 <stuff category="299">
  <name>Tom &amp; Jerry Wallpaper</name>
  <version>2.0.0</version>
  <id>222</id>
  <installedfile>/home/user/.local/share/wallpapers/tom-jerry</installedfile>
  <installedfile>/home/user/.local/share/wallpapers/tom-jerry/*</installedfile>
  <releasedate>2023-05-01</releasedate>
  <payload>https://example.test/wallpaper.jpg</payload>
  <status>installed</status>
 </stuff>
</hotnewstuffregistry>
`

func TestReadParsesEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plasmoids.knsregistry")
	if err := os.WriteFile(path, []byte(sampleRegistry), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if !doc.Exists {
		t.Fatal("expected Exists = true")
	}
	if len(doc.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(doc.Entries))
	}

	widget := doc.Entries[0]
	if widget.Name != "Existing Widget" || widget.Version != "1.0.0" || widget.ID != "111" {
		t.Errorf("unexpected widget entry: %+v", widget)
	}
	if widget.DirectoryName != "existing-widget" {
		t.Errorf("expected directory name derived from metadata.json parent, got %q", widget.DirectoryName)
	}

	wallpaper := doc.Entries[1]
	if wallpaper.Name != "Tom & Jerry Wallpaper" {
		t.Errorf("expected unescaped ampersand, got %q", wallpaper.Name)
	}
	if len(wallpaper.InstalledFiles) != 2 {
		t.Errorf("expected both installedfile entries preserved without dedup, got %d", len(wallpaper.InstalledFiles))
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.knsregistry"))
	if !os.IsNotExist(err) {
		t.Errorf("expected os.IsNotExist, got %v", err)
	}
}

func TestWriteCreatesNewDocumentWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plasmoids.knsregistry")

	params := WriteParams{
		DirectoryName: "new-widget",
		Name:          "New Widget",
		Version:       "1.0.0",
		ContentID:     999,
		PayloadURL:    "https://example.test/new.tar.xz",
		Path:          "/home/user/.local/share/plasma/plasmoids/new-widget",
		IsDirectory:   true,
		ReleaseDate:   "2024-06-01",
	}
	if err := Write(path, kind.PlasmaWidget, params); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	doc, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(doc.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(doc.Entries))
	}
	if doc.Entries[0].Name != "New Widget" || doc.Entries[0].ID != "999" {
		t.Errorf("unexpected entry: %+v", doc.Entries[0])
	}
}

func TestWriteRewritesExistingEntryInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plasmoids.knsregistry")
	if err := os.WriteFile(path, []byte(sampleRegistry), 0o644); err != nil {
		t.Fatal(err)
	}

	params := WriteParams{
		DirectoryName: "existing-widget",
		Name:          "Existing Widget",
		Version:       "2.0.0",
		ContentID:     111,
		PayloadURL:    "https://example.test/updated.tar.xz",
		Path:          "/home/user/.local/share/plasma/plasmoids/existing-widget",
		IsDirectory:   true,
		ReleaseDate:   "2024-07-01",
	}
	if err := Write(path, kind.PlasmaWidget, params); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	doc, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(doc.Entries) != 2 {
		t.Fatalf("expected entry count unchanged at 2, got %d", len(doc.Entries))
	}
	if doc.Entries[0].Version != "2.0.0" || doc.Entries[0].ReleaseDate != "2024-07-01" {
		t.Errorf("expected in-place version/date rewrite, got %+v", doc.Entries[0])
	}
	if doc.Entries[1].Version != "2.0.0" {
		t.Error("rewrite must not touch the second, unrelated entry")
	}
}

func TestWriteEscapesAmpersand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plasmoids.knsregistry")
	params := WriteParams{
		DirectoryName: "rock-roll",
		Name:          "Rock & Roll Theme",
		Version:       "1.0.0",
		ContentID:     1,
		Path:          "/home/user/.local/share/plasma/plasmoids/rock-roll",
		IsDirectory:   true,
		ReleaseDate:   "2024-01-01",
	}
	if err := Write(path, kind.PlasmaWidget, params); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "Rock &amp; Roll Theme") {
		t.Errorf("expected escaped ampersand in raw document, got:\n%s", raw)
	}
}
