package orchestrator

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/uwuclxdy/plasmoid-updater/src/common/logs"
	updaterconfig "github.com/uwuclxdy/plasmoid-updater/src/updater/config"
)

func setupUserEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	t.Setenv("KDE_SESSION_VERSION", "6")
	return home
}

func writeInstalledWidget(t *testing.T, home, dirName, version string) {
	t.Helper()
	dir := filepath.Join(home, ".local", "share", "plasma", "plasmoids", dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := fmt.Sprintf(`{"KPlugin":{"Name":%q,"Version":%q}}`, dirName, version)
	if err := os.WriteFile(filepath.Join(dir, "metadata.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCheckFindsAvailableUpdate(t *testing.T) {
	home := setupUserEnv(t)
	writeInstalledWidget(t, home, "my-widget", "1.0.0")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<ocs><meta><statuscode>100</statuscode><totalitems>1</totalitems></meta><data>
			<content><id>1</id><name>my-widget</name><version>2.0.0</version><typeid>705</typeid>
			<changed>2024-06-01</changed>
			<downloadlink1>https://example.test/widget.tar.xz</downloadlink1></content>
		</data></ocs>`)
	}))
	defer server.Close()

	engine := New("test", server.URL, logs.NewDefault())
	cfg := updaterconfig.New()

	result, err := engine.Check(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if len(result.Updates) != 1 {
		t.Fatalf("expected 1 update, got %d: %+v", len(result.Updates), result)
	}
	if result.Updates[0].LatestVer != "2.0.0" {
		t.Errorf("expected latest version 2.0.0, got %s", result.Updates[0].LatestVer)
	}
}

func TestCheckReportsUnresolvedWhenNoMatch(t *testing.T) {
	home := setupUserEnv(t)
	writeInstalledWidget(t, home, "mystery-widget", "1.0.0")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<ocs><meta><statuscode>100</statuscode><totalitems>0</totalitems></meta><data></data></ocs>`)
	}))
	defer server.Close()

	engine := New("test", server.URL, logs.NewDefault())
	result, err := engine.Check(context.Background(), updaterconfig.New())
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if len(result.Unresolved) != 1 {
		t.Fatalf("expected 1 unresolved component, got %d: %+v", len(result.Unresolved), result)
	}
}

func TestUpdateExcludesConfiguredComponents(t *testing.T) {
	home := setupUserEnv(t)
	writeInstalledWidget(t, home, "excluded-widget", "1.0.0")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<ocs><meta><statuscode>100</statuscode><totalitems>1</totalitems></meta><data>
			<content><id>1</id><name>excluded-widget</name><version>2.0.0</version><typeid>705</typeid>
			<changed>2024-06-01</changed>
			<downloadlink1>https://example.test/widget.tar.xz</downloadlink1></content>
		</data></ocs>`)
	}))
	defer server.Close()

	engine := New("test", server.URL, logs.NewDefault())
	cfg := updaterconfig.New()
	cfg.ExcludedPackages = []string{"excluded-widget"}

	summary, err := engine.Update(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if len(summary.Skipped) != 1 || summary.Skipped[0] != "excluded-widget" {
		t.Errorf("expected excluded-widget to be skipped, got %+v", summary)
	}
	if len(summary.Succeeded) != 0 {
		t.Errorf("expected no installs once the only candidate is excluded, got %+v", summary.Succeeded)
	}
}

func TestHasInstalledComponents(t *testing.T) {
	home := setupUserEnv(t)

	engine := New("test", "", logs.NewDefault())
	has, err := engine.HasInstalledComponents(false)
	if err != nil {
		t.Fatalf("HasInstalledComponents() error: %v", err)
	}
	if has {
		t.Error("expected no installed components in a fresh home")
	}

	writeInstalledWidget(t, home, "any-widget", "1.0.0")
	has, err = engine.HasInstalledComponents(false)
	if err != nil {
		t.Fatalf("HasInstalledComponents() error: %v", err)
	}
	if !has {
		t.Error("expected an installed component to be found")
	}
}
