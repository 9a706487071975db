package evaluate

import (
	"testing"

	"github.com/uwuclxdy/plasmoid-updater/src/updater/types"
)

func TestHasUpdate(t *testing.T) {
	tests := []struct {
		name                           string
		installedVer, candidateVer     string
		installedDate, candidateDate   string
		want                           bool
	}{
		{"candidate numerically newer", "1.0.0", "1.1.0", "", "", true},
		{"candidate numerically older", "2.0.0", "1.9.0", "", "", false},
		{"equal versions, newer date wins", "1.0.0", "1.0.0", "2024-01-01", "2024-06-01", true},
		{"equal versions, equal date", "1.0.0", "1.0.0", "2024-01-01", "2024-01-01", false},
		{"equal versions, same calendar day but full timestamp candidate", "1.0.0", "1.0.0", "2024-06-01", "2024-06-01T12:00:00", false},
		{"unparseable installed, parseable candidate", "git", "1.0.0", "", "", true},
		{"both unparseable, different strings", "git-abc", "git-def", "", "", true},
		{"both unparseable, same string, date decides", "git", "git", "2024-01-01", "2024-06-01", true},
		{"both unparseable, same string, no dates", "git", "git", "", "", false},
		{"parseable installed, unparseable candidate falls back to date", "1.0.0", "git", "2024-01-01", "2024-06-01", true},
		{"parseable installed, unparseable candidate, no newer date", "1.0.0", "git", "2024-06-01", "2024-01-01", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasUpdate(tt.installedVer, tt.candidateVer, tt.installedDate, tt.candidateDate)
			if got != tt.want {
				t.Errorf("HasUpdate(%q, %q, %q, %q) = %v, want %v",
					tt.installedVer, tt.candidateVer, tt.installedDate, tt.candidateDate, got, tt.want)
			}
		})
	}
}

func TestSelectDownload(t *testing.T) {
	t.Run("no links", func(t *testing.T) {
		_, ok := SelectDownload(types.CatalogEntry{})
		if ok {
			t.Error("expected no match for empty download links")
		}
	})

	t.Run("single link always wins regardless of version", func(t *testing.T) {
		entry := types.CatalogEntry{
			Version:       "2.0.0",
			DownloadLinks: []types.DownloadLink{{URL: "https://example.test/a", Version: "1.0.0"}},
		}
		link, ok := SelectDownload(entry)
		if !ok || link.URL != "https://example.test/a" {
			t.Errorf("SelectDownload() = (%+v, %v), want the sole link", link, ok)
		}
	})

	t.Run("matching version preferred among many", func(t *testing.T) {
		entry := types.CatalogEntry{
			Version: "2.0.0",
			DownloadLinks: []types.DownloadLink{
				{URL: "https://example.test/old", Version: "1.0.0"},
				{URL: "https://example.test/new", Version: "2.0.0"},
			},
		}
		link, ok := SelectDownload(entry)
		if !ok || link.URL != "https://example.test/new" {
			t.Errorf("SelectDownload() = (%+v, %v), want the matching-version link", link, ok)
		}
	})

	t.Run("no exact version match falls back to first", func(t *testing.T) {
		entry := types.CatalogEntry{
			Version: "3.0.0",
			DownloadLinks: []types.DownloadLink{
				{URL: "https://example.test/first", Version: "1.0.0"},
				{URL: "https://example.test/second", Version: "2.0.0"},
			},
		}
		link, ok := SelectDownload(entry)
		if !ok || link.URL != "https://example.test/first" {
			t.Errorf("SelectDownload() = (%+v, %v), want the first link", link, ok)
		}
	})
}

func TestBuild(t *testing.T) {
	installed := types.InstalledComponent{Name: "Test Widget", DirectoryName: "test-widget"}

	t.Run("success", func(t *testing.T) {
		entry := types.CatalogEntry{
			Version:       "1.2.3",
			ChangedDate:   "2024-06-01",
			DownloadLinks: []types.DownloadLink{{URL: "https://example.test/a.tar.xz", Checksum: "abc", SizeKB: 10}},
		}
		update, err := Build(installed, 42, entry)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if update.ContentID != 42 || update.LatestVer != "1.2.3" || update.DownloadSize != 10*1024 {
			t.Errorf("unexpected update: %+v", update)
		}
	})

	t.Run("no usable download link", func(t *testing.T) {
		entry := types.CatalogEntry{Version: "1.2.3"}
		if _, err := Build(installed, 42, entry); err == nil {
			t.Error("expected error when entry has no download links")
		}
	})
}
