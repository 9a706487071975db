// Package evaluate compares an installed component against a resolved
// catalog entry, decides whether an update exists, and selects the
// download link to use.
package evaluate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/uwuclxdy/plasmoid-updater/src/updater/types"
)

// HasUpdate implements the exact branching of spec.md §4.8, including
// its documented asymmetry in the final branch (see DESIGN.md Open
// Question #1) — this is deliberate and must not be "fixed".
func HasUpdate(installedVersion, candidateVersion, installedDate, candidateDate string) bool {
	installed, installedOK := parseVersion(installedVersion)
	candidate, candidateOK := parseVersion(candidateVersion)

	switch {
	case installedOK && candidateOK:
		switch compareVersions(candidate, installed) {
		case 1:
			return true
		case 0:
			return dateBeats(candidateDate, installedDate)
		default:
			return false
		}
	case candidateOK && !installedOK:
		return true
	case !installedOK && !candidateOK:
		if installedVersion != candidateVersion && installedVersion != "" && candidateVersion != "" {
			return true
		}
		return dateBeats(candidateDate, installedDate)
	default: // installedOK && !candidateOK
		return dateBeats(candidateDate, installedDate)
	}
}

// dateBeats compares the first ten characters of two ISO dates
// lexicographically, requiring both to be non-empty.
func dateBeats(candidateDate, installedDate string) bool {
	if candidateDate == "" || installedDate == "" {
		return false
	}
	return first10(candidateDate) > first10(installedDate)
}

func first10(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// SelectDownload picks the link matching the entry's version, falling
// back to the first link when there's exactly one or none match.
func SelectDownload(entry types.CatalogEntry) (types.DownloadLink, bool) {
	if len(entry.DownloadLinks) == 0 {
		return types.DownloadLink{}, false
	}
	if len(entry.DownloadLinks) == 1 {
		return entry.DownloadLinks[0], true
	}
	for _, l := range entry.DownloadLinks {
		if l.Version == entry.Version {
			return l, true
		}
	}
	return entry.DownloadLinks[0], true
}

// Build constructs an AvailableUpdate for a component known to have an
// update, or a check-failure error if the entry has no usable download.
func Build(installed types.InstalledComponent, contentID uint64, entry types.CatalogEntry) (types.AvailableUpdate, error) {
	link, ok := SelectDownload(entry)
	if !ok || strings.TrimSpace(link.URL) == "" {
		return types.AvailableUpdate{}, fmt.Errorf("component %q resolved but has no usable download link", installed.DirectoryName)
	}

	return types.AvailableUpdate{
		Installed:    installed,
		ContentID:    contentID,
		LatestVer:    entry.Version,
		DownloadURL:  link.URL,
		StoreURL:     "https://store.kde.org/p/" + strconv.FormatUint(contentID, 10),
		ReleaseDate:  entry.ChangedDate,
		Checksum:     link.Checksum,
		DownloadSize: link.SizeKB * 1024,
	}, nil
}
