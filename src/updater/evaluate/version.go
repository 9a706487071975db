package evaluate

import (
	"strconv"
	"strings"
)

// parsedVersion is a dot-separated sequence of numeric+suffix segments,
// the semantic-version model spec.md §4.8 calls for. Grounded on the
// same split-and-compare comparator bitswalk-ldf's forge package uses
// for release tags, extended with a Parseable check the teacher's
// comparator didn't need.
type parsedVersion struct {
	segments []versionSegment
}

type versionSegment struct {
	numeric int
	suffix  string
}

// parseVersion splits a version string into numeric+suffix segments. A
// segment is unparseable if it has no leading digits at all; the whole
// version is unparseable if it has zero segments or any segment fails.
func parseVersion(raw string) (parsedVersion, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return parsedVersion{}, false
	}
	parts := strings.Split(raw, ".")
	segments := make([]versionSegment, 0, len(parts))
	for _, part := range parts {
		seg, ok := splitVersionPart(part)
		if !ok {
			return parsedVersion{}, false
		}
		segments = append(segments, seg)
	}
	return parsedVersion{segments: segments}, true
}

// splitVersionPart splits a single dot-segment into its leading numeric
// run and trailing suffix, e.g. "5rc1" -> (5, "rc1").
func splitVersionPart(part string) (versionSegment, bool) {
	i := 0
	for i < len(part) && part[i] >= '0' && part[i] <= '9' {
		i++
	}
	if i == 0 {
		return versionSegment{}, false
	}
	n, err := strconv.Atoi(part[:i])
	if err != nil {
		return versionSegment{}, false
	}
	return versionSegment{numeric: n, suffix: part[i:]}, true
}

// compareVersions returns -1, 0, or 1. Shorter version is padded with
// zero segments. Numeric parts compare first; on a tie the suffix
// compares lexicographically, with an empty suffix treated as newer
// than any non-empty suffix (release beats pre-release).
func compareVersions(a, b parsedVersion) int {
	n := len(a.segments)
	if len(b.segments) > n {
		n = len(b.segments)
	}
	for i := 0; i < n; i++ {
		var sa, sb versionSegment
		if i < len(a.segments) {
			sa = a.segments[i]
		}
		if i < len(b.segments) {
			sb = b.segments[i]
		}
		if sa.numeric != sb.numeric {
			if sa.numeric < sb.numeric {
				return -1
			}
			return 1
		}
		if sa.suffix == sb.suffix {
			continue
		}
		if sa.suffix == "" {
			return 1
		}
		if sb.suffix == "" {
			return -1
		}
		if sa.suffix < sb.suffix {
			return -1
		}
		return 1
	}
	return 0
}
