// Package release defines the release data model and the remote listing client.
package release

import (
	"sort"

	"github.com/Masterminds/semver/v3"
)

// Release describes one downloadable version of the target application.
// Releases are immutable once fetched and keyed by their version string.
// SHA256 is optional; listings that carry it get download verification.
type Release struct {
	Version string `json:"version"`
	URL     string `json:"url"`
	SHA256  string `json:"sha256,omitempty"`
}

// List is an ordered sequence of releases, newest first.
type List []Release

// Sort orders the list newest-version first. Versions that do not parse as
// semver sort after all parseable versions, in their original order.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		vi, erri := semver.NewVersion(l[i].Version)
		vj, errj := semver.NewVersion(l[j].Version)
		if erri != nil || errj != nil {
			return errj != nil && erri == nil
		}
		return vi.GreaterThan(vj)
	})
}

// Find returns the release with the given version string.
func (l List) Find(version string) (Release, bool) {
	for _, r := range l {
		if r.Version == version {
			return r, true
		}
	}
	return Release{}, false
}

// Latest returns the newest release in the list.
func (l List) Latest() (Release, bool) {
	if len(l) == 0 {
		return Release{}, false
	}
	sorted := make(List, len(l))
	copy(sorted, l)
	sorted.Sort()
	return sorted[0], true
}

// Versions returns the version strings in list order.
func (l List) Versions() []string {
	out := make([]string, len(l))
	for i, r := range l {
		out[i] = r.Version
	}
	return out
}

// Compare compares two version strings.
// Returns: -1 if a < b, 0 if equal, 1 if a > b. Unparseable versions
// compare as string equality only.
func Compare(a, b string) int {
	va, erra := semver.NewVersion(a)
	vb, errb := semver.NewVersion(b)
	if erra != nil || errb != nil {
		if a == b {
			return 0
		}
		if a < b {
			return -1
		}
		return 1
	}
	return va.Compare(vb)
}
