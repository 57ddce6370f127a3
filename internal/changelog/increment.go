package changelog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// NextVersion computes the version the Unreleased section will be released
// as: the latest released version (or 0.0.0) incremented by releaseType.
func NextVersion(releases []ReleaseHeading, releaseType ReleaseType, prereleaseID string) (*semver.Version, error) {
	current := semver.New(0, 0, 0, "", "")
	if latest, ok := Find(releases, Selector{Kind: SelectLatest}); ok {
		current = latest.Release.Version
	}
	return Increment(current, releaseType, prereleaseID)
}

// Increment applies a release type to v the way npm's semver does:
//
//	1.2.3         patch      -> 1.2.4
//	1.2.4-beta.0  patch      -> 1.2.4
//	1.2.3         minor      -> 1.3.0
//	1.2.3         prerelease -> 1.2.4-0
//	1.2.4-beta.0  prerelease -> 1.2.4-beta.1
//	1.2.3         premajor   -> 2.0.0-<id>.0
//
// Build metadata is always dropped.
func Increment(v *semver.Version, releaseType ReleaseType, prereleaseID string) (*semver.Version, error) {
	major, minor, patch := v.Major(), v.Minor(), v.Patch()
	pre := v.Prerelease()

	switch releaseType {
	case Major:
		if minor != 0 || patch != 0 || pre == "" {
			major++
		}
		return buildVersion(major, 0, 0, "")
	case Minor:
		if patch != 0 || pre == "" {
			minor++
		}
		return buildVersion(major, minor, 0, "")
	case Patch:
		if pre == "" {
			patch++
		}
		return buildVersion(major, minor, patch, "")
	case Premajor:
		return buildVersion(major+1, 0, 0, nextPrerelease("", prereleaseID))
	case Preminor:
		return buildVersion(major, minor+1, 0, nextPrerelease("", prereleaseID))
	case Prepatch:
		return buildVersion(major, minor, patch+1, nextPrerelease("", prereleaseID))
	case Prerelease:
		if pre == "" {
			patch++
		}
		return buildVersion(major, minor, patch, nextPrerelease(pre, prereleaseID))
	default:
		return nil, fmt.Errorf("invalid release type %q", releaseType)
	}
}

// nextPrerelease bumps the last numeric identifier of pre (appending 0 when
// there is none) and applies the requested identifier.
func nextPrerelease(pre, id string) string {
	parts := []string{"0"}
	if pre != "" {
		parts = strings.Split(pre, ".")
		bumped := false
		for i := len(parts) - 1; i >= 0; i-- {
			if n, err := strconv.ParseUint(parts[i], 10, 64); err == nil {
				parts[i] = strconv.FormatUint(n+1, 10)
				bumped = true
				break
			}
		}
		if !bumped {
			parts = append(parts, "0")
		}
	}

	if id != "" && (parts[0] != id || len(parts) < 2 || !isNumeric(parts[1])) {
		parts = []string{id, "0"}
	}

	return strings.Join(parts, ".")
}

func isNumeric(s string) bool {
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

func buildVersion(major, minor, patch uint64, pre string) (*semver.Version, error) {
	s := fmt.Sprintf("%d.%d.%d", major, minor, patch)
	if pre != "" {
		s += "-" + pre
	}
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("building version %q: %w", s, err)
	}
	return v, nil
}
