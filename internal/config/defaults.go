package config

// DefaultChangelogPath is the changelog read when no path is configured.
const DefaultChangelogPath = "CHANGELOG.md"

// DefaultTagPrefix is prepended to versions to form git tag names.
const DefaultTagPrefix = "v"

// GetDefaults returns the default configuration values keyed by config key.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_path":              DefaultChangelogPath,
		"tag_prefix":                  DefaultTagPrefix,
		"github_repo":                 "",
		"prerelease_id":               "",
		"keep_unreleased_section":     false,
		"fail_on_empty_release_notes": false,
		"format":                      "text",
	}
}
