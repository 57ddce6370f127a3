package config

import "time"

// Options is the fully resolved input of one bump run: the configuration
// merged with the per-run flags. Every field is explicit; nothing is read
// from the environment after it is built.
type Options struct {
	ChangelogPath string `flag:"changelog" validate:"required"`
	ReleaseDate   time.Time
	ReleaseType   string `flag:"release-type" validate:"required,oneof=major premajor minor preminor patch prepatch prerelease"`
	TagPrefix     string `flag:"tag-prefix"`
	PrereleaseID  string `flag:"prerelease-id" validate:"omitempty,prerelease_id"`
	// OutputFile is where the bumped changelog goes. Empty means
	// ChangelogPath and "-" means stdout.
	OutputFile              string `flag:"output-file"`
	KeepUnreleasedSection   bool   `flag:"keep-unreleased-section"`
	FailOnEmptyReleaseNotes bool   `flag:"fail-on-empty-release-notes"`
	GitHubRepo              string `flag:"github-repo" validate:"required"`
	Format                  string `flag:"format" validate:"oneof=text json"`
}

// Validate checks the options against their constraints.
func (o *Options) Validate() error {
	return validateStruct(o, "options")
}

// Destination returns the path the bumped changelog is written to, or "-"
// for stdout.
func (o *Options) Destination() string {
	if o.OutputFile == "" {
		return o.ChangelogPath
	}
	return o.OutputFile
}
