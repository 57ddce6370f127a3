package changelog

// Log field keys used by the pipeline stages.
const (
	logKeyPath        = "path"
	logKeyLine        = "line"
	logKeyReleases    = "releases"
	logKeyRelease     = "release"
	logKeyReleaseType = "release_type"
	logKeyVersion     = "version"
	logKeySelector    = "selector"
	logKeyNodes       = "nodes"
	logKeyMessages    = "messages"
	logKeyRemoved     = "removed"
	logKeyDefinitions = "definitions"
)
