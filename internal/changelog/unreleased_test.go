package changelog

import (
	"testing"

	"github.com/ariel-frischer/chlog/internal/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUnreleased(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		src          string
		want         string
		wantIndex    int
		wantBoundary int
	}{
		"before the first release": {
			src:          "# Changelog\n\n## [1.0.0] - 2024-01-01\n\n- one\n",
			want:         "# Changelog\n\n## [Unreleased]\n\n## [1.0.0] - 2024-01-01\n\n- one\n",
			wantIndex:    1,
			wantBoundary: 2,
		},
		"before trailing definitions": {
			src:          "# Changelog\n\n[docs]: https://example.com\n",
			want:         "# Changelog\n\n## [Unreleased]\n\n[docs]: https://example.com\n",
			wantIndex:    1,
			wantBoundary: 2,
		},
		"at the end": {
			src:          "# Changelog\n\nIntro.\n",
			want:         "# Changelog\n\nIntro.\n\n## [Unreleased]\n",
			wantIndex:    2,
			wantBoundary: -1,
		},
		"empty document": {
			src:          "",
			want:         "## [Unreleased]\n",
			wantIndex:    0,
			wantBoundary: -1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc := mustParse(t, tt.src)
			rep := NewReport("")
			releases := Preprocess(doc, rep)
			require.NoError(t, rep.Err())
			before := len(releases)

			releases = EnsureUnreleased(doc, releases)
			require.Len(t, releases, before+1)
			assert.True(t, releases[0].Release.IsUnreleased())
			assert.Equal(t, tt.wantIndex, releases[0].Index)
			assert.Equal(t, tt.wantBoundary, releases[0].Boundary)
			assert.Same(t, doc.At(releases[0].Index), markdown.Node(releases[0].Heading))
			assert.Equal(t, tt.want, markdown.Serialize(doc))

			for _, r := range releases[1:] {
				assert.Same(t, doc.At(r.Index), markdown.Node(r.Heading), "shifted record %s", r.Release.Label())
			}

			// The inserted heading parses back as Unreleased.
			reparsed := mustParse(t, markdown.Serialize(doc))
			rep = NewReport("")
			again := Preprocess(reparsed, rep)
			require.NoError(t, rep.Err())
			require.NoError(t, RequireUnreleased(again))
		})
	}
}

func TestEnsureUnreleased_AlreadyPresent(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, multiRelease)
	rep := NewReport("")
	releases := Preprocess(doc, rep)
	require.NoError(t, rep.Err())

	got := EnsureUnreleased(doc, releases)
	assert.Len(t, got, len(releases))
	assert.Equal(t, multiRelease, markdown.Serialize(doc))
}

func TestRequireUnreleased(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, RequireUnreleased(nil), ErrNoUnreleased)

	doc := mustParse(t, "## [1.0.0] - 2024-01-01\n")
	rep := NewReport("")
	releases := Preprocess(doc, rep)
	require.NoError(t, rep.Err())
	assert.ErrorIs(t, RequireUnreleased(releases), ErrNoUnreleased)
}
