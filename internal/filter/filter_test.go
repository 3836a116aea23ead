package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipesere/everdiff/internal/differ"
	"github.com/felipesere/everdiff/internal/value"
)

func mustParsePattern(t *testing.T, s string) Pattern {
	t.Helper()

	p, err := ParsePattern(s)
	require.NoError(t, err)

	return p
}

func TestParsePatternRequiresLeadingDot(t *testing.T) {
	t.Parallel()

	_, err := ParsePattern("metadata.name")
	require.Error(t, err)
}

func TestMatchesExactPath(t *testing.T) {
	t.Parallel()

	pat := mustParsePattern(t, ".spec.containers[0].image")
	path := value.Path{}.Field("spec").Field("containers").Index(0).Field("image")

	assert.True(t, pat.Matches(path))
}

func TestMatchesSubtreePrefix(t *testing.T) {
	t.Parallel()

	pat := mustParsePattern(t, ".metadata.annotations")
	path := value.Path{}.Field("metadata").Field("annotations").Field("a")

	assert.True(t, pat.Matches(path))
}

func TestMatchesWildcardOneLevel(t *testing.T) {
	t.Parallel()

	pat := mustParsePattern(t, ".metadata.labels.*")
	shallow := value.Path{}.Field("metadata").Field("labels").Field("tier")
	deeper := value.Path{}.Field("metadata").Field("labels").Field("tier").Field("x")

	assert.True(t, pat.Matches(shallow))
	assert.True(t, pat.Matches(deeper)) // prefix match still drops the deeper subtree
}

func TestMatchesRejectsUnrelatedPath(t *testing.T) {
	t.Parallel()

	pat := mustParsePattern(t, ".spec.replicas")
	path := value.Path{}.Field("spec").Field("image")

	assert.False(t, pat.Matches(path))
}

// TestFilterIgnorePatternScenario covers ignoring metadata annotation
// churn while still surfacing an unrelated replica count change.
func TestFilterIgnorePatternScenario(t *testing.T) {
	t.Parallel()

	changes := []differ.Change{
		{Kind: differ.Modified, Path: value.Path{}.Field("metadata").Field("annotations").Field("a")},
		{Kind: differ.Modified, Path: value.Path{}.Field("spec").Field("replicas")},
	}

	both := []Pattern{
		mustParsePattern(t, ".metadata.annotations"),
		mustParsePattern(t, ".spec.replicas"),
	}
	assert.Empty(t, Filter(changes, both, false))

	onlyAnnotations := []Pattern{mustParsePattern(t, ".metadata.annotations")}
	remaining := Filter(changes, onlyAnnotations, false)
	require.Len(t, remaining, 1)
	assert.Equal(t, ".spec.replicas", remaining[0].Path.String())
}

// TestFilterMonotonic checks that adding a pattern never increases the
// number of changes that survive filtering.
func TestFilterMonotonic(t *testing.T) {
	t.Parallel()

	changes := []differ.Change{
		{Kind: differ.Modified, Path: value.Path{}.Field("a")},
		{Kind: differ.Modified, Path: value.Path{}.Field("b")},
	}

	before := Filter(changes, []Pattern{mustParsePattern(t, ".a")}, false)
	after := Filter(changes, []Pattern{mustParsePattern(t, ".a"), mustParsePattern(t, ".b")}, false)

	assert.LessOrEqual(t, len(after), len(before))
}

func TestFilterDropsMovedButKeepsDescendants(t *testing.T) {
	t.Parallel()

	changes := []differ.Change{
		{Kind: differ.Moved, Path: value.Path{}.Field("xs").Index(1), MoveFrom: 0, MoveTo: 1},
		{Kind: differ.Modified, Path: value.Path{}.Field("xs").Index(1).Field("a")},
	}

	out := Filter(changes, nil, true)
	require.Len(t, out, 1)
	assert.Equal(t, differ.Modified, out[0].Kind)
}
