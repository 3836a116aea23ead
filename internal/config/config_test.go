package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipesere/everdiff/internal/prepatch"
)

func TestLoadEmptyConfig(t *testing.T) {
	t.Parallel()

	rules, err := Load([]byte("other: 1\n"), "everdiff.yaml")
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestLoadPrePatchRule(t *testing.T) {
	t.Parallel()

	src := `
prepatches:
  - name: rename-flux
    documentLike:
      kind: NetworkPolicy
      metadata:
        name: flux-engine-steam
    patches:
      - op: replace
        path: /metadata/name
        value: flux
`

	rules, err := Load([]byte(src), "everdiff.yaml")
	require.NoError(t, err)
	require.Len(t, rules, 1)

	rule := rules[0]
	assert.Equal(t, "rename-flux", rule.Name)

	kind, ok := rule.DocumentLike.Lookup("kind")
	require.True(t, ok)
	assert.Equal(t, "NetworkPolicy", kind.Scalar)

	require.Len(t, rule.Patches, 1)
	assert.Equal(t, prepatch.OpReplace, rule.Patches[0].Op)
	assert.Equal(t, "/metadata/name", rule.Patches[0].Path)
	assert.Equal(t, "flux", rule.Patches[0].Value.Scalar)
}

func TestLoadRejectsUnsupportedOp(t *testing.T) {
	t.Parallel()

	src := `
prepatches:
  - name: bad
    documentLike:
      kind: Foo
    patches:
      - op: remove
        path: /a
        value: 1
`

	_, err := Load([]byte(src), "everdiff.yaml")
	require.Error(t, err)
}
