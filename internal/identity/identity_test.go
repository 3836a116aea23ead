package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipesere/everdiff/internal/yamldoc"
)

func parseDocs(t *testing.T, src string) []*yamldoc.Document {
	t.Helper()

	docs, err := yamldoc.Parse([]byte(src), "test.yaml")
	require.NoError(t, err)

	return docs
}

func TestIdentifyPositional(t *testing.T) {
	t.Parallel()

	docs := parseDocs(t, "a: 1\n---\nb: 2\n")

	warnings := Identify(docs, Positional)

	assert.Empty(t, warnings)
	assert.Equal(t, yamldoc.PositionalKey(0), docs[0].Identity)
	assert.Equal(t, yamldoc.PositionalKey(1), docs[1].Identity)
}

func TestIdentifyKubernetes(t *testing.T) {
	t.Parallel()

	docs := parseDocs(t, "apiVersion: v1\nkind: Pod\nmetadata:\n  name: foo\n")

	warnings := Identify(docs, Kubernetes)

	assert.Empty(t, warnings)
	assert.Equal(t, yamldoc.KubernetesKey("v1", "Pod", "foo"), docs[0].Identity)
}

func TestIdentifyKubernetesFallback(t *testing.T) {
	t.Parallel()

	docs := parseDocs(t, "apiVersion: v1\nkind: Pod\nmetadata:\n  name: foo\n---\nfoo: bar\n---\nbaz: qux\n")

	warnings := Identify(docs, Kubernetes)

	require.Len(t, warnings, 2)
	assert.Equal(t, yamldoc.KubernetesKey("v1", "Pod", "foo"), docs[0].Identity)
	assert.Equal(t, yamldoc.PositionalKey(0), docs[1].Identity)
	assert.Equal(t, yamldoc.PositionalKey(1), docs[2].Identity)
}
