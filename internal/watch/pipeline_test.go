package watch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestPipelineRunReportsChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	left := writeFile(t, dir, "left.yaml", "name: foo\nreplicas: 1\n")
	right := writeFile(t, dir, "right.yaml", "name: foo\nreplicas: 3\n")

	p := Pipeline{LeftPath: left, RightPath: right}

	result := p.Run(80)
	require.NoError(t, result.Err)
	assert.True(t, result.HasChanges)
	assert.Contains(t, result.Rendered, "replicas")
}

func TestPipelineRunNoChanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	left := writeFile(t, dir, "left.yaml", "name: foo\n")
	right := writeFile(t, dir, "right.yaml", "name: foo\n")

	p := Pipeline{LeftPath: left, RightPath: right}

	result := p.Run(80)
	require.NoError(t, result.Err)
	assert.False(t, result.HasChanges)
}

func TestPipelineRunMissingFileIsError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	left := writeFile(t, dir, "left.yaml", "name: foo\n")

	p := Pipeline{LeftPath: left, RightPath: filepath.Join(dir, "missing.yaml")}

	result := p.Run(80)
	assert.Error(t, result.Err)
}
