package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCoalescesOverlappingFileChanges(t *testing.T) {
	t.Parallel()

	m := &Model{width: 80}

	_, cmd := m.Update(fileChangedMsg{})
	require.NotNil(t, cmd)
	assert.True(t, m.running)
	assert.False(t, m.pending)

	// A second change arriving while the first run is in flight is
	// coalesced, not run concurrently.
	_, cmd = m.Update(fileChangedMsg{})
	require.NotNil(t, cmd)
	assert.True(t, m.pending)

	_, cmd = m.Update(resultMsg{Rendered: "first run"})
	require.NotNil(t, cmd)
	assert.False(t, m.pending)

	_, cmd = m.Update(resultMsg{Rendered: "second run"})
	assert.Nil(t, cmd)
	assert.False(t, m.running)
	assert.Equal(t, "second run", m.last.Rendered)
}

func TestUpdateAccumulatesLogLinesUpToCap(t *testing.T) {
	t.Parallel()

	m := &Model{width: 80}

	for i := 0; i < maxLogLines+3; i++ {
		m.Update(logLineMsg("line\n"))
	}

	assert.Len(t, m.logLines, maxLogLines)
}

func TestViewRendersAltScreen(t *testing.T) {
	t.Parallel()

	m := &Model{width: 80, last: Result{Rendered: "some diff output"}}

	v := m.View()
	assert.True(t, v.AltScreen)
}
