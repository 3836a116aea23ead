package pairing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipesere/everdiff/internal/yamldoc"
)

func doc(idx int, key yamldoc.Key) *yamldoc.Document {
	return &yamldoc.Document{Index: idx, Identity: key}
}

func TestPairMatchedMissingExtra(t *testing.T) {
	t.Parallel()

	left := []*yamldoc.Document{
		doc(0, yamldoc.PositionalKey(0)),
		doc(1, yamldoc.PositionalKey(1)),
	}
	right := []*yamldoc.Document{
		doc(0, yamldoc.PositionalKey(1)),
		doc(1, yamldoc.PositionalKey(2)),
	}

	result, err := Pair(left, right)
	require.NoError(t, err)

	require.Len(t, result.Matched, 1)
	assert.Equal(t, left[1], result.Matched[0].Left)
	assert.Equal(t, right[0], result.Matched[0].Right)

	require.Len(t, result.Missing, 1)
	assert.Equal(t, left[0], result.Missing[0])

	require.Len(t, result.Extra, 1)
	assert.Equal(t, right[1], result.Extra[0])
}

func TestPairDuplicateKeyOnLeft(t *testing.T) {
	t.Parallel()

	left := []*yamldoc.Document{
		doc(0, yamldoc.PositionalKey(0)),
		doc(1, yamldoc.PositionalKey(0)),
	}

	_, err := Pair(left, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateKey))
}

func TestPairDuplicateKeyOnRight(t *testing.T) {
	t.Parallel()

	right := []*yamldoc.Document{
		doc(0, yamldoc.PositionalKey(0)),
		doc(1, yamldoc.PositionalKey(0)),
	}

	_, err := Pair(nil, right)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateKey))
}
