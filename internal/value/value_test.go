package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felipesere/everdiff/internal/value"
)

func TestEqualScalarTagSensitive(t *testing.T) {
	t.Parallel()

	one := value.NewScalar("1", value.TagInt, value.Span{})
	oneStr := value.NewScalar("1", value.TagString, value.Span{})

	assert.False(t, value.Equal(one, oneStr), `"1" (string) and 1 (int) must not be equal`)
	assert.True(t, value.Equal(one, one))
}

func TestEqualBoolCaseInsensitiveTag(t *testing.T) {
	t.Parallel()

	a := value.NewScalar("True", value.TagBool, value.Span{})
	b := value.NewScalar("true", value.TagBool, value.Span{})

	assert.True(t, value.Equal(a, b), "both resolve to the bool tag with the same canonical meaning")
}

func TestEqualMappingIgnoresKeyOrder(t *testing.T) {
	t.Parallel()

	a := value.NewMapping([]value.MappingEntry{
		{Key: value.NewScalar("a", value.TagString, value.Span{}), Value: value.NewScalar("1", value.TagInt, value.Span{})},
		{Key: value.NewScalar("b", value.TagString, value.Span{}), Value: value.NewScalar("2", value.TagInt, value.Span{})},
	}, value.Span{})

	b := value.NewMapping([]value.MappingEntry{
		{Key: value.NewScalar("b", value.TagString, value.Span{}), Value: value.NewScalar("2", value.TagInt, value.Span{})},
		{Key: value.NewScalar("a", value.TagString, value.Span{}), Value: value.NewScalar("1", value.TagInt, value.Span{})},
	}, value.Span{})

	assert.True(t, value.Equal(a, b))
}

func TestLookup(t *testing.T) {
	t.Parallel()

	m := value.NewMapping([]value.MappingEntry{
		{Key: value.NewScalar("name", value.TagString, value.Span{}), Value: value.NewScalar("x", value.TagString, value.Span{})},
	}, value.Span{})

	got, ok := m.Lookup("name")
	assert.True(t, ok)
	assert.Equal(t, "x", got.Scalar)

	_, ok = m.Lookup("missing")
	assert.False(t, ok)
}

func TestSize(t *testing.T) {
	t.Parallel()

	seq := value.NewSequence([]value.Value{
		value.NewScalar("1", value.TagInt, value.Span{}),
		value.NewScalar("2", value.TagInt, value.Span{}),
	}, value.Span{})

	assert.Equal(t, 3, seq.Size())
}
