package sequence

import (
	"testing"

	"MS-Sequence-Tags/tag_generator/alphabet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverse(t *testing.T) {
	assert.Equal(t, []string{"K", "E", "P"}, Reverse([]string{"P", "E", "K"}))
	assert.Equal(t, "KEP", ReverseString([]string{"P", "E", "K"}))
	assert.Equal(t, "M(ox)A", ReverseString([]string{"A", "M(ox)"}))
	assert.Empty(t, Reverse(nil))
}

func TestMass(t *testing.T) {
	a, err := alphabet.New(map[string]float64{"A": 71.03711, "G": 57.02146})
	require.NoError(t, err)

	m, ok := Mass([]string{"A", "G", "A"}, a)
	assert.True(t, ok)
	assert.InDelta(t, 199.09568, m, 1e-9)

	_, ok = Mass([]string{"A", "X"}, a)
	assert.False(t, ok)

	m, ok = Mass(nil, a)
	assert.True(t, ok)
	assert.Equal(t, 0.0, m)
}
