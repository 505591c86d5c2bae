package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	tcs := map[string]struct {
		in    any
		flat  any
		shape []int
	}{
		"scalar": {
			in:    float32(3),
			flat:  []float32{3},
			shape: nil,
		},
		"vector": {
			in:    []int32{1, 2, 3},
			flat:  []int32{1, 2, 3},
			shape: []int{3},
		},
		"cube": {
			in:    [][][]int16{{{1, 2}, {3, 4}}, {{5, 6}, {7, 8}}},
			flat:  []int16{1, 2, 3, 4, 5, 6, 7, 8},
			shape: []int{2, 2, 2},
		},
		"empty record axis": {
			in:    [][]float64{},
			flat:  []float64{},
			shape: []int{0, 0},
		},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flat, shape, err := flatten(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.flat, flat)
			assert.Equal(t, tc.shape, shape)
		})
	}
}

func TestFlattenRejects(t *testing.T) {
	t.Parallel()

	_, _, err := flatten("Times")
	require.ErrorContains(t, err, "unsupported element type")

	_, _, err = flatten([][]float32{{1, 2}, {3}})
	require.ErrorContains(t, err, "ragged")
}

func TestNormalizeAttr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, float32(-999), normalizeAttr([]float32{-999}))
	assert.Equal(t, []float64{1, 2}, normalizeAttr([]float64{1, 2}))
	assert.Equal(t, "K", normalizeAttr("K"))
}
