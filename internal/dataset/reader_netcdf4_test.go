//go:build cgo

package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtm0/ccammeta/internal/dataset"
	"github.com/rtm0/ccammeta/internal/testsupport"
)

func TestOpenSortsHDF5Attributes(t *testing.T) {
	t.Parallel()

	ds := testsupport.RawDataset(t)
	ds.Attrs.Set("source", "CCAM")
	ds.Attrs.Set("domain", "AUS-10i")
	ds.Var("lat").Attrs.Merge(dataset.AttrsOf("units", "degrees_north", "axis", "Y", "long_name", "latitude"))
	path := testsupport.WriteFile(t, t.TempDir(), "raw.nc", ds)

	for range 3 {
		got, err := dataset.Open(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"domain", "history", "source"}, got.Attrs.Keys())
		assert.Equal(t, []string{"axis", "long_name", "units"}, got.Var("lat").Attrs.Keys())
	}
}
