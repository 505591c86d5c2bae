package writer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtm0/ccammeta/internal/dataset"
	"github.com/rtm0/ccammeta/internal/testsupport"
	"github.com/rtm0/ccammeta/internal/writer"
)

func TestDefaultEncoding(t *testing.T) {
	t.Parallel()

	ds := testsupport.RawDataset(t, "tas", "pr")
	enc := writer.DefaultEncoding(ds)

	assert.Equal(t, "time", enc.Unlimited)
	assert.Equal(t, writer.VarEncoding{NoFill: true}, enc.Vars["lon"])
	assert.Equal(t, writer.VarEncoding{NoFill: true}, enc.Vars["lat"])
	assert.Equal(t, writer.VarEncoding{NoFill: true, Type: writer.Double}, enc.Vars["time"])
	assert.Equal(t, writer.VarEncoding{Compress: true}, enc.Vars["tas"])
	assert.Equal(t, writer.VarEncoding{Compress: true}, enc.Vars["pr"])
}

func TestWriteAppliesEncoding(t *testing.T) {
	t.Parallel()

	ds := testsupport.RawDataset(t)
	tas := ds.Var("tas")
	tas.Attrs.Set("_FillValue", -999.0)
	tas.Attrs.Set("missing_value", -999.0)
	tas.Attrs.Delete("fill_value")
	ds.Var("lat").Attrs.Set("missing_value", float32(-1))

	path := filepath.Join(t.TempDir(), "out.nc")
	require.NoError(t, writer.New(testsupport.DiscardLogger()).Write(ds, path, writer.DefaultEncoding(ds)))

	nc, err := netcdf.Open(path)
	require.NoError(t, err)
	defer nc.Close()

	tv, err := nc.GetVariable("time")
	require.NoError(t, err)
	times, ok := tv.Values.([]float64)
	require.True(t, ok, "time stored as %T", tv.Values)
	assert.Len(t, times, testsupport.Hours)

	lon, err := nc.GetVariable("lon")
	require.NoError(t, err)
	_, has := lon.Attributes.Get("_FillValue")
	assert.False(t, has, "coordinates must not carry _FillValue")
	lat, err := nc.GetVariable("lat")
	require.NoError(t, err)
	_, has = lat.Attributes.Get("missing_value")
	assert.False(t, has, "coordinates must not carry missing_value")

	// Fill markers follow the data type of the variable.
	tasVar, err := nc.GetVariable("tas")
	require.NoError(t, err)
	fv, has := tasVar.Attributes.Get("_FillValue")
	require.True(t, has)
	assert.IsType(t, float32(0), normalize(fv))
	assert.Equal(t, float32(-999), normalize(fv))
	_, isCube := tasVar.Values.([][][]float32)
	assert.True(t, isCube, "tas stored as %T", tasVar.Values)
}

func TestWriteFailureLeavesNoFile(t *testing.T) {
	t.Parallel()

	ds := dataset.New()
	ds.Dims = append(ds.Dims, dataset.Dim{Name: "time", Len: 1})
	ds.Vars = append(ds.Vars, &dataset.Variable{
		Name: "Times", Dims: []string{"time"}, Shape: []int{1}, Values: "2015-01-01", Attrs: dataset.NewAttrs(),
	})

	dir := t.TempDir()
	path := filepath.Join(dir, "out.nc")
	err := writer.New(testsupport.DiscardLogger()).Write(ds, path, writer.Encoding{Unlimited: "time"})
	require.ErrorContains(t, err, `variable "Times"`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteRequiresRecordDimensionFirst(t *testing.T) {
	t.Parallel()

	ds := dataset.New()
	require.NoError(t, ds.AddVar(&dataset.Variable{
		Name: "lat", Dims: []string{"lat"}, Shape: []int{1}, Values: []float32{0},
	}))
	require.NoError(t, ds.AddVar(&dataset.Variable{
		Name: "tas", Dims: []string{"lat", "time"}, Shape: []int{1, 2}, Values: []float32{1, 2},
	}))

	err := writer.New(testsupport.DiscardLogger()).Write(ds, filepath.Join(t.TempDir(), "x.nc"), writer.Encoding{Unlimited: "time"})
	require.ErrorContains(t, err, "must come first")
}

func normalize(v any) any {
	switch x := v.(type) {
	case []float32:
		if len(x) == 1 {
			return x[0]
		}
	case []float64:
		if len(x) == 1 {
			return x[0]
		}
	}
	return v
}
