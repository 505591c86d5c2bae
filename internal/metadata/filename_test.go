package metadata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtm0/ccammeta/internal/dataset"
	"github.com/rtm0/ccammeta/internal/metadata"
	"github.com/rtm0/ccammeta/internal/testsupport"
)

func TestOutputFileName(t *testing.T) {
	tcs := map[string]struct {
		vars  []string
		attrs []any
		want  string
	}{
		"domain source driving model": {
			vars:  []string{"tas"},
			attrs: []any{"domain", "AUS-10i", "source", "CCAM", "driving_model", "ACCESS-CM2"},
			want:  "tas_AUS-10i_CCAM_ACCESS-CM2_20150101T00-20150102T23.nc",
		},
		"domain source": {
			vars:  []string{"tas"},
			attrs: []any{"domain", "AUS-10i", "source", "CCAM"},
			want:  "tas_AUS-10i_CCAM_20150101T00-20150102T23.nc",
		},
		"source driving model": {
			vars:  []string{"tas"},
			attrs: []any{"source", "CCAM", "driving_model", "ACCESS-CM2"},
			want:  "tas_CCAM_ACCESS-CM2_20150101T00-20150102T23.nc",
		},
		"source only with two variables": {
			vars:  []string{"tas", "pr"},
			attrs: []any{"source", "CCAM"},
			want:  "data_CCAM_20150101T00-20150102T23.nc",
		},
		"domain and driving model without source": {
			vars:  []string{"tas"},
			attrs: []any{"domain", "AUS-10i", "driving_model", "ACCESS-CM2"},
			want:  "tas_20150101T00-20150102T23.nc",
		},
		"no attributes": {
			vars: []string{"tas"},
			want: "tas_20150101T00-20150102T23.nc",
		},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ds := testsupport.RawDataset(t, tc.vars...)
			ds.Attrs.Merge(dataset.AttrsOf(tc.attrs...))

			got, err := metadata.OutputFileName(ds)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOutputFileNameAfterApply(t *testing.T) {
	t.Parallel()

	ds := testsupport.RawDataset(t)
	_, err := metadata.Apply(ds, metadata.Options{})
	require.NoError(t, err)

	got, err := metadata.OutputFileName(ds)
	require.NoError(t, err)
	assert.Equal(t, "tas_AUS-10i_CCAM_ACCESS-CM2_20150101T00-20150102T23.nc", got)
}

func TestOutputFileNameIsoOffsetUnits(t *testing.T) {
	t.Parallel()

	ds := testsupport.RawDataset(t)
	ds.Var("time").Attrs.Set("units", "hours since 2015-01-01T00:00:00+00:00")

	got, err := metadata.OutputFileName(ds)
	require.NoError(t, err)
	assert.Equal(t, "tas_20150101T00-20150102T23.nc", got)
}

func TestOutputFileNameNeedsTime(t *testing.T) {
	t.Parallel()

	ds := dataset.New()
	require.NoError(t, ds.AddVar(&dataset.Variable{
		Name: "lat", Dims: []string{"lat"}, Shape: []int{1}, Values: []float32{0},
	}))
	_, err := metadata.OutputFileName(ds)
	require.ErrorIs(t, err, metadata.ErrMissingTime)

	require.NoError(t, ds.AddVar(&dataset.Variable{
		Name: "time", Dims: []string{"time"}, Shape: []int{0}, Values: []float64{},
		Attrs: dataset.AttrsOf("units", "hours since 2015-01-01"),
	}))
	_, err = metadata.OutputFileName(ds)
	require.ErrorIs(t, err, metadata.ErrMissingTime)
}
