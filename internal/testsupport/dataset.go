// Package testsupport builds CCAM-like datasets and files for tests.
package testsupport

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/rtm0/ccammeta/internal/dataset"
	"github.com/rtm0/ccammeta/internal/writer"
)

// Hours is the length of the time axis of RawDataset: 2015-01-01T00 through
// 2015-01-02T23.
const Hours = 48

// FillValue is the raw fill_value of every data variable.
const FillValue = float32(-999)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// RawDataset returns a small dataset shaped like raw CCAM output: lon, lat
// and an hourly time axis plus one float32 data variable per name (tas when
// none are given), each carrying a fill_value attribute.
func RawDataset(t testing.TB, vars ...string) *dataset.Dataset {
	t.Helper()

	if len(vars) == 0 {
		vars = []string{"tas"}
	}
	lons := []float32{150, 150.1, 150.2}
	lats := []float32{-35, -34.9}
	times := make([]int32, Hours)
	for i := range times {
		times[i] = int32(i)
	}

	ds := dataset.New()
	ds.Attrs.Set("history", "raw CCAM output")
	mustAdd(t, ds, &dataset.Variable{
		Name: "lon", Dims: []string{"lon"}, Shape: []int{len(lons)}, Values: lons,
		Attrs: dataset.AttrsOf("_FillValue", float32(-1e30)),
	})
	mustAdd(t, ds, &dataset.Variable{
		Name: "lat", Dims: []string{"lat"}, Shape: []int{len(lats)}, Values: lats,
	})
	mustAdd(t, ds, &dataset.Variable{
		Name: "time", Dims: []string{"time"}, Shape: []int{Hours}, Values: times,
		Attrs: dataset.AttrsOf(
			"units", "hours since 2015-01-01 00:00:00",
			"calendar", "standard",
		),
	})
	for _, name := range vars {
		n := Hours * len(lats) * len(lons)
		values := make([]float32, n)
		for i := range values {
			values[i] = 280 + float32(i%17)
		}
		values[0] = FillValue
		mustAdd(t, ds, &dataset.Variable{
			Name:   name,
			Dims:   []string{"time", "lat", "lon"},
			Shape:  []int{Hours, len(lats), len(lons)},
			Values: values,
			Attrs:  dataset.AttrsOf("fill_value", FillValue, "units", "degK"),
		})
	}
	return ds
}

// WriteFile writes ds as a NetCDF file named name in dir and returns its
// path. Time is written as a record dimension without other conversions.
func WriteFile(t testing.TB, dir, name string, ds *dataset.Dataset) string {
	t.Helper()

	path := filepath.Join(dir, name)
	enc := writer.Encoding{Unlimited: "time"}
	if err := writer.New(DiscardLogger()).Write(ds, path, enc); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

func mustAdd(t testing.TB, ds *dataset.Dataset, v *dataset.Variable) {
	t.Helper()

	if err := ds.AddVar(v); err != nil {
		t.Fatalf("build fixture: %v", err)
	}
}
