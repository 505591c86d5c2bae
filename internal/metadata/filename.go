package metadata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rtm0/ccammeta/internal/cftime"
	"github.com/rtm0/ccammeta/internal/dataset"
)

// ErrMissingTime is returned when a file name cannot be derived because the
// dataset has no usable time coordinate.
var ErrMissingTime = errors.New("dataset has no time values")

// OutputFileName builds a name of the form
// <var>_<domain>_<source>_<driving_model>_<start>-<end>.nc from the data
// variables, global attributes and time span of the dataset.
func OutputFileName(ds *dataset.Dataset) (string, error) {
	start, end, err := timeSpan(ds)
	if err != nil {
		return "", err
	}

	prefix := "data"
	if dvs := ds.DataVars(); len(dvs) == 1 {
		prefix = dvs[0].Name
	}

	domain, hasDomain := ds.Attrs.String("domain")
	source, hasSource := ds.Attrs.String("source")
	drivingModel, hasDriving := ds.Attrs.String("driving_model")

	segments := []string{prefix}
	switch {
	case hasDomain && hasSource && hasDriving:
		segments = append(segments, domain, source, drivingModel)
	case hasDomain && hasSource:
		segments = append(segments, domain, source)
	case hasSource && hasDriving:
		segments = append(segments, source, drivingModel)
	case hasSource:
		segments = append(segments, source)
	}
	segments = append(segments, start+"-"+end)
	return strings.Join(segments, "_") + ".nc", nil
}

func timeSpan(ds *dataset.Dataset) (string, string, error) {
	tv := ds.Var("time")
	if tv == nil {
		return "", "", fmt.Errorf("%w: no time coordinate", ErrMissingTime)
	}
	values, err := dataset.Float64s(tv.Values)
	if err != nil {
		return "", "", fmt.Errorf("time coordinate: %w", err)
	}
	if len(values) == 0 {
		return "", "", fmt.Errorf("%w: time coordinate is empty", ErrMissingTime)
	}
	units, ok := tv.Attrs.String("units")
	if !ok {
		return "", "", fmt.Errorf("%w: time coordinate has no units", ErrMissingTime)
	}
	calendar, _ := tv.Attrs.String("calendar")
	times, err := cftime.Decode([]float64{values[0], values[len(values)-1]}, units, calendar)
	if err != nil {
		return "", "", fmt.Errorf("decode time coordinate: %w", err)
	}
	return times[0].HourStamp(), times[1].HourStamp(), nil
}
