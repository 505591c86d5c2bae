package metadata

import (
	"github.com/rtm0/ccammeta/internal/dataset"
)

// Reference metadata. The tables are only ever handed out as clones.
var (
	coordTable = map[string]*dataset.Attrs{
		"lon": dataset.AttrsOf(
			"units", "degrees_east",
			"standard_name", "longitude",
			"long_name", "longitude",
			"axis", "X",
		),
		"lat": dataset.AttrsOf(
			"units", "degrees_north",
			"standard_name", "latitude",
			"long_name", "latitude",
			"axis", "Y",
		),
		// time keeps the units and calendar it was written with.
		"time": dataset.AttrsOf(
			"standard_name", "time",
			"long_name", "time",
			"axis", "T",
		),
	}

	// TODO: add cell_methods "area: mean" to tas once it is confirmed that
	// CCAM reports grid-cell averages rather than point values.
	varTable = map[string]*dataset.Attrs{
		"tas": dataset.AttrsOf(
			"units", "K",
			"standard_name", "air_temperature",
			"long_name", "near-surface air temperature",
		),
	}
)

// CoordNames lists the supported coordinates.
var CoordNames = []string{"lon", "lat", "time"}

// VarNames lists the supported data variables.
var VarNames = []string{"tas"}

// CoordAttrs returns a copy of the reference attributes for a coordinate.
func CoordAttrs(name string) (*dataset.Attrs, bool) {
	a, ok := coordTable[name]
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

// VarAttrs returns a copy of the reference attributes for a data variable.
func VarAttrs(name string) (*dataset.Attrs, bool) {
	a, ok := varTable[name]
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

// DefaultGlobal returns a freshly built copy of the default global
// attributes for CCAM output prepared for the Australian Climate Hazards
// project.
func DefaultGlobal() *dataset.Attrs {
	return dataset.AttrsOf(
		"title", "CSIRO CCAM output prepared for Australian Climate Hazards project",
		"institution", "Commonwealth Scientific and Industrial Research Organisation (CSIRO)",
		"source", "CCAM",
		"version", "r5262M",
		"driving_model", "ACCESS-CM2",
		"driving_institution", "CSIRO-ARCCSS",
		"driving_experiment_name", "SSP370",
		"contact", "ccam@csiro.au",
		"domain", "AUS-10i",
		"nominal_resolution", "12km",
		"frequency", "1hr",
		"Conventions", "CF-1.8",
	)
}
