// Package metadata applies the CF/CMIP6/CORDEX reference metadata to CCAM
// datasets and derives conventional output file names.
package metadata

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/rtm0/ccammeta/internal/dataset"
)

var (
	ErrUnrecognizedCoordinate = errors.New("unrecognized coordinate")
	ErrUnrecognizedVariable   = errors.New("unrecognized variable")
)

// ToolTag is appended to the timestamp of every history entry.
const ToolTag = "metadata added by ccammeta"

// HistoryTimeFormat renders history timestamps as YYYY-MM-DDTHH:MM:SSz.
const HistoryTimeFormat = "2006-01-02T15:04:05z"

// Options controls the global metadata step.
type Options struct {
	// Attrs replaces the default global record when non-nil. It is cloned,
	// never modified.
	Attrs *dataset.Attrs
	// TrackingID adds a CMIP6-style tracking_id.
	TrackingID bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// ApplyCoords merges the reference attributes into every coordinate. All
// coordinates are checked before any of them is touched.
func ApplyCoords(ds *dataset.Dataset) error {
	if err := combine(unknownCoords(ds)); err != nil {
		return err
	}
	for _, c := range ds.Coords() {
		attrs, _ := CoordAttrs(c.Name)
		if c.Attrs == nil {
			c.Attrs = dataset.NewAttrs()
		}
		c.Attrs.Merge(attrs)
	}
	return nil
}

// ApplyVariables merges the reference attributes into every data variable
// and renames a fill_value attribute to _FillValue and missing_value.
func ApplyVariables(ds *dataset.Dataset) error {
	if err := combine(unknownVars(ds)); err != nil {
		return err
	}
	for _, v := range ds.DataVars() {
		attrs, _ := VarAttrs(v.Name)
		if v.Attrs == nil {
			v.Attrs = dataset.NewAttrs()
		}
		v.Attrs.Merge(attrs)
		if fv, ok := v.Attrs.Get("fill_value"); ok {
			v.Attrs.Set("_FillValue", fv)
			v.Attrs.Set("missing_value", fv)
			v.Attrs.Delete("fill_value")
		}
	}
	return nil
}

// Validate reports every coordinate and data variable of ds that has no
// reference metadata.
func Validate(ds *dataset.Dataset) error {
	return combine(append(unknownCoords(ds), unknownVars(ds)...))
}

func unknownCoords(ds *dataset.Dataset) []error {
	var errs []error
	for _, c := range ds.Coords() {
		if _, ok := coordTable[c.Name]; !ok {
			errs = append(errs, fmt.Errorf("%w %q: coordinates must be one of %s",
				ErrUnrecognizedCoordinate, c.Name, strings.Join(CoordNames, ", ")))
		}
	}
	return errs
}

func unknownVars(ds *dataset.Dataset) []error {
	var errs []error
	for _, v := range ds.DataVars() {
		if _, ok := varTable[v.Name]; !ok {
			errs = append(errs, fmt.Errorf("%w %q: currently supported: %s",
				ErrUnrecognizedVariable, v.Name, strings.Join(VarNames, ", ")))
		}
	}
	return errs
}

func combine(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	merr := multierror.Append(nil, errs...)
	merr.ErrorFormat = func(errs []error) string {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return strings.Join(msgs, "; ")
	}
	return merr
}

// ApplyGlobal merges the global record into the dataset together with a new
// history entry. Any earlier history is kept below the new entry.
func ApplyGlobal(ds *dataset.Dataset, opts Options) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	var global *dataset.Attrs
	if opts.Attrs != nil {
		global = opts.Attrs.Clone()
	} else {
		global = DefaultGlobal()
	}

	if ds.Attrs == nil {
		ds.Attrs = dataset.NewAttrs()
	}
	history := now().UTC().Format(HistoryTimeFormat) + " ; " + ToolTag
	if prior, ok := ds.Attrs.String("history"); ok {
		history += "\n" + prior
	}
	global.Set("history", history)
	if opts.TrackingID {
		global.Set("tracking_id", "hdl:21.14100/"+uuid.NewString())
	}
	ds.Attrs.Merge(global)
}

// Apply runs the coordinate, data variable and global steps in that order.
// Nothing is modified unless every name is known.
func Apply(ds *dataset.Dataset, opts Options) (*dataset.Dataset, error) {
	if err := Validate(ds); err != nil {
		return nil, err
	}
	if err := ApplyCoords(ds); err != nil {
		return nil, err
	}
	if err := ApplyVariables(ds); err != nil {
		return nil, err
	}
	ApplyGlobal(ds, opts)
	return ds, nil
}
