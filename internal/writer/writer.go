// Package writer serializes datasets to NetCDF files.
//
// Builds with cgo write NetCDF-4 through libnetcdf, which supports the
// deflate filter. Builds without cgo fall back to the NetCDF classic format,
// which stores every variable uncompressed.
package writer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/rtm0/ccammeta/internal/dataset"
)

// Writer writes datasets to disk according to an Encoding.
type Writer struct {
	logger *slog.Logger
}

// New creates a new writer.
func New(logger *slog.Logger) *Writer {
	return &Writer{logger: logger}
}

type attr struct {
	name  string
	value any
}

// plannedVar is a variable converted to its storage type.
type plannedVar struct {
	v        *dataset.Variable
	values   any
	typ      Type
	record   bool
	compress bool
	attrs    []attr
}

// plan is a dataset resolved against an Encoding, ready for a backend.
type plan struct {
	// dims has the record dimension first.
	dims      []dataset.Dim
	unlimited string
	vars      []plannedVar
	global    []attr
}

// Write stores ds at filePath. The file is assembled next to its final
// location and renamed into place, so a failed write leaves nothing behind.
func (w *Writer) Write(ds *dataset.Dataset, filePath string, enc Encoding) error {
	p, err := newPlan(ds, enc)
	if err != nil {
		return err
	}

	dir, base := filepath.Split(filePath)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	tmp := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("create output: %w", err)
	}

	if err := encode(w.logger, tmp, p); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, filePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("move output into place: %w", err)
	}
	w.logger.Debug("wrote dataset", "path", filePath, "format", Format, "vars", len(p.vars))
	return nil
}

func newPlan(ds *dataset.Dataset, enc Encoding) (*plan, error) {
	if enc.Unlimited != "" && ds.Dim(enc.Unlimited) == nil {
		return nil, fmt.Errorf("unlimited dimension %q is not defined", enc.Unlimited)
	}

	// The record dimension goes first; the order of the others is kept.
	dims := slices.Clone(ds.Dims)
	slices.SortStableFunc(dims, func(a, b dataset.Dim) int {
		switch {
		case a.Name == enc.Unlimited && b.Name != enc.Unlimited:
			return -1
		case b.Name == enc.Unlimited && a.Name != enc.Unlimited:
			return 1
		}
		return 0
	})
	p := &plan{dims: dims, unlimited: enc.Unlimited}

	for _, v := range ds.Vars {
		ve := enc.Vars[v.Name]
		typ, err := resolveType(v.Values, ve.Type)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", v.Name, err)
		}
		values, err := convert(v.Values, typ)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", v.Name, err)
		}
		record := enc.Unlimited != "" && slices.Contains(v.Dims, enc.Unlimited)
		if record && v.Dims[0] != enc.Unlimited {
			return nil, fmt.Errorf("variable %q: record dimension %q must come first", v.Name, enc.Unlimited)
		}

		pv := plannedVar{
			v:        v,
			values:   values,
			typ:      typ,
			record:   record,
			compress: ve.Compress && len(v.Dims) > 0,
		}
		for _, k := range v.Attrs.Keys() {
			isFill := k == "_FillValue" || k == "missing_value"
			if isFill && ve.NoFill {
				continue
			}
			val, _ := v.Attrs.Get(k)
			at := Keep
			if isFill {
				at = typ
			}
			av, err := attrValue(val, at)
			if err != nil {
				return nil, fmt.Errorf("variable %q attribute %q: %w", v.Name, k, err)
			}
			pv.attrs = append(pv.attrs, attr{name: k, value: av})
		}
		p.vars = append(p.vars, pv)
	}

	for _, k := range ds.Attrs.Keys() {
		val, _ := ds.Attrs.Get(k)
		av, err := attrValue(val, Keep)
		if err != nil {
			return nil, fmt.Errorf("global attribute %q: %w", k, err)
		}
		p.global = append(p.global, attr{name: k, value: av})
	}
	return p, nil
}
