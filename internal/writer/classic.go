//go:build !cgo

package writer

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"slices"

	"github.com/ctessum/cdf"
)

// Format names the file format produced by this build.
const Format = "CDF1"

// storable widens t to the smallest classic format type that holds it.
func storable(t Type) Type {
	switch t {
	case Byte, UByte:
		return Short
	case UShort:
		return Int
	case UInt, Int64, UInt64:
		return Double
	}
	return t
}

func (p *plan) hasRecords() bool {
	return slices.ContainsFunc(p.vars, func(v plannedVar) bool { return v.record })
}

func encode(logger *slog.Logger, path string, p *plan) error {
	names := make([]string, len(p.dims))
	lengths := make([]int, len(p.dims))
	for i, d := range p.dims {
		names[i] = d.Name
		lengths[i] = d.Len
		if d.Name == p.unlimited {
			lengths[i] = 0
		}
	}
	h := cdf.NewHeader(names, lengths)

	var uncompressed []string
	for _, pv := range p.vars {
		h.AddVariable(pv.v.Name, pv.v.Dims, zero(pv.typ))
		for _, a := range pv.attrs {
			h.AddAttribute(pv.v.Name, a.name, a.value)
		}
		if pv.compress {
			uncompressed = append(uncompressed, pv.v.Name)
		}
	}
	for _, a := range p.global {
		h.AddAttribute("", a.name, a.value)
	}
	h.Define()
	for _, err := range h.Check() {
		if err != nil {
			return fmt.Errorf("invalid header: %w", err)
		}
	}
	if len(uncompressed) > 0 {
		logger.Warn("built without cgo, the classic format stores these variables uncompressed", "vars", uncompressed)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	cf, err := cdf.Create(f, h)
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, pv := range p.vars {
		if err := writeVar(cf, pv); err != nil {
			return fmt.Errorf("write variable %q: %w", pv.v.Name, err)
		}
	}
	if p.hasRecords() {
		if err := cdf.UpdateNumRecs(f); err != nil {
			return fmt.Errorf("update record count: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

// writeVar writes fixed variables in one go and record variables one
// record at a time.
func writeVar(cf *cdf.File, p plannedVar) error {
	shape := p.v.Shape
	if len(shape) == 0 {
		_, err := cf.Writer(p.v.Name, nil, nil).Write(p.values)
		return err
	}
	if !p.record {
		begin := make([]int, len(shape))
		_, err := cf.Writer(p.v.Name, begin, slices.Clone(shape)).Write(p.values)
		return err
	}

	recLen := 1
	for _, s := range shape[1:] {
		recLen *= s
	}
	rv := reflect.ValueOf(p.values)
	for r := 0; r < shape[0]; r++ {
		begin := make([]int, len(shape))
		begin[0] = r
		end := slices.Clone(shape)
		end[0] = r + 1
		chunk := rv.Slice(r*recLen, (r+1)*recLen).Interface()
		if _, err := cf.Writer(p.v.Name, begin, end).Write(chunk); err != nil {
			return fmt.Errorf("record %d: %w", r, err)
		}
	}
	return nil
}

// zero returns the value ctessum/cdf uses to infer a variable's type.
func zero(t Type) any {
	switch t {
	case Short:
		return []int16{0}
	case Int:
		return []int32{0}
	case Float:
		return []float32{0}
	}
	return []float64{0}
}
