package dataset

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// Open reads a NetCDF file (classic or NetCDF-4) fully into memory.
func Open(filePath string) (*Dataset, error) {
	nc, err := netcdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filePath, err)
	}
	defer nc.Close()

	// HDF5 attributes come back in map order.
	sorted, err := isHDF5(filePath)
	if err != nil {
		return nil, err
	}

	ds := New()
	ds.Attrs = readAttrs(nc.Attributes(), sorted)
	var raws []*Variable
	for _, name := range nc.ListVariables() {
		v, raw, err := readVar(nc, name, sorted)
		if err != nil {
			return nil, fmt.Errorf("read variable %q from %s: %w", name, filePath, err)
		}
		if raw {
			ds.Vars = append(ds.Vars, v)
			raws = append(raws, v)
			continue
		}
		if err := ds.AddVar(v); err != nil {
			return nil, fmt.Errorf("read %s: %w", filePath, err)
		}
	}
	// Dimensions only used by non-numeric variables have no known length.
	for _, v := range raws {
		for _, dim := range v.Dims {
			if ds.Dim(dim) == nil {
				ds.Dims = append(ds.Dims, Dim{Name: dim})
			}
		}
	}
	return ds, nil
}

var hdf5Magic = []byte("\x89HDF\r\n\x1a\n")

func isHDF5(filePath string) (bool, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", filePath, err)
	}
	defer f.Close()

	magic := make([]byte, len(hdf5Magic))
	if _, err := io.ReadFull(f, magic); err != nil {
		return false, nil
	}
	return bytes.Equal(magic, hdf5Magic), nil
}

// readVar reports raw for text and compound variables, which are kept as
// read; the writer refuses them.
func readVar(nc api.Group, name string, sorted bool) (v *Variable, raw bool, err error) {
	vr, err := nc.GetVariable(name)
	if err != nil {
		return nil, false, err
	}
	v = &Variable{
		Name:  name,
		Dims:  append([]string(nil), vr.Dimensions...),
		Attrs: readAttrs(vr.Attributes, sorted),
	}
	flat, shape, err := flatten(vr.Values)
	if err != nil {
		v.Values = vr.Values
		v.Shape = make([]int, len(v.Dims))
		return v, true, nil
	}
	// Single-element variables may come back as bare scalars.
	for len(shape) < len(v.Dims) {
		shape = append(shape, 1)
	}
	v.Values = flat
	v.Shape = shape
	return v, false, nil
}

func readAttrs(am api.AttributeMap, sorted bool) *Attrs {
	a := NewAttrs()
	if am == nil {
		return a
	}
	keys := slices.Clone(am.Keys())
	if sorted {
		slices.Sort(keys)
	}
	for _, k := range keys {
		val, ok := am.Get(k)
		if !ok {
			continue
		}
		a.Set(k, normalizeAttr(val))
	}
	return a
}
