//go:build cgo

package writer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fhs/go-netcdf/netcdf"
)

// Format names the file format produced by this build.
const Format = "NETCDF4"

// unlimitedLen is the dimension length libnetcdf reads as unlimited.
const unlimitedLen = 0

var ncTypes = map[Type]netcdf.Type{
	Byte:   netcdf.BYTE,
	UByte:  netcdf.UBYTE,
	Short:  netcdf.SHORT,
	UShort: netcdf.USHORT,
	Int:    netcdf.INT,
	UInt:   netcdf.UINT,
	Int64:  netcdf.INT64,
	UInt64: netcdf.UINT64,
	Float:  netcdf.FLOAT,
	Double: netcdf.DOUBLE,
}

// storable returns t unchanged: NetCDF-4 holds every numeric type.
func storable(t Type) Type {
	return t
}

func encode(logger *slog.Logger, path string, p *plan) (err error) {
	nc, err := netcdf.CreateFile(path, netcdf.CLOBBER|netcdf.NETCDF4)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := nc.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close output: %w", cerr))
		}
	}()

	dims := make(map[string]netcdf.Dim, len(p.dims))
	for _, d := range p.dims {
		n := uint64(d.Len)
		if d.Name == p.unlimited {
			n = unlimitedLen
		}
		nd, err := nc.AddDim(d.Name, n)
		if err != nil {
			return fmt.Errorf("define dimension %q: %w", d.Name, err)
		}
		dims[d.Name] = nd
	}

	vars := make([]netcdf.Var, len(p.vars))
	for i, pv := range p.vars {
		vd := make([]netcdf.Dim, len(pv.v.Dims))
		for j, name := range pv.v.Dims {
			vd[j] = dims[name]
		}
		nv, err := nc.AddVar(pv.v.Name, ncTypes[pv.typ], vd)
		if err != nil {
			return fmt.Errorf("define variable %q: %w", pv.v.Name, err)
		}
		if pv.compress {
			if err := nv.SetCompression(true, true, DeflateLevel); err != nil {
				return fmt.Errorf("compress variable %q: %w", pv.v.Name, err)
			}
			logger.Debug("compressing variable", "var", pv.v.Name, "level", DeflateLevel)
		}
		for _, a := range pv.attrs {
			if err := putAttr(nv.Attr(a.name), a.value); err != nil {
				return fmt.Errorf("variable %q attribute %q: %w", pv.v.Name, a.name, err)
			}
		}
		vars[i] = nv
	}
	for _, a := range p.global {
		if err := putAttr(nc.Attr(a.name), a.value); err != nil {
			return fmt.Errorf("global attribute %q: %w", a.name, err)
		}
	}
	if err := nc.EndDef(); err != nil {
		return fmt.Errorf("end define mode: %w", err)
	}

	for i, pv := range p.vars {
		if err := putValues(vars[i], pv); err != nil {
			return fmt.Errorf("write variable %q: %w", pv.v.Name, err)
		}
	}
	return nil
}

// putValues writes the whole variable as one hyperslab, which also extends
// the record dimension.
func putValues(v netcdf.Var, pv plannedVar) error {
	if len(pv.v.Shape) == 0 {
		return putAll(v, pv.values)
	}
	start := make([]uint64, len(pv.v.Shape))
	count := make([]uint64, len(pv.v.Shape))
	for i, s := range pv.v.Shape {
		count[i] = uint64(s)
	}
	switch x := pv.values.(type) {
	case []int8:
		return v.WriteInt8Slice(x, start, count)
	case []uint8:
		return v.WriteUint8Slice(x, start, count)
	case []int16:
		return v.WriteInt16Slice(x, start, count)
	case []uint16:
		return v.WriteUint16Slice(x, start, count)
	case []int32:
		return v.WriteInt32Slice(x, start, count)
	case []uint32:
		return v.WriteUint32Slice(x, start, count)
	case []int64:
		return v.WriteInt64Slice(x, start, count)
	case []uint64:
		return v.WriteUint64Slice(x, start, count)
	case []float32:
		return v.WriteFloat32Slice(x, start, count)
	case []float64:
		return v.WriteFloat64Slice(x, start, count)
	}
	return fmt.Errorf("unsupported values %T", pv.values)
}

func putAll(v netcdf.Var, values any) error {
	switch x := values.(type) {
	case []int8:
		return v.WriteInt8s(x)
	case []uint8:
		return v.WriteUint8s(x)
	case []int16:
		return v.WriteInt16s(x)
	case []uint16:
		return v.WriteUint16s(x)
	case []int32:
		return v.WriteInt32s(x)
	case []uint32:
		return v.WriteUint32s(x)
	case []int64:
		return v.WriteInt64s(x)
	case []uint64:
		return v.WriteUint64s(x)
	case []float32:
		return v.WriteFloat32s(x)
	case []float64:
		return v.WriteFloat64s(x)
	}
	return fmt.Errorf("unsupported values %T", values)
}

func putAttr(a netcdf.Attr, value any) error {
	switch x := value.(type) {
	case string:
		return a.WriteBytes([]byte(x))
	case []int8:
		return a.WriteInt8s(x)
	case []uint8:
		return a.WriteUint8s(x)
	case []int16:
		return a.WriteInt16s(x)
	case []uint16:
		return a.WriteUint16s(x)
	case []int32:
		return a.WriteInt32s(x)
	case []uint32:
		return a.WriteUint32s(x)
	case []int64:
		return a.WriteInt64s(x)
	case []uint64:
		return a.WriteUint64s(x)
	case []float32:
		return a.WriteFloat32s(x)
	case []float64:
		return a.WriteFloat64s(x)
	}
	return fmt.Errorf("unsupported attribute value %T", value)
}
