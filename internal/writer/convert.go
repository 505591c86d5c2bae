package writer

import (
	"fmt"
	"reflect"
)

// native maps a Go element kind onto the NetCDF-4 type that holds it.
func native(k reflect.Kind) (Type, bool) {
	switch k {
	case reflect.Int8:
		return Byte, true
	case reflect.Uint8:
		return UByte, true
	case reflect.Int16:
		return Short, true
	case reflect.Uint16:
		return UShort, true
	case reflect.Int32:
		return Int, true
	case reflect.Uint32:
		return UInt, true
	case reflect.Int, reflect.Int64:
		return Int64, true
	case reflect.Uint, reflect.Uint64:
		return UInt64, true
	case reflect.Float32:
		return Float, true
	case reflect.Float64:
		return Double, true
	}
	return Keep, false
}

func elemKind(v any) reflect.Kind {
	t := reflect.TypeOf(v)
	if t == nil {
		return reflect.Invalid
	}
	if t.Kind() == reflect.Slice {
		return t.Elem().Kind()
	}
	return t.Kind()
}

// resolveType picks the storage type for values under the requested type.
func resolveType(values any, want Type) (Type, error) {
	if want != Keep {
		return storable(want), nil
	}
	t, ok := native(elemKind(values))
	if !ok {
		return Keep, fmt.Errorf("cannot store values of type %T", values)
	}
	return storable(t), nil
}

// convert returns v (a numeric scalar or slice) as a slice of the Go type
// backing t.
func convert(v any, t Type) (any, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, fmt.Errorf("no value")
	}
	if rv.Kind() != reflect.Slice {
		s := reflect.MakeSlice(reflect.SliceOf(rv.Type()), 1, 1)
		s.Index(0).Set(rv)
		rv = s
	}
	if _, ok := native(rv.Type().Elem().Kind()); !ok {
		return nil, fmt.Errorf("cannot convert %T to %s", v, t)
	}
	var out reflect.Value
	switch t {
	case Byte:
		out = reflect.ValueOf(make([]int8, rv.Len()))
	case UByte:
		out = reflect.ValueOf(make([]uint8, rv.Len()))
	case Short:
		out = reflect.ValueOf(make([]int16, rv.Len()))
	case UShort:
		out = reflect.ValueOf(make([]uint16, rv.Len()))
	case Int:
		out = reflect.ValueOf(make([]int32, rv.Len()))
	case UInt:
		out = reflect.ValueOf(make([]uint32, rv.Len()))
	case Int64:
		out = reflect.ValueOf(make([]int64, rv.Len()))
	case UInt64:
		out = reflect.ValueOf(make([]uint64, rv.Len()))
	case Float:
		out = reflect.ValueOf(make([]float32, rv.Len()))
	case Double:
		out = reflect.ValueOf(make([]float64, rv.Len()))
	default:
		return nil, fmt.Errorf("unknown storage type %q", t)
	}
	for i := 0; i < rv.Len(); i++ {
		e, dst := rv.Index(i), out.Index(i)
		switch {
		case dst.CanFloat():
			dst.SetFloat(asFloat(e))
		case dst.CanInt():
			dst.SetInt(asInt(e))
		default:
			dst.SetUint(uint64(asInt(e)))
		}
	}
	return out.Interface(), nil
}

func asFloat(e reflect.Value) float64 {
	switch {
	case e.CanFloat():
		return e.Float()
	case e.CanInt():
		return float64(e.Int())
	}
	return float64(e.Uint())
}

func asInt(e reflect.Value) int64 {
	switch {
	case e.CanFloat():
		return int64(e.Float())
	case e.CanInt():
		return e.Int()
	}
	return int64(e.Uint())
}

// attrValue encodes an attribute: text stays a string, numbers become
// slices of their storable type, or of t when given.
func attrValue(v any, t Type) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	if t == Keep {
		k, ok := native(elemKind(v))
		if !ok {
			return nil, fmt.Errorf("unsupported attribute type %T", v)
		}
		t = storable(k)
	}
	return convert(v, t)
}
