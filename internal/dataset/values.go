package dataset

import (
	"fmt"
	"reflect"
)

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// flatten converts the (possibly nested) slice returned by the NetCDF reader
// into a flat slice of the same element type and the shape it was read with.
// Scalars become one-element slices with an empty shape.
func flatten(v any) (any, []int, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, nil, fmt.Errorf("no values")
	}
	elem := rv.Type()
	for elem.Kind() == reflect.Slice {
		elem = elem.Elem()
	}
	if !isNumeric(elem.Kind()) {
		return nil, nil, fmt.Errorf("unsupported element type %s", elem)
	}

	var shape []int
	for cur := rv; cur.Kind() == reflect.Slice; cur = cur.Index(0) {
		shape = append(shape, cur.Len())
		if cur.Len() == 0 {
			for t := cur.Type().Elem(); t.Kind() == reflect.Slice; t = t.Elem() {
				shape = append(shape, 0)
			}
			break
		}
	}

	n := 1
	for _, s := range shape {
		n *= s
	}
	flat := reflect.MakeSlice(reflect.SliceOf(elem), 0, n)
	var walk func(x reflect.Value)
	walk = func(x reflect.Value) {
		switch {
		case x.Kind() != reflect.Slice:
			flat = reflect.Append(flat, x)
		case x.Type().Elem() == elem:
			flat = reflect.AppendSlice(flat, x)
		default:
			for i := 0; i < x.Len(); i++ {
				walk(x.Index(i))
			}
		}
	}
	walk(rv)
	if flat.Len() != n {
		return nil, nil, fmt.Errorf("ragged array: got %d values for shape %v", flat.Len(), shape)
	}
	return flat.Interface(), shape, nil
}

func valuesLen(v any) (int, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || !isNumeric(rv.Type().Elem().Kind()) {
		return 0, fmt.Errorf("values must be a flat numeric slice, got %T", v)
	}
	return rv.Len(), nil
}

// Float64s converts a flat numeric slice to float64 values.
func Float64s(v any) ([]float64, error) {
	if f, ok := v.([]float64); ok {
		return f, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || !isNumeric(rv.Type().Elem().Kind()) {
		return nil, fmt.Errorf("cannot convert %T to float64 values", v)
	}
	out := make([]float64, rv.Len())
	for i := range out {
		e := rv.Index(i)
		switch {
		case e.CanFloat():
			out[i] = e.Float()
		case e.CanInt():
			out[i] = float64(e.Int())
		default:
			out[i] = float64(e.Uint())
		}
	}
	return out, nil
}
