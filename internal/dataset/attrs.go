package dataset

import (
	"fmt"
	"reflect"
	"slices"
)

// Attrs is an attribute scope (global or per-variable) that remembers the
// order in which keys were first set.
type Attrs struct {
	keys []string
	vals map[string]any
}

// NewAttrs creates an empty attribute scope.
func NewAttrs() *Attrs {
	return &Attrs{vals: make(map[string]any)}
}

// AttrsOf creates an attribute scope from alternating key/value arguments.
// It panics if a key is not a string, which makes it suitable for static
// tables only.
func AttrsOf(kv ...any) *Attrs {
	if len(kv)%2 != 0 {
		panic("dataset: AttrsOf needs key/value pairs")
	}
	a := NewAttrs()
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("dataset: attribute key %v is not a string", kv[i]))
		}
		a.Set(k, kv[i+1])
	}
	return a
}

// Keys returns the attribute names in insertion order.
func (a *Attrs) Keys() []string {
	if a == nil {
		return nil
	}
	return slices.Clone(a.keys)
}

// Len returns the number of attributes.
func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Get returns the value of the named attribute.
func (a *Attrs) Get(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.vals[key]
	return v, ok
}

// String returns the attribute formatted as a string. Text attributes are
// returned verbatim.
func (a *Attrs) String(key string) (string, bool) {
	v, ok := a.Get(key)
	if !ok {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// Has reports whether the named attribute is present.
func (a *Attrs) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Set adds or replaces an attribute. Replacing keeps the original position.
func (a *Attrs) Set(key string, val any) {
	if a.vals == nil {
		a.vals = make(map[string]any)
	}
	if _, ok := a.vals[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.vals[key] = val
}

// Delete removes an attribute if present.
func (a *Attrs) Delete(key string) {
	if _, ok := a.vals[key]; !ok {
		return
	}
	delete(a.vals, key)
	a.keys = slices.DeleteFunc(a.keys, func(k string) bool { return k == key })
}

// Merge sets every attribute of other on a, overwriting existing keys.
func (a *Attrs) Merge(other *Attrs) {
	for _, k := range other.Keys() {
		v, _ := other.Get(k)
		a.Set(k, v)
	}
}

// Clone returns a copy of a. Slice values are copied too, so the clone can
// be mutated freely.
func (a *Attrs) Clone() *Attrs {
	c := NewAttrs()
	for _, k := range a.Keys() {
		v, _ := a.Get(k)
		c.Set(k, cloneValue(v))
	}
	return c
}

// Map returns the attributes as a plain map.
func (a *Attrs) Map() map[string]any {
	m := make(map[string]any, a.Len())
	for _, k := range a.Keys() {
		m[k], _ = a.Get(k)
	}
	return m
}

func cloneValue(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return v
	}
	c := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	reflect.Copy(c, rv)
	return c.Interface()
}

// normalizeAttr turns single-element slices into scalars so that values
// read from CDF and HDF5 files compare the same way.
func normalizeAttr(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Len() == 1 {
		return rv.Index(0).Interface()
	}
	return v
}
