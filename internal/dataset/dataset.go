package dataset

import (
	"errors"
	"fmt"
)

// ErrInconsistentShape is returned when a variable's dimensions, shape and
// values disagree.
var ErrInconsistentShape = errors.New("inconsistent shape")

// Dim is a named dimension of a dataset.
type Dim struct {
	Name string
	Len  int
	// Unlimited marks a record (appendable) dimension.
	Unlimited bool
}

// Variable is a named array defined over zero or more dimensions.
type Variable struct {
	Name  string
	Dims  []string
	Shape []int
	// Values holds the data flattened in row-major order, e.g. []float32.
	Values any
	Attrs  *Attrs
}

// IsCoord reports whether v is a dimension coordinate, i.e. a one
// dimensional variable named after its own dimension.
func (v *Variable) IsCoord() bool {
	return len(v.Dims) == 1 && v.Dims[0] == v.Name
}

// Len returns the number of values held by the variable.
func (v *Variable) Len() int {
	n := 1
	for _, s := range v.Shape {
		n *= s
	}
	return n
}

// Dataset is an in-memory collection of coordinates, data variables and
// global attributes.
type Dataset struct {
	Dims  []Dim
	Vars  []*Variable
	Attrs *Attrs
}

// New creates an empty dataset.
func New() *Dataset {
	return &Dataset{Attrs: NewAttrs()}
}

// AddVar appends a variable, registering any dimension not seen before with
// the corresponding length from the variable's shape.
func (ds *Dataset) AddVar(v *Variable) error {
	if len(v.Dims) != len(v.Shape) {
		return fmt.Errorf("%w: variable %q has %d dimensions but a shape of rank %d", ErrInconsistentShape, v.Name, len(v.Dims), len(v.Shape))
	}
	if ds.Var(v.Name) != nil {
		return fmt.Errorf("variable %q already defined", v.Name)
	}
	if n, err := valuesLen(v.Values); err != nil {
		return fmt.Errorf("variable %q: %w", v.Name, err)
	} else if n != v.Len() {
		return fmt.Errorf("%w: variable %q holds %d values, shape %v needs %d", ErrInconsistentShape, v.Name, n, v.Shape, v.Len())
	}
	for i, name := range v.Dims {
		d := ds.Dim(name)
		if d == nil {
			ds.Dims = append(ds.Dims, Dim{Name: name, Len: v.Shape[i]})
			continue
		}
		if d.Len != v.Shape[i] {
			return fmt.Errorf("%w: variable %q: dimension %q has length %d, want %d", ErrInconsistentShape, v.Name, name, v.Shape[i], d.Len)
		}
	}
	if v.Attrs == nil {
		v.Attrs = NewAttrs()
	}
	ds.Vars = append(ds.Vars, v)
	return nil
}

// Var returns the named variable or nil.
func (ds *Dataset) Var(name string) *Variable {
	for _, v := range ds.Vars {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Dim returns the named dimension or nil.
func (ds *Dataset) Dim(name string) *Dim {
	for i := range ds.Dims {
		if ds.Dims[i].Name == name {
			return &ds.Dims[i]
		}
	}
	return nil
}

// Coords returns the coordinate variables in file order.
func (ds *Dataset) Coords() []*Variable {
	var cs []*Variable
	for _, v := range ds.Vars {
		if v.IsCoord() {
			cs = append(cs, v)
		}
	}
	return cs
}

// DataVars returns the data variables in file order.
func (ds *Dataset) DataVars() []*Variable {
	var dvs []*Variable
	for _, v := range ds.Vars {
		if !v.IsCoord() {
			dvs = append(dvs, v)
		}
	}
	return dvs
}

// Summary returns the summary information about the dataset suitable for
// logging.
func (ds *Dataset) Summary() []any {
	dims := make([]string, 0, len(ds.Dims))
	for _, d := range ds.Dims {
		dims = append(dims, fmt.Sprintf("%s=%d", d.Name, d.Len))
	}
	names := func(vs []*Variable) []string {
		out := make([]string, 0, len(vs))
		for _, v := range vs {
			out = append(out, v.Name)
		}
		return out
	}
	return []any{
		"dims", dims,
		"coords", names(ds.Coords()),
		"dataVars", names(ds.DataVars()),
		"globalAttrCnt", ds.Attrs.Len(),
	}
}
