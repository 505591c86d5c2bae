package writer

import (
	"github.com/rtm0/ccammeta/internal/dataset"
)

// Type is a NetCDF storage type named as in CDL.
type Type string

const (
	// Keep stores a variable in the type it was read with. Builds without
	// cgo widen it where the classic format has no equivalent.
	Keep   Type = ""
	Byte   Type = "byte"
	UByte  Type = "ubyte"
	Short  Type = "short"
	UShort Type = "ushort"
	Int    Type = "int"
	UInt   Type = "uint"
	Int64  Type = "int64"
	UInt64 Type = "uint64"
	Float  Type = "float"
	Double Type = "double"
)

// DeflateLevel is the zlib level used for compressed variables.
const DeflateLevel = 4

// VarEncoding is the serialization policy for one variable.
type VarEncoding struct {
	Type Type
	// Compress stores the variable with the shuffle and deflate filters.
	Compress bool
	// NoFill drops _FillValue and missing_value.
	NoFill bool
}

// Encoding is the serialization policy for a dataset.
type Encoding struct {
	Vars map[string]VarEncoding
	// Unlimited names the record dimension, if any.
	Unlimited string
}

// DefaultEncoding returns the CF policy for annotated CCAM output: lon and
// lat without fill markers, time as double without a fill marker, all data
// variables compressed and time as the record dimension.
func DefaultEncoding(ds *dataset.Dataset) Encoding {
	enc := Encoding{
		Vars: map[string]VarEncoding{
			"lon":  {NoFill: true},
			"lat":  {NoFill: true},
			"time": {NoFill: true, Type: Double},
		},
		Unlimited: "time",
	}
	for _, v := range ds.DataVars() {
		enc.Vars[v.Name] = VarEncoding{Compress: true}
	}
	return enc
}
