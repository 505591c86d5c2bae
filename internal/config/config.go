package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/rtm0/ccammeta/internal/dataset"
	"github.com/rtm0/ccammeta/internal/metadata"
)

// ErrUnknownFormat is returned for override files that are neither YAML nor
// TOML.
var ErrUnknownFormat = errors.New("unknown config format")

// Overrides is the content of a global attribute override file.
type Overrides struct {
	// ReplaceDefaults discards the built-in global record instead of
	// layering Attributes on top of it.
	ReplaceDefaults bool `yaml:"replace_defaults" toml:"replace_defaults"`
	// TrackingID requests a generated tracking_id attribute.
	TrackingID bool           `yaml:"tracking_id" toml:"tracking_id"`
	Attributes map[string]any `yaml:"attributes" toml:"attributes"`
}

// Load reads an override file. The format is chosen by extension: .yaml or
// .yml for YAML, .toml for TOML.
func Load(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	var o Overrides
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &o)
	case ".toml":
		err = toml.Unmarshal(data, &o)
	default:
		return nil, fmt.Errorf("%w %q: use .yaml, .yml or .toml", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &o, nil
}

// GlobalAttrs returns the global record described by o: a fresh copy of the
// defaults with the overrides applied, or only the overrides when
// ReplaceDefaults is set. Keys not in the defaults are appended in sorted
// order.
func (o *Overrides) GlobalAttrs() (*dataset.Attrs, error) {
	attrs := metadata.DefaultGlobal()
	if o.ReplaceDefaults {
		attrs = dataset.NewAttrs()
	}

	keys := make([]string, 0, len(o.Attributes))
	for k := range o.Attributes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		v, err := attrValue(o.Attributes[k])
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		attrs.Set(k, v)
	}
	return attrs, nil
}

// attrValue maps decoded YAML/TOML values onto NetCDF attribute values.
func attrValue(v any) (any, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case int:
		return intAttr(int64(x)), nil
	case int64:
		return intAttr(x), nil
	case uint64:
		return float64(x), nil
	case float64:
		return x, nil
	case []any:
		return listAttr(x)
	}
	return nil, fmt.Errorf("unsupported value %v (%T)", v, v)
}

func intAttr(n int64) any {
	if n >= math.MinInt32 && n <= math.MaxInt32 {
		return int32(n)
	}
	return float64(n)
}

func listAttr(xs []any) (any, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	allInt := true
	fs := make([]float64, len(xs))
	for i, x := range xs {
		v, err := attrValue(x)
		if err != nil {
			return nil, err
		}
		switch n := v.(type) {
		case int32:
			fs[i] = float64(n)
		case float64:
			fs[i] = n
			allInt = false
		default:
			return nil, fmt.Errorf("lists must hold numbers only, got %T", v)
		}
	}
	if !allInt {
		return fs, nil
	}
	is := make([]int32, len(fs))
	for i, f := range fs {
		is[i] = int32(f)
	}
	return is, nil
}
