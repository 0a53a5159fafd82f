package io

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/afero"

	"github.com/matzehuels/geoxml/pkg/errors"
	"github.com/matzehuels/geoxml/pkg/geo"
)

// Format identifies a geometry file format.
type Format string

// Supported geometry formats.
const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
	FormatArrow Format = "arrow"
)

var formatsByExt = map[string]Format{
	".json":  FormatJSON,
	".yaml":  FormatYAML,
	".yml":   FormatYAML,
	".toml":  FormatTOML,
	".arrow": FormatArrow,
	".ipc":   FormatArrow,
}

// DetectFormat returns the geometry format implied by the file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatsByExt[ext]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported geometry file %q (want .json, .yaml, .yml, .toml, .arrow or .ipc)", path)
}

// ReadGeometry decodes a geometry in the given format from r.
func ReadGeometry(r io.Reader, f Format) (*geo.Geometry, error) {
	switch f {
	case FormatJSON:
		return ReadGeometryJSON(r)
	case FormatYAML:
		return ReadGeometryYAML(r)
	case FormatTOML:
		return ReadGeometryTOML(r)
	case FormatArrow:
		return ReadGeometryArrow(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown geometry format %q", f)
	}
}

// ImportGeometry reads the geometry file at path from the OS filesystem.
func ImportGeometry(path string) (*geo.Geometry, error) {
	return ImportGeometryFS(afero.NewOsFs(), path)
}

// ImportGeometryFS reads the geometry file at path from fsys, choosing the
// decoder from the file extension.
func ImportGeometryFS(fsys afero.Fs, path string) (*geo.Geometry, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	file, err := fsys.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	g, err := ReadGeometry(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// geometryFile is the shared JSON/YAML/TOML layout.
type geometryFile struct {
	Detail     []attribEntry    `json:"detail" yaml:"detail" toml:"detail"`
	Attributes []attribEntry    `json:"attributes" yaml:"attributes" toml:"attributes"`
	Points     []map[string]any `json:"points" yaml:"points" toml:"points"`
}

type attribEntry struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Type   string `json:"type" yaml:"type" toml:"type"`
	Values any    `json:"values,omitempty" yaml:"values,omitempty" toml:"values,omitempty"`
}

// build converts the decoded file into a Geometry.
func (f *geometryFile) build() (*geo.Geometry, error) {
	g := geo.New()

	for _, d := range f.Detail {
		kind := geo.ParseKind(d.Type)
		l, err := toList(kind, d.Values)
		if err != nil {
			return nil, fmt.Errorf("detail %s: %w", d.Name, err)
		}
		if err := g.SetDetail(d.Name, l); err != nil {
			return nil, err
		}
	}

	kinds := make(map[string]geo.Kind, len(f.Attributes))
	for _, a := range f.Attributes {
		kind := geo.ParseKind(a.Type)
		if err := g.AddPointAttrib(a.Name, kind); err != nil {
			return nil, err
		}
		kinds[a.Name] = kind
	}

	for i, raw := range f.Points {
		p := make(geo.Point, len(raw))
		for name, v := range raw {
			kind, ok := kinds[name]
			if !ok {
				return nil, errors.New(errors.ErrCodeAttributeNotFound, "point %d: undeclared attribute %q", i, name)
			}
			if !kind.Exportable() {
				continue
			}
			l, err := toList(kind, v)
			if err != nil {
				return nil, fmt.Errorf("point %d: attribute %s: %w", i, name, err)
			}
			p[name] = l
		}
		if err := g.AddPoint(p); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// toList converts a decoded scalar or array into a typed list. Unexportable
// kinds produce an empty list of that kind.
func toList(kind geo.Kind, raw any) (geo.List, error) {
	var items []any
	switch v := raw.(type) {
	case nil:
	case []any:
		items = v
	default:
		items = []any{v}
	}

	l := geo.List{Kind: kind}
	for i, item := range items {
		switch kind {
		case geo.KindInt:
			n, err := toInt(item)
			if err != nil {
				return geo.List{}, fmt.Errorf("value %d: %w", i, err)
			}
			l.Ints = append(l.Ints, n)
		case geo.KindFloat:
			f, err := toFloat(item)
			if err != nil {
				return geo.List{}, fmt.Errorf("value %d: %w", i, err)
			}
			l.Floats = append(l.Floats, f)
		case geo.KindString:
			s, ok := item.(string)
			if !ok {
				return geo.List{}, errors.New(errors.ErrCodeTypeMismatch, "value %d: %v is not a string", i, item)
			}
			l.Strings = append(l.Strings, s)
		}
	}
	return l, nil
}

func toInt(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, errors.New(errors.ErrCodeTypeMismatch, "%d overflows int64", n)
		}
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, errors.New(errors.ErrCodeTypeMismatch, "%v is not an integer", n)
		}
		// 2^63 is exactly representable; anything from there up overflows int64.
		if n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, errors.New(errors.ErrCodeTypeMismatch, "%v overflows int64", n)
		}
		return int64(n), nil
	case json.Number:
		i, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeTypeMismatch, err, "%s is not an integer", n.String())
		}
		return i, nil
	default:
		return 0, errors.New(errors.ErrCodeTypeMismatch, "%v is not an integer", v)
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		f, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeTypeMismatch, err, "%s is not a number", n.String())
		}
		return f, nil
	default:
		return 0, errors.New(errors.ErrCodeTypeMismatch, "%v is not a number", v)
	}
}
