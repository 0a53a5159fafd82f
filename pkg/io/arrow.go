package io

import (
	"fmt"
	"io"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"

	"github.com/matzehuels/geoxml/pkg/errors"
	"github.com/matzehuels/geoxml/pkg/geo"
)

// ReadGeometryArrow decodes an Arrow IPC stream holding one row per point.
// Rows from all record batches are appended in order. Column names and
// metadata keys must be valid attribute names; any other name fails the
// whole read with INVALID_ATTRIBUTE naming the column.
func ReadGeometryArrow(r io.Reader) (*geo.Geometry, error) {
	reader, err := ipc.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open arrow stream")
	}
	defer reader.Release()

	g := geo.New()
	schema := reader.Schema()

	md := schema.Metadata()
	keys, vals := md.Keys(), md.Values()
	for i, k := range keys {
		l := geo.Strings(vals[i])
		if n, err := strconv.ParseInt(vals[i], 10, 64); err == nil {
			l = geo.Ints(n)
		}
		if err := g.SetDetail(k, l); err != nil {
			return nil, fmt.Errorf("schema metadata key %q: %w", k, err)
		}
	}

	fields := schema.Fields()
	kinds := make([]geo.Kind, len(fields))
	for i, f := range fields {
		kinds[i] = arrowKind(f.Type)
		if err := g.AddPointAttrib(f.Name, kinds[i]); err != nil {
			return nil, fmt.Errorf("column %d %q (rename to letters, digits and underscores): %w", i, f.Name, err)
		}
	}

	for reader.Next() {
		rec := reader.Record()
		for row := 0; row < int(rec.NumRows()); row++ {
			p := make(geo.Point, len(fields))
			for c, f := range fields {
				if !kinds[c].Exportable() {
					continue
				}
				l, err := arrowList(kinds[c], rec.Column(c), row)
				if err != nil {
					return nil, fmt.Errorf("row %d: column %s: %w", g.NumPoints(), f.Name, err)
				}
				p[f.Name] = l
			}
			if err := g.AddPoint(p); err != nil {
				return nil, err
			}
		}
	}
	if err := reader.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read arrow record")
	}
	return g, nil
}

// arrowKind maps a column type to an attribute kind. List columns take the
// kind of their element type.
func arrowKind(dt arrow.DataType) geo.Kind {
	switch dt.ID() {
	case arrow.INT32, arrow.INT64:
		return geo.KindInt
	case arrow.FLOAT32, arrow.FLOAT64:
		return geo.KindFloat
	case arrow.STRING:
		return geo.KindString
	case arrow.STRUCT, arrow.MAP:
		return geo.KindDict
	case arrow.LIST:
		elem := dt.(*arrow.ListType).Elem()
		if elem.ID() == arrow.LIST {
			return geo.KindUnknown
		}
		if k := arrowKind(elem); k.Exportable() {
			return k
		}
	}
	return geo.KindUnknown
}

// arrowList reads one cell as a list. A null cell is an empty list.
func arrowList(kind geo.Kind, col arrow.Array, row int) (geo.List, error) {
	out := geo.List{Kind: kind}
	if col.IsNull(row) {
		return out, nil
	}

	values, start, end := col, row, row+1
	if l, ok := col.(*array.List); ok {
		s, e := l.ValueOffsets(row)
		values, start, end = l.ListValues(), int(s), int(e)
	}

	for i := start; i < end; i++ {
		if values.IsNull(i) {
			return geo.List{}, errors.New(errors.ErrCodeTypeMismatch, "null list element %d", i-start)
		}
		switch v := values.(type) {
		case *array.Int32:
			out.Ints = append(out.Ints, int64(v.Value(i)))
		case *array.Int64:
			out.Ints = append(out.Ints, v.Value(i))
		case *array.Float32:
			out.Floats = append(out.Floats, float64(v.Value(i)))
		case *array.Float64:
			out.Floats = append(out.Floats, v.Value(i))
		case *array.String:
			out.Strings = append(out.Strings, v.Value(i))
		default:
			return geo.List{}, errors.New(errors.ErrCodeTypeMismatch, "unsupported arrow type %s", values.DataType())
		}
	}
	return out, nil
}
