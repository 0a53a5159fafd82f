package geo

import (
	"slices"

	"github.com/matzehuels/geoxml/pkg/errors"
)

// DefaultCountAttrib is the detail attribute holding the number of emitters.
const DefaultCountAttrib = "numEmitters"

// Attribute names a point attribute and its kind.
type Attribute struct {
	Name string
	Kind Kind
}

// List is the value an attribute holds on one point. Exactly one of the slices
// is used, selected by Kind. The zero value is an empty list of KindUnknown.
type List struct {
	Kind    Kind
	Ints    []int64
	Floats  []float64
	Strings []string
}

// Ints returns an integer list.
func Ints(v ...int64) List { return List{Kind: KindInt, Ints: v} }

// Floats returns a floating-point list.
func Floats(v ...float64) List { return List{Kind: KindFloat, Floats: v} }

// Strings returns a string list.
func Strings(v ...string) List { return List{Kind: KindString, Strings: v} }

// Len returns the number of values in the list.
func (l List) Len() int {
	switch l.Kind {
	case KindInt:
		return len(l.Ints)
	case KindFloat:
		return len(l.Floats)
	case KindString:
		return len(l.Strings)
	default:
		return 0
	}
}

// Point maps attribute names to the lists stored on one point.
type Point map[string]List

// Source is the read-only query interface the exporter walks.
type Source interface {
	// EmitterCount returns the number of emitters to export.
	EmitterCount() (int, error)
	// PointAttributes returns the point attributes in declaration order.
	PointAttributes() []Attribute
	// Values returns the list attribute name holds on the point of emitter.
	Values(name string, emitter int) (List, error)
}

// Geometry is an in-memory [Source].
//
// The zero value is not usable - use [New].
type Geometry struct {
	// CountAttrib is the detail attribute EmitterCount reads.
	// Empty means DefaultCountAttrib.
	CountAttrib string

	detail  map[string]List
	order   []string // detail names in insertion order
	attribs []Attribute
	index   map[string]int // point attribute name -> position in attribs
	points  []Point
}

// New creates an empty geometry.
func New() *Geometry {
	return &Geometry{
		detail: make(map[string]List),
		index:  make(map[string]int),
	}
}

// SetDetail sets or replaces a detail attribute.
func (g *Geometry) SetDetail(name string, l List) error {
	if err := errors.ValidateAttributeName(name); err != nil {
		return err
	}
	if _, ok := g.detail[name]; !ok {
		g.order = append(g.order, name)
	}
	g.detail[name] = l
	return nil
}

// Detail returns the detail attribute with the given name.
func (g *Geometry) Detail(name string) (List, bool) {
	l, ok := g.detail[name]
	return l, ok
}

// DetailNames returns the detail attribute names in insertion order.
func (g *Geometry) DetailNames() []string {
	return slices.Clone(g.order)
}

// AddPointAttrib declares a point attribute. Declaration order is the order
// [Geometry.PointAttributes] reports.
func (g *Geometry) AddPointAttrib(name string, kind Kind) error {
	if err := errors.ValidateAttributeName(name); err != nil {
		return err
	}
	if _, ok := g.index[name]; ok {
		return errors.New(errors.ErrCodeInvalidAttribute, "duplicate point attribute %q", name)
	}
	g.index[name] = len(g.attribs)
	g.attribs = append(g.attribs, Attribute{Name: name, Kind: kind})
	return nil
}

// AddPoint appends a point. Values for undeclared attributes are rejected;
// declared attributes the point omits read back as empty lists.
func (g *Geometry) AddPoint(p Point) error {
	for name, l := range p {
		pos, ok := g.index[name]
		if !ok {
			return errors.New(errors.ErrCodeAttributeNotFound, "point %d: undeclared attribute %q", len(g.points), name)
		}
		if want := g.attribs[pos].Kind; want.Exportable() && l.Kind != want {
			return errors.New(errors.ErrCodeTypeMismatch, "point %d: attribute %q holds %s, declared %s", len(g.points), name, l.Kind, want)
		}
	}
	g.points = append(g.points, p)
	return nil
}

// NumPoints returns the number of points.
func (g *Geometry) NumPoints() int { return len(g.points) }

// EmitterCount reads the integer detail attribute named by CountAttrib.
// The count is not checked against the number of points.
func (g *Geometry) EmitterCount() (int, error) {
	name := g.CountAttrib
	if name == "" {
		name = DefaultCountAttrib
	}
	l, ok := g.detail[name]
	if !ok {
		return 0, errors.New(errors.ErrCodeAttributeNotFound, "no detail attribute %q", name)
	}
	if l.Kind != KindInt {
		return 0, errors.New(errors.ErrCodeTypeMismatch, "detail attribute %q is %s, want int", name, l.Kind)
	}
	if len(l.Ints) == 0 {
		return 0, errors.New(errors.ErrCodeTypeMismatch, "detail attribute %q is empty", name)
	}
	return int(l.Ints[0]), nil
}

// PointAttributes returns a copy of the declared point attributes.
func (g *Geometry) PointAttributes() []Attribute {
	return slices.Clone(g.attribs)
}

// Values returns the list attribute name holds on point emitter.
func (g *Geometry) Values(name string, emitter int) (List, error) {
	pos, ok := g.index[name]
	if !ok {
		return List{}, errors.New(errors.ErrCodeAttributeNotFound, "no point attribute %q", name)
	}
	if emitter < 0 || emitter >= len(g.points) {
		return List{}, errors.New(errors.ErrCodePointOutOfRange, "emitter %d has no point (geometry has %d points)", emitter, len(g.points))
	}
	l, ok := g.points[emitter][name]
	if !ok {
		return List{Kind: g.attribs[pos].Kind}, nil
	}
	return l, nil
}

var _ Source = (*Geometry)(nil)
