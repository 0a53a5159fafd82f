package tree

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/geoxml/pkg/errors"
	"github.com/matzehuels/geoxml/pkg/geo"
)

// Policy decides what [Build] does with attributes of unexportable kinds.
type Policy string

const (
	// PolicySkip omits the attribute silently.
	PolicySkip Policy = "skip"
	// PolicyWarn omits the attribute; callers are expected to report
	// [Document.Skipped]. Build itself treats it like PolicySkip.
	PolicyWarn Policy = "warn"
	// PolicyError fails the build with ErrCodeUnsupportedKind.
	PolicyError Policy = "error"
)

// DefaultPolicy is the policy used when none is given.
const DefaultPolicy = PolicyWarn

// ParsePolicy validates a policy name. The empty string yields DefaultPolicy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(s)); p {
	case "":
		return DefaultPolicy, nil
	case PolicySkip, PolicyWarn, PolicyError:
		return p, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidPolicy, "invalid unknown-kind policy %q (must be skip, warn, or error)", s)
	}
}

// Document is the export tree.
type Document struct {
	// EmitterCount is the count read from the source. It is written as-is,
	// even when negative.
	EmitterCount int
	Emitters     []Emitter
	// Skipped lists attributes omitted for having unexportable kinds, in
	// source order. It is not serialized.
	Skipped []geo.Attribute
}

// Emitter holds the attributes of one emitter.
type Emitter struct {
	Index      int
	Attributes []Attribute
}

// Attribute holds the values one attribute has on one emitter.
type Attribute struct {
	Name   string
	Type   geo.Kind
	Values []Value
}

// Value is one list entry.
type Value struct {
	Index int
	Text  string
}

// Stats counts the elements of a document.
type Stats struct {
	Emitters   int
	Attributes int
	Values     int
}

// Stats returns element counts across all emitters.
func (d *Document) Stats() Stats {
	s := Stats{Emitters: len(d.Emitters)}
	for _, e := range d.Emitters {
		s.Attributes += len(e.Attributes)
		for _, a := range e.Attributes {
			s.Values += len(a.Values)
		}
	}
	return s
}

// BuildOption configures [Build].
type BuildOption func(*builder)

type builder struct {
	policy Policy
}

// WithPolicy sets the unknown-kind policy. The default is [DefaultPolicy].
func WithPolicy(p Policy) BuildOption { return func(b *builder) { b.policy = p } }

// Build walks src and assembles the export tree.
//
// Source errors are returned wrapped with the emitter and attribute they
// concern. ctx is checked between emitters.
func Build(ctx context.Context, src geo.Source, opts ...BuildOption) (*Document, error) {
	b := builder{policy: DefaultPolicy}
	for _, opt := range opts {
		opt(&b)
	}

	count, err := src.EmitterCount()
	if err != nil {
		return nil, fmt.Errorf("emitter count: %w", err)
	}

	doc := &Document{EmitterCount: count}

	var attribs []geo.Attribute
	for _, a := range src.PointAttributes() {
		if a.Kind.Exportable() {
			attribs = append(attribs, a)
			continue
		}
		if b.policy == PolicyError {
			return nil, errors.New(errors.ErrCodeUnsupportedKind, "attribute %q has unsupported kind %s", a.Name, a.Kind)
		}
		doc.Skipped = append(doc.Skipped, a)
	}

	if count > 0 {
		doc.Emitters = make([]Emitter, 0, count)
	}
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		em := Emitter{Index: i, Attributes: make([]Attribute, 0, len(attribs))}
		for _, a := range attribs {
			l, err := src.Values(a.Name, i)
			if err != nil {
				return nil, fmt.Errorf("emitter %d: attribute %s: %w", i, a.Name, err)
			}
			attr, err := buildAttribute(a, l)
			if err != nil {
				return nil, fmt.Errorf("emitter %d: %w", i, err)
			}
			em.Attributes = append(em.Attributes, attr)
		}
		doc.Emitters = append(doc.Emitters, em)
	}

	return doc, nil
}

// buildAttribute dispatches on the declared kind and stringifies every value.
func buildAttribute(a geo.Attribute, l geo.List) (Attribute, error) {
	if l.Kind != a.Kind && l.Len() > 0 {
		return Attribute{}, errors.New(errors.ErrCodeTypeMismatch, "attribute %q declared %s but holds %s", a.Name, a.Kind, l.Kind)
	}

	out := Attribute{Name: a.Name, Type: a.Kind}
	switch a.Kind {
	case geo.KindInt:
		out.Values = make([]Value, len(l.Ints))
		for i, v := range l.Ints {
			out.Values[i] = Value{Index: i, Text: FormatInt(v)}
		}
	case geo.KindFloat:
		out.Values = make([]Value, len(l.Floats))
		for i, v := range l.Floats {
			out.Values[i] = Value{Index: i, Text: FormatFloat(v)}
		}
	case geo.KindString:
		out.Values = make([]Value, len(l.Strings))
		for i, v := range l.Strings {
			if err := checkText(v); err != nil {
				return Attribute{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "attribute %q value %d", a.Name, i)
			}
			out.Values[i] = Value{Index: i, Text: v}
		}
	}
	return out, nil
}

// checkText reports whether s survives an XML round trip: valid UTF-8 made of
// characters the XML Char production allows.
func checkText(s string) error {
	for i, r := range s {
		if r == utf8.RuneError && !strings.HasPrefix(s[i:], "\uFFFD") {
			return fmt.Errorf("invalid UTF-8 at byte %d", i)
		}
		if !xmlChar(r) {
			return fmt.Errorf("character %U at byte %d is not allowed in XML", r, i)
		}
	}
	return nil
}

func xmlChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
