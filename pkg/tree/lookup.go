package tree

import (
	"strconv"
	"strings"

	"github.com/matzehuels/geoxml/pkg/errors"
)

// Emitter returns the emitter with the given index.
func (d *Document) Emitter(index int) (*Emitter, error) {
	for i := range d.Emitters {
		if d.Emitters[i].Index == index {
			return &d.Emitters[i], nil
		}
	}
	return nil, errors.New(errors.ErrCodeEmitterNotFound, "no emitter %d (document has %d)", index, len(d.Emitters))
}

// Attribute returns the first attribute with the given name.
func (e *Emitter) Attribute(name string) (*Attribute, error) {
	for i := range e.Attributes {
		if e.Attributes[i].Name == name {
			return &e.Attributes[i], nil
		}
	}
	return nil, errors.New(errors.ErrCodeAttributeNotFound, "emitter %d has no attribute %q", e.Index, name)
}

// Value returns the value with the given index.
func (a *Attribute) Value(index int) (Value, error) {
	for _, v := range a.Values {
		if v.Index == index {
			return v, nil
		}
	}
	return Value{}, errors.New(errors.ErrCodeValueNotFound, "attribute %q has no value %d", a.Name, index)
}

// Lookup returns the raw value text at emitter/attribute/index.
func (d *Document) Lookup(emitter int, attribute string, index int) (Value, error) {
	e, err := d.Emitter(emitter)
	if err != nil {
		return Value{}, err
	}
	a, err := e.Attribute(attribute)
	if err != nil {
		return Value{}, err
	}
	return a.Value(index)
}

// Int parses the value at emitter/attribute/index as an integer.
func (d *Document) Int(emitter int, attribute string, index int) (int64, error) {
	v, err := d.Lookup(emitter, attribute, index)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v.Text), 10, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeTypeMismatch, err, "%s[%d] on emitter %d is not an integer", attribute, index, emitter)
	}
	return n, nil
}

// Float parses the value at emitter/attribute/index as a float. Integer text
// parses too.
func (d *Document) Float(emitter int, attribute string, index int) (float64, error) {
	v, err := d.Lookup(emitter, attribute, index)
	if err != nil {
		return 0, err
	}
	f, err := ParseFloat(v.Text)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeTypeMismatch, err, "%s[%d] on emitter %d is not a float", attribute, index, emitter)
	}
	return f, nil
}

// String returns the value text at emitter/attribute/index.
func (d *Document) String(emitter int, attribute string, index int) (string, error) {
	v, err := d.Lookup(emitter, attribute, index)
	if err != nil {
		return "", err
	}
	return v.Text, nil
}
