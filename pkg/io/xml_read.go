package io

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/matzehuels/geoxml/pkg/errors"
	"github.com/matzehuels/geoxml/pkg/geo"
	"github.com/matzehuels/geoxml/pkg/tree"
)

// ReadXML parses an export in either layout. Emitter elements may be named
// emitter<i> or plain emitter; plain ones are numbered in document order.
// A root without emitterCount takes the number of emitters read.
func ReadXML(r io.Reader) (*tree.Document, error) {
	dec := xml.NewDecoder(r)

	root, err := nextStart(dec)
	if err != nil {
		return nil, err
	}

	doc := &tree.Document{EmitterCount: -1}
	if s, ok := attrValue(root, "emitterCount"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "root emitterCount %q", s)
		}
		doc.EmitterCount = n
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, malformed(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			idx, ok := emitterIndex(t.Name.Local, len(doc.Emitters))
			if !ok {
				return nil, errors.New(errors.ErrCodeMalformedDocument, "unexpected element <%s> under root", t.Name.Local)
			}
			em, err := readEmitter(dec, idx)
			if err != nil {
				return nil, err
			}
			doc.Emitters = append(doc.Emitters, em)
		case xml.EndElement:
			if doc.EmitterCount < 0 {
				doc.EmitterCount = len(doc.Emitters)
			}
			return doc, nil
		}
	}
}

func nextStart(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return xml.StartElement{}, errors.New(errors.ErrCodeMalformedDocument, "empty document")
		}
		if err != nil {
			return xml.StartElement{}, malformed(err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

func emitterIndex(name string, next int) (int, bool) {
	rest, ok := strings.CutPrefix(name, "emitter")
	if !ok {
		return 0, false
	}
	if rest == "" {
		return next, true
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func readEmitter(dec *xml.Decoder, index int) (tree.Emitter, error) {
	em := tree.Emitter{Index: index}
	for {
		tok, err := dec.Token()
		if err != nil {
			return em, malformed(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "attribute" {
				return em, errors.New(errors.ErrCodeMalformedDocument, "emitter %d: unexpected element <%s>", index, t.Name.Local)
			}
			a, err := readAttribute(dec, t)
			if err != nil {
				return em, fmt.Errorf("emitter %d: %w", index, err)
			}
			em.Attributes = append(em.Attributes, a)
		case xml.EndElement:
			return em, nil
		}
	}
}

func readAttribute(dec *xml.Decoder, start xml.StartElement) (tree.Attribute, error) {
	var a tree.Attribute
	typ, _ := attrValue(start, "type")
	a.Type = geo.ParseKind(typ)
	name, hasName := attrValue(start, "name")

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return a, malformed(err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			if t.Name.Local != "value" {
				return a, errors.New(errors.ErrCodeMalformedDocument, "unexpected element <%s> in attribute", t.Name.Local)
			}
			v, err := readValue(dec, t, len(a.Values))
			if err != nil {
				return a, err
			}
			a.Values = append(a.Values, v)
		case xml.EndElement:
			if !hasName {
				name = strings.TrimSpace(text.String())
			}
			if name == "" {
				return a, errors.New(errors.ErrCodeMalformedDocument, "attribute without a name")
			}
			a.Name = name
			return a, nil
		}
	}
}

func readValue(dec *xml.Decoder, start xml.StartElement, pos int) (tree.Value, error) {
	v := tree.Value{Index: pos}
	if s, ok := attrValue(start, "index"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return v, errors.Wrap(errors.ErrCodeMalformedDocument, err, "value index %q", s)
		}
		v.Index = n
	}
	attrText, hasAttr := attrValue(start, "value")

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return v, malformed(err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			return v, errors.New(errors.ErrCodeMalformedDocument, "unexpected element <%s> in value", t.Name.Local)
		case xml.EndElement:
			v.Text = text.String()
			if hasAttr {
				v.Text = attrText
			}
			return v, nil
		}
	}
}

func attrValue(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func malformed(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return errors.Wrap(errors.ErrCodeMalformedDocument, err, "parse xml")
}

// ImportXML reads an export from the OS filesystem.
func ImportXML(path string) (*tree.Document, error) {
	return ImportXMLFS(afero.NewOsFs(), path)
}

// ImportXMLFS reads an export from fsys.
func ImportXMLFS(fsys afero.Fs, path string) (*tree.Document, error) {
	f, err := fsys.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := ReadXML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
