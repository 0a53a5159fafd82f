package io

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/matzehuels/geoxml/pkg/errors"
	"github.com/matzehuels/geoxml/pkg/tree"
)

// Layout selects how attribute names and values are placed in the XML.
type Layout string

const (
	// LayoutText puts the attribute name and each value in element text.
	LayoutText Layout = "text"
	// LayoutAttr puts the attribute name and each value in XML attributes.
	LayoutAttr Layout = "attr"
)

// DefaultLayout is the layout used when none is given.
const DefaultLayout = LayoutText

// DefaultOutput is the path written when no output path is configured.
const DefaultOutput = "filename.xml"

// ParseLayout validates a layout name. The empty string yields DefaultLayout.
func ParseLayout(s string) (Layout, error) {
	switch l := Layout(strings.ToLower(s)); l {
	case "":
		return DefaultLayout, nil
	case LayoutText, LayoutAttr:
		return l, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidLayout, "invalid layout %q (must be text or attr)", s)
	}
}

// XMLOption configures XML output.
type XMLOption func(*xmlWriter)

type xmlWriter struct {
	layout      Layout
	declaration bool
}

// WithLayout sets the output layout. The default is [DefaultLayout].
func WithLayout(l Layout) XMLOption { return func(w *xmlWriter) { w.layout = l } }

// WithDeclaration prepends an XML declaration when enabled.
func WithDeclaration(enabled bool) XMLOption { return func(w *xmlWriter) { w.declaration = enabled } }

// WriteXML serializes doc to w. Output is compact: no indentation is added,
// and the same document always produces the same bytes.
func WriteXML(doc *tree.Document, w io.Writer, opts ...XMLOption) error {
	cfg := xmlWriter{layout: DefaultLayout}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.layout != LayoutText && cfg.layout != LayoutAttr {
		return errors.New(errors.ErrCodeInvalidLayout, "invalid layout %q", cfg.layout)
	}

	bw := bufio.NewWriter(w)
	if cfg.declaration {
		if _, err := io.WriteString(bw, xml.Header); err != nil {
			return err
		}
	}

	enc := xml.NewEncoder(bw)
	if err := cfg.encode(enc, doc); err != nil {
		return fmt.Errorf("encode xml: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	return bw.Flush()
}

func (cfg xmlWriter) encode(enc *xml.Encoder, doc *tree.Document) error {
	root := xml.StartElement{
		Name: xml.Name{Local: "root"},
		Attr: []xml.Attr{attr("emitterCount", strconv.Itoa(doc.EmitterCount))},
	}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}

	for _, e := range doc.Emitters {
		em := xml.StartElement{Name: xml.Name{Local: "emitter" + strconv.Itoa(e.Index)}}
		if err := enc.EncodeToken(em); err != nil {
			return err
		}
		for _, a := range e.Attributes {
			if err := cfg.encodeAttribute(enc, a); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(em.End()); err != nil {
			return err
		}
	}

	return enc.EncodeToken(root.End())
}

func (cfg xmlWriter) encodeAttribute(enc *xml.Encoder, a tree.Attribute) error {
	start := xml.StartElement{Name: xml.Name{Local: "attribute"}}
	if cfg.layout == LayoutAttr {
		start.Attr = append(start.Attr, attr("name", a.Name))
	}
	start.Attr = append(start.Attr, attr("type", a.Type.String()))
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if cfg.layout == LayoutText {
		if err := enc.EncodeToken(xml.CharData(a.Name)); err != nil {
			return err
		}
	}

	for _, v := range a.Values {
		el := xml.StartElement{
			Name: xml.Name{Local: "value"},
			Attr: []xml.Attr{attr("index", strconv.Itoa(v.Index))},
		}
		if cfg.layout == LayoutAttr {
			el.Attr = append(el.Attr, attr("value", v.Text))
		}
		if err := enc.EncodeToken(el); err != nil {
			return err
		}
		if cfg.layout == LayoutText && v.Text != "" {
			if err := enc.EncodeToken(xml.CharData(v.Text)); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(el.End()); err != nil {
			return err
		}
	}

	return enc.EncodeToken(start.End())
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// ExportXML writes doc to path on the OS filesystem, replacing any existing
// file.
func ExportXML(doc *tree.Document, path string, opts ...XMLOption) error {
	return ExportXMLFS(afero.NewOsFs(), doc, path, opts...)
}

// ExportXMLFS writes doc to path on fsys, replacing any existing file. The
// parent directory must exist.
func ExportXMLFS(fsys afero.Fs, doc *tree.Document, path string, opts ...XMLOption) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	var buf strings.Builder
	if err := WriteXML(doc, &buf, opts...); err != nil {
		return err
	}
	if err := afero.WriteFile(fsys, filepath.Clean(path), []byte(buf.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
