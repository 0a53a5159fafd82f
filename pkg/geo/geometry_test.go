package geo

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/geoxml/pkg/errors"
)

func sample(t *testing.T) *Geometry {
	t.Helper()
	g := New()
	if err := g.SetDetail(DefaultCountAttrib, Ints(2)); err != nil {
		t.Fatal(err)
	}
	if err := g.AddPointAttrib("id", KindInt); err != nil {
		t.Fatal(err)
	}
	if err := g.AddPointAttrib("life", KindFloat); err != nil {
		t.Fatal(err)
	}
	if err := g.AddPoint(Point{"id": Ints(5, 7), "life": Floats(1.5)}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddPoint(Point{"id": Ints(9, 2)}); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestEmitterCount(t *testing.T) {
	g := sample(t)
	n, err := g.EmitterCount()
	if err != nil {
		t.Fatalf("EmitterCount: %v", err)
	}
	if n != 2 {
		t.Errorf("EmitterCount = %d, want 2", n)
	}
}

func TestEmitterCountErrors(t *testing.T) {
	tests := []struct {
		name   string
		detail List
		code   errors.Code
	}{
		{"float count", Floats(2), errors.ErrCodeTypeMismatch},
		{"empty count", Ints(), errors.ErrCodeTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			_ = g.SetDetail(DefaultCountAttrib, tt.detail)
			_, err := g.EmitterCount()
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}

	t.Run("missing", func(t *testing.T) {
		_, err := New().EmitterCount()
		if !errors.Is(err, errors.ErrCodeAttributeNotFound) {
			t.Errorf("err = %v, want ATTRIBUTE_NOT_FOUND", err)
		}
	})
}

func TestCustomCountAttrib(t *testing.T) {
	g := New()
	g.CountAttrib = "emitters"
	_ = g.SetDetail("emitters", Ints(4))
	n, err := g.EmitterCount()
	if err != nil || n != 4 {
		t.Errorf("EmitterCount = %d, %v; want 4, nil", n, err)
	}
}

func TestCountNotCheckedAgainstPoints(t *testing.T) {
	g := New()
	_ = g.SetDetail(DefaultCountAttrib, Ints(10))
	n, err := g.EmitterCount()
	if err != nil || n != 10 {
		t.Fatalf("EmitterCount = %d, %v", n, err)
	}
	if _, err := g.Values("id", 0); !errors.Is(err, errors.ErrCodeAttributeNotFound) {
		t.Errorf("Values on undeclared attribute: %v", err)
	}
}

func TestValues(t *testing.T) {
	g := sample(t)

	got, err := g.Values("id", 1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Ints(9, 2), got); diff != "" {
		t.Errorf("Values(id, 1) mismatch (-want +got):\n%s", diff)
	}

	got, err = g.Values("life", 1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != KindFloat || got.Len() != 0 {
		t.Errorf("omitted attribute should read back as empty float list, got %+v", got)
	}

	if _, err := g.Values("id", 2); !errors.Is(err, errors.ErrCodePointOutOfRange) {
		t.Errorf("Values(id, 2) err = %v, want POINT_OUT_OF_RANGE", err)
	}
	if _, err := g.Values("id", -1); !errors.Is(err, errors.ErrCodePointOutOfRange) {
		t.Errorf("Values(id, -1) err = %v, want POINT_OUT_OF_RANGE", err)
	}
}

func TestPointAttributesOrder(t *testing.T) {
	g := New()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := g.AddPointAttrib(name, KindString); err != nil {
			t.Fatal(err)
		}
	}
	want := []Attribute{{"zeta", KindString}, {"alpha", KindString}, {"mid", KindString}}
	if diff := cmp.Diff(want, g.PointAttributes()); diff != "" {
		t.Errorf("PointAttributes mismatch (-want +got):\n%s", diff)
	}
}

func TestAddPointAttribErrors(t *testing.T) {
	g := New()
	if err := g.AddPointAttrib("id", KindInt); err != nil {
		t.Fatal(err)
	}
	if err := g.AddPointAttrib("id", KindFloat); !errors.Is(err, errors.ErrCodeInvalidAttribute) {
		t.Errorf("duplicate: err = %v", err)
	}
	if err := g.AddPointAttrib("bad name", KindInt); !errors.Is(err, errors.ErrCodeInvalidAttribute) {
		t.Errorf("invalid name: err = %v", err)
	}
}

func TestAddPointErrors(t *testing.T) {
	g := New()
	_ = g.AddPointAttrib("id", KindInt)
	_ = g.AddPointAttrib("meta", KindDict)

	if err := g.AddPoint(Point{"other": Ints(1)}); !errors.Is(err, errors.ErrCodeAttributeNotFound) {
		t.Errorf("undeclared: err = %v", err)
	}
	if err := g.AddPoint(Point{"id": Strings("x")}); !errors.Is(err, errors.ErrCodeTypeMismatch) {
		t.Errorf("mismatch: err = %v", err)
	}
	if err := g.AddPoint(Point{"meta": Strings("{}")}); err != nil {
		t.Errorf("unexportable kinds accept any list: %v", err)
	}
	if g.NumPoints() != 1 {
		t.Errorf("NumPoints = %d, want 1", g.NumPoints())
	}
}

func TestDetailNames(t *testing.T) {
	g := New()
	_ = g.SetDetail("numEmitters", Ints(1))
	_ = g.SetDetail("name", Strings("fx"))
	_ = g.SetDetail("numEmitters", Ints(3))
	if diff := cmp.Diff([]string{"numEmitters", "name"}, g.DetailNames()); diff != "" {
		t.Errorf("DetailNames mismatch (-want +got):\n%s", diff)
	}
	if l, ok := g.Detail("numEmitters"); !ok || l.Ints[0] != 3 {
		t.Errorf("Detail(numEmitters) = %+v, %v", l, ok)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		in         string
		want       Kind
		exportable bool
	}{
		{"int", KindInt, true},
		{"Integer", KindInt, true},
		{"float", KindFloat, true},
		{"string", KindString, true},
		{"str", KindString, true},
		{"dict", KindDict, false},
		{"vector4", KindUnknown, false},
		{"", KindUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k := ParseKind(tt.in)
			if k != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.in, k, tt.want)
			}
			if k.Exportable() != tt.exportable {
				t.Errorf("%v.Exportable() = %v", k, k.Exportable())
			}
		})
	}
	if KindInt.String() != "int" || KindFloat.String() != "float" || KindString.String() != "string" {
		t.Error("type tags must be int, float, string")
	}
	if Kind(42).String() != "unknown" {
		t.Errorf("Kind(42).String() = %q", Kind(42).String())
	}
}
