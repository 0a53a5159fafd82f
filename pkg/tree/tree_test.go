package tree

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/geoxml/pkg/errors"
	"github.com/matzehuels/geoxml/pkg/geo"
)

func twoEmitters(t *testing.T) *geo.Geometry {
	t.Helper()
	g := geo.New()
	_ = g.SetDetail(geo.DefaultCountAttrib, geo.Ints(2))
	_ = g.AddPointAttrib("id", geo.KindInt)
	if err := g.AddPoint(geo.Point{"id": geo.Ints(5, 7)}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddPoint(geo.Point{"id": geo.Ints(9, 2)}); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestBuildTwoEmitters(t *testing.T) {
	doc, err := Build(context.Background(), twoEmitters(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := &Document{
		EmitterCount: 2,
		Emitters: []Emitter{
			{Index: 0, Attributes: []Attribute{{Name: "id", Type: geo.KindInt, Values: []Value{{0, "5"}, {1, "7"}}}}},
			{Index: 1, Attributes: []Attribute{{Name: "id", Type: geo.KindInt, Values: []Value{{0, "9"}, {1, "2"}}}}},
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildShape(t *testing.T) {
	g := geo.New()
	_ = g.SetDetail(geo.DefaultCountAttrib, geo.Ints(3))
	_ = g.AddPointAttrib("id", geo.KindInt)
	_ = g.AddPointAttrib("life", geo.KindFloat)
	_ = g.AddPointAttrib("name", geo.KindString)
	lens := []int{1, 4, 0}
	for i, n := range lens {
		p := geo.Point{
			"id":   geo.Ints(make([]int64, n)...),
			"life": geo.Floats(make([]float64, n+1)...),
			"name": geo.Strings(make([]string, i)...),
		}
		if err := g.AddPoint(p); err != nil {
			t.Fatal(err)
		}
	}

	doc, err := Build(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Emitters) != 3 {
		t.Fatalf("emitters = %d, want 3", len(doc.Emitters))
	}
	for i, e := range doc.Emitters {
		if e.Index != i {
			t.Errorf("emitter %d has index %d", i, e.Index)
		}
		if len(e.Attributes) != 3 {
			t.Fatalf("emitter %d: attributes = %d, want 3", i, len(e.Attributes))
		}
		wantLens := []int{lens[i], lens[i] + 1, i}
		for j, a := range e.Attributes {
			if len(a.Values) != wantLens[j] {
				t.Errorf("emitter %d attribute %s: %d values, want %d", i, a.Name, len(a.Values), wantLens[j])
			}
			for k, v := range a.Values {
				if v.Index != k {
					t.Errorf("value %d has index %d", k, v.Index)
				}
			}
		}
	}
	if s := doc.Stats(); s != (Stats{Emitters: 3, Attributes: 9, Values: 5 + 8 + 3}) {
		t.Errorf("Stats = %+v", s)
	}
}

func TestBuildZeroEmitters(t *testing.T) {
	g := geo.New()
	_ = g.SetDetail(geo.DefaultCountAttrib, geo.Ints(0))
	_ = g.AddPointAttrib("id", geo.KindInt)

	doc, err := Build(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	if doc.EmitterCount != 0 || len(doc.Emitters) != 0 {
		t.Errorf("doc = %+v, want no emitters", doc)
	}
}

func TestBuildNegativeCount(t *testing.T) {
	g := geo.New()
	_ = g.SetDetail(geo.DefaultCountAttrib, geo.Ints(-3))
	doc, err := Build(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	if doc.EmitterCount != -3 || len(doc.Emitters) != 0 {
		t.Errorf("doc = %+v", doc)
	}
}

func unknownKinds(t *testing.T) *geo.Geometry {
	t.Helper()
	g := geo.New()
	_ = g.SetDetail(geo.DefaultCountAttrib, geo.Ints(1))
	_ = g.AddPointAttrib("id", geo.KindInt)
	_ = g.AddPointAttrib("meta", geo.KindDict)
	_ = g.AddPointAttrib("blob", geo.KindUnknown)
	_ = g.AddPointAttrib("name", geo.KindString)
	if err := g.AddPoint(geo.Point{"id": geo.Ints(1), "name": geo.Strings("spark")}); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestBuildUnknownKinds(t *testing.T) {
	for _, p := range []Policy{PolicySkip, PolicyWarn} {
		t.Run(string(p), func(t *testing.T) {
			doc, err := Build(context.Background(), unknownKinds(t), WithPolicy(p))
			if err != nil {
				t.Fatal(err)
			}
			var names []string
			for _, a := range doc.Emitters[0].Attributes {
				names = append(names, a.Name)
			}
			if diff := cmp.Diff([]string{"id", "name"}, names); diff != "" {
				t.Errorf("attributes mismatch (-want +got):\n%s", diff)
			}
			wantSkipped := []geo.Attribute{{Name: "meta", Kind: geo.KindDict}, {Name: "blob", Kind: geo.KindUnknown}}
			if diff := cmp.Diff(wantSkipped, doc.Skipped); diff != "" {
				t.Errorf("Skipped mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("error", func(t *testing.T) {
		_, err := Build(context.Background(), unknownKinds(t), WithPolicy(PolicyError))
		if !errors.Is(err, errors.ErrCodeUnsupportedKind) {
			t.Errorf("err = %v, want UNSUPPORTED_KIND", err)
		}
	})
}

func TestBuildSourceErrors(t *testing.T) {
	t.Run("missing count", func(t *testing.T) {
		_, err := Build(context.Background(), geo.New())
		if !errors.Is(err, errors.ErrCodeAttributeNotFound) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("count exceeds points", func(t *testing.T) {
		g := twoEmitters(t)
		_ = g.SetDetail(geo.DefaultCountAttrib, geo.Ints(3))
		_, err := Build(context.Background(), g)
		if !errors.Is(err, errors.ErrCodePointOutOfRange) {
			t.Errorf("err = %v, want POINT_OUT_OF_RANGE", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := Build(ctx, twoEmitters(t)); err != context.Canceled {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	})
}

// mismatchSource reports an int attribute but hands back strings.
type mismatchSource struct{}

func (mismatchSource) EmitterCount() (int, error) { return 1, nil }
func (mismatchSource) PointAttributes() []geo.Attribute {
	return []geo.Attribute{{Name: "id", Kind: geo.KindInt}}
}
func (mismatchSource) Values(string, int) (geo.List, error) { return geo.Strings("x"), nil }

func TestBuildTypeMismatch(t *testing.T) {
	_, err := Build(context.Background(), mismatchSource{})
	if !errors.Is(err, errors.ErrCodeTypeMismatch) {
		t.Errorf("err = %v, want TYPE_MISMATCH", err)
	}
}

func TestBuildRejectsUnrepresentableText(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"plain", "constant;float;2.5", false},
		{"whitespace controls", "a\tb\nc\rd", false},
		{"replacement char", "a\uFFFDb", false},
		{"astral", "spark \U0001F525", false},
		{"control", "a\x01b", true},
		{"nul", "a\x00", true},
		{"invalid utf8", "\xff", true},
		{"noncharacter", "\uFFFE", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := geo.New()
			_ = g.SetDetail(geo.DefaultCountAttrib, geo.Ints(1))
			_ = g.AddPointAttrib("label", geo.KindString)
			if err := g.AddPoint(geo.Point{"label": geo.Strings(tt.value)}); err != nil {
				t.Fatal(err)
			}
			doc, err := Build(context.Background(), g)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("err = %v, want INVALID_INPUT", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got, _ := doc.String(0, "label", 0); got != tt.value {
				t.Errorf("String = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestBuildDeterministic(t *testing.T) {
	a, _ := Build(context.Background(), twoEmitters(t))
	b, _ := Build(context.Background(), twoEmitters(t))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("builds differ:\n%s", diff)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicyWarn, false},
		{"skip", PolicySkip, false},
		{"WARN", PolicyWarn, false},
		{"error", PolicyError, false},
		{"ignore", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePolicy(%q) = %q, %v", tt.in, got, err)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidPolicy) {
			t.Errorf("ParsePolicy(%q) wrong code: %v", tt.in, err)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{1, "1.0"},
		{1.5, "1.5"},
		{-2.25, "-2.25"},
		{0.1, "0.1"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{1.5e16, "1.5e+16"},
		{123.456, "123.456"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatFloat(tt.in); got != tt.want {
				t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
			}
			back, err := ParseFloat(tt.want)
			if err != nil {
				t.Fatalf("ParseFloat(%q): %v", tt.want, err)
			}
			if math.IsNaN(tt.in) {
				if !math.IsNaN(back) {
					t.Errorf("ParseFloat(nan) = %v", back)
				}
				return
			}
			if back != tt.in {
				t.Errorf("ParseFloat(%q) = %v, want %v", tt.want, back, tt.in)
			}
		})
	}
}

func TestFormatInt(t *testing.T) {
	if got := FormatInt(-42); got != "-42" {
		t.Errorf("FormatInt(-42) = %q", got)
	}
}
