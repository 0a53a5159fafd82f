package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/geoxml/pkg/geo"
	"github.com/matzehuels/geoxml/pkg/pipeline"
)

func TestStatsLine(t *testing.T) {
	s := pipeline.Stats{Emitters: 2, Attributes: 4, Values: 8, Bytes: 2048}
	line := statsLine(s, true)
	for _, want := range []string{"2 emitters", "4 attributes", "8 values", "2.0 KB", iconCached} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine missing %q: %q", want, line)
		}
	}
	if !strings.Contains(statsLine(s, false), iconFresh) {
		t.Error("uncached stats should say fresh")
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"Name", "Type"}, [][]string{{"id", "int"}, {"life", "float"}})
	for _, want := range []string{"Name", "id", "life", "float", "╭"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestListText(t *testing.T) {
	tests := []struct {
		name string
		in   geo.List
		want string
	}{
		{"ints", geo.Ints(1, -2), "1, -2"},
		{"floats", geo.Floats(1, 0.5), "1.0, 0.5"},
		{"strings", geo.Strings("a b"), `"a b"`},
		{"empty", geo.List{Kind: geo.KindInt}, ""},
		{"long", geo.Ints(1, 2, 3, 4, 5, 6, 7, 8, 9), "1, 2, 3, 4, 5, 6, 7, 8, …"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := listText(tt.in); got != tt.want {
				t.Errorf("listText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	if got := preview([]string{"1", "2"}); got != "1, 2" {
		t.Errorf("preview = %q", got)
	}
	if got := preview([]string{"1", "2", "3", "4", "5"}); got != "1, 2, 3, 4 …" {
		t.Errorf("preview = %q", got)
	}
}
