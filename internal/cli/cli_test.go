package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/geoxml/pkg/errors"
	gxio "github.com/matzehuels/geoxml/pkg/io"
	"github.com/matzehuels/geoxml/pkg/observability"
)

const twoJSON = `{
  "detail": [{"name": "numEmitters", "type": "int", "values": [2]}],
  "attributes": [{"name": "id", "type": "int"}, {"name": "fx", "type": "string"}],
  "points": [{"id": [5, 7], "fx": "constant;float;2.5"}, {"id": [9, 2], "fx": "0.0;10;20;1;0.5"}]
}`

// setupCLI isolates config and cache directories and writes a geometry file.
func setupCLI(t *testing.T) (dir, input string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Cleanup(observability.Reset)

	input = filepath.Join(dir, "emitters.json")
	if err := os.WriteFile(input, []byte(twoJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, input
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	c := New(&bytes.Buffer{}, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.Execute()
}

func TestExportCommand(t *testing.T) {
	dir, input := setupCLI(t)
	out := filepath.Join(dir, "out.xml")

	if err := run(t, "export", input, "-o", out, "--layout", "attr"); err != nil {
		t.Fatalf("export: %v", err)
	}
	doc, err := gxio.ImportXML(out)
	if err != nil {
		t.Fatal(err)
	}
	if n, err := doc.Int(1, "id", 0); err != nil || n != 9 {
		t.Errorf("Int(1, id, 0) = %d, %v", n, err)
	}

	// Second run is served from the cache and rewrites the file.
	if err := os.Remove(out); err != nil {
		t.Fatal(err)
	}
	if err := run(t, "export", input, "-o", out, "--layout", "attr"); err != nil {
		t.Fatalf("cached export: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("cached export did not write %s: %v", out, err)
	}
	if entries, _ := os.ReadDir(filepath.Join(dir, "cache", appName)); len(entries) == 0 {
		t.Error("expected a cache entry")
	}
}

func TestExportCommandConfig(t *testing.T) {
	dir, input := setupCLI(t)
	out := filepath.Join(dir, "from-config.xml")
	cfgDir := filepath.Join(dir, "config", appName)
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	body := "output = " + `"` + filepath.ToSlash(out) + `"` + "\nno_cache = true\ndeclaration = true\n"
	if err := os.WriteFile(filepath.Join(cfgDir, configFile), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := run(t, "export", input); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<?xml")) {
		t.Errorf("declaration from config missing: %.40s", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "cache", appName)); !os.IsNotExist(err) {
		t.Error("no_cache in config should leave the cache untouched")
	}
}

func TestExportCommandErrors(t *testing.T) {
	dir, input := setupCLI(t)
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing input", []string{"export", filepath.Join(dir, "nope.json")}, errors.ErrCodeFileNotFound},
		{"bad layout", []string{"export", input, "--layout", "csv"}, errors.ErrCodeInvalidLayout},
		{"bad policy", []string{"export", input, "--on-unknown", "ignore"}, errors.ErrCodeInvalidPolicy},
		{"bad format", []string{"export", filepath.Join(dir, "in.csv")}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(t, tt.args...); !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestInspectAndFx(t *testing.T) {
	dir, input := setupCLI(t)
	out := filepath.Join(dir, "out.xml")
	if err := run(t, "export", input, "-o", out, "--no-cache"); err != nil {
		t.Fatal(err)
	}

	if err := run(t, "inspect", out); err != nil {
		t.Errorf("inspect: %v", err)
	}
	if err := run(t, "inspect", out, "-e", "0"); err != nil {
		t.Errorf("inspect emitter: %v", err)
	}
	if err := run(t, "inspect", out, "-e", "0", "-a", "id", "-i", "1"); err != nil {
		t.Errorf("inspect lookup: %v", err)
	}
	if err := run(t, "inspect", out, "-e", "5"); !errors.Is(err, errors.ErrCodeEmitterNotFound) {
		t.Errorf("inspect missing emitter: err = %v", err)
	}

	if err := run(t, "fx", "curve", "--from", out, "-e", "0", "-a", "fx", "--at", "0.5"); err != nil {
		t.Errorf("fx curve --from: %v", err)
	}
	if err := run(t, "fx", "bursts", "--from", out, "-e", "1", "-a", "fx"); err != nil {
		t.Errorf("fx bursts --from: %v", err)
	}
	if err := run(t, "fx", "gradient", "gradient;color;2;0;{1,0,0,1};{0,0,1,0}"); err != nil {
		t.Errorf("fx gradient: %v", err)
	}
	if err := run(t, "fx", "curve"); err == nil {
		t.Error("fx curve without a parameter should fail")
	}
	if err := run(t, "fx", "curve", "--from", out); err == nil {
		t.Error("fx curve --from without --attribute should fail")
	}
}

func TestAttribsAndCacheCommands(t *testing.T) {
	dir, input := setupCLI(t)
	if err := run(t, "attribs", input); err != nil {
		t.Errorf("attribs: %v", err)
	}
	if err := run(t, "cache", "info"); err != nil {
		t.Errorf("cache info on empty cache: %v", err)
	}
	if err := run(t, "export", input, "-o", filepath.Join(dir, "out.xml")); err != nil {
		t.Fatal(err)
	}
	if err := run(t, "cache", "info"); err != nil {
		t.Errorf("cache info: %v", err)
	}
	if err := run(t, "cache", "clear"); err != nil {
		t.Errorf("cache clear: %v", err)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "cache", appName))
	if len(entries) != 0 {
		t.Errorf("cache clear left %d entries", len(entries))
	}
}
