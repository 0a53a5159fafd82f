// Package pipeline runs geometry exports end to end.
//
// An export has three stages:
//
//  1. Load: read a geometry file (JSON, YAML, TOML or Arrow IPC)
//  2. Build: walk the geometry into an export tree
//  3. Write: serialize the tree to XML and write it to the output path
//
// [Runner.Export] runs build and write for any [geo.Source]. [Runner.Execute]
// adds the load stage and caches the rendered XML under a key derived from the
// input bytes and the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:  "emitters.json",
//	    Output: "emitters.xml",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.Emitters)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/geoxml/pkg/cache"
	"github.com/matzehuels/geoxml/pkg/errors"
	"github.com/matzehuels/geoxml/pkg/geo"
	gxio "github.com/matzehuels/geoxml/pkg/io"
	"github.com/matzehuels/geoxml/pkg/tree"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for an export.
type Options struct {
	// Input is the geometry file. Execute requires it; Export ignores it.
	Input string `json:"input,omitempty"`
	// Output is the XML path. Empty means gxio.DefaultOutput.
	Output string `json:"output,omitempty"`

	Layout      string `json:"layout,omitempty"`
	CountAttrib string `json:"count_attrib,omitempty"`
	OnUnknown   string `json:"on_unknown,omitempty"`
	Declaration bool   `json:"declaration,omitempty"`

	// Refresh skips the cache lookup. The fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`
	// NoWrite renders without touching Output.
	NoWrite bool `json:"no_write,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	layout    gxio.Layout
	policy    tree.Policy
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the export tree. On a cache hit it is parsed back from the
	// cached XML, with Skipped restored from the cache entry.
	Document *tree.Document

	// XML is the rendered output.
	XML []byte

	// Output is the path written, empty when NoWrite was set.
	Output string

	// InputHash is the SHA-256 of the input file, empty for Export.
	InputHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the output came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Emitters   int
	Attributes int
	Values     int
	Skipped    int
	Bytes      int
	LoadTime   time.Duration
	BuildTime  time.Duration
	WriteTime  time.Duration
}

// CacheInfo tracks cache use for a run.
type CacheInfo struct {
	Key string // Cache key, empty for Export
	Hit bool   // Whether the XML came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every option and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Output == "" {
		o.Output = gxio.DefaultOutput
	}
	if !o.NoWrite {
		if err := errors.ValidateOutputPath(o.Output); err != nil {
			return err
		}
	}

	l, err := gxio.ParseLayout(o.Layout)
	if err != nil {
		return err
	}
	o.layout, o.Layout = l, string(l)

	p, err := tree.ParsePolicy(o.OnUnknown)
	if err != nil {
		return err
	}
	o.policy, o.OnUnknown = p, string(p)

	if o.CountAttrib == "" {
		o.CountAttrib = geo.DefaultCountAttrib
	}
	if err := errors.ValidateAttributeName(o.CountAttrib); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// ValidateForExecute additionally requires an input file.
func (o *Options) ValidateForExecute() error {
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input file is required")
	}
	if _, err := gxio.DetectFormat(o.Input); err != nil {
		return err
	}
	return o.ValidateAndSetDefaults()
}

// XMLOptions returns the writer options for these settings.
func (o *Options) XMLOptions() []gxio.XMLOption {
	return []gxio.XMLOption{gxio.WithLayout(o.layout), gxio.WithDeclaration(o.Declaration)}
}

// ExportKeyOpts returns cache key options for the rendered output.
func (o *Options) ExportKeyOpts() cache.ExportKeyOpts {
	return cache.ExportKeyOpts{
		Layout:      o.Layout,
		CountAttrib: o.CountAttrib,
		OnUnknown:   o.OnUnknown,
		Declaration: o.Declaration,
	}
}
