package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
	"github.com/spf13/afero"

	"github.com/matzehuels/geoxml/pkg/cache"
	"github.com/matzehuels/geoxml/pkg/errors"
	"github.com/matzehuels/geoxml/pkg/geo"
	gxio "github.com/matzehuels/geoxml/pkg/io"
	"github.com/matzehuels/geoxml/pkg/observability"
	"github.com/matzehuels/geoxml/pkg/tree"
)

const keyTypeExport = "export"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache, logger and filesystem - it
// doesn't store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// Fs is used for every file read and write.
	Fs afero.Fs
}

// NewRunner creates a runner with the given cache and keyer on the OS
// filesystem.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Fs:     afero.NewOsFs(),
	}
}

// Execute loads opts.Input and exports it, reusing a cached rendering when
// the input bytes and render options are unchanged.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForExecute(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	data, err := afero.ReadFile(r.Fs, opts.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", opts.Input)
		}
		return nil, fmt.Errorf("read input: %w", err)
	}

	inputHash := cache.Hash(data)
	key := r.Keyer.ExportKey(inputHash, opts.ExportKeyOpts())

	if !opts.Refresh {
		res, err := r.fromCache(ctx, key, opts)
		if err != nil {
			return nil, err
		}
		if res != nil {
			res.InputHash = inputHash
			return res, nil
		}
	}

	loadStart := time.Now()
	g, err := r.load(ctx, opts.Input, data)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	g.CountAttrib = opts.CountAttrib
	loadTime := time.Since(loadStart)

	opts.Logger.Info("loaded geometry",
		"input", opts.Input,
		"points", g.NumPoints(),
		"attributes", len(g.PointAttributes()),
		"size", datasize.ByteSize(len(data)).HumanReadable(),
		"duration", loadTime)

	res, err := r.Export(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	res.InputHash = inputHash
	res.Stats.LoadTime = loadTime
	res.CacheInfo.Key = key

	r.store(ctx, key, res, opts)
	return res, nil
}

// cachedExport is what the cache stores for one export: the rendered XML and
// the attributes the build skipped, which the XML alone cannot tell.
type cachedExport struct {
	XML     []byte          `json:"xml"`
	Skipped []skippedAttrib `json:"skipped,omitempty"`
}

type skippedAttrib struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (r *Runner) store(ctx context.Context, key string, res *Result, opts Options) {
	entry := cachedExport{XML: res.XML}
	for _, a := range res.Document.Skipped {
		entry.Skipped = append(entry.Skipped, skippedAttrib{Name: a.Name, Type: a.Kind.String()})
	}
	data, err := json.Marshal(entry)
	if err == nil {
		err = r.Cache.Set(ctx, key, data, cache.TTLExport)
	}
	if err != nil {
		opts.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeExport, len(data))
}

// fromCache returns the cached export for key, written to the output, or
// nil on a miss. Unreadable entries count as misses.
func (r *Runner) fromCache(ctx context.Context, key string, opts Options) (*Result, error) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("cache read failed", "err", err)
		return nil, nil
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeExport)
		return nil, nil
	}
	var entry cachedExport
	err = json.Unmarshal(data, &entry)
	var doc *tree.Document
	if err == nil {
		doc, err = gxio.ReadXML(bytes.NewReader(entry.XML))
	}
	if err != nil {
		opts.Logger.Debug("discarding unreadable cache entry", "err", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, keyTypeExport)
		return nil, nil
	}
	for _, a := range entry.Skipped {
		doc.Skipped = append(doc.Skipped, geo.Attribute{Name: a.Name, Kind: geo.ParseKind(a.Type)})
	}
	observability.Cache().OnCacheHit(ctx, keyTypeExport)
	opts.Logger.Debug("using cached export", "key", key)

	res := &Result{
		Document:  doc,
		XML:       entry.XML,
		CacheInfo: CacheInfo{Key: key, Hit: true},
	}
	r.fillStats(res)
	warnSkipped(res.Document, opts)
	if err := r.write(ctx, res, opts); err != nil {
		return nil, err
	}
	return res, nil
}

// Export builds src into an export tree and writes it to opts.Output.
func (r *Runner) Export(ctx context.Context, src geo.Source, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Build
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, len(src.PointAttributes()))
	doc, err := tree.Build(ctx, src, tree.WithPolicy(opts.policy))
	buildTime := time.Since(buildStart)
	emitters := 0
	if doc != nil {
		emitters = len(doc.Emitters)
	}
	observability.Pipeline().OnBuildComplete(ctx, emitters, buildTime, err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	warnSkipped(doc, opts)

	var buf bytes.Buffer
	if err := gxio.WriteXML(doc, &buf, opts.XMLOptions()...); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	res := &Result{Document: doc, XML: buf.Bytes()}
	r.fillStats(res)
	res.Stats.BuildTime = buildTime

	opts.Logger.Info("built export tree",
		"emitters", res.Stats.Emitters,
		"attributes", res.Stats.Attributes,
		"values", res.Stats.Values,
		"duration", buildTime)

	if err := r.write(ctx, res, opts); err != nil {
		return nil, err
	}
	return res, nil
}

// write stores res.XML at opts.Output unless NoWrite is set.
func (r *Runner) write(ctx context.Context, res *Result, opts Options) error {
	if opts.NoWrite {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	observability.Pipeline().OnWriteStart(ctx, opts.Output)
	err := afero.WriteFile(r.Fs, filepath.Clean(opts.Output), res.XML, 0o644)
	res.Stats.WriteTime = time.Since(start)
	observability.Pipeline().OnWriteComplete(ctx, opts.Output, len(res.XML), res.Stats.WriteTime, err)
	if err != nil {
		return fmt.Errorf("write %s: %w", opts.Output, err)
	}
	res.Output = opts.Output

	opts.Logger.Info("wrote export",
		"output", opts.Output,
		"size", datasize.ByteSize(len(res.XML)).HumanReadable(),
		"cached", res.CacheInfo.Hit)
	return nil
}

// load decodes the input bytes using the format implied by path.
func (r *Runner) load(ctx context.Context, path string, data []byte) (g *geo.Geometry, err error) {
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, path)
	defer func() {
		points := 0
		if g != nil {
			points = g.NumPoints()
		}
		observability.Pipeline().OnLoadComplete(ctx, path, points, time.Since(start), err)
	}()

	f, err := gxio.DetectFormat(path)
	if err != nil {
		return nil, err
	}
	return gxio.ReadGeometry(bytes.NewReader(data), f)
}

// warnSkipped logs one warning per skipped attribute under PolicyWarn.
func warnSkipped(doc *tree.Document, opts Options) {
	if opts.policy != tree.PolicyWarn {
		return
	}
	for _, a := range doc.Skipped {
		opts.Logger.Warn("skipping attribute with unsupported type", "attribute", a.Name, "type", a.Kind)
	}
}

func (r *Runner) fillStats(res *Result) {
	s := res.Document.Stats()
	res.Stats.Emitters = s.Emitters
	res.Stats.Attributes = s.Attributes
	res.Stats.Values = s.Values
	res.Stats.Skipped = len(res.Document.Skipped)
	res.Stats.Bytes = len(res.XML)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
