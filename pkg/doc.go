// Package pkg holds the geoxml libraries.
//
// # Overview
//
// geoxml exports per-point geometry attributes to an XML document that a game
// engine importer reads back. The data flow is:
//
//	geometry file (JSON, YAML, TOML, Arrow IPC)
//	         ↓
//	    [io] package (decode into a geo.Geometry)
//	         ↓
//	    [tree] package (build the emitter/attribute/value document)
//	         ↓
//	    [io] package (serialize XML, write the file)
//
// Any type implementing [geo.Source] can feed the build directly, so a host
// application can export without going through a file.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "os"
//
//	    gxio "github.com/matzehuels/geoxml/pkg/io"
//	    "github.com/matzehuels/geoxml/pkg/tree"
//	)
//
//	g, _ := gxio.ImportGeometry("emitters.json")
//	doc, _ := tree.Build(context.Background(), g)
//	_ = gxio.WriteXML(doc, os.Stdout, gxio.WithLayout(gxio.LayoutAttr))
//
// # Packages
//
//   - [geo]: the source contract and the in-memory Geometry
//   - [tree]: the export document, value formatting and typed lookups
//   - [io]: geometry readers and the XML writer and reader
//   - [fx]: particle effect parameter strings (curves, gradients, bursts)
//   - [pipeline]: load, build and write with caching and hooks
//   - [cache]: content-addressed file cache for rendered output
//   - [observability]: pipeline and cache hooks
//   - [errors]: coded errors and input validation
//   - [buildinfo]: version information set by ldflags
//
// [geo]: github.com/matzehuels/geoxml/pkg/geo
// [geo.Source]: github.com/matzehuels/geoxml/pkg/geo#Source
// [tree]: github.com/matzehuels/geoxml/pkg/tree
// [io]: github.com/matzehuels/geoxml/pkg/io
// [fx]: github.com/matzehuels/geoxml/pkg/fx
// [pipeline]: github.com/matzehuels/geoxml/pkg/pipeline
// [cache]: github.com/matzehuels/geoxml/pkg/cache
// [observability]: github.com/matzehuels/geoxml/pkg/observability
// [errors]: github.com/matzehuels/geoxml/pkg/errors
// [buildinfo]: github.com/matzehuels/geoxml/pkg/buildinfo
package pkg
