// Package geo models the read-only geometry data an export is built from.
//
// # Overview
//
// A geometry holds detail attributes (geometry-wide values such as the emitter
// count) and point attributes (named, typed lists stored on every point). The
// exporter treats point i as the record of emitter i, so the only questions it
// asks a geometry are captured by [Source]:
//
//   - how many emitters are there ([Source.EmitterCount])
//   - which point attributes exist, in declaration order ([Source.PointAttributes])
//   - which list does an attribute hold on a given point ([Source.Values])
//
// Host adapters implement [Source] directly. [Geometry] is the in-memory
// implementation the file readers in package io produce.
//
// # Kinds
//
// Attributes carry a [Kind]. Only [KindInt], [KindFloat] and [KindString] are
// exportable; [KindDict] and [KindUnknown] exist so sources can report what they
// hold without the exporter having to guess.
//
// # Building a Geometry
//
//	g := geo.New()
//	g.SetDetail(geo.DefaultCountAttrib, geo.Ints(2))
//	g.AddPointAttrib("id", geo.KindInt)
//	g.AddPoint(geo.Point{"id": geo.Ints(5, 7)})
//	g.AddPoint(geo.Point{"id": geo.Ints(9, 2)})
//
// Geometry is not safe for concurrent mutation. Concurrent reads are fine.
package geo
