// Package tree builds the export tree from a geometry source.
//
// # Structure
//
// A [Document] mirrors the XML written by package io:
//
//	Document            root, emitterCount
//	└── Emitter i       emitter<i>, i in [0, count)
//	    └── Attribute   name + type tag, source declaration order
//	        └── Value   index + stringified value, source list order
//
// [Build] walks a [geo.Source] in exactly that order: read the emitter count,
// then for every emitter and every exportable attribute, copy the attribute's
// list into indexed values.
//
// # Unrecognized kinds
//
// Attributes whose kind is not int, float or string are classified before any
// element is created and never appear in the tree, so a partial element can
// not leak into the output. [Build] records their names in [Document.Skipped];
// with [PolicyError] it fails instead.
//
// String values must be valid UTF-8 made of characters XML can carry; [Build]
// fails with INVALID_INPUT otherwise, since the text would not read back.
//
// # Reading values back
//
// [Document.Int], [Document.Float] and [Document.String] answer the
// emitter/attribute/index lookups consumers of an export perform, parsing the
// stored text back into typed values.
package tree
