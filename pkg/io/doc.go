// Package io reads geometry files and reads and writes XML exports.
//
// # Geometry files
//
// JSON, YAML and TOML geometry files share one layout:
//
//	{
//	  "detail":     [{"name": "numEmitters", "type": "int", "values": [2]}],
//	  "attributes": [{"name": "id", "type": "int"}, {"name": "life", "type": "float"}],
//	  "points": [
//	    {"id": [5, 7], "life": [1.5]},
//	    {"id": [9, 2]}
//	  ]
//	}
//
// "attributes" fixes the point attribute order. A scalar stands for a
// one-element list and an omitted attribute for an empty one. Types other than
// int, float and string are kept as unexportable attributes and their values
// are ignored.
//
// Arrow IPC files hold one row per point. Each column is a point attribute of
// type int32, int64, float32, float64 or utf8, or a list of those. Other column
// types become [geo.KindUnknown] attributes. Schema metadata entries become
// detail attributes: integers when the value parses as one, strings otherwise.
// Column names and metadata keys follow the attribute naming rules (a letter
// or underscore, then letters, digits or underscores); a column such as "P.x"
// is rejected rather than renamed.
//
// Use [ImportGeometry] to read a file by extension, or the Read* functions to
// decode from any io.Reader:
//
//	g, err := io.ImportGeometry("emitters.json")
//
// # XML exports
//
// [WriteXML] serializes a [tree.Document] in one of two layouts:
//
//	LayoutText: <attribute type="int">id<value index="0">5</value></attribute>
//	LayoutAttr: <attribute name="id" type="int"><value index="0" value="5"></value></attribute>
//
// [ExportXML] writes to a path, replacing any existing file. [ReadXML] and
// [ImportXML] parse either layout back into a document, so an export can be
// re-imported and queried with the typed lookups in package tree.
//
// # Filesystems
//
// The *FS variants take an afero.Fs; the plain variants use the OS filesystem.
package io
