package geo

import "strings"

// Kind is the data type of an attribute.
type Kind int

const (
	// KindUnknown is any type the source cannot map onto the other kinds.
	KindUnknown Kind = iota
	// KindInt holds integer lists.
	KindInt
	// KindFloat holds floating-point lists.
	KindFloat
	// KindString holds string lists.
	KindString
	// KindDict holds dictionary values. Sources may report it, the exporter
	// never writes it.
	KindDict
)

var kindNames = map[Kind]string{
	KindUnknown: "unknown",
	KindInt:     "int",
	KindFloat:   "float",
	KindString:  "string",
	KindDict:    "dict",
}

// String returns the type tag written to exports ("int", "float", "string")
// or the name of an unexportable kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Exportable reports whether values of this kind can be written to an export.
func (k Kind) Exportable() bool {
	return k == KindInt || k == KindFloat || k == KindString
}

// ParseKind maps a type tag back to a Kind. Matching is case-insensitive and
// accepts the long forms "integer" and "str". Anything else is KindUnknown.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int", "integer":
		return KindInt
	case "float":
		return KindFloat
	case "string", "str":
		return KindString
	case "dict":
		return KindDict
	default:
		return KindUnknown
	}
}
