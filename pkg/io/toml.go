package io

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/geoxml/pkg/errors"
	"github.com/matzehuels/geoxml/pkg/geo"
)

// ReadGeometryTOML decodes a TOML geometry file. Detail and attribute
// entries are arrays of tables:
//
//	[[detail]]
//	name = "numEmitters"
//	type = "int"
//	values = [2]
//
//	[[points]]
//	id = [5, 7]
func ReadGeometryTOML(r io.Reader) (*geo.Geometry, error) {
	var f geometryFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml geometry")
	}
	return f.build()
}
