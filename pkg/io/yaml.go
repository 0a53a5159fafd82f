package io

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/geoxml/pkg/errors"
	"github.com/matzehuels/geoxml/pkg/geo"
)

// ReadGeometryYAML decodes a YAML geometry file.
func ReadGeometryYAML(r io.Reader) (*geo.Geometry, error) {
	var f geometryFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml geometry")
	}
	return f.build()
}
