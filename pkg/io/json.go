package io

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/geoxml/pkg/errors"
	"github.com/matzehuels/geoxml/pkg/geo"
)

// ReadGeometryJSON decodes a JSON geometry file. Numbers are decoded as
// json.Number so large integers keep their precision.
func ReadGeometryJSON(r io.Reader) (*geo.Geometry, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var f geometryFile
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json geometry")
	}
	return f.build()
}
