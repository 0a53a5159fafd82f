package fx

import (
	"strconv"
	"strings"

	"github.com/matzehuels/geoxml/pkg/errors"
)

// fields splits a parameter string and checks it has at least n fields.
func fields(s string, n int) ([]string, error) {
	f := strings.Split(strings.TrimSpace(s), ";")
	if len(f) < n {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "%q: want at least %d fields, got %d", s, n, len(f))
	}
	return f, nil
}

// field returns f[i] or an error when the string is too short.
func field(f []string, i int) (string, error) {
	if i >= len(f) {
		return "", errors.New(errors.ErrCodeInvalidParameter, "missing field %d (have %d)", i, len(f))
	}
	return strings.TrimSpace(f[i]), nil
}

func parseFloat(f []string, i int) (float64, error) {
	s, err := field(f, i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidParameter, err, "field %d: %q is not a number", i, s)
	}
	return v, nil
}

func parseInt(f []string, i, bits int) (int64, error) {
	s, err := field(f, i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(s, 10, bits)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidParameter, err, "field %d: %q is not an integer", i, s)
	}
	return v, nil
}

// parseSamples reads a sample count and checks the string holds sets of that
// many values starting at offset.
func parseSamples(f []string, i, offset, sets int) (int, error) {
	n, err := parseInt(f, i, 32)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errors.New(errors.ErrCodeInvalidParameter, "sample count %d must be positive", n)
	}
	if need := offset + sets*int(n); len(f) < need {
		return 0, errors.New(errors.ErrCodeInvalidParameter, "%d samples need %d fields, got %d", n, need, len(f))
	}
	return int(n), nil
}
