package tree

import (
	"math"
	"strconv"
	"strings"
)

// FormatInt renders an integer value in base 10.
func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// FormatFloat renders a float the way the host scripting layer prints it:
// the shortest representation that round-trips, a trailing ".0" on integral
// values, and exponent notation when the decimal exponent is below -4 or at
// least 16 ("1e-05", "1.5e+16"). Non-finite values are "inf", "-inf", "nan".
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	// Shortest digits in exponent form give the decimal exponent.
	e := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if err != nil {
		return e
	}
	if exp < -4 || exp >= 16 {
		return e
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

// ParseFloat parses text produced by [FormatFloat], including the non-finite
// spellings.
func ParseFloat(s string) (float64, error) {
	switch strings.TrimSpace(s) {
	case "nan":
		return math.NaN(), nil
	case "inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	}
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
