package fx

import (
	"github.com/matzehuels/geoxml/pkg/errors"
)

// CurveMode is how a curve parameter varies over a particle's lifetime.
type CurveMode string

const (
	CurveConstant       CurveMode = "constant"
	CurveRandomConstant CurveMode = "randomConstant"
	CurveCurve          CurveMode = "curve"
	CurveRandomCurve    CurveMode = "randomCurve"
)

// Key is one curve sample at normalized time.
type Key struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}

// Curve is a decoded scalar parameter.
//
// Constant uses Constant; RandomConstant uses Min and Max; Curve uses Keys;
// RandomCurve uses MinKeys and MaxKeys. Fields of other modes are nil.
// Multiplier scales sampled curves and is 1 for the constant modes.
type Curve struct {
	Mode       CurveMode `json:"mode"`
	Constant   *float64  `json:"constant,omitempty"`
	Min        *float64  `json:"min,omitempty"`
	Max        *float64  `json:"max,omitempty"`
	Multiplier float64   `json:"multiplier"`
	Keys       []Key     `json:"keys,omitempty"`
	MinKeys    []Key     `json:"minKeys,omitempty"`
	MaxKeys    []Key     `json:"maxKeys,omitempty"`
}

// ParseCurve decodes a curve parameter:
//
//	constant;<float|int>;<v>
//	randomConstant;<float|int>;<min>;<max>
//	curve;float;<samples>;<multiplier>;<v0>..<vN>
//	randomCurve;float;<samples>;<multiplier>;<min0>..<minN>;<max0>..<maxN>
//
// Sample i sits at time i/samples.
func ParseCurve(s string) (Curve, error) {
	f, err := fields(s, 3)
	if err != nil {
		return Curve{}, err
	}
	c := Curve{Mode: CurveMode(f[0]), Multiplier: 1}
	typ := f[1]

	switch c.Mode {
	case CurveConstant:
		if c.Constant, err = parseScalar(f, 2, typ); err != nil {
			return Curve{}, err
		}
	case CurveRandomConstant:
		if c.Min, err = parseScalar(f, 2, typ); err != nil {
			return Curve{}, err
		}
		if c.Max, err = parseScalar(f, 3, typ); err != nil {
			return Curve{}, err
		}
	case CurveCurve, CurveRandomCurve:
		if typ != "float" {
			return Curve{}, errors.New(errors.ErrCodeInvalidParameter, "%s: unsupported value type %q", c.Mode, typ)
		}
		sets := 1
		if c.Mode == CurveRandomCurve {
			sets = 2
		}
		n, err := parseSamples(f, 2, 4, sets)
		if err != nil {
			return Curve{}, err
		}
		if c.Multiplier, err = parseFloat(f, 3); err != nil {
			return Curve{}, err
		}
		if c.Mode == CurveCurve {
			c.Keys, err = curveKeys(f, n, 4)
			if err != nil {
				return Curve{}, err
			}
			break
		}
		if c.MinKeys, err = curveKeys(f, n, 4); err != nil {
			return Curve{}, err
		}
		if c.MaxKeys, err = curveKeys(f, n, 4+n); err != nil {
			return Curve{}, err
		}
	default:
		return Curve{}, errors.New(errors.ErrCodeInvalidParameter, "unknown curve mode %q", f[0])
	}
	return c, nil
}

func parseScalar(f []string, i int, typ string) (*float64, error) {
	var v float64
	switch typ {
	case "float":
		x, err := parseFloat(f, i)
		if err != nil {
			return nil, err
		}
		v = x
	case "int":
		n, err := parseInt(f, i, 32)
		if err != nil {
			return nil, err
		}
		v = float64(n)
	case "vector":
		return nil, errors.New(errors.ErrCodeUnsupported, "vector curves are not supported")
	default:
		return nil, errors.New(errors.ErrCodeInvalidParameter, "unknown value type %q", typ)
	}
	return &v, nil
}

func curveKeys(f []string, samples, offset int) ([]Key, error) {
	keys := make([]Key, samples)
	for i := range keys {
		v, err := parseFloat(f, offset+i)
		if err != nil {
			return nil, err
		}
		keys[i] = Key{Time: float64(i) / float64(samples), Value: v}
	}
	return keys, nil
}

// Evaluate samples a curve at normalized time t by linear interpolation
// between keys. Times outside the key range clamp to the end keys. For the
// random modes it returns the midpoint of the two bounds.
func (c Curve) Evaluate(t float64) float64 {
	switch c.Mode {
	case CurveConstant:
		return deref(c.Constant)
	case CurveRandomConstant:
		return (deref(c.Min) + deref(c.Max)) / 2
	case CurveCurve:
		return c.Multiplier * evalKeys(c.Keys, t)
	case CurveRandomCurve:
		return c.Multiplier * (evalKeys(c.MinKeys, t) + evalKeys(c.MaxKeys, t)) / 2
	}
	return 0
}

func evalKeys(keys []Key, t float64) float64 {
	if len(keys) == 0 {
		return 0
	}
	if t <= keys[0].Time {
		return keys[0].Value
	}
	for i := 1; i < len(keys); i++ {
		if t <= keys[i].Time {
			a, b := keys[i-1], keys[i]
			return a.Value + (b.Value-a.Value)*(t-a.Time)/(b.Time-a.Time)
		}
	}
	return keys[len(keys)-1].Value
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
