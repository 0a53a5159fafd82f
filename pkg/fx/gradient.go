package fx

import (
	"strconv"
	"strings"

	"github.com/matzehuels/geoxml/pkg/errors"
)

// GradientMode is how a color parameter varies.
type GradientMode string

const (
	GradientConstant       GradientMode = "constant"
	GradientRandomConstant GradientMode = "randomConstant"
	GradientGradient       GradientMode = "gradient"
	GradientRandomGradient GradientMode = "randomGradient"
)

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// ColorKey is a gradient color at normalized position.
type ColorKey struct {
	Time  float64 `json:"time"`
	Color Color   `json:"color"`
}

// AlphaKey is a gradient alpha at normalized position.
type AlphaKey struct {
	Time  float64 `json:"time"`
	Alpha float64 `json:"alpha"`
}

// Gradient is a sampled color ramp. Blend is the host's blend mode number
// (0 blend, 1 fixed).
type Gradient struct {
	Blend int        `json:"blend"`
	Keys  []ColorKey `json:"keys"`
}

// AlphaKeys returns one alpha key per color key, taking the color's alpha.
func (g Gradient) AlphaKeys() []AlphaKey {
	out := make([]AlphaKey, len(g.Keys))
	for i, k := range g.Keys {
		out[i] = AlphaKey{Time: k.Time, Alpha: k.Color.A}
	}
	return out
}

// ColorParam is a decoded color parameter. Which fields are set depends on
// Mode, mirroring [Curve].
type ColorParam struct {
	Mode     GradientMode `json:"mode"`
	Color    *Color       `json:"color,omitempty"`
	Min      *Color       `json:"min,omitempty"`
	Max      *Color       `json:"max,omitempty"`
	Gradient *Gradient    `json:"gradient,omitempty"`
	MinGrad  *Gradient    `json:"minGradient,omitempty"`
	MaxGrad  *Gradient    `json:"maxGradient,omitempty"`
}

// ParseGradient decodes a color parameter:
//
//	constant;color;{r,g,b,a}
//	randomConstant;color;{r,g,b,a};{r,g,b,a}
//	gradient;color;<samples>;<blend>;{..}..
//	randomGradient;color;<samples>;<blend>;{min..};{max..}
//
// Key i sits at position i/(samples-1); a single sample sits at 0.
func ParseGradient(s string) (ColorParam, error) {
	f, err := fields(s, 3)
	if err != nil {
		return ColorParam{}, err
	}
	if typ := strings.TrimSpace(f[1]); typ != "color" {
		return ColorParam{}, errors.New(errors.ErrCodeInvalidParameter, "unknown gradient value type %q", typ)
	}
	p := ColorParam{Mode: GradientMode(f[0])}

	switch p.Mode {
	case GradientConstant:
		if p.Color, err = parseColor(f, 2); err != nil {
			return ColorParam{}, err
		}
	case GradientRandomConstant:
		if p.Min, err = parseColor(f, 2); err != nil {
			return ColorParam{}, err
		}
		if p.Max, err = parseColor(f, 3); err != nil {
			return ColorParam{}, err
		}
	case GradientGradient, GradientRandomGradient:
		sets := 1
		if p.Mode == GradientRandomGradient {
			sets = 2
		}
		n, err := parseSamples(f, 2, 4, sets)
		if err != nil {
			return ColorParam{}, err
		}
		blend, err := parseInt(f, 3, 32)
		if err != nil {
			return ColorParam{}, err
		}
		first, err := gradientKeys(f, n, 4, int(blend))
		if err != nil {
			return ColorParam{}, err
		}
		if p.Mode == GradientGradient {
			p.Gradient = first
			break
		}
		p.MinGrad = first
		if p.MaxGrad, err = gradientKeys(f, n, 4+n, int(blend)); err != nil {
			return ColorParam{}, err
		}
	default:
		return ColorParam{}, errors.New(errors.ErrCodeInvalidParameter, "unknown gradient mode %q", f[0])
	}
	return p, nil
}

func gradientKeys(f []string, samples, offset, blend int) (*Gradient, error) {
	g := &Gradient{Blend: blend, Keys: make([]ColorKey, samples)}
	for i := range g.Keys {
		c, err := parseColor(f, offset+i)
		if err != nil {
			return nil, err
		}
		var pos float64
		if samples > 1 {
			pos = float64(i) / float64(samples-1)
		}
		g.Keys[i] = ColorKey{Time: pos, Color: *c}
	}
	return g, nil
}

// parseColor reads a "{r,g,b,a}" field. The braces are optional.
func parseColor(f []string, i int) (*Color, error) {
	s, err := field(f, i)
	if err != nil {
		return nil, err
	}
	s = strings.NewReplacer("{", "", "}", "").Replace(s)
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "field %d: color %q needs 4 components", i, f[i])
	}
	var c [4]float64
	for j, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidParameter, err, "field %d: color component %q", i, p)
		}
		c[j] = v
	}
	return &Color{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
}
