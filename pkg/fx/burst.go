package fx

import (
	"strings"

	"github.com/matzehuels/geoxml/pkg/errors"
)

// Burst is a scheduled emission of extra particles.
type Burst struct {
	Time     float64 `json:"time"`
	MinCount int     `json:"minCount"`
	MaxCount int     `json:"maxCount"`
	Cycles   int     `json:"cycles"`
	Interval float64 `json:"interval"`
}

const burstFields = 5

// ParseBursts decodes groups of five fields, time;min;max;cycles;interval,
// one group per burst. Counts must fit in 16 bits. An empty string holds no
// bursts, and a trailing ';' is ignored.
func ParseBursts(s string) ([]Burst, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), ";")
	if s == "" {
		return nil, nil
	}
	f := strings.Split(s, ";")
	if len(f)%burstFields != 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "%d fields do not form groups of %d", len(f), burstFields)
	}

	bursts := make([]Burst, len(f)/burstFields)
	for i := range bursts {
		o := i * burstFields
		var (
			b   Burst
			err error
			n   int64
		)
		if b.Time, err = parseFloat(f, o); err != nil {
			return nil, err
		}
		if n, err = parseInt(f, o+1, 16); err != nil {
			return nil, err
		}
		b.MinCount = int(n)
		if n, err = parseInt(f, o+2, 16); err != nil {
			return nil, err
		}
		b.MaxCount = int(n)
		if n, err = parseInt(f, o+3, 16); err != nil {
			return nil, err
		}
		b.Cycles = int(n)
		if b.Interval, err = parseFloat(f, o+4); err != nil {
			return nil, err
		}
		bursts[i] = b
	}
	return bursts, nil
}
