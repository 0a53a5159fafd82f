package cache

// ScopedKeyer wraps a Keyer with a prefix so separate configurations can share
// one cache directory without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "count:numParticles:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ExportKey generates a prefixed key for a rendered export.
func (k *ScopedKeyer) ExportKey(inputHash string, opts ExportKeyOpts) string {
	return k.prefix + k.inner.ExportKey(inputHash, opts)
}
