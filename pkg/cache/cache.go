// Package cache stores rendered exports so unchanged inputs are not rebuilt.
//
// Entries are addressed by keys from a [Keyer]. The key for an export combines
// the SHA-256 of the input file with every option that changes the output, so
// editing the input or flipping an option always misses.
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().ExportKey(cache.Hash(input), cache.ExportKeyOpts{Layout: "text"})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// TTLExport is how long a rendered export stays valid.
const TTLExport = 7 * 24 * time.Hour

// Cache is a byte store with expiring entries.
type Cache interface {
	// Get returns the entry for key. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	ExportKey(inputHash string, opts ExportKeyOpts) string
}

// ExportKeyOpts holds the options that affect rendered output.
type ExportKeyOpts struct {
	Layout      string `json:"layout"`
	CountAttrib string `json:"count_attrib"`
	OnUnknown   string `json:"on_unknown"`
	Declaration bool   `json:"declaration"`
}

// DefaultKeyer builds unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ExportKey returns "export:" followed by a hash of the input hash and opts.
func (DefaultKeyer) ExportKey(inputHash string, opts ExportKeyOpts) string {
	return hashKey("export", inputHash, opts)
}
