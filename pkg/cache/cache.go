package cache

import (
	"context"
	"time"
)

// DefaultTTL is used by backends when a caller passes a non-positive ttl to
// Set.
const DefaultTTL = 24 * time.Hour

// Cache is the storage contract shared by every backend (file, null, redis).
type Cache interface {
	// Get retrieves the value for key. ok is false on a miss.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data under key with the given ttl.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key; deleting an absent key succeeds.
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the backend.
	Close() error
}

// LayoutKeyOpts captures the pack/anneal parameters that distinguish one
// packed layout of a design from another.
type LayoutKeyOpts struct {
	Anneal bool
	Seed   uint64
	Steps  int
}

// Keyer derives cache keys for layouts and rendered artifacts.
type Keyer interface {
	// LayoutKey derives a key for the packed layout of a design.
	LayoutKey(designHash string, opts LayoutKeyOpts) string
	// ArtifactKey derives a key for a rendered artifact of a layout.
	ArtifactKey(layoutKey, format string) string
}

// defaultKeyer hashes the design hash and options to form layout keys, and
// the layout key and format to form artifact keys.
type defaultKeyer struct{}

// NewDefaultKeyer creates the standard, unscoped keyer.
func NewDefaultKeyer() Keyer {
	return defaultKeyer{}
}

func (defaultKeyer) LayoutKey(designHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", designHash, opts)
}

func (defaultKeyer) ArtifactKey(layoutKey, format string) string {
	return hashKey("artifact", layoutKey, format)
}

// scopedKeyer prefixes another keyer's output, letting several projects
// share one cache backend without colliding.
type scopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner falls back to the
// default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return scopedKeyer{inner: inner, prefix: prefix}
}

func (s scopedKeyer) LayoutKey(designHash string, opts LayoutKeyOpts) string {
	return s.prefix + s.inner.LayoutKey(designHash, opts)
}

func (s scopedKeyer) ArtifactKey(layoutKey, format string) string {
	return s.prefix + s.inner.ArtifactKey(layoutKey, format)
}
