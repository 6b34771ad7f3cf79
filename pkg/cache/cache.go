// Package cache stores rendered artifacts between runs.
//
// # Overview
//
// Rendering a layout to PNG or PDF shells out to rsvg-convert, which is slow
// compared to the layout itself. The pipeline therefore caches the bytes of
// every rendered artifact, keyed by a hash of the serialized layout and the
// render options. Layouts themselves are always recomputed.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] derives keys from content hashes. [ScopedKeyer] prefixes every
// key, so several deployments can share one Redis database.
package cache

import (
	"context"
	"time"
)

// ArtifactTTL is how long rendered artifacts are kept by default.
const ArtifactTTL = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss with ok == false and a nil error. A ttl of zero means
// the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
