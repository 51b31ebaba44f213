// Package cache provides result caching for solved floor plans.
//
// A Cache stores opaque byte payloads under string keys with optional
// expiry. Backends exist for local files (the CLI default), Redis and
// MongoDB (for server deployments), and a null cache that disables
// caching entirely.
//
// Keys are derived through a Keyer so that every consumer agrees on the
// key layout and version bumps invalidate old entries everywhere at once.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-payload store with per-entry TTL. Implementations must
// be safe for concurrent use.
type Cache interface {
	// Get returns the payload for key and whether it was present. An
	// expired or corrupt entry counts as a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the payload under key. A non-positive ttl means the
	// entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the entry for key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// keyVersion invalidates every existing entry when the result encoding or
// the solver semantics change.
const keyVersion = 1

// TTLResult bounds how long solved results stay cached. Results are
// deterministic, so the TTL only limits disk growth.
const TTLResult = 30 * 24 * time.Hour

// Keyer derives cache keys from problem fingerprints.
type Keyer interface {
	// ResultKey returns the key for the solved result of the problem with
	// the given fingerprint hash.
	ResultKey(problemHash string) string
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ResultKey returns result:<hash(version, problemHash)>.
func (DefaultKeyer) ResultKey(problemHash string) string {
	return hashKey("result", keyVersion, problemHash)
}
