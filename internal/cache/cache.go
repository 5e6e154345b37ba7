package cache

import "time"

// Cache defines a minimal string-keyed cache API with per-entry TTL.
// Implementations must be safe for concurrent use.
type Cache[V any] interface {
	// Get returns the value and whether it was present and not expired.
	Get(key string) (V, bool)

	// Set stores the value. If ttl == 0 the cache's default TTL is used.
	Set(key string, value V, ttl time.Duration) error

	// Delete removes a key if present.
	Delete(key string)

	// Has reports whether a key is present and not expired.
	Has(key string) bool

	// Size returns the number of non-expired entries.
	Size() int

	// Clear removes all entries.
	Clear()

	// Cleanup scans and removes expired entries, returning how many were removed.
	Cleanup() int
}

// Result classifies a Lookup.
type Result int

const (
	Miss Result = iota
	Hit
	Expired
)

func (r Result) String() string {
	switch r {
	case Hit:
		return "hit"
	case Expired:
		return "expired"
	default:
		return "miss"
	}
}
