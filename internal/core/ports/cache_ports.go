package ports

import "time"

// Cache is a key/value store with per-entry TTL. Get never returns an
// expired value.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
}
