// Package cache provides the short-TTL cache used for report and dashboard
// results.
package cache

import "time"

// Cache is a simple string-valued cache. Get returns an empty string on a
// miss, not an error.
type Cache interface {
	Get(key string) (string, error)
	Set(key string, value interface{}, expiration time.Duration) error
	Delete(key string) error
}
