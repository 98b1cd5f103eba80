// Package cache stores downloaded dataset payloads so repeated runs do not
// re-fetch them. A memory layer fronts a disk layer.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface shared by the memory and disk layers
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a dataset URL
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "grantab:v1:" + hex.EncodeToString(sum[:])
}
