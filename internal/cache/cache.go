package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const keyPrefix = "corefsieve:v1:"

// Cache is a byte-oriented store with per-entry expiry
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey derives the key of a resolution result from the raw document
// bytes and the fingerprint of the options that affect resolution
func CacheKey(document []byte, fingerprint string) string {
	h := sha256.New()
	h.Write(document)
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}
