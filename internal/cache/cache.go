package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache stores extracted document text
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, text string, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a cache key from a file's path and stat identity. Editing,
// renaming or truncating a file changes the key, so stale entries are
// never served for changed files.
func Key(path string, modTime time.Time, size int64) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("docket:v1:%s:%d:%d", path, modTime.UnixNano(), size)))
	return "docket-v1-" + hex.EncodeToString(hash[:])
}
