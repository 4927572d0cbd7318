package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CompletionKey generates a cache key for an LLM completion from the model
// and full prompt. Identical prompts against the same model are billed
// once per TTL window.
func CompletionKey(model, system, prompt string) string {
	hash := sha256.Sum256([]byte(model + "\x00" + system + "\x00" + prompt))
	return "civigraph:v1:" + hex.EncodeToString(hash[:])
}
