package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ResponseKey builds the key for a cached upstream response,
// e.g. ResponseKey("tcgdex:en:", "card:A1-001") = "http:tcgdex:en:card:A1-001".
func ResponseKey(namespace, key string) string {
	return "http:" + namespace + key
}

// SnapshotKey builds the key for a persisted catalog snapshot. The parts
// identify the catalog (source, language, collection) and are hashed so
// arbitrary values stay key-safe.
func SnapshotKey(parts ...string) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("snapshot:%s", hex.EncodeToString(hash[:]))
}
