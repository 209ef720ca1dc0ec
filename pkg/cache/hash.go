package cache

import (
	"encoding/hex"
	"encoding/json"

	"github.com/zeebo/xxh3"
)

// hashKey returns prefix:hash where the hash covers the JSON encoding of
// parts. Option structs therefore key on their field values.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the 128-bit XXH3 digest of data as 32 hex characters.
func Hash(data []byte) string {
	sum := xxh3.Hash128(data).Bytes()
	return hex.EncodeToString(sum[:])
}
