package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Checksum returns the hex sha256 of data.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashKey returns a stable identifier for the joined parts. Parts are
// separated by a NUL byte so ("ab", "c") and ("a", "bc") differ.
func HashKey(parts ...string) string {
	return Checksum([]byte(strings.Join(parts, "\x00")))
}
