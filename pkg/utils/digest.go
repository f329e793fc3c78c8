package utils

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Digest returns the hex-encoded BLAKE2b-256 hash of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DigestString hashes s.
func DigestString(s string) string {
	return Digest([]byte(s))
}

// ShortDigest returns the first 16 hex characters of the digest of s.
// Used where a stable, non-reversible key is needed, such as identifying a
// caller by its bearer token without storing the token.
func ShortDigest(s string) string {
	return DigestString(s)[:16]
}
