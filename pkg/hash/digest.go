package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// SHA256Hasher produces deterministic digests for short secrets such as OTP codes.
type SHA256Hasher struct {
	salt string
}

func NewSHA256Hasher(salt string) *SHA256Hasher {
	return &SHA256Hasher{salt: salt}
}

// Hash returns the hex encoded SHA-256 of salt+value.
func (h *SHA256Hasher) Hash(value string) string {
	sum := sha256.Sum256([]byte(h.salt + value))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether value hashes to digest, in constant time.
func (h *SHA256Hasher) Verify(value string, digest string) bool {
	return subtle.ConstantTimeCompare([]byte(h.Hash(value)), []byte(digest)) == 1
}
