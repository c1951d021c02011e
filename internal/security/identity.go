// Package security implements the PII-hashing convention of spec §6:
// national registration numbers are never persisted in plaintext, only as
// a keyed HMAC-SHA256 hash, verified in constant time. Grounded on
// original_source/backend/app/core/crypto.py.
package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// IdentityHasher computes and verifies the keyed hash used as Applicant.IdentityToken.
type IdentityHasher struct {
	key []byte
}

// NewIdentityHasher builds a hasher from the configured secret key.
func NewIdentityHasher(key string) *IdentityHasher {
	return &IdentityHasher{key: []byte(key)}
}

// Hash returns the hex-encoded HMAC-SHA256 of residentNumber.
func (h *IdentityHasher) Hash(residentNumber string) string {
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(residentNumber))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether residentNumber hashes to token, using a
// constant-time comparison to avoid timing side channels.
func (h *IdentityHasher) Verify(residentNumber, token string) bool {
	expected := h.Hash(residentNumber)
	return hmac.Equal([]byte(expected), []byte(token))
}
