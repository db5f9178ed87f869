package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
)

// MAC computes HMAC-SHA-256 of the concatenation of parts under key.
// Keys longer than the 64-byte SHA-256 block are hashed first.
func MAC(key []byte, parts ...[]byte) []byte {
	h := hmac.New(sha256.New, key)
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// VerifyMAC recomputes the tag over parts and compares it to tag in
// constant time.
func VerifyMAC(key, tag []byte, parts ...[]byte) bool {
	return hmac.Equal(MAC(key, parts...), tag)
}
