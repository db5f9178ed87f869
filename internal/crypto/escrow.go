package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// DeriveEscrowKey derives the 32-byte wrapping key with
// PBKDF2-HMAC-SHA-256 over PBKDF2Iterations rounds.
func DeriveEscrowKey(passphrase, salt []byte) []byte {
	return pbkdf2.Key(passphrase, salt, PBKDF2Iterations, MasterKeySize, sha256.New)
}

// WrapKey masks masterKey under a passphrase-derived key.
// Returns: salt (16 bytes) || masterKey XOR dk (32 bytes) || tag (32 bytes)
func WrapKey(masterKey, passphrase []byte, rnd io.Reader) ([]byte, error) {
	if len(masterKey) != MasterKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(masterKey), MasterKeySize)
	}

	salt, err := RandomBytes(rnd, SaltSize)
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	dk := DeriveEscrowKey(passphrase, salt)

	blob := make([]byte, 0, EscrowBlobSize)
	blob = append(blob, salt...)
	blob = append(blob, xorBytes(masterKey, dk)...)
	blob = append(blob, MAC(dk, blob)...)

	return blob, nil
}

// UnwrapKey recovers the master key from a blob produced by WrapKey.
// The tag is verified before the wrapped key is unmasked.
func UnwrapKey(blob, passphrase []byte) ([]byte, error) {
	if len(blob) != EscrowBlobSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidBlobSize, len(blob), EscrowBlobSize)
	}

	salt := blob[:SaltSize]
	wrapped := blob[SaltSize : SaltSize+MasterKeySize]
	tag := blob[SaltSize+MasterKeySize:]

	dk := DeriveEscrowKey(passphrase, salt)
	if !VerifyMAC(dk, tag, salt, wrapped) {
		return nil, ErrAuthenticationFailed
	}

	return xorBytes(wrapped, dk), nil
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
