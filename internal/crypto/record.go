package crypto

import (
	"crypto/cipher"
	"fmt"
	"io"
)

// SealRecord pads plaintext, chains it in CBC mode under km with a fresh IV
// from rnd (crypto/rand when nil) and appends HMAC-SHA-256(macKey, IV || C).
// Returns: IV (16 bytes) || ciphertext || tag (32 bytes)
func SealRecord(km *KeyMaterial, macKey, plaintext []byte, rnd io.Reader) ([]byte, error) {
	if len(macKey) != MasterKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(macKey), MasterKeySize)
	}

	iv, err := RandomBytes(rnd, IVSize)
	if err != nil {
		return nil, fmt.Errorf("generate iv: %w", err)
	}

	padded := Pad(plaintext)
	record := make([]byte, IVSize+len(padded), IVSize+len(padded)+TagSize)
	copy(record, iv)

	body := record[IVSize:]
	cipher.NewCBCEncrypter(NewEngine(km), iv).CryptBlocks(body, padded)

	return append(record, MAC(macKey, record)...), nil
}

// OpenRecord verifies and decrypts a record produced by SealRecord.
// The tag is checked before any block is decrypted.
func OpenRecord(km *KeyMaterial, macKey, record []byte) ([]byte, error) {
	if len(macKey) != MasterKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(macKey), MasterKeySize)
	}

	if len(record) < MinRecordSize {
		return nil, fmt.Errorf("%w: got %d bytes, want at least %d", ErrShortInput, len(record), MinRecordSize)
	}

	authenticated := record[:len(record)-TagSize]
	tag := record[len(record)-TagSize:]
	if !VerifyMAC(macKey, tag, authenticated) {
		return nil, ErrAuthenticationFailed
	}

	iv := authenticated[:IVSize]
	body := authenticated[IVSize:]
	if len(body)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: body of %d bytes is not block aligned", ErrShortInput, len(body))
	}

	padded := make([]byte, len(body))
	cipher.NewCBCDecrypter(NewEngine(km), iv).CryptBlocks(padded, body)

	plaintext, err := Unpad(padded)
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}
