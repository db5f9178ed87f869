package crypto

import "errors"

var (
	// ErrInvalidKeySize is returned when a master key is not 32 bytes.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrShortInput is returned when a ciphertext record is smaller than
	// the IV + tag framing or its body is not a whole number of blocks.
	ErrShortInput = errors.New("ciphertext too short")

	// ErrInvalidBlobSize is returned when an escrow blob is not exactly
	// EscrowBlobSize bytes.
	ErrInvalidBlobSize = errors.New("invalid escrow blob size")

	// ErrAuthenticationFailed is returned when a recomputed tag does not match
	// the stored one. Wrong keys, wrong passphrases and corruption are not
	// distinguished.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrInvalidPadding is returned when PKCS#7 padding is malformed.
	ErrInvalidPadding = errors.New("invalid padding")

	// ErrRandomSource is returned when the secure random source fails.
	ErrRandomSource = errors.New("random source failure")
)
