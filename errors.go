package emospn

import (
	"errors"
	"fmt"

	"github.com/emospn/emospn-go/internal/crypto"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidKeySize is returned when a master key is not KeySize bytes.
	ErrInvalidKeySize = errors.New("invalid master key size")

	// ErrShortInput is returned when a ciphertext record or escrow blob does
	// not have the required framing.
	ErrShortInput = errors.New("input too short")

	// ErrAuthentication is returned when a tag does not verify. This covers
	// corruption, the wrong key and the wrong passphrase alike.
	ErrAuthentication = errors.New("authentication failed")

	// ErrPadding is returned when authenticated plaintext carries malformed
	// padding.
	ErrPadding = errors.New("invalid padding")

	// ErrBoundary is returned when a path lies outside the sandbox directory.
	ErrBoundary = errors.New("path outside sandbox")

	// ErrRandomSource is returned when the secure random source fails.
	ErrRandomSource = errors.New("random source failure")
)

// EmoSPNError is implemented by all errors returned by this package.
type EmoSPNError interface {
	error
	EmoSPNError() // marker method
}

// ShortInputError reports input that is too short or not block aligned.
type ShortInputError struct {
	Op     string // "decrypt", "unwrap"
	Length int
	Err    error
}

func (e *ShortInputError) Error() string {
	return fmt.Sprintf("%s: malformed input of %d bytes: %v", e.Op, e.Length, e.Err)
}

// Unwrap returns the underlying error.
func (e *ShortInputError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *ShortInputError) Is(target error) bool {
	return target == ErrShortInput
}

// EmoSPNError implements the EmoSPNError interface.
func (e *ShortInputError) EmoSPNError() {}

// AuthenticationError indicates a tag mismatch. It deliberately carries no
// detail about where the mismatch was.
type AuthenticationError struct {
	Op string // "decrypt", "unwrap"
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s: authentication failed (wrong key, wrong passphrase or corrupted data)", e.Op)
}

// Is implements errors.Is for sentinel error matching.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}

// EmoSPNError implements the EmoSPNError interface.
func (e *AuthenticationError) EmoSPNError() {}

// PaddingError reports malformed padding found after the tag verified.
type PaddingError struct {
	Err error
}

func (e *PaddingError) Error() string {
	return fmt.Sprintf("decrypt: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *PaddingError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *PaddingError) Is(target error) bool {
	return target == ErrPadding
}

// EmoSPNError implements the EmoSPNError interface.
func (e *PaddingError) EmoSPNError() {}

// BoundaryError reports an attempt to touch a path outside the sandbox.
type BoundaryError struct {
	Path string
	Root string
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("operation aborted: path %s is outside %s", e.Path, e.Root)
}

// Is implements errors.Is for sentinel error matching.
func (e *BoundaryError) Is(target error) bool {
	return target == ErrBoundary
}

// EmoSPNError implements the EmoSPNError interface.
func (e *BoundaryError) EmoSPNError() {}

// KeySizeError reports a master key of the wrong length.
type KeySizeError struct {
	Size int
}

func (e *KeySizeError) Error() string {
	return fmt.Sprintf("invalid master key size: got %d, want %d", e.Size, KeySize)
}

// Is implements errors.Is for sentinel error matching.
func (e *KeySizeError) Is(target error) bool {
	return target == ErrInvalidKeySize
}

// EmoSPNError implements the EmoSPNError interface.
func (e *KeySizeError) EmoSPNError() {}

// wrapError converts internal crypto errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(op string, length int, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, crypto.ErrAuthenticationFailed):
		return &AuthenticationError{Op: op}
	case errors.Is(err, crypto.ErrShortInput), errors.Is(err, crypto.ErrInvalidBlobSize):
		return &ShortInputError{Op: op, Length: length, Err: err}
	case errors.Is(err, crypto.ErrInvalidPadding):
		return &PaddingError{Err: err}
	case errors.Is(err, crypto.ErrRandomSource):
		return fmt.Errorf("%s: %w: %v", op, ErrRandomSource, err)
	}

	return err
}
