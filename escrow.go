package emospn

import (
	"github.com/emospn/emospn-go/internal/crypto"
)

// Escrow wraps and recovers master keys under a passphrase.
//
// Blob format: salt (16 bytes) || masterKey XOR PBKDF2(passphrase, salt)
// (32 bytes) || HMAC-SHA-256 tag (32 bytes). Key derivation runs 200,000
// PBKDF2-SHA-256 iterations, so Wrap and Unwrap are intentionally slow.
type Escrow struct {
	cfg escrowConfig
}

// NewEscrow returns an Escrow.
func NewEscrow(opts ...EscrowOption) *Escrow {
	e := &Escrow{}
	for _, opt := range opts {
		opt(&e.cfg)
	}
	return e
}

// Wrap masks masterKey under passphrase with a fresh salt.
func (e *Escrow) Wrap(masterKey []byte, passphrase string) ([]byte, error) {
	if len(masterKey) != KeySize {
		return nil, &KeySizeError{Size: len(masterKey)}
	}

	blob, err := crypto.WrapKey(masterKey, []byte(passphrase), e.cfg.randReader)
	if err != nil {
		return nil, wrapError("wrap", len(masterKey), err)
	}
	return blob, nil
}

// Unwrap verifies blob under passphrase and recovers the master key. A wrong
// passphrase and a corrupted blob both yield an AuthenticationError.
func (e *Escrow) Unwrap(blob []byte, passphrase string) ([]byte, error) {
	key, err := crypto.UnwrapKey(blob, []byte(passphrase))
	if err != nil {
		return nil, wrapError("unwrap", len(blob), err)
	}
	return key, nil
}
