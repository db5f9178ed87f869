package emospn

import (
	"crypto/sha256"

	"github.com/emospn/emospn-go/internal/crypto"
)

const (
	// KeySize is the size of a master key in bytes.
	KeySize = crypto.MasterKeySize
	// BlockSize is the cipher block size in bytes.
	BlockSize = crypto.BlockSize
	// Rounds is the number of SPN rounds.
	Rounds = crypto.Rounds
	// IVSize is the size of the IV that prefixes every record.
	IVSize = crypto.IVSize
	// TagSize is the size of the HMAC-SHA-256 tag that ends every record.
	TagSize = crypto.TagSize
	// MinRecordSize is the smallest acceptable record framing (IV + tag).
	MinRecordSize = crypto.MinRecordSize
	// EscrowBlobSize is the fixed size of an escrow blob.
	EscrowBlobSize = crypto.EscrowBlobSize

	// Ciphersuite names the block function, mode, tag and escrow KDF.
	Ciphersuite = crypto.Ciphersuite
)

// KeyMaterial is the S-box, bit permutation and round keys derived from a
// master key. Its fields are exported so diagnostics can inspect them or
// run single blocks through explicit tables.
type KeyMaterial = crypto.KeyMaterial

// Block is a single cipher block.
type Block = crypto.Block

// GenerateMasterKey returns a fresh random master key.
func GenerateMasterKey() ([]byte, error) {
	key, err := crypto.RandomBytes(nil, KeySize)
	if err != nil {
		return nil, wrapError("generate key", 0, err)
	}
	return key, nil
}

// KeyFromString derives a master key as SHA-256 of s. This is how string
// keys are turned into master keys by EncryptString and DecryptString.
func KeyFromString(s string) []byte {
	sum := sha256.Sum256([]byte(s))
	return sum[:]
}

// DeriveKeyMaterial derives the tables and round keys for masterKey.
// Identical keys always yield identical material.
func DeriveKeyMaterial(masterKey []byte) (*KeyMaterial, error) {
	if len(masterKey) != KeySize {
		return nil, &KeySizeError{Size: len(masterKey)}
	}
	return crypto.DeriveKeyMaterial(masterKey)
}
