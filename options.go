package emospn

import (
	"io"
	"runtime"
)

// cipherConfig holds configuration for a Cipher.
type cipherConfig struct {
	randReader io.Reader
	workers    int
}

// escrowConfig holds configuration for an Escrow.
type escrowConfig struct {
	randReader io.Reader
}

// Option configures a Cipher.
type Option func(*cipherConfig)

// EscrowOption configures an Escrow.
type EscrowOption func(*escrowConfig)

func defaultCipherConfig() cipherConfig {
	return cipherConfig{
		workers: runtime.GOMAXPROCS(0),
	}
}

// WithRandReader sets the secure random source used for IVs.
// Default: crypto/rand
func WithRandReader(r io.Reader) Option {
	return func(c *cipherConfig) {
		c.randReader = r
	}
}

// WithWorkers bounds how many independent records EncryptAll and
// DecryptAll process at once. Values below 1 are treated as 1.
// Default: GOMAXPROCS
func WithWorkers(n int) Option {
	return func(c *cipherConfig) {
		if n < 1 {
			n = 1
		}
		c.workers = n
	}
}

// WithEscrowRandReader sets the secure random source used for salts.
// Default: crypto/rand
func WithEscrowRandReader(r io.Reader) EscrowOption {
	return func(c *escrowConfig) {
		c.randReader = r
	}
}
