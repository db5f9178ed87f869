package emospn

import (
	"bytes"
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/emospn/emospn-go/internal/crypto"
)

// Cipher encrypts and decrypts records under one master key. The derived
// tables are computed once in NewCipher and reused; a Cipher is safe for
// concurrent use.
type Cipher struct {
	key []byte
	km  *crypto.KeyMaterial
	cfg cipherConfig
}

// NewCipher derives the key material for masterKey and returns a Cipher.
func NewCipher(masterKey []byte, opts ...Option) (*Cipher, error) {
	km, err := DeriveKeyMaterial(masterKey)
	if err != nil {
		return nil, err
	}

	cfg := defaultCipherConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Cipher{
		key: bytes.Clone(masterKey),
		km:  km,
		cfg: cfg,
	}, nil
}

// Encrypt pads and chains plaintext under a fresh IV and authenticates the
// result. Returns: IV (16 bytes) || ciphertext || tag (32 bytes)
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	record, err := crypto.SealRecord(c.km, c.key, plaintext, c.cfg.randReader)
	if err != nil {
		return nil, wrapError("encrypt", len(plaintext), err)
	}
	return record, nil
}

// Decrypt verifies the record's tag and only then decrypts and unpads it.
// Nothing is returned unless every check passes.
func (c *Cipher) Decrypt(record []byte) ([]byte, error) {
	plaintext, err := crypto.OpenRecord(c.km, c.key, record)
	if err != nil {
		return nil, wrapError("decrypt", len(record), err)
	}
	return plaintext, nil
}

// EncryptAll encrypts independent plaintexts concurrently, each under its
// own IV. Results are in input order. Chaining inside one record is always
// sequential.
func (c *Cipher) EncryptAll(ctx context.Context, plaintexts [][]byte) ([][]byte, error) {
	return c.each(ctx, plaintexts, c.Encrypt)
}

// DecryptAll decrypts independent records concurrently. It fails on the
// first record that does not verify.
func (c *Cipher) DecryptAll(ctx context.Context, records [][]byte) ([][]byte, error) {
	return c.each(ctx, records, c.Decrypt)
}

func (c *Cipher) each(ctx context.Context, in [][]byte, fn func([]byte) ([]byte, error)) ([][]byte, error) {
	out := make([][]byte, len(in))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.workers)
	for i := range in {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := fn(in[i])
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// KeyMaterial returns the derived tables and round keys. The returned value
// is a copy.
func (c *Cipher) KeyMaterial() KeyMaterial {
	return *c.km
}

// EncryptBlock runs one block through the forward round function without
// chaining, padding or authentication.
func (c *Cipher) EncryptBlock(b Block) Block {
	return c.km.EncryptBlock(b)
}

// DecryptBlock inverts EncryptBlock.
func (c *Cipher) DecryptBlock(b Block) Block {
	return c.km.DecryptBlock(b)
}

// Encrypt encrypts plaintext under masterKey.
func Encrypt(plaintext, masterKey []byte) ([]byte, error) {
	c, err := NewCipher(masterKey)
	if err != nil {
		return nil, err
	}
	return c.Encrypt(plaintext)
}

// Decrypt verifies and decrypts a record under masterKey.
func Decrypt(record, masterKey []byte) ([]byte, error) {
	c, err := NewCipher(masterKey)
	if err != nil {
		return nil, err
	}
	return c.Decrypt(record)
}

// EncryptString encrypts message under the master key SHA-256(key).
func EncryptString(message, key string) ([]byte, error) {
	return Encrypt([]byte(message), KeyFromString(key))
}

// DecryptString decrypts a record produced by EncryptString.
func DecryptString(record []byte, key string) (string, error) {
	plaintext, err := Decrypt(record, KeyFromString(key))
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
