package crypto

import (
	"crypto/sha256"
	"encoding/binary"
)

// WordSource yields 64-bit words for the table shuffles. Tests substitute a
// fixed sequence to pin the shuffle down.
type WordSource interface {
	Next() uint64
}

// XorShift64 is the deterministic stream used to derive tables and round
// keys from a master key. It is not a cryptographic generator and must not
// be used for IVs, salts or anything else that needs to be unpredictable.
type XorShift64 struct {
	state uint64
}

// NewXorShift64 seeds a generator from the first 8 bytes (big-endian) of
// SHA-256(seed).
func NewXorShift64(seed []byte) *XorShift64 {
	g := new(XorShift64)
	g.seed(seed)
	return g
}

func (g *XorShift64) seed(b []byte) {
	h := sha256.Sum256(b)
	g.state = binary.BigEndian.Uint64(h[:8])
	if g.state == 0 {
		g.state = fallbackSeed
	}
}

// Next advances the generator and returns the new state.
func (g *XorShift64) Next() uint64 {
	x := g.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.state = x
	return x
}

// Bytes returns n bytes made of successive big-endian words, truncated to n.
func (g *XorShift64) Bytes(n int) []byte {
	out := make([]byte, n)
	g.fill(out)
	return out
}

// Read implements io.Reader. Each call consumes whole words; a partially
// used trailing word is discarded, matching Bytes.
func (g *XorShift64) Read(p []byte) (int, error) {
	g.fill(p)
	return len(p), nil
}

func (g *XorShift64) fill(p []byte) {
	var w [8]byte
	for off := 0; off < len(p); off += 8 {
		binary.BigEndian.PutUint64(w[:], g.Next())
		copy(p[off:], w[:])
	}
}
