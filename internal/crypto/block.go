package crypto

import "crypto/cipher"

// Block is one 16-byte cipher block.
type Block = [BlockSize]byte

// EncryptBlock runs the Rounds-round SPN forward over one block:
// whitening with key 0, then per round substitute, permute, add round key.
func (km *KeyMaterial) EncryptBlock(in Block) Block {
	x := in
	xorBlock(&x, &km.Keys[0])
	for r := 1; r <= Rounds; r++ {
		substitute(&x, &km.SBox.Forward)
		x = permuteBits(&x, &km.Perm.Forward)
		xorBlock(&x, &km.Keys[r])
	}
	return x
}

// DecryptBlock inverts EncryptBlock.
func (km *KeyMaterial) DecryptBlock(in Block) Block {
	x := in
	for r := Rounds; r >= 1; r-- {
		xorBlock(&x, &km.Keys[r])
		x = permuteBits(&x, &km.Perm.Inverse)
		substitute(&x, &km.SBox.Inverse)
	}
	xorBlock(&x, &km.Keys[0])
	return x
}

// Engine adapts KeyMaterial to crypto/cipher.Block so the standard block
// modes can drive it.
type Engine struct {
	km *KeyMaterial
}

var _ cipher.Block = (*Engine)(nil)

// NewEngine returns a cipher.Block backed by km.
func NewEngine(km *KeyMaterial) *Engine {
	return &Engine{km: km}
}

// BlockSize returns the cipher block size in bytes.
func (e *Engine) BlockSize() int { return BlockSize }

// Encrypt encrypts the first block in src into dst.
func (e *Engine) Encrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("emospn: input not full block")
	}
	out := e.km.EncryptBlock(Block(src[:BlockSize]))
	copy(dst, out[:])
}

// Decrypt decrypts the first block in src into dst.
func (e *Engine) Decrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("emospn: input not full block")
	}
	out := e.km.DecryptBlock(Block(src[:BlockSize]))
	copy(dst, out[:])
}

func xorBlock(x *Block, k *[BlockSize]byte) {
	for i := range x {
		x[i] ^= k[i]
	}
}

func substitute(x *Block, table *[256]byte) {
	for i, b := range x {
		x[i] = table[b]
	}
}

// permuteBits gathers output bit i from input bit table[i]. Bits are
// numbered MSB-first within each byte, byte 0 first.
func permuteBits(x *Block, table *[BlockBits]uint8) Block {
	var out Block
	for i, from := range table {
		bit := (x[from>>3] >> (7 - from&7)) & 1
		out[i>>3] |= bit << (7 - i&7)
	}
	return out
}
