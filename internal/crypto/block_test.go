package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"math/bits"
	"testing"
)

// identityMaterial has identity tables and all-zero round keys, which makes
// the round function the identity.
func identityMaterial() *KeyMaterial {
	km := new(KeyMaterial)
	for i := 0; i < 256; i++ {
		km.SBox.Forward[i] = byte(i)
		km.SBox.Inverse[i] = byte(i)
	}
	for i := 0; i < BlockBits; i++ {
		km.Perm.Forward[i] = uint8(i)
		km.Perm.Inverse[i] = uint8(i)
	}
	return km
}

func TestEncryptBlock_RoundTrip(t *testing.T) {
	km, err := DeriveKeyMaterial(testKey("block"))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100; i++ {
		var pt Block
		if _, err := rand.Read(pt[:]); err != nil {
			t.Fatal(err)
		}

		ct := km.EncryptBlock(pt)
		if ct == pt {
			t.Errorf("EncryptBlock(%x) returned its input", pt)
		}
		if got := km.DecryptBlock(ct); got != pt {
			t.Fatalf("DecryptBlock(EncryptBlock(%x)) = %x", pt, got)
		}
	}
}

func TestEncryptBlock_IdentityTables(t *testing.T) {
	km := identityMaterial()
	pt := Block{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}

	if got := km.EncryptBlock(pt); got != pt {
		t.Errorf("EncryptBlock() = %x, want %x", got, pt)
	}
}

func TestEncryptBlock_WhiteningOnly(t *testing.T) {
	km := identityMaterial()
	km.Keys[0] = [BlockSize]byte{0xff}

	got := km.EncryptBlock(Block{})
	want := Block{0xff}
	if got != want {
		t.Errorf("EncryptBlock() = %x, want %x", got, want)
	}
}

func TestPermuteBits(t *testing.T) {
	var reverse [BlockBits]uint8
	for i := range reverse {
		reverse[i] = uint8(BlockBits - 1 - i)
	}

	tests := []struct {
		name string
		in   Block
		want Block
	}{
		{"msb of first byte", Block{0x80}, Block{15: 0x01}},
		{"lsb of last byte", Block{15: 0x01}, Block{0x80}},
		{"byte pattern", Block{0xf0}, Block{15: 0x0f}},
		{"zero", Block{}, Block{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := permuteBits(&tt.in, &reverse); got != tt.want {
				t.Errorf("permuteBits(%x) = %x, want %x", tt.in, got, tt.want)
			}
		})
	}
}

func TestPermuteBits_InverseUndoes(t *testing.T) {
	perm := DerivePermutation(testKey("perm"))

	var x Block
	if _, err := rand.Read(x[:]); err != nil {
		t.Fatal(err)
	}

	y := permuteBits(&x, &perm.Forward)
	if got := permuteBits(&y, &perm.Inverse); got != x {
		t.Errorf("inverse permutation = %x, want %x", got, x)
	}
}

func TestEngine_CipherBlock(t *testing.T) {
	km, _ := DeriveKeyMaterial(testKey("engine"))
	var b cipher.Block = NewEngine(km)

	if b.BlockSize() != BlockSize {
		t.Errorf("BlockSize() = %d, want %d", b.BlockSize(), BlockSize)
	}

	src := []byte("sixteen byte msg")
	dst := make([]byte, BlockSize)
	b.Encrypt(dst, src)

	want := km.EncryptBlock(Block(src))
	if Block(dst) != want {
		t.Errorf("Encrypt() = %x, want %x", dst, want)
	}

	out := make([]byte, BlockSize)
	b.Decrypt(out, dst)
	if string(out) != string(src) {
		t.Errorf("Decrypt() = %q, want %q", out, src)
	}
}

func TestEngine_ShortBlockPanics(t *testing.T) {
	km, _ := DeriveKeyMaterial(testKey("engine"))
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a short block")
		}
	}()
	NewEngine(km).Encrypt(make([]byte, BlockSize), make([]byte, BlockSize-1))
}

func TestEncryptBlock_Avalanche(t *testing.T) {
	km, _ := DeriveKeyMaterial(testKey("avalanche"))

	const trials = 256
	total := 0
	for i := 0; i < trials; i++ {
		var pt Block
		if _, err := rand.Read(pt[:]); err != nil {
			t.Fatal(err)
		}
		flipped := pt
		flipped[(i/8)%BlockSize] ^= 1 << (i % 8)

		a, b := km.EncryptBlock(pt), km.EncryptBlock(flipped)
		for j := range a {
			total += bits.OnesCount8(a[j] ^ b[j])
		}
	}

	ratio := float64(total) / float64(trials*BlockBits)
	if ratio < 0.35 || ratio > 0.65 {
		t.Errorf("average changed bits = %.3f, want within [0.35, 0.65]", ratio)
	}
}

func BenchmarkEncryptBlock(b *testing.B) {
	km, _ := DeriveKeyMaterial(testKey("bench"))
	var x Block
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = km.EncryptBlock(x)
	}
}
