package crypto

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"testing"
)

func TestXorShift64_Next(t *testing.T) {
	g := &XorShift64{state: 1}

	got := g.Next()
	if got != 0x40822041 {
		t.Errorf("Next() = %#x, want %#x", got, uint64(0x40822041))
	}
	if g.state != got {
		t.Errorf("state = %#x, want %#x", g.state, got)
	}
}

func TestXorShift64_SeedFromHash(t *testing.T) {
	seed := []byte("seed material")
	h := sha256.Sum256(seed)

	g := NewXorShift64(seed)
	if want := binary.BigEndian.Uint64(h[:8]); g.state != want {
		t.Errorf("state = %#x, want %#x", g.state, want)
	}
}

func TestXorShift64_Deterministic(t *testing.T) {
	a := NewXorShift64([]byte("k"))
	b := NewXorShift64([]byte("k"))
	c := NewXorShift64([]byte("K"))

	for i := 0; i < 64; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("word %d differs: %#x vs %#x", i, x, y)
		}
	}

	if bytes.Equal(NewXorShift64([]byte("k")).Bytes(32), c.Bytes(32)) {
		t.Error("different seeds produced the same stream")
	}
}

func TestXorShift64_Bytes(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"zero", 0},
		{"partial word", 5},
		{"one word", 8},
		{"block", 16},
		{"uneven", 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := NewXorShift64([]byte("bytes"))
			var want []byte
			for len(want) < tt.n {
				want = binary.BigEndian.AppendUint64(want, ref.Next())
			}
			want = want[:tt.n]

			got := NewXorShift64([]byte("bytes")).Bytes(tt.n)
			if !bytes.Equal(got, want) {
				t.Errorf("Bytes(%d) = %x, want %x", tt.n, got, want)
			}
		})
	}
}

func TestXorShift64_ReadMatchesBytes(t *testing.T) {
	want := NewXorShift64([]byte("reader")).Bytes(24)

	got := make([]byte, 24)
	n, err := NewXorShift64([]byte("reader")).Read(got)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if n != len(got) {
		t.Errorf("Read() n = %d, want %d", n, len(got))
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Read() = %x, want %x", got, want)
	}
}

func BenchmarkXorShift64_Next(b *testing.B) {
	g := NewXorShift64([]byte("bench"))
	for i := 0; i < b.N; i++ {
		g.Next()
	}
}
