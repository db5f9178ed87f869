package crypto

import "fmt"

// SubstitutionTable is a key-derived permutation of the 256 byte values
// together with its inverse.
type SubstitutionTable struct {
	Forward [256]byte
	Inverse [256]byte
}

// BitPermutation is a key-derived permutation of the 128 bit positions of a
// block together with its inverse. Output bit i takes input bit Forward[i].
type BitPermutation struct {
	Forward [BlockBits]uint8
	Inverse [BlockBits]uint8
}

// RoundKeys is the key schedule. Index 0 is the whitening key, 1..Rounds are
// applied one per round.
type RoundKeys [Rounds + 1][BlockSize]byte

// KeyMaterial bundles everything derived from one master key. It is never
// mutated after derivation and may be shared freely between goroutines.
type KeyMaterial struct {
	SBox SubstitutionTable
	Perm BitPermutation
	Keys RoundKeys
}

// Shuffle returns a Fisher-Yates shuffle of 0..n-1 driven by src. The walk
// goes from index n-1 down to 1, swapping i with Next() mod (i+1).
func Shuffle(n int, src WordSource) []int {
	arr := make([]int, n)
	for i := range arr {
		arr[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := int(src.Next() % uint64(i+1))
		arr[i], arr[j] = arr[j], arr[i]
	}
	return arr
}

// DeriveSubstitution derives the S-box for masterKey.
func DeriveSubstitution(masterKey []byte) SubstitutionTable {
	return substitutionFrom(Shuffle(256, NewXorShift64(labelled(masterKey, LabelSubstitution))))
}

// DerivePermutation derives the bit permutation for masterKey.
func DerivePermutation(masterKey []byte) BitPermutation {
	return permutationFrom(Shuffle(BlockBits, NewXorShift64(labelled(masterKey, LabelPermutation))))
}

// DeriveRoundKeys derives the Rounds+1 round keys for masterKey.
func DeriveRoundKeys(masterKey []byte) RoundKeys {
	var keys RoundKeys
	g := NewXorShift64(labelled(masterKey, LabelKeySchedule))
	for i := range keys {
		copy(keys[i][:], g.Bytes(BlockSize))
	}
	return keys
}

// DeriveKeyMaterial derives the S-box, bit permutation and round keys for a
// 32-byte master key. The result is a pure function of the key.
func DeriveKeyMaterial(masterKey []byte) (*KeyMaterial, error) {
	if len(masterKey) != MasterKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(masterKey), MasterKeySize)
	}

	return &KeyMaterial{
		SBox: DeriveSubstitution(masterKey),
		Perm: DerivePermutation(masterKey),
		Keys: DeriveRoundKeys(masterKey),
	}, nil
}

// Valid reports whether Forward is a permutation of 0..255 and Inverse is
// its inverse.
func (t *SubstitutionTable) Valid() bool {
	var seen [256]bool
	for i, v := range t.Forward {
		if seen[v] || int(t.Inverse[v]) != i {
			return false
		}
		seen[v] = true
	}
	return true
}

// Valid reports whether Forward is a permutation of 0..127 and Inverse is
// its inverse.
func (p *BitPermutation) Valid() bool {
	var seen [BlockBits]bool
	for i, v := range p.Forward {
		if int(v) >= BlockBits || seen[v] || int(p.Inverse[v]) != i {
			return false
		}
		seen[v] = true
	}
	return true
}

func substitutionFrom(arr []int) SubstitutionTable {
	var t SubstitutionTable
	for i, v := range arr {
		t.Forward[i] = byte(v)
		t.Inverse[v] = byte(i)
	}
	return t
}

func permutationFrom(arr []int) BitPermutation {
	var p BitPermutation
	for i, v := range arr {
		p.Forward[i] = uint8(v)
		p.Inverse[v] = uint8(i)
	}
	return p
}

// labelled returns masterKey || label in a fresh buffer.
func labelled(masterKey []byte, label string) []byte {
	seed := make([]byte, 0, len(masterKey)+len(label))
	seed = append(seed, masterKey...)
	return append(seed, label...)
}
