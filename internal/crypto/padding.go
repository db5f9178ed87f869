package crypto

import (
	"bytes"
	"fmt"
)

// Pad appends PKCS#7 padding for BlockSize. Input that is already block
// aligned still gets a full block of padding.
func Pad(data []byte) []byte {
	n := BlockSize - len(data)%BlockSize
	out := make([]byte, len(data), len(data)+n)
	copy(out, data)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

// Unpad strips PKCS#7 padding. Any deviation is an error.
func Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: length %d is not a positive multiple of %d", ErrInvalidPadding, len(data), BlockSize)
	}

	n := int(data[len(data)-1])
	if n < 1 || n > BlockSize {
		return nil, fmt.Errorf("%w: pad value %d out of range", ErrInvalidPadding, n)
	}

	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: inconsistent pad bytes", ErrInvalidPadding)
		}
	}

	return data[:len(data)-n], nil
}
