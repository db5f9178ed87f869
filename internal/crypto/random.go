package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// randReader is the secure source for IVs and salts. It defaults to nil
// (crypto/rand) but can be overridden for testing. It is never the
// table-derivation stream.
var randReader io.Reader

// RandomBytes returns n bytes from r, or from crypto/rand when r is nil and
// no test reader is installed.
func RandomBytes(r io.Reader, n int) ([]byte, error) {
	if r == nil {
		r = randReader
	}
	if r == nil {
		r = rand.Reader
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	return b, nil
}
