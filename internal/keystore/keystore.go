// Package keystore persists passphrase-wrapped master keys. The command
// keeps two stores for the same key: the escrow record and the local key
// file in the sandbox.
package keystore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	emospn "github.com/emospn/emospn-go"
	"github.com/emospn/emospn-go/internal/sandbox"
)

var (
	// ErrExists is returned by Create when the store already holds a key.
	ErrExists = errors.New("keystore: key file already exists")

	// ErrNotFound is returned by Recover when the store holds no key.
	ErrNotFound = errors.New("keystore: no key found; run init or provide --escrow")
)

// Store is one wrapped-key file guarded by a sandbox.
type Store struct {
	path   string
	guard  *sandbox.Sandbox
	escrow *emospn.Escrow
}

// New returns a Store for the file name inside guard.
func New(guard *sandbox.Sandbox, name string, escrow *emospn.Escrow) (*Store, error) {
	path, err := guard.Join(name)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, guard: guard, escrow: escrow}, nil
}

// Open returns a Store for an explicit file path, guarded by its own
// directory.
func Open(path string, escrow *emospn.Escrow) (*Store, error) {
	guard, err := sandbox.New(filepath.Dir(filepath.Clean(path)))
	if err != nil {
		return nil, err
	}
	abs, err := guard.Resolve(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: abs, guard: guard, escrow: escrow}, nil
}

// Path returns the absolute path of the key file.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the key file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Create wraps masterKey under passphrase and writes the blob. It refuses
// to replace an existing key unless overwrite is set.
func (s *Store) Create(masterKey []byte, passphrase string, overwrite bool) error {
	if !overwrite && s.Exists() {
		return fmt.Errorf("%w: %s", ErrExists, s.path)
	}

	if err := s.guard.EnsureDir(); err != nil {
		return fmt.Errorf("keystore: create %s: %w", s.guard.Root(), err)
	}

	blob, err := s.escrow.Wrap(masterKey, passphrase)
	if err != nil {
		return err
	}
	return s.guard.WriteFile(s.path, blob)
}

// Recover reads the blob and unwraps the master key with passphrase.
func (s *Store) Recover(passphrase string) ([]byte, error) {
	blob, err := s.guard.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("keystore: read %s: %w", s.path, err)
	}

	return s.escrow.Unwrap(blob, passphrase)
}
