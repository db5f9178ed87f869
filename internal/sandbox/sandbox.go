// Package sandbox confines the command's file operations to one directory.
// Every path is checked before it is read or written.
package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	emospn "github.com/emospn/emospn-go"
)

const (
	dirMode  = 0700
	fileMode = 0600
)

// Sandbox is a directory outside of which nothing is read or written.
type Sandbox struct {
	root string
}

// New returns a Sandbox rooted at dir. The root is made absolute but not
// created; call EnsureDir for that.
func New(dir string) (*Sandbox, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("sandbox: resolve %s: %w", dir, err)
	}
	return &Sandbox{root: root}, nil
}

// Root returns the absolute sandbox directory.
func (s *Sandbox) Root() string {
	return s.root
}

// EnsureDir creates the sandbox directory if needed.
func (s *Sandbox) EnsureDir() error {
	return os.MkdirAll(s.root, dirMode)
}

// Contains reports whether path resolves to the root or somewhere below it.
func (s *Sandbox) Contains(path string) bool {
	_, err := s.Resolve(path)
	return err == nil
}

// Resolve returns the absolute form of path, or a *emospn.BoundaryError if
// it lies outside the sandbox. Relative paths resolve against the working
// directory, not the root.
func (s *Sandbox) Resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("sandbox: resolve %s: %w", path, err)
	}
	if abs != s.root && !strings.HasPrefix(abs, s.root+string(filepath.Separator)) {
		return "", &emospn.BoundaryError{Path: path, Root: s.root}
	}
	return abs, nil
}

// Join returns name inside the sandbox, checked like any other path.
func (s *Sandbox) Join(name string) (string, error) {
	return s.Resolve(filepath.Join(s.root, name))
}

// ReadFile reads a file inside the sandbox.
func (s *Sandbox) ReadFile(path string) ([]byte, error) {
	abs, err := s.Resolve(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

// WriteFile writes data to a file inside the sandbox. The boundary check
// happens before anything touches the disk; the write goes through a
// temporary file that is renamed into place.
func (s *Sandbox) WriteFile(path string, data []byte) error {
	abs, err := s.Resolve(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(abs), "."+filepath.Base(abs)+".*")
	if err != nil {
		return fmt.Errorf("sandbox: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("sandbox: write %s: %w", path, err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("sandbox: chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("sandbox: close %s: %w", path, err)
	}

	return os.Rename(tmp.Name(), abs)
}
