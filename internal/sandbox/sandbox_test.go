package sandbox

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	emospn "github.com/emospn/emospn-go"
)

func newSandbox(t *testing.T) (*Sandbox, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "sandbox")
	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.EnsureDir())
	return s, dir
}

func TestResolve(t *testing.T) {
	s, dir := newSandbox(t)

	tests := []struct {
		name string
		path string
		ok   bool
	}{
		{"root itself", dir, true},
		{"file inside", filepath.Join(dir, "a.txt"), true},
		{"nested", filepath.Join(dir, "x", "y.bin"), true},
		{"dot dot escape", filepath.Join(dir, "..", "outside.txt"), false},
		{"sibling with shared prefix", dir + "-evil/file", false},
		{"parent", filepath.Dir(dir), false},
		{"absolute elsewhere", "/etc/passwd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Resolve(tt.path)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, emospn.ErrBoundary), "expected ErrBoundary, got %v", err)
			var bErr *emospn.BoundaryError
			require.True(t, errors.As(err, &bErr))
			assert.Equal(t, s.Root(), bErr.Root)
		})
	}
}

func TestWriteFile_ReadFile(t *testing.T) {
	s, dir := newSandbox(t)
	path := filepath.Join(dir, "record.enc")

	require.NoError(t, s.WriteFile(path, []byte("payload")))

	got, err := s.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(fileMode), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteFile_RefusesOutside(t *testing.T) {
	s, dir := newSandbox(t)
	outside := filepath.Join(filepath.Dir(dir), "escaped.txt")

	err := s.WriteFile(outside, []byte("nope"))
	assert.ErrorIs(t, err, emospn.ErrBoundary)

	_, statErr := os.Stat(outside)
	assert.True(t, os.IsNotExist(statErr), "file was written outside the sandbox")
}

func TestReadFile_RefusesOutside(t *testing.T) {
	s, _ := newSandbox(t)
	_, err := s.ReadFile("/etc/hostname")
	assert.ErrorIs(t, err, emospn.ErrBoundary)
}

func TestJoin(t *testing.T) {
	s, dir := newSandbox(t)

	p, err := s.Join("key.bin.enc")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "key.bin.enc"), p)

	_, err = s.Join("../escape")
	assert.ErrorIs(t, err, emospn.ErrBoundary)

	assert.True(t, s.Contains(p))
}
