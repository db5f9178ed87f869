package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/op/go-logging.v1"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in   string
		want logging.Level
	}{
		{"ERROR", logging.ERROR},
		{"warning", logging.WARNING},
		{"Notice", logging.NOTICE},
		{"INFO", logging.INFO},
		{"debug", logging.DEBUG},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lvl, err := LevelFromString(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, lvl)
		})
	}

	_, err := LevelFromString("LOUD")
	require.Error(t, err)
}

func TestBackend_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	b, err := NewWithWriter(&buf, "NOTICE")
	require.NoError(t, err)

	l := b.GetLogger("emospn-test")
	l.Debug("hidden debug line")
	l.Notice("visible notice line")

	out := buf.String()
	require.Contains(t, out, "visible notice line")
	require.Contains(t, out, "emospn-test")
	require.NotContains(t, out, "hidden debug line")
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emospn.log")

	b, err := New(path, "INFO", false)
	require.NoError(t, err)
	b.GetLogger("emospn-file").Info("to the file")
	require.NoError(t, b.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "to the file"))
}

func TestNew_Disabled(t *testing.T) {
	b, err := New("", "DEBUG", true)
	require.NoError(t, err)
	b.GetLogger("emospn-quiet").Error("dropped")
	require.NoError(t, b.Close())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("", "NOPE", false)
	require.Error(t, err)
}
