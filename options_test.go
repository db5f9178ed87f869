package emospn

import (
	"bytes"
	"runtime"
	"testing"
)

func TestDefaultCipherConfig(t *testing.T) {
	cfg := defaultCipherConfig()
	if cfg.workers != runtime.GOMAXPROCS(0) {
		t.Errorf("workers = %d, want %d", cfg.workers, runtime.GOMAXPROCS(0))
	}
	if cfg.randReader != nil {
		t.Error("randReader should default to nil (crypto/rand)")
	}
}

func TestOptions(t *testing.T) {
	r := bytes.NewReader(nil)

	tests := []struct {
		name  string
		opt   Option
		check func(cipherConfig) bool
	}{
		{"WithRandReader", WithRandReader(r), func(c cipherConfig) bool { return c.randReader == r }},
		{"WithWorkers", WithWorkers(3), func(c cipherConfig) bool { return c.workers == 3 }},
		{"WithWorkers clamps", WithWorkers(0), func(c cipherConfig) bool { return c.workers == 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultCipherConfig()
			tt.opt(&cfg)
			if !tt.check(cfg) {
				t.Errorf("%s did not apply: %+v", tt.name, cfg)
			}
		})
	}
}

func TestEscrowOptions(t *testing.T) {
	r := bytes.NewReader(nil)
	e := NewEscrow(WithEscrowRandReader(r))
	if e.cfg.randReader != r {
		t.Error("WithEscrowRandReader did not apply")
	}
}
