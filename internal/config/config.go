// Package config loads the emospn command's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	defaultSandboxDir = "sandbox"
	defaultEscrowDir  = "escrow"
	defaultEscrowFile = "recovery.enc"
	defaultKeyFile    = "key.bin.enc"
	defaultLogLevel   = "NOTICE"
)

// Logging is the logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool

	// File specifies the log file, if omitted stderr will be used.
	File string

	// Level specifies the log level.
	Level string
}

func (lCfg *Logging) validate() error {
	lvl := strings.ToUpper(lCfg.Level)
	switch lvl {
	case "ERROR", "WARNING", "NOTICE", "INFO", "DEBUG":
	case "":
		lvl = defaultLogLevel
	default:
		return fmt.Errorf("config: Logging: Level '%v' is invalid", lCfg.Level)
	}
	lCfg.Level = lvl
	return nil
}

// Config is the top level emospn configuration.
type Config struct {
	// SandboxDir is the only directory encrypt and decrypt may touch. It
	// also holds the local wrapped key file.
	SandboxDir string

	// EscrowDir holds the escrow recovery record.
	EscrowDir string

	// EscrowFile is the escrow record's file name inside EscrowDir.
	EscrowFile string

	// KeyFile is the local wrapped key's file name inside SandboxDir.
	KeyFile string

	// Logging is the logging configuration.
	Logging *Logging
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := new(Config)
	if err := cfg.FixupAndValidate(); err != nil {
		panic("BUG: default config does not validate: " + err.Error())
	}
	return cfg
}

// EscrowPath returns the absolute path of the escrow record.
func (c *Config) EscrowPath() string {
	return filepath.Join(c.EscrowDir, c.EscrowFile)
}

// KeyPath returns the absolute path of the local wrapped key.
func (c *Config) KeyPath() string {
	return filepath.Join(c.SandboxDir, c.KeyFile)
}

// FixupAndValidate applies defaults to config entries and validates the
// supplied configuration. Directories are made absolute.
func (c *Config) FixupAndValidate() error {
	if c.SandboxDir == "" {
		c.SandboxDir = defaultSandboxDir
	}
	if c.EscrowDir == "" {
		c.EscrowDir = defaultEscrowDir
	}
	if c.EscrowFile == "" {
		c.EscrowFile = defaultEscrowFile
	}
	if c.KeyFile == "" {
		c.KeyFile = defaultKeyFile
	}
	if c.Logging == nil {
		c.Logging = new(Logging)
	}

	for _, name := range []string{c.EscrowFile, c.KeyFile} {
		if name != filepath.Base(name) || name == "." || name == ".." {
			return fmt.Errorf("config: file name '%v' must not contain a directory", name)
		}
	}

	var err error
	if c.SandboxDir, err = filepath.Abs(c.SandboxDir); err != nil {
		return fmt.Errorf("config: SandboxDir: %v", err)
	}
	if c.EscrowDir, err = filepath.Abs(c.EscrowDir); err != nil {
		return fmt.Errorf("config: EscrowDir: %v", err)
	}
	if c.SandboxDir == c.EscrowDir {
		return errors.New("config: SandboxDir and EscrowDir must differ")
	}

	return c.Logging.validate()
}

// Load parses and validates the provided buffer b as a config file body and
// returns the Config.
func Load(b []byte) (*Config, error) {
	cfg := new(Config)

	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return nil, fmt.Errorf("config: Undecoded keys in config file: %v", undecoded)
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads, parses, and validates the provided file and returns the
// Config.
func LoadFile(f string) (*Config, error) {
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return Load(b)
}
