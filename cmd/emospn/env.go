package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/op/go-logging.v1"

	emospn "github.com/emospn/emospn-go"
	"github.com/emospn/emospn-go/internal/config"
	"github.com/emospn/emospn-go/internal/keystore"
	"github.com/emospn/emospn-go/internal/log"
	"github.com/emospn/emospn-go/internal/sandbox"
)

type globalFlags struct {
	configFile string
	logLevel   string
}

// env is the state shared by every subcommand.
type env struct {
	cfg     *config.Config
	backend *log.Backend
	log     *logging.Logger
	sandbox *sandbox.Sandbox
	escrow  *emospn.Escrow
}

func newEnv(cmd *cobra.Command, flags *globalFlags) (*env, error) {
	cfg := config.Default()
	if flags.configFile != "" {
		var err error
		if cfg, err = config.LoadFile(flags.configFile); err != nil {
			return nil, err
		}
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}

	var (
		backend *log.Backend
		err     error
	)
	if cfg.Logging.File == "" && !cfg.Logging.Disable {
		backend, err = log.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level)
	} else {
		backend, err = log.New(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Disable)
	}
	if err != nil {
		return nil, err
	}

	sb, err := sandbox.New(cfg.SandboxDir)
	if err != nil {
		backend.Close()
		return nil, err
	}
	if err := sb.EnsureDir(); err != nil {
		backend.Close()
		return nil, fmt.Errorf("create sandbox %s: %w", sb.Root(), err)
	}

	return &env{
		cfg:     cfg,
		backend: backend,
		log:     backend.GetLogger("emospn/" + cmd.Name()),
		sandbox: sb,
		escrow:  emospn.NewEscrow(),
	}, nil
}

func (e *env) Close() error {
	return e.backend.Close()
}

// escrowStore is the recovery record under EscrowDir.
func (e *env) escrowStore() (*keystore.Store, error) {
	guard, err := sandbox.New(e.cfg.EscrowDir)
	if err != nil {
		return nil, err
	}
	return keystore.New(guard, e.cfg.EscrowFile, e.escrow)
}

// localStore is the wrapped key file inside the sandbox.
func (e *env) localStore() (*keystore.Store, error) {
	return keystore.New(e.sandbox, e.cfg.KeyFile, e.escrow)
}

// masterKey unwraps the master key from the escrow record at escrowPath, or
// from the local key file when escrowPath is empty.
func (e *env) masterKey(cmd *cobra.Command, escrowPath, passphrase string) ([]byte, error) {
	var (
		store  *keystore.Store
		prompt string
		err    error
	)
	if escrowPath != "" {
		store, err = keystore.Open(escrowPath, e.escrow)
		prompt = "Escrow passphrase: "
	} else {
		store, err = e.localStore()
		prompt = "Sandbox key passphrase: "
	}
	if err != nil {
		return nil, err
	}
	if !store.Exists() {
		return nil, fmt.Errorf("%w: %s", keystore.ErrNotFound, store.Path())
	}

	if passphrase == "" {
		if passphrase, err = readPassphrase(cmd, prompt); err != nil {
			return nil, err
		}
	}

	e.log.Debugf("Unwrapping master key from %s", store.Path())
	return store.Recover(passphrase)
}
