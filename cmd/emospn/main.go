// Command emospn encrypts and decrypts files inside a sandbox directory with
// an EMO-SPN master key kept under passphrase escrow.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/carlmjohnson/versioninfo"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	emospn "github.com/emospn/emospn-go"
	"github.com/emospn/emospn-go/internal/keystore"
)

// Streams holds the command's standard streams.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultStreams returns the process streams.
func DefaultStreams() Streams {
	return Streams{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func main() {
	if err := run(context.Background(), os.Args[1:], DefaultStreams()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, s Streams) error {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(s.Stdin)
	cmd.SetOut(s.Stdout)
	cmd.SetErr(s.Stderr)

	return fang.Execute(
		ctx,
		cmd,
		fang.WithVersion(versioninfo.Short()),
		fang.WithErrorHandler(errorHandler),
	)
}

func errorHandler(w io.Writer, styles fang.Styles, err error) {
	_, _ = fmt.Fprintln(w, styles.ErrorHeader.String())
	_, _ = fmt.Fprintln(w, styles.ErrorText.Render(errorKind(err)+": "+err.Error()+"."))
	_, _ = fmt.Fprintln(w)
}

// errorKind names the failure class shown before the message.
func errorKind(err error) string {
	switch {
	case errors.Is(err, emospn.ErrBoundary):
		return "boundary"
	case errors.Is(err, emospn.ErrAuthentication):
		return "authentication"
	case errors.Is(err, emospn.ErrPadding):
		return "padding"
	case errors.Is(err, emospn.ErrShortInput):
		return "input"
	case errors.Is(err, emospn.ErrInvalidKeySize):
		return "key"
	case errors.Is(err, emospn.ErrRandomSource):
		return "random"
	case errors.Is(err, keystore.ErrNotFound), errors.Is(err, keystore.ErrExists):
		return "keystore"
	default:
		return "error"
	}
}

func newRootCommand() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "emospn",
		Short: "EMO-SPN sandboxed file encryption",
		Long: `Encrypt and decrypt files with the EMO-SPN block cipher.

Files are only read from and written to the configured sandbox directory.
The master key is stored twice, wrapped under a passphrase: once as an
escrow recovery record and once as the local key file in the sandbox.`,
		Example: `  # Create a master key
  emospn init

  # Encrypt with the local key file
  emospn encrypt sandbox/notes.txt sandbox/notes.enc

  # Decrypt using the escrow record
  emospn decrypt sandbox/notes.enc sandbox/notes.txt --escrow escrow/recovery.enc`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "configuration file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "logging level (DEBUG, INFO, NOTICE, WARNING, ERROR)")

	cmd.AddCommand(
		newInitCommand(&flags),
		newEncryptCommand(&flags),
		newDecryptCommand(&flags),
		newSelftestCommand(&flags),
	)
	return cmd
}
