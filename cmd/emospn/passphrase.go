package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errEmptyPassphrase = errors.New("passphrase must not be empty")

// readPassphrase prompts on stderr. A terminal stdin is read without echo;
// anything else is read up to the first newline.
func readPassphrase(cmd *cobra.Command, prompt string) (string, error) {
	in := cmd.InOrStdin()
	stderr := cmd.ErrOrStderr()

	var passphrase string
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(stderr, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(stderr)
		if err != nil {
			return "", fmt.Errorf("read passphrase: %w", err)
		}
		passphrase = string(b)
	} else {
		fmt.Fprint(stderr, prompt)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read passphrase: %w", err)
		}
		passphrase = strings.TrimRight(line, "\r\n")
	}

	if passphrase == "" {
		return "", errEmptyPassphrase
	}
	return passphrase, nil
}
