package main

import (
	"fmt"

	"github.com/spf13/cobra"

	emospn "github.com/emospn/emospn-go"
)

func newInitCommand(flags *globalFlags) *cobra.Command {
	var (
		passphrase string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a master key and store it under escrow",
		Long: `Generate a random master key and wrap it under a passphrase twice:
as the escrow recovery record and as the local key file in the sandbox.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, flags)
			if err != nil {
				return err
			}
			defer e.Close()

			escrowStore, err := e.escrowStore()
			if err != nil {
				return err
			}
			localStore, err := e.localStore()
			if err != nil {
				return err
			}

			if passphrase == "" {
				if passphrase, err = readPassphrase(cmd, "Escrow passphrase: "); err != nil {
					return err
				}
			}

			masterKey, err := emospn.GenerateMasterKey()
			if err != nil {
				return err
			}

			if err := escrowStore.Create(masterKey, passphrase, force); err != nil {
				return err
			}
			e.log.Noticef("Wrote escrow record to %s", escrowStore.Path())

			if err := localStore.Create(masterKey, passphrase, force); err != nil {
				return err
			}
			e.log.Noticef("Wrote local key file to %s", localStore.Path())

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Init complete.")
			fmt.Fprintln(out, "Escrow at:", escrowStore.Path())
			fmt.Fprintln(out, "Encrypted key in sandbox at:", localStore.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase for the escrow record and key file")
	cmd.Flags().BoolVar(&force, "force", false, "replace existing key files")
	return cmd
}

type transformFunc func(c *emospn.Cipher, in []byte) ([]byte, error)

func newEncryptCommand(flags *globalFlags) *cobra.Command {
	return newTransformCommand(flags, "encrypt", "Encrypt a sandbox file", "Encrypted",
		func(c *emospn.Cipher, in []byte) ([]byte, error) { return c.Encrypt(in) })
}

func newDecryptCommand(flags *globalFlags) *cobra.Command {
	return newTransformCommand(flags, "decrypt", "Decrypt a sandbox file", "Decrypted",
		func(c *emospn.Cipher, in []byte) ([]byte, error) { return c.Decrypt(in) })
}

// newTransformCommand builds encrypt and decrypt, which differ only in the
// cipher operation applied to the input file.
func newTransformCommand(flags *globalFlags, use, short, verb string, fn transformFunc) *cobra.Command {
	var (
		escrowPath string
		passphrase string
	)

	cmd := &cobra.Command{
		Use:   use + " <infile> <outfile>",
		Short: short,
		Long: short + `. Both paths must lie inside the sandbox directory.
The key comes from --escrow when given, otherwise from the local key file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, flags)
			if err != nil {
				return err
			}
			defer e.Close()

			inPath, err := e.sandbox.Resolve(args[0])
			if err != nil {
				return err
			}
			outPath, err := e.sandbox.Resolve(args[1])
			if err != nil {
				return err
			}

			masterKey, err := e.masterKey(cmd, escrowPath, passphrase)
			if err != nil {
				return err
			}
			c, err := emospn.NewCipher(masterKey)
			if err != nil {
				return err
			}

			in, err := e.sandbox.ReadFile(inPath)
			if err != nil {
				return err
			}
			e.log.Debugf("%s: read %d bytes from %s", use, len(in), inPath)

			out, err := fn(c, in)
			if err != nil {
				return err
			}
			if err := e.sandbox.WriteFile(outPath, out); err != nil {
				return err
			}
			e.log.Infof("%s: wrote %d bytes to %s", use, len(out), outPath)

			fmt.Fprintln(cmd.OutOrStdout(), verb, args[0], "->", args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&escrowPath, "escrow", "", "path to an escrow record to take the key from")
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase to unlock the escrow record or key file")
	return cmd
}
