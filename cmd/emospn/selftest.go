package main

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math"
	"math/bits"
	"path/filepath"

	"github.com/spf13/cobra"

	emospn "github.com/emospn/emospn-go"
	"github.com/emospn/emospn-go/internal/sandbox"
)

const selftestSample = "Hola Mundo EMO-SPN"

var errRoundTrip = errors.New("selftest: decrypted output differs from input")

func newSelftestCommand(flags *globalFlags) *cobra.Command {
	var pairs int

	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run a round-trip check and an avalanche sample",
		Long: `Encrypt and decrypt a sample file in the sandbox with a fresh random key,
then measure how many ciphertext bits change when one plaintext bit flips.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pairs < 1 {
				return fmt.Errorf("invalid argument: --pairs must be at least 1, got %d", pairs)
			}

			e, err := newEnv(cmd, flags)
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Ciphersuite:", emospn.Ciphersuite)
			fmt.Fprintln(out, "Running basic flow test...")
			ct, err := basicFlow(e.sandbox, []byte(selftestSample))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Basic flow OK")
			fmt.Fprintf(out, "Ciphertext entropy: %.4f bits/byte\n", shannonEntropy(ct))

			fmt.Fprintln(out, "Running avalanche sample with", pairs, "pairs...")
			diffs, err := avalanche(rand.Reader, pairs)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Average differing bits (per block): %.2f\n", mean(diffs))
			fmt.Fprintln(out, "Sample diffs (first 10):", diffs[:min(10, len(diffs))])

			e.log.Infof("selftest: %d avalanche pairs, mean %.2f", pairs, mean(diffs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&pairs, "pairs", "n", 200, "number of avalanche plaintext pairs")
	return cmd
}

// basicFlow encrypts sample to a file in the sandbox, decrypts it back and
// compares. It returns the ciphertext record.
func basicFlow(sb *sandbox.Sandbox, sample []byte) ([]byte, error) {
	masterKey, err := emospn.GenerateMasterKey()
	if err != nil {
		return nil, err
	}

	var (
		inPath  = filepath.Join(sb.Root(), "sample.txt")
		encPath = filepath.Join(sb.Root(), "sample.enc")
		decPath = filepath.Join(sb.Root(), "sample.dec.txt")
	)
	if err := sb.WriteFile(inPath, sample); err != nil {
		return nil, err
	}

	c, err := emospn.NewCipher(masterKey)
	if err != nil {
		return nil, err
	}

	pt, err := sb.ReadFile(inPath)
	if err != nil {
		return nil, err
	}
	ct, err := c.Encrypt(pt)
	if err != nil {
		return nil, err
	}
	if err := sb.WriteFile(encPath, ct); err != nil {
		return nil, err
	}

	rec, err := sb.ReadFile(encPath)
	if err != nil {
		return nil, err
	}
	dec, err := c.Decrypt(rec)
	if err != nil {
		return nil, err
	}
	if err := sb.WriteFile(decPath, dec); err != nil {
		return nil, err
	}

	if !bytes.Equal(dec, sample) {
		return nil, errRoundTrip
	}
	return ct, nil
}

// avalanche encrypts n random blocks under a random key, each next to a copy
// with bit i mod 8 of byte i mod 16 flipped, and returns the Hamming
// distance of every ciphertext pair.
func avalanche(rnd io.Reader, n int) ([]int, error) {
	masterKey := make([]byte, emospn.KeySize)
	if _, err := io.ReadFull(rnd, masterKey); err != nil {
		return nil, fmt.Errorf("selftest: %w", err)
	}
	c, err := emospn.NewCipher(masterKey)
	if err != nil {
		return nil, err
	}

	diffs := make([]int, n)
	for i := range n {
		var pt emospn.Block
		if _, err := io.ReadFull(rnd, pt[:]); err != nil {
			return nil, fmt.Errorf("selftest: %w", err)
		}
		flipped := pt
		flipped[i%emospn.BlockSize] ^= 1 << (i % 8)

		c1 := c.EncryptBlock(pt)
		c2 := c.EncryptBlock(flipped)
		for j := range c1 {
			diffs[i] += bits.OnesCount8(c1[j] ^ c2[j])
		}
	}
	return diffs, nil
}

func mean(v []int) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum int
	for _, x := range v {
		sum += x
	}
	return float64(sum) / float64(len(v))
}

// shannonEntropy returns the byte entropy of data in bits per byte.
func shannonEntropy(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	var freq [256]int
	for _, b := range data {
		freq[b]++
	}
	var h float64
	total := float64(len(data))
	for _, n := range freq {
		if n == 0 {
			continue
		}
		p := float64(n) / total
		h -= p * math.Log2(p)
	}
	return h
}
