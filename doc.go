// Package emospn implements EMO-SPN, an authenticated symmetric block cipher
// built from a 32-round substitution-permutation network whose S-box, bit
// permutation and round keys are all derived from a 256-bit master key.
//
// Records are chained in CBC mode under a random IV and authenticated with
// HMAC-SHA-256 (encrypt-then-MAC). Master keys can be escrowed under a
// passphrase with PBKDF2-SHA-256.
//
// EMO-SPN is an experimental construction. It has not been reviewed and no
// claim of real-world strength is made.
//
// Basic usage:
//
//	key, err := emospn.GenerateMasterKey()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c, err := emospn.NewCipher(key)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	record, err := c.Encrypt([]byte("Hola EMO-SPN"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	plaintext, err := c.Decrypt(record)
//	if errors.Is(err, emospn.ErrAuthentication) {
//	    log.Fatal("record was tampered with or the key is wrong")
//	}
//
// Escrow:
//
//	blob, err := emospn.NewEscrow().Wrap(key, passphrase)
//	recovered, err := emospn.NewEscrow().Unwrap(blob, passphrase)
package emospn
