// Package crypto implements the EMO-SPN primitives: key-derived tables, the
// block round function, PKCS#7 padding, HMAC-SHA-256 tags, the chained
// record format and passphrase escrow.
//
// # Construction
//
//   - Table derivation: a xorshift64 stream seeded with SHA-256(masterKey ||
//     label) drives Fisher-Yates shuffles for the S-box ("SBOX") and the
//     128-bit permutation ("PLAYER"), and produces Rounds+1 round keys
//     ("KS"). The stream is deterministic and not cryptographically secure.
//
//   - Block function: key 0 whitening, then 32 rounds of substitute,
//     permute bits, add round key.
//
//   - Records: IV (16) || CBC ciphertext || HMAC-SHA-256(masterKey, IV || C).
//
//   - Escrow: salt (16) || masterKey XOR PBKDF2(passphrase, salt) || tag.
//
// # Security Notes
//
// The construction is not a reviewed cipher and makes no strength claim.
//
// Tags MUST be verified before decryption. [OpenRecord] and [UnwrapKey] do
// this themselves; callers should never decrypt record bodies by hand.
//
// IVs and salts come from crypto/rand, never from [XorShift64].
package crypto
