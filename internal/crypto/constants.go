package crypto

const (
	// BlockSize is the size of an EMO-SPN block in bytes (128 bits).
	BlockSize = 16
	// BlockBits is the number of bit positions permuted within one block.
	BlockBits = BlockSize * 8

	// MasterKeySize is the size of a master key in bytes (256 bits).
	MasterKeySize = 32

	// Rounds is the number of SPN rounds. The schedule holds Rounds+1 keys.
	Rounds = 32

	// IVSize is the size of the chaining IV prefixed to every record.
	IVSize = BlockSize
	// TagSize is the size of an HMAC-SHA-256 tag in bytes.
	TagSize = 32
	// MinRecordSize is the smallest framing a ciphertext record can have.
	MinRecordSize = IVSize + TagSize

	// SaltSize is the size of the escrow PBKDF2 salt in bytes.
	SaltSize = 16
	// EscrowBlobSize is the fixed size of an escrow blob:
	// salt || wrapped key || tag.
	EscrowBlobSize = SaltSize + MasterKeySize + TagSize
	// PBKDF2Iterations is the iteration count for escrow key derivation.
	PBKDF2Iterations = 200000

	// macBlockSize is the internal block size of SHA-256.
	macBlockSize = 64
)

// Context labels appended to the master key when seeding each derivation
// stream. They keep the three artifacts on independent streams.
const (
	LabelSubstitution = "SBOX"
	LabelPermutation  = "PLAYER"
	LabelKeySchedule  = "KS"
)

// fallbackSeed replaces an all-zero xorshift state, which would otherwise
// produce zeros forever.
const fallbackSeed uint64 = 0xdeadbeefcafebabe

// Ciphersuite is the canonical name of the construction.
const Ciphersuite = "EMO-SPN-128:R32:CBC:HMAC-SHA-256:PBKDF2-SHA-256"
