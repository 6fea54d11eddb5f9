package core

import "golang.org/x/crypto/sha3"

// Hash32 is a 32-byte digest, used for both Merkle leaves and internal
// nodes.
type Hash32 [32]byte

// Hasher is the digest function the Merkle digester runs over slot bytes
// and node pairs. The reference implementation (assets.h, in the
// retrieved source this module is built from) uses KangarooTwelve, which
// spec.md names as an external collaborator outside this module's scope.
// Hasher exists so a real K12 binding can be dropped in without touching
// the digester.
type Hasher interface {
	// SumSlot hashes a single 48-byte slot into a leaf digest.
	SumSlot(slot [SlotSizeBytes]byte) Hash32
	// SumPair hashes two child digests into their parent digest.
	SumPair(left, right Hash32) Hash32
}

// sha3Hasher is the default Hasher, standing in for KangarooTwelve with
// SHA3-256 from the same Keccak family.
type sha3Hasher struct{}

// NewDefaultHasher returns the module's default Hasher.
func NewDefaultHasher() Hasher { return sha3Hasher{} }

func (sha3Hasher) SumSlot(slot [SlotSizeBytes]byte) Hash32 {
	return sha3.Sum256(slot[:])
}

func (sha3Hasher) SumPair(left, right Hash32) Hash32 {
	var buf [64]byte
	copy(buf[:32], left[:])
	copy(buf[32:], right[:])
	return sha3.Sum256(buf[:])
}
