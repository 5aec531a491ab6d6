package crypto

import (
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

// Hash computes a fixed-size 256-bit digest. No Go BLAKE3 implementation
// appears anywhere in the example corpus; SHA3-256 is used per the
// primitive design's own fallback clause ("any 256-bit cryptographic
// hash whose collision/preimage guarantees match").
func Hash(data []byte) [32]byte {
	return sha3.Sum256(data)
}

// KDFExpand is HKDF-Expand with a SHA-3 family PRF and empty salt,
// matching the original implementation's Hkdf::<Sha3_512> choice.
func KDFExpand(ikm, info []byte, outLen int) []byte {
	r := hkdf.New(sha3.New512, ikm, nil, info)
	out := make([]byte, outLen)
	if _, err := io.ReadFull(r, out); err != nil {
		panic("crypto: hkdf expand exhausted: " + err.Error())
	}
	return out
}
