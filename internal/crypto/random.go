package crypto

import (
	"crypto/rand"

	"ciphera/internal/domain"
)

// Random returns n cryptographically secure random bytes. It fails
// closed on entropy-source exhaustion rather than returning partial or
// low-quality randomness.
func Random(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, domain.ErrInternalCrypto
	}
	return b, nil
}
