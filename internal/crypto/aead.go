package crypto

import (
	"crypto/aes"
	"crypto/cipher"

	"ciphera/internal/domain"
)

// AEADSeal encrypts plaintext under key with AES-256-GCM, a 96-bit
// nonce, and associated data aad, returning ciphertext with the 128-bit
// tag appended.
func AEADSeal(key, nonce, aad, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return gcm.Seal(nil, nonce, plaintext, aad), nil
}

// AEADOpen decrypts ciphertext and verifies its tag. On authentication
// failure it returns domain.ErrUnauthentic and no plaintext — partial
// plaintext is never returned.
func AEADOpen(key, nonce, aad, ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	pt, err := gcm.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, domain.ErrUnauthentic
	}
	return pt, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, domain.ErrInternalCrypto
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, 12)
	if err != nil {
		return nil, domain.ErrInternalCrypto
	}
	return gcm, nil
}
