package crypto

import (
	"github.com/cloudflare/circl/kem/kyber/kyber768"

	"ciphera/internal/domain"
)

var kemScheme = kyber768.Scheme()

// KEMGenerate produces a fresh Kyber768 keypair: a NIST category-3
// lattice KEM at the parameters fixed for this protocol version.
func KEMGenerate() (priv domain.KEMPrivate, pub domain.KEMPublic, err error) {
	pk, sk, err := kemScheme.GenerateKeyPair()
	if err != nil {
		return nil, nil, err
	}
	pubBytes, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	privBytes, err := sk.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	return domain.KEMPrivate(privBytes), domain.KEMPublic(pubBytes), nil
}

// KEMEncapsulate produces a ciphertext and a 32-byte shared secret for
// peerPub. The ciphertext is transmitted out-of-band alongside the
// first handshake ciphertext.
func KEMEncapsulate(peerPub domain.KEMPublic) (ct domain.KEMCiphertext, shared []byte, err error) {
	pk, err := kemScheme.UnmarshalBinaryPublicKey(peerPub)
	if err != nil {
		return nil, nil, domain.ErrInternalCrypto
	}
	ctBytes, ss, err := kemScheme.Encapsulate(pk)
	if err != nil {
		return nil, nil, domain.ErrInternalCrypto
	}
	return domain.KEMCiphertext(ctBytes), ss, nil
}

// KEMDecapsulate recovers the shared secret from a ciphertext using the
// local secret. For a ciphertext of the correct size, the KEM's
// implicit-rejection guarantee means this always returns a value, even
// for a forged ciphertext — callers rely on the subsequent AEAD
// authentication to detect that case. A key or ciphertext of the wrong
// size returns domain.ErrInternalCrypto.
func KEMDecapsulate(priv domain.KEMPrivate, ct domain.KEMCiphertext) (shared []byte, err error) {
	sk, err := kemScheme.UnmarshalBinaryPrivateKey(priv)
	if err != nil {
		return nil, domain.ErrInternalCrypto
	}
	ss, err := kemScheme.Decapsulate(sk, ct)
	if err != nil {
		return nil, domain.ErrInternalCrypto
	}
	return ss, nil
}
