package types

// X25519Public is a Curve25519 public key.
type X25519Public [32]byte

// Slice returns the key as a []byte.
func (p X25519Public) Slice() []byte { return p[:] }

// X25519Private is a Curve25519 private key.
type X25519Private [32]byte

// Slice returns the key as a []byte.
func (k X25519Private) Slice() []byte { return k[:] }

// Ed25519Public is an Ed25519 signing public key.
type Ed25519Public [32]byte

// Slice returns the key as a []byte.
func (p Ed25519Public) Slice() []byte { return p[:] }

// Ed25519Private is an Ed25519 signing private key.
type Ed25519Private [64]byte

// Slice returns the key as a []byte.
func (k Ed25519Private) Slice() []byte { return k[:] }

// KEMPublicKeySize and KEMPrivateKeySize follow the Kyber768 reference
// sizing named in the handshake design (1184 B public, 2400 B secret).
const (
	KEMPublicKeySize  = 1184
	KEMPrivateKeySize = 2400
	// KEMCiphertextSize is the size of a Kyber768 encapsulation ciphertext.
	KEMCiphertextSize = 1088
	// KEMSharedSecretSize is the fixed shared-secret size a KEM produces
	// after its own internal KDF.
	KEMSharedSecretSize = 32
)

// KEMPublic is a post-quantum KEM public key.
type KEMPublic []byte

// KEMPrivate is a post-quantum KEM private key.
type KEMPrivate []byte

// KEMCiphertext is the encapsulation output transmitted out-of-band
// alongside the first handshake message.
type KEMCiphertext []byte
