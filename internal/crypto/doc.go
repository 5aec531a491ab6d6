// Package crypto exposes the narrow set of primitives every higher layer
// depends on.
//
// Contents
//
//   - X25519 key generation, clamping and Diffie–Hellman (GenerateX25519, DH)
//   - Ed25519 key generation, signing and verification (GenerateEd25519,
//     SignEd25519, VerifyEd25519)
//   - Kyber768 post-quantum KEM keygen/encapsulate/decapsulate (KEMGenerate,
//     KEMEncapsulate, KEMDecapsulate)
//   - AES-256-GCM AEAD seal/open (AEADSeal, AEADOpen)
//   - SHA3-256 hashing and SHA3-512-backed HKDF-Expand (Hash, KDFExpand)
//   - Secure randomness (Random) and constant-time comparison (ConstantTimeEqual)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Callers never inspect key bytes; every function here is a thin,
// side-channel-aware wrapper over a vetted implementation. Secrets
// should be passed through Wipe once a caller is done with them.
package crypto
