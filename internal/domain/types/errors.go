package types

import "errors"

// Error taxonomy for the cryptographic core. Every failure surfaced at the
// API boundary maps to exactly one of these; the core never panics on
// external input.
var (
	ErrInternalCrypto   = errors.New("internal crypto failure")
	ErrBundleUnauthentic = errors.New("pre-key bundle signature does not verify")
	ErrWeakKeyExchange  = errors.New("ecdh produced an all-zero shared secret")
	ErrUnauthentic      = errors.New("aead authentication failed")
	ErrNonceExhausted   = errors.New("96-bit nonce counter would overflow")
	ErrMessageTooLarge  = errors.New("message exceeds steganographic capacity")
	ErrCorruptPayload   = errors.New("steganographic payload is corrupt")
	ErrBadParameters    = errors.New("bad shamir parameters")
	ErrInvalidShareSet  = errors.New("invalid shamir share set")
	ErrBelowThreshold   = errors.New("fewer than threshold shares supplied")
	ErrDeletionForbidden = errors.New("profile deletion is forbidden")
	ErrSessionClosed    = errors.New("session is closed")
)
