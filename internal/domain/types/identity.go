package types

// Identity is a local IdentityKeyTriple: three independently generated
// keypairs held for the lifetime of a user — a post-quantum KEM pair, an
// X25519 ECDH pair, and an Ed25519 signature pair. All three secrets are
// present; the triple is created exactly once per identity and never
// rotated.
type Identity struct {
	KEMPub  KEMPublic      `json:"kem_pub"`
	KEMPriv KEMPrivate     `json:"kem_priv"`
	XPub    X25519Public   `json:"xpub"`
	XPriv   X25519Private  `json:"xpriv"`
	EdPub   Ed25519Public  `json:"edpub"`
	EdPriv  Ed25519Private `json:"edpriv"`
}

// RemoteIdentity carries only the public half of an IdentityKeyTriple, as
// advertised by a peer and never accompanied by secret material.
type RemoteIdentity struct {
	KEMPub KEMPublic     `json:"kem_pub"`
	XPub   X25519Public  `json:"xpub"`
	EdPub  Ed25519Public `json:"edpub"`
}

// Public strips the secrets from a local Identity.
func (id Identity) Public() RemoteIdentity {
	return RemoteIdentity{KEMPub: id.KEMPub, XPub: id.XPub, EdPub: id.EdPub}
}
