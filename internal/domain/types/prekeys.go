package types

import "encoding/binary"

// PreKeyBundle is the signed advertisement a peer publishes so strangers
// can initiate a handshake: a fresh KEM public and a fresh ECDH public,
// both covered by a single Ed25519 signature from the identity's
// signature secret over kem_public || ecdh_public.
type PreKeyBundle struct {
	Username       Username       `json:"username"`
	PreKeyID       SignedPreKeyID `json:"prekey_id"`
	IdentitySigKey Ed25519Public  `json:"identity_sig_key"`
	KEMPublic      KEMPublic      `json:"kem_public"`
	ECDHPublic     X25519Public   `json:"ecdh_public"`
	Signature      []byte         `json:"signature"`
	OneTimeKey     *OneTimeKeyPublic `json:"one_time_key,omitempty"`
}

// SignedMessage returns the exact byte sequence the bundle signature
// covers: kem_public || ecdh_public.
func (b PreKeyBundle) SignedMessage() []byte {
	msg := make([]byte, 0, len(b.KEMPublic)+32)
	msg = append(msg, b.KEMPublic...)
	msg = append(msg, b.ECDHPublic[:]...)
	return msg
}

// WireBytes returns the wire layout: u32 LE ‖ kem_public ‖
// ecdh_public(32) ‖ signature(64). The leading u32 holds the byte length
// of the string PreKeyID; the id's characters themselves are not included.
func (b PreKeyBundle) WireBytes() []byte {
	out := make([]byte, 4, 4+len(b.KEMPublic)+32+64)
	binary.LittleEndian.PutUint32(out, uint32(len(b.PreKeyID)))
	out = append(out, b.KEMPublic...)
	out = append(out, b.ECDHPublic[:]...)
	out = append(out, b.Signature...)
	return out
}

// OneTimeKeyPair is the full local half of an optional one-time ECDH key,
// consumed at most once by a handshake on the responder side. The store
// removes the pair when the responder consumes it, before the handshake
// runs.
type OneTimeKeyPair struct {
	ID   OneTimePreKeyID `json:"id"`
	Priv X25519Private   `json:"priv"`
	Pub  X25519Public    `json:"pub"`
}

// OneTimeKeyPublic is only the public half, embedded in a bundle.
type OneTimeKeyPublic struct {
	ID  OneTimePreKeyID `json:"id"`
	Pub X25519Public    `json:"pub"`
}

// PreKeyMessage carries the handshake parameters an initiator sends
// alongside its first ciphertext: the initiator's identity publics, its
// fresh ephemeral ECDH public, the KEM encapsulation ciphertext, and
// which of the responder's published pre-key/one-time-key it used.
type PreKeyMessage struct {
	InitiatorIdentityKEM KEMPublic       `json:"initiator_identity_kem"`
	InitiatorIdentityECDH X25519Public   `json:"initiator_identity_ecdh"`
	InitiatorIdentitySig Ed25519Public   `json:"initiator_identity_sig"`
	EphemeralKey         X25519Public    `json:"ephemeral_key"`
	KEMCiphertext        KEMCiphertext   `json:"kem_ciphertext"`
	PreKeyID             SignedPreKeyID  `json:"prekey_id"`
	OneTimeKeyID         OneTimePreKeyID `json:"one_time_key_id,omitempty"`
}
