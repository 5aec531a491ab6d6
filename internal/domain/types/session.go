package types

// Session records the bookkeeping around a completed handshake: which
// peer, which of the peer's published pre-keys/one-time-keys were
// consumed, and when. The cryptographic session state itself lives in
// SessionState / Conversation.
type Session struct {
	PeerUsername     Username        `json:"peer_username"`
	PeerIdentitySig  Ed25519Public   `json:"peer_identity_sig"`
	PeerIdentityECDH X25519Public    `json:"peer_identity_ecdh"`
	CreatedUTC       int64           `json:"created_utc"`
	PreKeyID         SignedPreKeyID  `json:"prekey_id"`
	OneTimeKeyID     OneTimePreKeyID `json:"one_time_key_id,omitempty"`
	InitiatorEphemeralKey X25519Public `json:"initiator_ephemeral_key"`
	KEMCiphertext    KEMCiphertext   `json:"kem_ciphertext,omitempty"`
}
