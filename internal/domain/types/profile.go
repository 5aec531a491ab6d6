package types

// ProfileMasterKey is the long-term recovery secret minted once per
// identity and immediately split into recovery shares; the key itself
// is the caller's responsibility to distribute and erase.
type ProfileMasterKey struct {
	Key            [32]byte       `json:"key"`
	CreatedAt      uint64         `json:"created_at"`
	RecoveryDigest [32]byte       `json:"recovery_digest"`
	Shares         [5]SecretShare `json:"shares"`
}

// BackupLocation records where an encrypted backup of a profile's
// payload was last placed; restored from the original implementation,
// which the distilled handshake/ratchet spec does not mention but which
// the conversation layer is free to populate and persist alongside a
// profile.
type BackupLocation struct {
	Type     string `json:"type"`
	Location string `json:"location"`
}

// EncryptedProfile is the durable, publicly visible identity binding.
// CreatedAt is immutable; Active is the only mutable field besides
// LastSeen; there is no "deleted" state.
type EncryptedProfile struct {
	UserID            string        `json:"user_id"`
	KEMPublic         KEMPublic     `json:"kem_public"`
	ECDHPublic        X25519Public  `json:"ecdh_public"`
	SignaturePublic   Ed25519Public `json:"signature_public"`
	EncryptedPayload  []byte        `json:"encrypted_payload"`
	RecoveryDigestHex string        `json:"recovery_digest_hex"`
	CreatedAt         uint64        `json:"created_at"`
	LastSeen          uint64        `json:"last_seen"`
	Active            bool          `json:"active"`
	Backup            *BackupLocation `json:"backup,omitempty"`
}
