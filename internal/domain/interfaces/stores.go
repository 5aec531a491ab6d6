package interfaces

import domaintypes "ciphera/internal/domain/types"

// IdentityStore persists your long-term identity keys.
type IdentityStore interface {
	SaveIdentity(passphrase string, id domaintypes.Identity) error
	LoadIdentity(passphrase string) (domaintypes.Identity, error)
}

// PreKeyStore manages the published pre-key (KEM+ECDH pair) and any
// one-time keys on disk.
type PreKeyStore interface {
	// Pre-key (KEM keypair + ECDH keypair, jointly signed)
	SavePreKey(
		id domaintypes.SignedPreKeyID,
		kemPriv domaintypes.KEMPrivate,
		kemPub domaintypes.KEMPublic,
		ecdhPriv domaintypes.X25519Private,
		ecdhPub domaintypes.X25519Public,
		sig []byte,
	) error
	LoadPreKey(
		id domaintypes.SignedPreKeyID,
	) (
		kemPriv domaintypes.KEMPrivate,
		kemPub domaintypes.KEMPublic,
		ecdhPriv domaintypes.X25519Private,
		ecdhPub domaintypes.X25519Public,
		sig []byte,
		ok bool,
		err error,
	)

	// One-time keys
	SaveOneTimeKeys(pairs []domaintypes.OneTimeKeyPair) error
	ConsumeOneTimeKey(id domaintypes.OneTimePreKeyID) (
		priv domaintypes.X25519Private,
		pub domaintypes.X25519Public,
		ok bool,
		err error,
	)
	ListOneTimeKeyPublics() ([]domaintypes.OneTimeKeyPublic, error)

	// Current pre-key selection
	SetCurrentPreKeyID(id domaintypes.SignedPreKeyID) error
	CurrentPreKeyID() (domaintypes.SignedPreKeyID, bool, error)
}

// PreKeyBundleStore caches the last bundle you registered.
type PreKeyBundleStore interface {
	SavePreKeyBundle(bundle domaintypes.PreKeyBundle) error
	LoadPreKeyBundle(username domaintypes.Username) (domaintypes.PreKeyBundle, bool, error)
}

// SessionStore persists established X3DH sessions.
type SessionStore interface {
	SaveSession(peer domaintypes.Username, session domaintypes.Session) error
	LoadSession(peer domaintypes.Username) (domaintypes.Session, bool, error)
}

// RatchetStore keeps per-peer Double-Ratchet state.
type RatchetStore interface {
	SaveConversation(peer domaintypes.ConversationID, conversation domaintypes.Conversation) error
	LoadConversation(peer domaintypes.ConversationID) (domaintypes.Conversation, bool, error)
}
