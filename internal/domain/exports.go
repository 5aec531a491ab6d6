package domain

import (
	interfaces "ciphera/internal/domain/interfaces"
	types "ciphera/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username         = types.Username
	Fingerprint      = types.Fingerprint
	SignedPreKeyID   = types.SignedPreKeyID
	OneTimePreKeyID  = types.OneTimePreKeyID
	ConversationID   = types.ConversationID
	Identity         = types.Identity
	RemoteIdentity   = types.RemoteIdentity
	OneTimeKeyPair   = types.OneTimeKeyPair
	OneTimeKeyPublic = types.OneTimeKeyPublic
	PreKeyBundle     = types.PreKeyBundle
	PreKeyMessage    = types.PreKeyMessage
	Envelope         = types.Envelope
	DecryptedMessage = types.DecryptedMessage
	RatchetHeader    = types.RatchetHeader
	SessionState     = types.SessionState
	SessionStatus    = types.SessionStatus
	Conversation     = types.Conversation
	Session          = types.Session
	AccountProfile   = types.AccountProfile
	X25519Public     = types.X25519Public
	X25519Private    = types.X25519Private
	Ed25519Public    = types.Ed25519Public
	Ed25519Private   = types.Ed25519Private
	KEMPublic        = types.KEMPublic
	KEMPrivate       = types.KEMPrivate
	KEMCiphertext    = types.KEMCiphertext
	SecretShare      = types.SecretShare
	ProfileMasterKey = types.ProfileMasterKey
	EncryptedProfile = types.EncryptedProfile
	BackupLocation   = types.BackupLocation
)

// Session lifecycle status constants.
const (
	SessionFresh       = types.SessionFresh
	SessionEstablished = types.SessionEstablished
	SessionRotating    = types.SessionRotating
	SessionClosed      = types.SessionClosed
)

// Error taxonomy re-exported for compact imports.
var (
	ErrInternalCrypto    = types.ErrInternalCrypto
	ErrBundleUnauthentic = types.ErrBundleUnauthentic
	ErrWeakKeyExchange   = types.ErrWeakKeyExchange
	ErrUnauthentic       = types.ErrUnauthentic
	ErrNonceExhausted    = types.ErrNonceExhausted
	ErrMessageTooLarge   = types.ErrMessageTooLarge
	ErrCorruptPayload    = types.ErrCorruptPayload
	ErrBadParameters     = types.ErrBadParameters
	ErrInvalidShareSet   = types.ErrInvalidShareSet
	ErrBelowThreshold    = types.ErrBelowThreshold
	ErrDeletionForbidden = types.ErrDeletionForbidden
	ErrSessionClosed     = types.ErrSessionClosed
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	IdentityService   = interfaces.IdentityService
	PreKeyService     = interfaces.PreKeyService
	SessionService    = interfaces.SessionService
	MessageService    = interfaces.MessageService
	RelayClient       = interfaces.RelayClient
	IdentityStore     = interfaces.IdentityStore
	PreKeyStore       = interfaces.PreKeyStore
	PreKeyBundleStore = interfaces.PreKeyBundleStore
	SessionStore      = interfaces.SessionStore
	RatchetStore      = interfaces.RatchetStore
	AccountStore      = interfaces.AccountStore
)
