package session

import (
	"context"
	"time"

	"ciphera/internal/crypto"
	"ciphera/internal/domain"
	"ciphera/internal/protocol/ratchet"
	"ciphera/internal/protocol/x3dh"
)

// Service performs the hybrid PQ X3DH handshake and persists the
// resulting session bookkeeping and Double Ratchet state.
//
// A session represents the key schedule and associated metadata needed
// to exchange Double Ratchet messages with a peer. This service:
//   - Retrieves our own identity keys.
//   - Fetches and authenticates the peer's pre-key bundle from the relay.
//   - Runs the hybrid PQ X3DH handshake as the initiator.
//   - Bootstraps and persists the Double Ratchet session.
type Service struct {
	idStore      domain.IdentityStore
	bundleStore  domain.PreKeyBundleStore
	sessionStore domain.SessionStore
	ratchetStore domain.RatchetStore
	relayClient  domain.RelayClient
}

// New constructs a Session Service with the given stores and relay client.
func New(
	idStore domain.IdentityStore,
	bundleStore domain.PreKeyBundleStore,
	sessionStore domain.SessionStore,
	ratchetStore domain.RatchetStore,
	relayClient domain.RelayClient,
) *Service {
	return &Service{
		idStore:      idStore,
		bundleStore:  bundleStore,
		sessionStore: sessionStore,
		ratchetStore: ratchetStore,
		relayClient:  relayClient,
	}
}

// InitiateSession runs the handshake against the peer's pre-key bundle,
// bootstraps the Double Ratchet session, and persists both.
//
// Steps:
//  1. Load our own identity key triple.
//  2. Fetch the peer's pre-key bundle from the relay and verify its
//     self-signature (kem_public‖ecdh_public under identity_sig_key).
//  3. Run the hybrid PQ X3DH handshake as the initiator.
//  4. Bootstrap the Double Ratchet session from the derived key schedule.
//  5. Persist the Session bookkeeping and the Conversation ratchet state.
func (s *Service) InitiateSession(
	ctx context.Context,
	passphrase string,
	peer domain.Username,
) (domain.Session, error) {
	id, err := s.idStore.LoadIdentity(passphrase)
	if err != nil {
		return domain.Session{}, err
	}

	bundle, err := s.relayClient.FetchPreKeyBundle(ctx, peer)
	if err != nil {
		return domain.Session{}, err
	}
	if !crypto.VerifyEd25519(bundle.IdentitySigKey, bundle.SignedMessage(), bundle.Signature) {
		return domain.Session{}, domain.ErrBundleUnauthentic
	}

	result, pm, err := x3dh.InitiatorHandshake(id, bundle, bundle.OneTimeKey)
	if err != nil {
		return domain.Session{}, err
	}

	state, err := ratchet.NewSessionState(result.AEADKey, result.MACKey, result.Nonce, result.SendChainKey, result.RecvChainKey)
	if err != nil {
		return domain.Session{}, err
	}

	session := domain.Session{
		PeerUsername:          peer,
		PeerIdentitySig:       bundle.IdentitySigKey,
		PeerIdentityECDH:      bundle.ECDHPublic,
		CreatedUTC:            time.Now().Unix(),
		PreKeyID:              pm.PreKeyID,
		OneTimeKeyID:          pm.OneTimeKeyID,
		InitiatorEphemeralKey: pm.EphemeralKey,
		KEMCiphertext:         pm.KEMCiphertext,
	}
	if err := s.sessionStore.SaveSession(peer, session); err != nil {
		return domain.Session{}, err
	}
	conv := domain.Conversation{Peer: domain.ConversationID(peer), State: state}
	if err := s.ratchetStore.SaveConversation(domain.ConversationID(peer), conv); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// GetSession retrieves a stored session for the given peer.
func (s *Service) GetSession(peer domain.Username) (domain.Session, bool, error) {
	return s.sessionStore.LoadSession(peer)
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)
