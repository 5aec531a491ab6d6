package message

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ciphera/internal/domain"
	"ciphera/internal/protocol/ratchet"
	"ciphera/internal/protocol/x3dh"
)

// ErrNoSession indicates there is no stored session with the peer.
var ErrNoSession = errors.New("no session with peer; run InitiateSession first")

// Service sends and receives messages over the relay using the Double
// Ratchet.
//
// High-level flow:
//   - Send: the first message on a freshly initiated session carries a
//     PreKeyMessage so the receiver can bootstrap their side; every
//     later message omits it and uses the existing ratchet state.
//   - Receive: fetch envelopes, bootstrap a session from the sender's
//     PreKeyMessage if this is the first message from them, decrypt in
//     order, persist ratchet state, then ack processed messages.
type Service struct {
	idStore        domain.IdentityStore
	preKeyStore    domain.PreKeyStore
	sessionStore   domain.SessionStore
	ratchetStore   domain.RatchetStore
	sessionService domain.SessionService
	relayClient    domain.RelayClient
}

// New constructs a Message Service with the given stores and relay client.
func New(
	idStore domain.IdentityStore,
	preKeyStore domain.PreKeyStore,
	sessionStore domain.SessionStore,
	ratchetStore domain.RatchetStore,
	sessionService domain.SessionService,
	relayClient domain.RelayClient,
) *Service {
	return &Service{
		idStore:        idStore,
		preKeyStore:    preKeyStore,
		sessionStore:   sessionStore,
		ratchetStore:   ratchetStore,
		sessionService: sessionService,
		relayClient:    relayClient,
	}
}

// SendMessage encrypts and posts plaintext.
//
// A PreKeyMessage is attached whenever the ratchet's send_counter is
// still zero — that is, no message has ever been sealed on this
// session — so the receiver can bootstrap its side via X3DH.
func (s *Service) SendMessage(
	ctx context.Context,
	passphrase string,
	from domain.Username,
	to domain.Username,
	plaintext []byte,
) error {
	sess, ok, err := s.sessionService.GetSession(to)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoSession
	}

	convID := domain.ConversationID(to)
	conv, found, err := s.ratchetStore.LoadConversation(convID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNoSession
	}

	firstMessage := conv.State.SendCounter == 0
	header, ct, err := ratchet.Seal(&conv.State, nil, plaintext)
	if err != nil {
		return err
	}

	if err := s.ratchetStore.SaveConversation(convID, conv); err != nil {
		return err
	}

	var preKeyMsg *domain.PreKeyMessage
	if firstMessage {
		id, err := s.idStore.LoadIdentity(passphrase)
		if err != nil {
			return err
		}
		preKeyMsg = &domain.PreKeyMessage{
			InitiatorIdentityKEM:  id.KEMPub,
			InitiatorIdentityECDH: id.XPub,
			InitiatorIdentitySig:  id.EdPub,
			EphemeralKey:          sess.InitiatorEphemeralKey,
			KEMCiphertext:         sess.KEMCiphertext,
			PreKeyID:              sess.PreKeyID,
			OneTimeKeyID:          sess.OneTimeKeyID,
		}
	}

	env := domain.Envelope{
		From:      from,
		To:        to,
		Header:    header,
		Cipher:    ct,
		PreKey:    preKeyMsg,
		Timestamp: time.Now().Unix(),
	}
	return s.relayClient.SendMessage(ctx, env)
}

// ReceiveMessage fetches pending messages and decrypts them in order.
//
// For the first message from a peer it bootstraps a responder session
// from the attached PreKeyMessage. If prerequisites for bootstrapping
// are missing, processing stops and the remaining envelopes are left
// queued; only envelopes processed successfully are acked.
func (s *Service) ReceiveMessage(
	ctx context.Context,
	passphrase string,
	me domain.Username,
	limit int,
) ([]domain.DecryptedMessage, error) {
	envs, err := s.relayClient.FetchMessages(ctx, me, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.DecryptedMessage, 0, len(envs))
	processed := 0

	for i, env := range envs {
		convID := domain.ConversationID(env.From)
		conv, found, err := s.ratchetStore.LoadConversation(convID)
		if err != nil {
			return out, err
		}

		if !found {
			if env.PreKey == nil {
				break // leave the rest queued
			}
			conv, err = s.bootstrapResponder(passphrase, env.From, *env.PreKey)
			if err != nil {
				return out, fmt.Errorf("bootstrap responder session with %q: %w", env.From, err)
			}
		}

		plaintext, err := ratchet.Open(&conv.State, env.AssociatedData, env.Header, env.Cipher)
		if err != nil {
			return out, fmt.Errorf("decrypt from %q failed: %w", env.From, err)
		}
		if err := s.ratchetStore.SaveConversation(convID, conv); err != nil {
			return out, fmt.Errorf("save conversation %q: %w", env.From, err)
		}

		out = append(out, domain.DecryptedMessage{
			From:      env.From,
			To:        env.To,
			Plaintext: plaintext,
			Timestamp: env.Timestamp,
		})
		processed = i + 1
	}

	if processed > 0 {
		if err := s.relayClient.AckMessages(ctx, me, processed); err != nil {
			return out, fmt.Errorf("ack %d messages: %w", processed, err)
		}
	}
	return out, nil
}

// bootstrapResponder runs the hybrid PQ X3DH handshake as the
// responder against an incoming PreKeyMessage, persists the resulting
// session bookkeeping, and returns the freshly seeded conversation.
func (s *Service) bootstrapResponder(passphrase string, from domain.Username, pm domain.PreKeyMessage) (domain.Conversation, error) {
	id, err := s.idStore.LoadIdentity(passphrase)
	if err != nil {
		return domain.Conversation{}, err
	}

	kemPriv, _, ecdhPriv, _, _, found, err := s.preKeyStore.LoadPreKey(pm.PreKeyID)
	if err != nil {
		return domain.Conversation{}, err
	}
	if !found {
		return domain.Conversation{}, fmt.Errorf("pre-key %q not found", pm.PreKeyID)
	}

	var oneTimePriv *domain.X25519Private
	if pm.OneTimeKeyID != "" {
		priv, _, ok, err := s.preKeyStore.ConsumeOneTimeKey(pm.OneTimeKeyID)
		if err != nil {
			return domain.Conversation{}, err
		}
		if ok {
			oneTimePriv = &priv
		}
	}

	result, err := x3dh.ResponderHandshake(id, kemPriv, ecdhPriv, oneTimePriv, pm)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("responder handshake: %w", err)
	}

	state, err := ratchet.NewSessionState(result.AEADKey, result.MACKey, result.Nonce, result.SendChainKey, result.RecvChainKey)
	if err != nil {
		return domain.Conversation{}, err
	}

	session := domain.Session{
		PeerUsername:          from,
		PeerIdentitySig:       pm.InitiatorIdentitySig,
		PeerIdentityECDH:      pm.InitiatorIdentityECDH,
		CreatedUTC:            time.Now().Unix(),
		PreKeyID:              pm.PreKeyID,
		OneTimeKeyID:          pm.OneTimeKeyID,
		InitiatorEphemeralKey: pm.EphemeralKey,
		KEMCiphertext:         pm.KEMCiphertext,
	}
	if err := s.sessionStore.SaveSession(from, session); err != nil {
		return domain.Conversation{}, err
	}

	return domain.Conversation{Peer: domain.ConversationID(from), State: state}, nil
}

// Compile-time assertion that Service implements domain.MessageService.
var _ domain.MessageService = (*Service)(nil)
