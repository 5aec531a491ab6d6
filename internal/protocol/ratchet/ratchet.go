package ratchet

import (
	"crypto/hmac"
	"encoding/binary"
	"errors"

	"golang.org/x/crypto/sha3"

	"ciphera/internal/crypto"
	"ciphera/internal/domain"
	"ciphera/internal/util/memzero"
)

var errChainUninitialised = errors.New("ratchet: chain key is uninitialised")

// NewSessionState builds the initial SessionState from a completed
// handshake's key schedule, generating a fresh local ratchet keypair.
// peer_ratchet_public is the zero value until the peer's first header
// arrives.
func NewSessionState(
	aeadKey, macKey []byte,
	nonce [12]byte,
	sendChainKey, recvChainKey []byte,
) (domain.SessionState, error) {
	priv, pub, err := crypto.GenerateX25519()
	if err != nil {
		return domain.SessionState{}, domain.ErrInternalCrypto
	}
	return domain.SessionState{
		SendChainKey:     append([]byte(nil), sendChainKey...),
		RecvChainKey:     append([]byte(nil), recvChainKey...),
		AEADKey:          append([]byte(nil), aeadKey...),
		MACKey:           append([]byte(nil), macKey...),
		Nonce:            nonce,
		OwnRatchetSecret: priv,
		OwnRatchetPublic: pub,
		Status:           domain.SessionFresh,
		SkippedKeys:      make(map[string][]byte),
	}, nil
}

// Seal encrypts plaintext under the session's current aead_key and
// nonce, then commits the nonce advance and the send-chain advance.
// The returned header carries the fields the wire layout requires:
// send_counter, the nonce used, and the sender's current ratchet
// public.
func Seal(state *domain.SessionState, aad, plaintext []byte) (domain.RatchetHeader, []byte, error) {
	if state.Status == domain.SessionClosed {
		return domain.RatchetHeader{}, nil, domain.ErrSessionClosed
	}
	if len(state.SendChainKey) == 0 {
		return domain.RatchetHeader{}, nil, errChainUninitialised
	}
	if isMaxNonce(state.Nonce) {
		return domain.RatchetHeader{}, nil, domain.ErrNonceExhausted
	}

	header := domain.RatchetHeader{
		SendCounter:   state.SendCounter,
		Nonce:         state.Nonce,
		RatchetPublic: state.OwnRatchetPublic,
	}
	tag := headerTag(state.MACKey, header)
	fullAAD := append(append([]byte(nil), aad...), tag...)

	ciphertext, err := crypto.AEADSeal(state.AEADKey, state.Nonce[:], fullAAD, plaintext)
	if err != nil {
		return domain.RatchetHeader{}, nil, err
	}

	nextChain := crypto.KDFExpand(state.SendChainKey, []byte("chain"), 32)
	newAEADKey := crypto.KDFExpand(nextChain, []byte("aead-key"), 32)
	newMACKey := crypto.KDFExpand(nextChain, []byte("mac-key"), 32)

	memzero.Zero(state.SendChainKey)
	state.SendChainKey = nextChain
	state.AEADKey = newAEADKey
	state.MACKey = newMACKey
	incrementNonce(&state.Nonce)
	state.SendCounter++
	if state.Status == domain.SessionFresh {
		state.Status = domain.SessionEstablished
	}
	return header, ciphertext, nil
}

// Open verifies and decrypts ciphertext. On authentication failure the
// session state is left completely unchanged and domain.ErrUnauthentic
// is returned.
func Open(state *domain.SessionState, aad []byte, header domain.RatchetHeader, ciphertext []byte) ([]byte, error) {
	if state.Status == domain.SessionClosed {
		return nil, domain.ErrSessionClosed
	}
	if len(state.RecvChainKey) == 0 {
		return nil, errChainUninitialised
	}

	// Out-of-order tolerance: a cached skipped-message key, if this
	// counter was already skipped past, opens without touching the
	// chain or counter. Each cache entry is aead_key‖mac_key.
	skippedID := skippedKeyID(header.RatchetPublic, header.SendCounter)
	if mk, ok := state.SkippedKeys[skippedID]; ok && len(mk) == 64 {
		cachedAAD := append(append([]byte(nil), aad...), headerTag(mk[32:], header)...)
		plaintext, err := crypto.AEADOpen(mk[:32], header.Nonce[:], cachedAAD, ciphertext)
		if err != nil {
			return nil, domain.ErrUnauthentic
		}
		memzero.Zero(mk)
		delete(state.SkippedKeys, skippedID)
		return plaintext, nil
	}

	plan, err := planSkipAhead(state, header.RatchetPublic, header.SendCounter)
	if err != nil {
		return nil, err
	}
	candidateAEADKey, candidateMACKey := state.AEADKey, state.MACKey
	if plan != nil {
		candidateAEADKey, candidateMACKey = plan.aeadKey, plan.macKey
	}
	fullAAD := append(append([]byte(nil), aad...), headerTag(candidateMACKey, header)...)

	plaintext, err := crypto.AEADOpen(candidateAEADKey, header.Nonce[:], fullAAD, ciphertext)
	if err != nil {
		plan.wipe()
		return nil, domain.ErrUnauthentic
	}

	if isMaxNonce(state.Nonce) {
		plan.wipe()
		return nil, domain.ErrNonceExhausted
	}

	if plan != nil {
		memzero.Zero(state.RecvChainKey)
		state.RecvChainKey = plan.recvChainKey
		state.RecvCounter = plan.recvCounter
		for id, mk := range plan.newSkipped {
			if len(state.SkippedKeys) >= maxSkippedKeys {
				for k := range state.SkippedKeys {
					delete(state.SkippedKeys, k)
					break
				}
			}
			state.SkippedKeys[id] = mk
		}
	}
	nextChain := crypto.KDFExpand(state.RecvChainKey, []byte("chain"), 32)
	newAEADKey := crypto.KDFExpand(nextChain, []byte("aead-key"), 32)
	newMACKey := crypto.KDFExpand(nextChain, []byte("mac-key"), 32)
	memzero.Zero(state.RecvChainKey)
	state.RecvChainKey = nextChain
	state.AEADKey = newAEADKey
	state.MACKey = newMACKey
	incrementNonce(&state.Nonce)
	state.RecvCounter++
	if state.Status == domain.SessionFresh {
		state.Status = domain.SessionEstablished
	}
	return plaintext, nil
}

// DHRatchet performs a DH ratchet step on receipt of a new peer ratchet
// public, re-keying both chains. On a weak-key failure the state is
// left unchanged.
func DHRatchet(state *domain.SessionState, incomingRatchetPublic domain.X25519Public) error {
	shared, err := crypto.DH(state.OwnRatchetSecret, incomingRatchetPublic)
	if err != nil {
		return domain.ErrWeakKeyExchange
	}

	recvSeed := append(append([]byte(nil), shared[:]...), state.RecvChainKey...)
	newRecvChain := crypto.KDFExpand(recvSeed, []byte("dh-ratchet-recv"), 32)
	memzero.Zero(recvSeed)

	newPriv, newPub, err := crypto.GenerateX25519()
	if err != nil {
		return domain.ErrInternalCrypto
	}
	shared2, err := crypto.DH(newPriv, incomingRatchetPublic)
	if err != nil {
		return domain.ErrWeakKeyExchange
	}
	sendSeed := append(append([]byte(nil), shared2[:]...), state.SendChainKey...)
	newSendChain := crypto.KDFExpand(sendSeed, []byte("dh-ratchet-send"), 32)
	memzero.Zero(sendSeed)

	memzero.Zero(state.OwnRatchetSecret[:])
	memzero.Zero(state.RecvChainKey)
	memzero.Zero(state.SendChainKey)

	state.RecvChainKey = newRecvChain
	state.RecvCounter = 0
	state.SendChainKey = newSendChain
	state.SendCounter = 0
	state.OwnRatchetSecret = newPriv
	state.OwnRatchetPublic = newPub
	state.PeerRatchetPublic = incomingRatchetPublic
	state.Status = domain.SessionEstablished
	return nil
}

const maxSkippedKeys = 1000

// skipPlan is the chain/key state and newly-skipped message keys needed
// to reach a target counter, computed without touching the real
// SessionState. The caller commits it only once the AEAD tag under
// plan.aeadKey has verified.
type skipPlan struct {
	recvChainKey []byte
	aeadKey      []byte
	macKey       []byte
	recvCounter  uint32
	newSkipped   map[string][]byte
}

// wipe zeroes every key the plan derived. Safe to call on a nil plan.
func (p *skipPlan) wipe() {
	if p == nil {
		return
	}
	memzero.Zero(p.recvChainKey)
	memzero.Zero(p.aeadKey)
	memzero.Zero(p.macKey)
	for _, mk := range p.newSkipped {
		memzero.Zero(mk)
	}
}

// planSkipAhead derives the message keys for counters between the
// session's current recv_counter and target (exclusive) into a local
// plan, leaving state untouched. Returns (nil, nil) when no skip is
// needed — wrong ratchet public, or target at or behind the current
// counter — in which case the caller decrypts against state.AEADKey
// directly. A target requesting more skips than maxSkippedKeys allows
// is rejected before any key derivation runs, since target is
// attacker-controlled and unauthenticated at this point.
func planSkipAhead(state *domain.SessionState, ratchetPublic domain.X25519Public, target uint32) (*skipPlan, error) {
	if ratchetPublic != state.PeerRatchetPublic || target <= state.RecvCounter {
		return nil, nil
	}
	if uint64(target)-uint64(state.RecvCounter) > maxSkippedKeys {
		return nil, domain.ErrUnauthentic
	}

	chainKey := append([]byte(nil), state.RecvChainKey...)
	aeadKey := append([]byte(nil), state.AEADKey...)
	macKey := append([]byte(nil), state.MACKey...)
	counter := state.RecvCounter
	newSkipped := make(map[string][]byte, target-state.RecvCounter)

	for counter < target {
		newSkipped[skippedKeyID(ratchetPublic, counter)] = append(append([]byte(nil), aeadKey...), macKey...)

		nextChain := crypto.KDFExpand(chainKey, []byte("chain"), 32)
		memzero.Zero(chainKey)
		chainKey = nextChain
		aeadKey = crypto.KDFExpand(chainKey, []byte("aead-key"), 32)
		macKey = crypto.KDFExpand(chainKey, []byte("mac-key"), 32)
		counter++
	}

	return &skipPlan{
		recvChainKey: chainKey,
		aeadKey:      aeadKey,
		macKey:       macKey,
		recvCounter:  counter,
		newSkipped:   newSkipped,
	}, nil
}

func skippedKeyID(ratchetPublic domain.X25519Public, counter uint32) string {
	b := make([]byte, 0, 36)
	b = append(b, ratchetPublic[:]...)
	var c [4]byte
	binary.BigEndian.PutUint32(c[:], counter)
	return string(append(b, c[:]...))
}

func headerTag(macKey []byte, h domain.RatchetHeader) []byte {
	mac := hmac.New(sha3.New256, macKey)
	var counter [4]byte
	binary.BigEndian.PutUint32(counter[:], h.SendCounter)
	mac.Write(counter[:])
	mac.Write(h.Nonce[:])
	mac.Write(h.RatchetPublic[:])
	return mac.Sum(nil)
}

func incrementNonce(nonce *[12]byte) {
	for i := len(nonce) - 1; i >= 0; i-- {
		nonce[i]++
		if nonce[i] != 0 {
			return
		}
	}
}

func isMaxNonce(nonce [12]byte) bool {
	for _, b := range nonce {
		if b != 0xFF {
			return false
		}
	}
	return true
}
