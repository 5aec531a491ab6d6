package x3dh

import (
	"ciphera/internal/crypto"
	"ciphera/internal/domain"
	"ciphera/internal/util/memzero"
)

// ProtocolVersion is mixed into the handshake's KDF info string. Changing
// it is a wire break.
const ProtocolVersion = "LibertyReach-v1"

const keyScheduleLen = 140

// HandshakeResult is the session seed produced by a completed
// handshake: the key-schedule slices C4 uses to initialise a
// SessionState.
type HandshakeResult struct {
	AEADKey      []byte
	MACKey       []byte
	Nonce        [12]byte
	SendChainKey []byte
	RecvChainKey []byte
}

// InitiatorHandshake runs the hybrid PQ X3DH handshake from the
// initiator's side against an already-verified peer bundle, returning
// the derived session seed and the PreKeyMessage to transmit alongside
// the first ciphertext.
func InitiatorHandshake(
	initiator domain.Identity,
	bundle domain.PreKeyBundle,
	oneTime *domain.OneTimeKeyPublic,
) (HandshakeResult, domain.PreKeyMessage, error) {
	ephPriv, ephPub, err := crypto.GenerateX25519()
	if err != nil {
		return HandshakeResult{}, domain.PreKeyMessage{}, domain.ErrInternalCrypto
	}

	kemCiphertext, kemShared, err := crypto.KEMEncapsulate(bundle.KEMPublic)
	if err != nil {
		return HandshakeResult{}, domain.PreKeyMessage{}, err
	}

	dhA, err := crypto.DH(ephPriv, bundle.ECDHPublic) // binds ephemeral to peer's prekey
	if err != nil {
		return HandshakeResult{}, domain.PreKeyMessage{}, err
	}
	dhB, err := crypto.DH(initiator.XPriv, bundle.ECDHPublic) // binds identity to peer's prekey
	if err != nil {
		return HandshakeResult{}, domain.PreKeyMessage{}, err
	}

	ikm := make([]byte, 0, len(kemShared)+64+32)
	ikm = append(ikm, kemShared...)
	ikm = append(ikm, dhA[:]...)
	ikm = append(ikm, dhB[:]...)
	defer func() { memzero.Zero(ikm) }()

	var oneTimeID domain.OneTimePreKeyID
	if oneTime != nil {
		dhC, err := crypto.DH(ephPriv, oneTime.Pub) // consumes the peer's one-time key
		if err != nil {
			return HandshakeResult{}, domain.PreKeyMessage{}, err
		}
		ikm = append(ikm, dhC[:]...)
		oneTimeID = oneTime.ID
	}

	result := deriveSchedule(ikm, false)

	pm := domain.PreKeyMessage{
		InitiatorIdentityKEM:  initiator.KEMPub,
		InitiatorIdentityECDH: initiator.XPub,
		InitiatorIdentitySig:  initiator.EdPub,
		EphemeralKey:          ephPub,
		KEMCiphertext:         kemCiphertext,
		PreKeyID:              bundle.PreKeyID,
		OneTimeKeyID:          oneTimeID,
	}
	return result, pm, nil
}

// ResponderHandshake runs the mirror-image handshake from the
// responder's side: it decapsulates the KEM ciphertext with the secret
// half of the consumed pre-key, and — fixing the ECDH leg the original
// responder path dropped — incorporates the initiator's ephemeral
// public key via ECDH, not just its own identity material.
func ResponderHandshake(
	responder domain.Identity,
	preKeyKEMPriv domain.KEMPrivate,
	preKeyECDHPriv domain.X25519Private,
	oneTimePriv *domain.X25519Private,
	pm domain.PreKeyMessage,
) (HandshakeResult, error) {
	kemShared, err := crypto.KEMDecapsulate(preKeyKEMPriv, pm.KEMCiphertext)
	if err != nil {
		return HandshakeResult{}, err
	}

	dhA, err := crypto.DH(preKeyECDHPriv, pm.EphemeralKey) // mirrors initiator's dh_a
	if err != nil {
		return HandshakeResult{}, err
	}
	dhB, err := crypto.DH(preKeyECDHPriv, pm.InitiatorIdentityECDH) // mirrors initiator's dh_b
	if err != nil {
		return HandshakeResult{}, err
	}

	ikm := make([]byte, 0, len(kemShared)+64+32)
	ikm = append(ikm, kemShared...)
	ikm = append(ikm, dhA[:]...)
	ikm = append(ikm, dhB[:]...)
	defer func() { memzero.Zero(ikm) }()

	if oneTimePriv != nil {
		dhC, err := crypto.DH(*oneTimePriv, pm.EphemeralKey)
		if err != nil {
			return HandshakeResult{}, err
		}
		ikm = append(ikm, dhC[:]...)
	}

	return deriveSchedule(ikm, true), nil
}

// deriveSchedule runs kdf_expand(ikm, info, 140) and slices the output
// into the key schedule. swapped selects the responder's mirrored
// send/recv chain positions so both sides agree on directional chains.
func deriveSchedule(ikm []byte, swapped bool) HandshakeResult {
	info := []byte(ProtocolVersion + "|Session-Key")
	okm := crypto.KDFExpand(ikm, info, keyScheduleLen)
	defer memzero.Zero(okm)

	var r HandshakeResult
	r.AEADKey = append([]byte(nil), okm[0:32]...)
	r.MACKey = append([]byte(nil), okm[32:64]...)
	copy(r.Nonce[:], okm[64:76])

	firstChain := append([]byte(nil), okm[76:108]...)
	secondChain := append([]byte(nil), okm[108:140]...)
	if swapped {
		r.SendChainKey, r.RecvChainKey = secondChain, firstChain
	} else {
		r.SendChainKey, r.RecvChainKey = firstChain, secondChain
	}
	return r
}
