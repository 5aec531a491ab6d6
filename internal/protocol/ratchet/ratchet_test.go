package ratchet_test

import (
	"bytes"
	"testing"

	"ciphera/internal/domain"
	"ciphera/internal/protocol/ratchet"
)

// seedSchedule fabricates a symmetric key schedule as x3dh.deriveSchedule
// would produce it, with the responder's chains swapped relative to the
// initiator's, so both sides can bootstrap a SessionState without
// actually running a handshake.
func seedSchedule() (aeadKey, macKey []byte, nonce [12]byte, chainA, chainB []byte) {
	aeadKey = bytes.Repeat([]byte{0x11}, 32)
	macKey = bytes.Repeat([]byte{0x22}, 32)
	chainA = bytes.Repeat([]byte{0x33}, 32)
	chainB = bytes.Repeat([]byte{0x44}, 32)
	return
}

func newPeerStates(t *testing.T) (alice, bob *domain.SessionState) {
	t.Helper()
	aeadKey, macKey, nonce, chainA, chainB := seedSchedule()

	a, err := ratchet.NewSessionState(aeadKey, macKey, nonce, chainA, chainB)
	if err != nil {
		t.Fatalf("NewSessionState (alice): %v", err)
	}
	b, err := ratchet.NewSessionState(aeadKey, macKey, nonce, chainB, chainA)
	if err != nil {
		t.Fatalf("NewSessionState (bob): %v", err)
	}
	a.PeerRatchetPublic = b.OwnRatchetPublic
	b.PeerRatchetPublic = a.OwnRatchetPublic
	return &a, &b
}

func TestSealOpen_RoundTrip(t *testing.T) {
	alice, bob := newPeerStates(t)

	header, ct, err := ratchet.Seal(alice, []byte("aad"), []byte("hello bob"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	pt, err := ratchet.Open(bob, []byte("aad"), header, ct)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if string(pt) != "hello bob" {
		t.Fatalf("got %q, want %q", pt, "hello bob")
	}
	if alice.Status != domain.SessionEstablished {
		t.Error("sender status should advance to established")
	}
	if bob.Status != domain.SessionEstablished {
		t.Error("receiver status should advance to established")
	}
}

func TestSealOpen_ForwardSecrecyAdvancesChain(t *testing.T) {
	alice, bob := newPeerStates(t)

	firstHeader, firstCT, err := ratchet.Seal(alice, nil, []byte("one"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if _, err := ratchet.Open(bob, nil, firstHeader, firstCT); err != nil {
		t.Fatalf("Open (first): %v", err)
	}

	// Replaying the same ciphertext a second time must fail: bob's chain
	// has already advanced past this message key.
	if _, err := ratchet.Open(bob, nil, firstHeader, firstCT); err == nil {
		t.Fatal("replayed message must not decrypt")
	}

	secondHeader, secondCT, err := ratchet.Seal(alice, nil, []byte("two"))
	if err != nil {
		t.Fatalf("Seal (second): %v", err)
	}
	pt, err := ratchet.Open(bob, nil, secondHeader, secondCT)
	if err != nil {
		t.Fatalf("Open (second): %v", err)
	}
	if string(pt) != "two" {
		t.Fatalf("got %q, want %q", pt, "two")
	}
}

func TestOpen_TamperedCiphertextLeavesStateUnchanged(t *testing.T) {
	alice, bob := newPeerStates(t)

	header, ct, err := ratchet.Seal(alice, []byte("aad"), []byte("payload"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	tampered := append([]byte(nil), ct...)
	tampered[0] ^= 0x01

	counterBefore := bob.RecvCounter
	if _, err := ratchet.Open(bob, []byte("aad"), header, tampered); err != domain.ErrUnauthentic {
		t.Fatalf("want ErrUnauthentic, got %v", err)
	}
	if bob.RecvCounter != counterBefore {
		t.Error("failed Open must not advance recv_counter")
	}

	// The untampered ciphertext must still open correctly afterwards.
	pt, err := ratchet.Open(bob, []byte("aad"), header, ct)
	if err != nil {
		t.Fatalf("Open (untampered): %v", err)
	}
	if string(pt) != "payload" {
		t.Fatalf("got %q, want %q", pt, "payload")
	}
}

func TestOpen_ForgedSkipAheadCounterLeavesStateUnchanged(t *testing.T) {
	alice, bob := newPeerStates(t)

	h1, ct1, err := ratchet.Seal(alice, nil, []byte("msg-1"))
	if err != nil {
		t.Fatalf("Seal 1: %v", err)
	}

	// Forge a header far ahead of anything alice actually sent, paired
	// with an invalid ciphertext. If skip-ahead derivation were committed
	// before the AEAD tag is checked, this alone would burn bob's receive
	// chain forward and evict any real skipped keys.
	forged := h1
	forged.SendCounter = 500
	tampered := append([]byte(nil), ct1...)
	tampered[0] ^= 0x01

	counterBefore := bob.RecvCounter
	chainBefore := append([]byte(nil), bob.RecvChainKey...)
	aeadKeyBefore := append([]byte(nil), bob.AEADKey...)
	macKeyBefore := append([]byte(nil), bob.MACKey...)
	skippedBefore := len(bob.SkippedKeys)

	if _, err := ratchet.Open(bob, nil, forged, tampered); err != domain.ErrUnauthentic {
		t.Fatalf("want ErrUnauthentic, got %v", err)
	}
	if bob.RecvCounter != counterBefore {
		t.Error("forged skip-ahead counter must not advance recv_counter on auth failure")
	}
	if !bytes.Equal(bob.RecvChainKey, chainBefore) {
		t.Error("forged skip-ahead counter must not advance the recv chain on auth failure")
	}
	if !bytes.Equal(bob.AEADKey, aeadKeyBefore) || !bytes.Equal(bob.MACKey, macKeyBefore) {
		t.Error("forged skip-ahead counter must not rotate aead_key/mac_key on auth failure")
	}
	if len(bob.SkippedKeys) != skippedBefore {
		t.Error("forged skip-ahead counter must not populate the skipped-key cache on auth failure")
	}

	// The real, legitimate message must still open correctly afterwards.
	pt1, err := ratchet.Open(bob, nil, h1, ct1)
	if err != nil {
		t.Fatalf("Open (legitimate): %v", err)
	}
	if string(pt1) != "msg-1" {
		t.Fatalf("got %q, want %q", pt1, "msg-1")
	}
}

func TestOpen_RejectsExcessiveSkipAhead(t *testing.T) {
	alice, bob := newPeerStates(t)

	h1, ct1, err := ratchet.Seal(alice, nil, []byte("msg-1"))
	if err != nil {
		t.Fatalf("Seal 1: %v", err)
	}
	forged := h1
	forged.SendCounter = 100000

	if _, err := ratchet.Open(bob, nil, forged, ct1); err != domain.ErrUnauthentic {
		t.Fatalf("want ErrUnauthentic, got %v", err)
	}
}

func TestOpen_OutOfOrderDelivery(t *testing.T) {
	alice, bob := newPeerStates(t)

	h1, ct1, err := ratchet.Seal(alice, nil, []byte("msg-1"))
	if err != nil {
		t.Fatalf("Seal 1: %v", err)
	}
	h2, ct2, err := ratchet.Seal(alice, nil, []byte("msg-2"))
	if err != nil {
		t.Fatalf("Seal 2: %v", err)
	}
	h3, ct3, err := ratchet.Seal(alice, nil, []byte("msg-3"))
	if err != nil {
		t.Fatalf("Seal 3: %v", err)
	}

	// msg-3 arrives first: bob must skip-ahead and cache msg-1/msg-2 keys.
	pt3, err := ratchet.Open(bob, nil, h3, ct3)
	if err != nil {
		t.Fatalf("Open 3: %v", err)
	}
	if string(pt3) != "msg-3" {
		t.Fatalf("got %q, want %q", pt3, "msg-3")
	}

	pt1, err := ratchet.Open(bob, nil, h1, ct1)
	if err != nil {
		t.Fatalf("Open 1 (late): %v", err)
	}
	if string(pt1) != "msg-1" {
		t.Fatalf("got %q, want %q", pt1, "msg-1")
	}

	pt2, err := ratchet.Open(bob, nil, h2, ct2)
	if err != nil {
		t.Fatalf("Open 2 (late): %v", err)
	}
	if string(pt2) != "msg-2" {
		t.Fatalf("got %q, want %q", pt2, "msg-2")
	}

	// Each skipped key is single-use.
	if _, err := ratchet.Open(bob, nil, h1, ct1); err == nil {
		t.Fatal("reusing a skipped key must fail")
	}
}

func TestDHRatchet_ReKeysBothChains(t *testing.T) {
	alice, bob := newPeerStates(t)

	h1, ct1, err := ratchet.Seal(alice, nil, []byte("pre-ratchet"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if _, err := ratchet.Open(bob, nil, h1, ct1); err != nil {
		t.Fatalf("Open: %v", err)
	}

	oldSendChain := append([]byte(nil), bob.SendChainKey...)
	if err := ratchet.DHRatchet(bob, alice.OwnRatchetPublic); err != nil {
		t.Fatalf("DHRatchet: %v", err)
	}
	if bytes.Equal(bob.SendChainKey, oldSendChain) {
		t.Error("DHRatchet must replace the send chain")
	}
	if bob.SendCounter != 0 || bob.RecvCounter != 0 {
		t.Error("DHRatchet must reset both counters")
	}
	if bob.Status != domain.SessionEstablished {
		t.Error("status must remain/become established after a DH ratchet")
	}
}

func TestSeal_RejectsClosedSession(t *testing.T) {
	alice, _ := newPeerStates(t)
	alice.Status = domain.SessionClosed

	if _, _, err := ratchet.Seal(alice, nil, []byte("x")); err != domain.ErrSessionClosed {
		t.Fatalf("want ErrSessionClosed, got %v", err)
	}
}
