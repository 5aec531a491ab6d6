package x3dh_test

import (
	"bytes"
	"testing"

	"ciphera/internal/crypto"
	"ciphera/internal/domain"
	"ciphera/internal/protocol/x3dh"
)

func makeIdentity(t *testing.T) domain.Identity {
	t.Helper()
	kemPriv, kemPub, err := crypto.KEMGenerate()
	if err != nil {
		t.Fatalf("KEMGenerate: %v", err)
	}
	xPriv, xPub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	edPriv, edPub, err := crypto.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	return domain.Identity{
		KEMPub: kemPub, KEMPriv: kemPriv,
		XPub: xPub, XPriv: xPriv,
		EdPub: edPub, EdPriv: edPriv,
	}
}

// makeBundle generates a fresh pre-key (KEM+ECDH) for bob, signs it, and
// returns both the published bundle and the secret halves the responder
// needs.
func makeBundle(t *testing.T, bob domain.Identity) (domain.PreKeyBundle, domain.KEMPrivate, domain.X25519Private) {
	t.Helper()
	kemPriv, kemPub, err := crypto.KEMGenerate()
	if err != nil {
		t.Fatalf("KEMGenerate: %v", err)
	}
	ecdhPriv, ecdhPub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	bundle := domain.PreKeyBundle{
		Username:       domain.Username("bob"),
		PreKeyID:       domain.SignedPreKeyID("prekey-1"),
		IdentitySigKey: bob.EdPub,
		KEMPublic:      kemPub,
		ECDHPublic:     ecdhPub,
	}
	bundle.Signature = crypto.SignEd25519(bob.EdPriv, bundle.SignedMessage())
	return bundle, kemPriv, ecdhPriv
}

func TestHandshakeAgreement_NoOneTimeKey(t *testing.T) {
	alice := makeIdentity(t)
	bob := makeIdentity(t)
	bundle, kemPriv, ecdhPriv := makeBundle(t, bob)

	if !crypto.VerifyEd25519(bundle.IdentitySigKey, bundle.SignedMessage(), bundle.Signature) {
		t.Fatal("bundle signature does not verify")
	}

	initResult, pm, err := x3dh.InitiatorHandshake(alice, bundle, nil)
	if err != nil {
		t.Fatalf("InitiatorHandshake: %v", err)
	}

	respResult, err := x3dh.ResponderHandshake(bob, kemPriv, ecdhPriv, nil, pm)
	if err != nil {
		t.Fatalf("ResponderHandshake: %v", err)
	}

	if !bytes.Equal(initResult.AEADKey, respResult.AEADKey) {
		t.Error("aead_key disagreement")
	}
	if !bytes.Equal(initResult.MACKey, respResult.MACKey) {
		t.Error("mac_key disagreement")
	}
	if initResult.Nonce != respResult.Nonce {
		t.Error("nonce disagreement")
	}
	if !bytes.Equal(initResult.SendChainKey, respResult.RecvChainKey) {
		t.Error("initiator send chain must equal responder recv chain")
	}
	if !bytes.Equal(initResult.RecvChainKey, respResult.SendChainKey) {
		t.Error("initiator recv chain must equal responder send chain")
	}
}

func TestHandshakeAgreement_WithOneTimeKey(t *testing.T) {
	alice := makeIdentity(t)
	bob := makeIdentity(t)
	bundle, kemPriv, ecdhPriv := makeBundle(t, bob)

	otPriv, otPub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519 (one-time): %v", err)
	}
	oneTimePublic := domain.OneTimeKeyPublic{ID: domain.OneTimePreKeyID("ot-1"), Pub: otPub}
	bundle.OneTimeKey = &oneTimePublic

	initResult, pm, err := x3dh.InitiatorHandshake(alice, bundle, &oneTimePublic)
	if err != nil {
		t.Fatalf("InitiatorHandshake: %v", err)
	}
	if pm.OneTimeKeyID != oneTimePublic.ID {
		t.Fatalf("want one-time key id %q, got %q", oneTimePublic.ID, pm.OneTimeKeyID)
	}

	respResult, err := x3dh.ResponderHandshake(bob, kemPriv, ecdhPriv, &otPriv, pm)
	if err != nil {
		t.Fatalf("ResponderHandshake: %v", err)
	}
	if !bytes.Equal(initResult.AEADKey, respResult.AEADKey) {
		t.Error("aead_key disagreement with one-time key")
	}
}

func TestInitiatorHandshake_DoesNotReverifyTamperedBundle(t *testing.T) {
	alice := makeIdentity(t)
	bob := makeIdentity(t)
	bundle, _, _ := makeBundle(t, bob)

	tampered := bundle
	tampered.ECDHPublic[0] ^= 0x01
	if crypto.VerifyEd25519(tampered.IdentitySigKey, tampered.SignedMessage(), tampered.Signature) {
		t.Fatal("tampered bundle must not verify")
	}

	// InitiatorHandshake itself does not re-verify (that is C2's job); it
	// still completes, but a caller who skipped verify_prekey would be
	// talking to an unauthenticated ecdh_public.
	if _, _, err := x3dh.InitiatorHandshake(alice, tampered, nil); err != nil {
		t.Fatalf("InitiatorHandshake: %v", err)
	}
}
