package profile_test

import (
	"testing"

	"ciphera/internal/crypto"
	"ciphera/internal/domain"
	"ciphera/internal/profile"
)

func testIdentity(t *testing.T) domain.RemoteIdentity {
	t.Helper()
	_, kemPub, err := crypto.KEMGenerate()
	if err != nil {
		t.Fatalf("KEMGenerate: %v", err)
	}
	_, xPub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	_, edPub, err := crypto.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	return domain.RemoteIdentity{KEMPub: kemPub, XPub: xPub, EdPub: edPub}
}

func TestCreate_ProducesActiveProfileWithFiveShares(t *testing.T) {
	identity := testIdentity(t)
	record, master, err := profile.Create("alice", identity, nil, 1000)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !record.Active {
		t.Error("new profile must start active")
	}
	if record.UserID != "alice" {
		t.Errorf("got user id %q, want alice", record.UserID)
	}
	for i, s := range master.Shares {
		if s.ID != uint8(i+1) {
			t.Errorf("share %d has id %d, want %d", i, s.ID, i+1)
		}
	}
}

func TestRecover_SucceedsWithThresholdShares(t *testing.T) {
	identity := testIdentity(t)
	record, master, err := profile.Create("bob", identity, nil, 1000)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	subset := master.Shares[1:4]
	recovered, err := profile.Recover(record, subset)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if recovered.Key != master.Key {
		t.Fatal("recovered key must match the original master key")
	}
}

func TestRecover_RejectsBelowThreshold(t *testing.T) {
	identity := testIdentity(t)
	record, master, err := profile.Create("carol", identity, nil, 1000)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := profile.Recover(record, master.Shares[:2]); err != domain.ErrBelowThreshold {
		t.Fatalf("want ErrBelowThreshold, got %v", err)
	}
}

func TestDeactivateReactivate_RoundTrip(t *testing.T) {
	identity := testIdentity(t)
	record, _, err := profile.Create("dave", identity, nil, 1000)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	profile.Deactivate(&record)
	if record.Active {
		t.Fatal("Deactivate must clear Active")
	}

	profile.Reactivate(&record, 2000)
	if !record.Active {
		t.Fatal("Reactivate must set Active")
	}
	if record.LastSeen != 2000 {
		t.Fatalf("got LastSeen %d, want 2000", record.LastSeen)
	}
}

func TestDelete_AlwaysForbidden(t *testing.T) {
	identity := testIdentity(t)
	record, _, err := profile.Create("erin", identity, nil, 1000)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := profile.Delete(record); err != domain.ErrDeletionForbidden {
		t.Fatalf("want ErrDeletionForbidden, got %v", err)
	}
}
