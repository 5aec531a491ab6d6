package shamir_test

import (
	"bytes"
	"testing"

	"ciphera/internal/domain"
	"ciphera/internal/shamir"
)

func testSecret() [32]byte {
	var s [32]byte
	copy(s[:], []byte("0123456789abcdef0123456789abcde"))
	return s
}

func TestSplitRecover_ThresholdReconstructsExactly(t *testing.T) {
	secret := testSecret()
	shares, err := shamir.Split(secret, 5, 3)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(shares) != 5 {
		t.Fatalf("got %d shares, want 5", len(shares))
	}

	subset := []domain.SecretShare{shares[0], shares[2], shares[4]}
	recovered, err := shamir.Recover(subset, 3)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if !bytes.Equal(recovered[:], secret[:]) {
		t.Fatalf("recovered %x, want %x", recovered, secret)
	}
}

func TestSplitRecover_AnyThresholdSubsetAgrees(t *testing.T) {
	secret := testSecret()
	shares, err := shamir.Split(secret, 5, 3)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	subsetA := []domain.SecretShare{shares[0], shares[1], shares[2]}
	subsetB := []domain.SecretShare{shares[1], shares[3], shares[4]}

	recoveredA, err := shamir.Recover(subsetA, 3)
	if err != nil {
		t.Fatalf("Recover A: %v", err)
	}
	recoveredB, err := shamir.Recover(subsetB, 3)
	if err != nil {
		t.Fatalf("Recover B: %v", err)
	}
	if recoveredA != recoveredB {
		t.Fatal("distinct threshold-sized subsets must recover the same secret")
	}
}

func TestSplit_RejectsInvalidParameters(t *testing.T) {
	secret := testSecret()
	if _, err := shamir.Split(secret, 5, 1); err != domain.ErrBadParameters {
		t.Errorf("threshold 1: want ErrBadParameters, got %v", err)
	}
	if _, err := shamir.Split(secret, 3, 5); err != domain.ErrBadParameters {
		t.Errorf("threshold > n: want ErrBadParameters, got %v", err)
	}
}

func TestRecover_RejectsDuplicateIDs(t *testing.T) {
	secret := testSecret()
	shares, err := shamir.Split(secret, 5, 3)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	dup := []domain.SecretShare{shares[0], shares[0], shares[2]}
	if _, err := shamir.Recover(dup, 3); err != domain.ErrInvalidShareSet {
		t.Fatalf("want ErrInvalidShareSet, got %v", err)
	}
}

func TestRecover_RejectsBelowThreshold(t *testing.T) {
	secret := testSecret()
	shares, err := shamir.Split(secret, 5, 3)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	tooFew := []domain.SecretShare{shares[1], shares[3]}
	if _, err := shamir.Recover(tooFew, 3); err != domain.ErrBelowThreshold {
		t.Fatalf("2 shares from a (5,3) split: want ErrBelowThreshold, got %v", err)
	}
}

func TestRefresh_PreservesSecretUnderNewShares(t *testing.T) {
	secret := testSecret()
	shares, err := shamir.Split(secret, 5, 3)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	refreshed, err := shamir.Refresh(shares, 3)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	recovered, err := shamir.Recover(refreshed[:3], 3)
	if err != nil {
		t.Fatalf("Recover (refreshed): %v", err)
	}
	if !bytes.Equal(recovered[:], secret[:]) {
		t.Fatal("refresh must preserve the underlying secret")
	}

	old := []domain.SecretShare{shares[0], refreshed[1], refreshed[2]}
	if mixed, err := shamir.Recover(old, 3); err == nil && mixed == secret {
		t.Fatal("mixing an old share with refreshed shares must not recover the secret")
	}
}
