package profile

import (
	"encoding/hex"

	"ciphera/internal/crypto"
	"ciphera/internal/domain"
	"ciphera/internal/shamir"
)

const (
	recoveryShareCount     = 5
	recoveryShareThreshold = 3
)

// Create mints a profile's permanent master key, splits it into a
// 3-of-5 recovery share set, and binds it to the caller's public
// identity material in an EncryptedProfile. The profile starts Active;
// it has no delete path for its entire lifetime.
func Create(userID string, identity domain.RemoteIdentity, encryptedPayload []byte, createdAt uint64) (domain.EncryptedProfile, domain.ProfileMasterKey, error) {
	keyBytes, err := crypto.Random(32)
	if err != nil {
		return domain.EncryptedProfile{}, domain.ProfileMasterKey{}, err
	}
	var key [32]byte
	copy(key[:], keyBytes)

	digest := recoveryDigest(key, userID)

	shares, err := shamir.Split(key, recoveryShareCount, recoveryShareThreshold)
	if err != nil {
		return domain.EncryptedProfile{}, domain.ProfileMasterKey{}, err
	}
	var shareArray [recoveryShareCount]domain.SecretShare
	copy(shareArray[:], shares)

	master := domain.ProfileMasterKey{
		Key:            key,
		CreatedAt:      createdAt,
		RecoveryDigest: digest,
		Shares:         shareArray,
	}
	profile := domain.EncryptedProfile{
		UserID:            userID,
		KEMPublic:         identity.KEMPub,
		ECDHPublic:        identity.XPub,
		SignaturePublic:   identity.EdPub,
		EncryptedPayload:  encryptedPayload,
		RecoveryDigestHex: hex.EncodeToString(digest[:]),
		CreatedAt:         createdAt,
		LastSeen:          createdAt,
		Active:            true,
	}
	return profile, master, nil
}

// Recover reconstructs a profile's master key from at least
// recoveryShareThreshold of its shares and verifies the result against
// the profile's stored recovery digest, catching both too-few-shares
// mistakes and shares drawn from the wrong profile.
func Recover(profile domain.EncryptedProfile, shares []domain.SecretShare) (domain.ProfileMasterKey, error) {
	key, err := shamir.Recover(shares, recoveryShareThreshold)
	if err != nil {
		return domain.ProfileMasterKey{}, err
	}

	digest := recoveryDigest(key, profile.UserID)
	if hex.EncodeToString(digest[:]) != profile.RecoveryDigestHex {
		return domain.ProfileMasterKey{}, domain.ErrInvalidShareSet
	}

	var shareArray [recoveryShareCount]domain.SecretShare
	copy(shareArray[:], shares)
	return domain.ProfileMasterKey{
		Key:            key,
		CreatedAt:      profile.CreatedAt,
		RecoveryDigest: digest,
		Shares:         shareArray,
	}, nil
}

// Deactivate flips a profile to the inactive state. Idempotent: calling
// it on an already-inactive profile is a no-op.
func Deactivate(profile *domain.EncryptedProfile) {
	profile.Active = false
}

// Reactivate flips a profile back to active and refreshes last_seen.
// Idempotent: calling it on an already-active profile just refreshes
// last_seen.
func Reactivate(profile *domain.EncryptedProfile, now uint64) {
	profile.Active = true
	profile.LastSeen = now
}

// Delete always fails. Profiles in this system are permanent; the only
// reversible state change is Deactivate/Reactivate.
func Delete(domain.EncryptedProfile) error {
	return domain.ErrDeletionForbidden
}

// SetBackup records where an encrypted backup of the profile's payload
// was last placed.
func SetBackup(profile *domain.EncryptedProfile, backupType, location string) {
	profile.Backup = &domain.BackupLocation{Type: backupType, Location: location}
}

func recoveryDigest(key [32]byte, userID string) [32]byte {
	return crypto.Hash(append(append([]byte(nil), key[:]...), []byte(userID)...))
}
