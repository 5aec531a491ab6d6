// Package profile implements the permanent profile lifecycle: creation
// with a Shamir-backed recovery master key, deactivate/reactivate, and
// a delete path that is intentionally always an error.
//
// A profile's EncryptedProfile record is the durable public binding
// between a user id and their public key material; its ProfileMasterKey
// is minted once, split 3-of-5, and never regenerated except through an
// explicit share Refresh (see the shamir package) that preserves the
// underlying secret.
package profile
