// Package identity manages creation, encryption and loading of the local identity.
//
// It enforces passphrase policy, generates the KEM/X25519/Ed25519 key
// triple, and persists it via the domain.IdentityStore.
package identity
