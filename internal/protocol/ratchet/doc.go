// Package ratchet implements the session side of the Double Ratchet: a
// pair of KDF message chains seeded by an X3DH key schedule, advanced
// on every Seal/Open, and periodically re-keyed by an explicit DH
// ratchet step.
//
// # Key schedule
//
// A SessionState holds a single aead_key/mac_key/nonce, not one pair
// per direction. Seal and Open each re-derive aead_key and mac_key from
// the relevant chain key immediately after use, so the same
// (aead_key, nonce) pair is never reused across the session's
// lifetime — nonce collision would require reusing a chain position,
// which the chain advance forecloses.
//
// Every header is bound into the AEAD's associated data via an
// HMAC-SHA3-256 tag over send_counter, nonce and ratchet_public, computed
// with mac_key. A tampered header fails Open the same way a tampered
// ciphertext does, with the session state left untouched.
//
// # Out-of-order tolerance
//
// Open caches up to 1000 skipped message keys keyed by (ratchet_public,
// send_counter) so that packet reordering within a single ratchet epoch
// does not require redelivery. Each cached key is consumed exactly once.
//
// # Concurrency
//
// SessionState is not safe for concurrent use; callers serialise access
// per conversation.
package ratchet
