// Package x3dh implements the hybrid post-quantum X3DH handshake used
// to bootstrap a Double Ratchet session between two parties.
//
// # Overview
//
// The handshake combines a lattice KEM encapsulation with two X25519
// ECDH exchanges so that compromise of either primitive family alone
// does not break the derived session. The pre-key bundle a responder
// publishes carries a fresh KEM public and a fresh ECDH public, jointly
// Ed25519-signed by the responder's identity key.
//
// # Flows
//
// Initiator:
//  1. Generate a fresh ephemeral X25519 key pair.
//  2. kem_encapsulate against the bundle's KEM public.
//  3. ecdh(ephemeral, bundle.ecdh_public) and ecdh(identity, bundle.ecdh_public).
//  4. kdf_expand(kem_shared‖dh_a‖dh_b, info, 140) and slice into the key schedule.
//
// Responder:
//  1. kem_decapsulate the transmitted ciphertext with the consumed pre-key's KEM secret.
//  2. Mirror both ECDH exchanges against the initiator's ephemeral and identity publics.
//  3. kdf_expand the identical transcript, slicing into swapped send/recv positions.
//
// # Security notes
//
// The responder incorporates the initiator's ephemeral public via ECDH;
// deriving the session from identity material alone is insecure and is
// not implemented here. A one-time key, when consumed, contributes an
// additional ECDH leg and improves forward secrecy.
package x3dh
