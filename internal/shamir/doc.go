// Package shamir implements (t, n)-threshold secret sharing over
// GF(2^8), the same field AES uses, for splitting and recovering a
// 32-byte profile master key.
//
// Recovery is true Lagrange interpolation at x=0, not the XOR-of-shares
// shortcut: XOR only reconstructs a secret split by XOR in the first
// place, and leaks partial information to any subset below the
// threshold, defeating the point of a threshold scheme.
package shamir
