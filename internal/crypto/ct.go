package crypto

import "crypto/subtle"

// ConstantTimeEqual performs a constant-time comparison of two byte
// sequences of possibly differing length.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
