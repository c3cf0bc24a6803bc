package hashsig

import "crypto/subtle"

// constantTimeEqual compares a and b in time independent of their
// contents, as required by §7 and §9 for every signature/OTP
// acceptance decision. A naive short-circuit byte compare leaks the
// length of the matching prefix; this does not.
func constantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
