// Package access implements the shared-secret gate: server-side code
// verification and the client-side session state machine holding a
// signed, time-limited verification flag.
package access

import "crypto/subtle"

// Verifier compares submitted access codes against the single
// configured secret. It implements ports.AccessVerifier.
type Verifier struct {
	secret string
}

// NewVerifier creates a verifier for the configured secret. An empty
// secret is allowed; Verify then fails closed.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// Verify reports whether code matches the configured secret. It
// returns false, never an error, when the secret is unconfigured.
func (v *Verifier) Verify(code string) bool {
	if v.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(v.secret)) == 1
}

// Configured reports whether a secret is set at all, so the verify
// endpoint can distinguish "wrong code" from "gate not configured".
func (v *Verifier) Configured() bool {
	return v.secret != ""
}
