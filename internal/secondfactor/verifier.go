// Package secondfactor defines the one-time-code collaborator for the second
// authentication stage, with a fixed-code implementation for demo
// deployments and a TOTP implementation for real ones.
package secondfactor

import "context"

// Verifier checks a six-digit code submitted during login. Input-shape
// validation (exactly six digits) happens in the session state machine
// before the verifier is consulted.
type Verifier interface {
	Verify(ctx context.Context, code string) (bool, error)
}
