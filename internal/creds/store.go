// Package creds defines the credential store collaborator consulted during
// the first authentication stage.
package creds

import "context"

// Store verifies username/password pairs against known identities.
// Implementations must not retain the secret after the call returns.
type Store interface {
	Verify(ctx context.Context, username string, secret []byte) (bool, error)
}
