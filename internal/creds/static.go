package creds

import (
	"context"
	"crypto/subtle"

	"github.com/dkalachov/filevault/internal/common"
	"github.com/dkalachov/filevault/internal/cryptox"
)

// StaticStore is a single-identity Store for demo and test deployments.
// The secret is kept only as an argon2id-derived verifier, never plaintext.
// A production system replaces this with a real credential backend behind
// the same interface.
type StaticStore struct {
	username string
	salt     []byte
	verifier []byte
}

// NewStaticStore builds a store accepting exactly the given pair.
func NewStaticStore(username, secret string) *StaticStore {
	salt := common.GenerateRandByteArray(32)
	key := cryptox.DeriveKey([]byte(secret), salt)
	return &StaticStore{
		username: username,
		salt:     salt,
		verifier: cryptox.MakeVerifier(key),
	}
}

// Verify derives a verifier from the candidate secret and compares both the
// username and the verifier in constant time.
func (s *StaticStore) Verify(ctx context.Context, username string, secret []byte) (bool, error) {
	key := cryptox.DeriveKey(secret, s.salt)
	candidate := cryptox.MakeVerifier(key)

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	secretOK := subtle.ConstantTimeCompare(candidate, s.verifier) == 1
	return userOK && secretOK, nil
}
