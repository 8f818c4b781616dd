// Package cryptox implements the credential-hashing primitives used by the
// credential store: argon2id key derivation and a SHA-256 verifier. File
// contents are never encrypted here; records only carry the encrypted-at-rest
// flag, and the actual content boundary lives behind the blobstore.
package cryptox

import (
	"crypto/sha256"

	"golang.org/x/crypto/argon2"
)

// DeriveKey stretches a secret with argon2id. The parameters (1 pass,
// 64 MiB, 4 lanes) follow the RFC 9106 low-memory recommendation.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier hashes a derived key into the value safe to store and compare.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}
