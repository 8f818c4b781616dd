package secondfactor

import (
	"context"
	"crypto/subtle"
)

// StaticVerifier accepts exactly one fixed code. Demo use only.
type StaticVerifier struct {
	code string
}

func NewStaticVerifier(code string) *StaticVerifier {
	return &StaticVerifier{code: code}
}

func (v *StaticVerifier) Verify(ctx context.Context, code string) (bool, error) {
	return subtle.ConstantTimeCompare([]byte(code), []byte(v.code)) == 1, nil
}
