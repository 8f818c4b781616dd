package secondfactor

import (
	"context"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/dkalachov/filevault/internal/timex"
)

// TOTPVerifier validates codes against a shared TOTP secret (RFC 6238,
// 30-second period, one period of skew). The clock is injected so validation
// windows are deterministic in tests.
type TOTPVerifier struct {
	secret string
	clock  timex.Clock
}

func NewTOTPVerifier(secret string, clock timex.Clock) *TOTPVerifier {
	return &TOTPVerifier{secret: secret, clock: clock}
}

func (v *TOTPVerifier) Verify(ctx context.Context, code string) (bool, error) {
	return totp.ValidateCustom(code, v.secret, v.clock.Now().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
}
