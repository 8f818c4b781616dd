// Package session implements the multi-step authentication state machine:
// a credential check followed by a one-time verification code. The stage is
// durable and drives which operations are legal; the verification-failure
// signal is ephemeral, view-facing state with a lazy expiry.
package session

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/dkalachov/filevault/internal/auth"
	"github.com/dkalachov/filevault/internal/common"
	"github.com/dkalachov/filevault/internal/creds"
	"github.com/dkalachov/filevault/internal/logging"
	"github.com/dkalachov/filevault/internal/models"
	"github.com/dkalachov/filevault/internal/secondfactor"
	"github.com/dkalachov/filevault/internal/timex"
)

// failureSignalTTL bounds how long a failed second-factor attempt is
// surfaced to the view.
const failureSignalTTL = 2 * time.Second

// codeShape accepts exactly six numeric digits.
var codeShape = regexp.MustCompile(`^[0-9]{6}$`)

// Service owns the process-wide authentication session. Exactly one session
// exists at a time; it is destroyed on logout. All operations run on a
// single control thread, so there is no internal locking.
type Service struct {
	creds  creds.Store
	codes  secondfactor.Verifier
	clock  timex.Clock
	logger logging.Logger

	jwtSecret     []byte
	tokenValidity time.Duration

	stage           models.AuthStage
	pendingUsername string
	identity        *models.Identity
	token           string
	failureSignalAt time.Time // zero when no failure signal is pending
}

// NewService constructs a session service in the Anonymous stage.
func NewService(store creds.Store, codes secondfactor.Verifier, clock timex.Clock,
	logger logging.Logger, jwtSecret []byte, tokenValidity time.Duration) *Service {
	return &Service{
		creds:         store,
		codes:         codes,
		clock:         clock,
		logger:        logger.With("module", "session"),
		jwtSecret:     jwtSecret,
		tokenValidity: tokenValidity,
		stage:         models.StageAnonymous,
	}
}

// SubmitCredentials checks the username/password pair against the credential
// store. Callable only from the Anonymous stage. The machine passes through
// CredentialsPending while the store is consulted and either advances to
// SecondFactorPending or reverts to Anonymous. The secret is wiped before
// returning and neither value is retained past the call.
func (s *Service) SubmitCredentials(ctx context.Context, username string, secret []byte) error {
	defer common.WipeByteArray(secret)

	if s.stage != models.StageAnonymous {
		return common.ErrInvalidStage
	}

	s.stage = models.StageCredentialsPending

	ok, err := s.creds.Verify(ctx, username, secret)
	if err != nil {
		s.stage = models.StageAnonymous
		s.logger.Error(ctx, "credential store failure", "error", err.Error())
		return common.ErrInternal
	}
	if !ok {
		s.stage = models.StageAnonymous
		return common.ErrInvalidCredentials
	}

	s.pendingUsername = username
	s.stage = models.StageSecondFactorPending
	s.logger.Info(ctx, "credentials accepted", "username", username)
	return nil
}

// SubmitSecondFactor validates the one-time code. Callable only from the
// SecondFactorPending stage. The code shape (exactly six digits) is checked
// before the verifier is consulted. On failure the stage stays
// SecondFactorPending, a transient failure signal is raised, and retries are
// unlimited. On success the session identity and token are minted and the
// machine transitions to Authenticated.
func (s *Service) SubmitSecondFactor(ctx context.Context, code string) (*models.Identity, error) {
	if s.stage != models.StageSecondFactorPending {
		return nil, common.ErrInvalidStage
	}

	if !codeShape.MatchString(code) {
		s.raiseFailureSignal()
		return nil, common.ErrInvalidCode
	}

	ok, err := s.codes.Verify(ctx, code)
	if err != nil {
		s.logger.Error(ctx, "second-factor backend failure", "error", err.Error())
		return nil, common.ErrInternal
	}
	if !ok {
		// Retries are not limited; log so a deployment can alert on bursts.
		s.logger.Warn(ctx, "second factor rejected", "username", s.pendingUsername)
		s.raiseFailureSignal()
		return nil, common.ErrInvalidCode
	}

	identity := &models.Identity{ID: uuid.New().String(), DisplayName: s.pendingUsername}

	token, err := auth.GenerateToken(identity.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		s.logger.Error(ctx, "token generation failure", "error", err.Error())
		return nil, common.ErrInternal
	}

	s.identity = identity
	s.token = token
	s.pendingUsername = ""
	s.failureSignalAt = time.Time{}
	s.stage = models.StageAuthenticated
	s.logger.Info(ctx, "authenticated", "user_id", identity.ID)
	return identity, nil
}

// Logout returns the machine to Anonymous from any stage, discarding the
// identity, the token, any pending username, and the failure signal.
// Idempotent: logging out while Anonymous is a no-op.
func (s *Service) Logout() {
	s.stage = models.StageAnonymous
	s.identity = nil
	s.token = ""
	s.pendingUsername = ""
	s.failureSignalAt = time.Time{}
}

// CurrentStage returns the durable authentication stage.
func (s *Service) CurrentStage() models.AuthStage { return s.stage }

// CurrentIdentity returns the session identity, or nil before authentication.
// A session exists exactly when the stage is Authenticated.
func (s *Service) CurrentIdentity() *models.Identity { return s.identity }

// Token returns the signed session token, or "" before authentication.
func (s *Service) Token() string { return s.token }

// VerificationFailed reports whether a failed second-factor attempt happened
// within the signal window. Expiry is lazy (checked against the clock on
// read), so a later submission or logout always wins over a pending clear.
func (s *Service) VerificationFailed() bool {
	return !s.failureSignalAt.IsZero() && s.clock.Now().Before(s.failureSignalAt)
}

func (s *Service) raiseFailureSignal() {
	s.failureSignalAt = s.clock.Now().Add(failureSignalTTL)
}
