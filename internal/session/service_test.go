package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dkalachov/filevault/internal/auth"
	"github.com/dkalachov/filevault/internal/common"
	"github.com/dkalachov/filevault/internal/creds"
	"github.com/dkalachov/filevault/internal/logging"
	"github.com/dkalachov/filevault/internal/models"
	"github.com/dkalachov/filevault/internal/timex"
)

// recordingVerifier counts calls so tests can assert the verifier was not
// consulted for malformed codes.
type recordingVerifier struct {
	accept string
	calls  int
	err    error
}

func (v *recordingVerifier) Verify(ctx context.Context, code string) (bool, error) {
	v.calls++
	if v.err != nil {
		return false, v.err
	}
	return code == v.accept, nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestService(t *testing.T) (*Service, *recordingVerifier, *timex.Mock) {
	t.Helper()
	verifier := &recordingVerifier{accept: "123456"}
	clock := timex.NewMock(time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC))
	store := creds.NewStaticStore("demo", "secure123")
	svc := NewService(store, verifier, clock, testLogger(), []byte("test-secret"), time.Hour)
	return svc, verifier, clock
}

func mustAdvanceToSecondFactor(t *testing.T, s *Service) {
	t.Helper()
	if err := s.SubmitCredentials(context.Background(), "demo", []byte("secure123")); err != nil {
		t.Fatalf("SubmitCredentials error: %v", err)
	}
	if s.CurrentStage() != models.StageSecondFactorPending {
		t.Fatalf("expected SecondFactorPending, got %v", s.CurrentStage())
	}
}

func TestSubmitCredentials_Rejected(t *testing.T) {
	s, _, _ := newTestService(t)

	for _, pair := range [][2]string{
		{"demo", "wrong"},
		{"ghost", "secure123"},
		{"", ""},
	} {
		err := s.SubmitCredentials(context.Background(), pair[0], []byte(pair[1]))
		if !errors.Is(err, common.ErrInvalidCredentials) {
			t.Fatalf("pair %v: want ErrInvalidCredentials, got %v", pair, err)
		}
		if s.CurrentStage() != models.StageAnonymous {
			t.Fatalf("stage must stay Anonymous, got %v", s.CurrentStage())
		}
	}
}

func TestSubmitCredentials_Accepted(t *testing.T) {
	s, _, _ := newTestService(t)
	mustAdvanceToSecondFactor(t, s)

	if s.CurrentIdentity() != nil {
		t.Fatal("no identity must exist before the second factor")
	}
}

func TestSubmitCredentials_WipesSecret(t *testing.T) {
	s, _, _ := newTestService(t)

	secret := []byte("secure123")
	if err := s.SubmitCredentials(context.Background(), "demo", secret); err != nil {
		t.Fatalf("SubmitCredentials error: %v", err)
	}
	for i, b := range secret {
		if b != 0 {
			t.Fatalf("secret[%d] not wiped: %d", i, b)
		}
	}
}

func TestSubmitCredentials_WrongStage(t *testing.T) {
	s, _, _ := newTestService(t)
	mustAdvanceToSecondFactor(t, s)

	err := s.SubmitCredentials(context.Background(), "demo", []byte("secure123"))
	if !errors.Is(err, common.ErrInvalidStage) {
		t.Fatalf("want ErrInvalidStage, got %v", err)
	}
}

func TestSubmitSecondFactor_ShapeCheckedBeforeVerifier(t *testing.T) {
	s, verifier, _ := newTestService(t)
	mustAdvanceToSecondFactor(t, s)

	for _, code := range []string{"", "12345", "1234567", "12345a", "abcdef"} {
		_, err := s.SubmitSecondFactor(context.Background(), code)
		if !errors.Is(err, common.ErrInvalidCode) {
			t.Fatalf("code %q: want ErrInvalidCode, got %v", code, err)
		}
	}
	if verifier.calls != 0 {
		t.Fatalf("verifier must not be consulted for malformed codes, got %d calls", verifier.calls)
	}
	if s.CurrentStage() != models.StageSecondFactorPending {
		t.Fatalf("stage must stay SecondFactorPending, got %v", s.CurrentStage())
	}
}

func TestSubmitSecondFactor_RetryLoop(t *testing.T) {
	s, verifier, _ := newTestService(t)
	mustAdvanceToSecondFactor(t, s)

	// Failures keep the stage; retries are unlimited.
	for i := 0; i < 3; i++ {
		_, err := s.SubmitSecondFactor(context.Background(), "654321")
		if !errors.Is(err, common.ErrInvalidCode) {
			t.Fatalf("want ErrInvalidCode, got %v", err)
		}
		if s.CurrentStage() != models.StageSecondFactorPending {
			t.Fatalf("stage must stay SecondFactorPending, got %v", s.CurrentStage())
		}
	}
	if verifier.calls != 3 {
		t.Fatalf("expected 3 verifier calls, got %d", verifier.calls)
	}

	identity, err := s.SubmitSecondFactor(context.Background(), "123456")
	if err != nil {
		t.Fatalf("SubmitSecondFactor error: %v", err)
	}
	if s.CurrentStage() != models.StageAuthenticated {
		t.Fatalf("expected Authenticated, got %v", s.CurrentStage())
	}
	if identity == nil || identity.ID == "" || identity.DisplayName != "demo" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if s.CurrentIdentity() == nil {
		t.Fatal("CurrentIdentity must be set after authentication")
	}
}

func TestSubmitSecondFactor_TokenParseable(t *testing.T) {
	s, _, _ := newTestService(t)
	mustAdvanceToSecondFactor(t, s)

	identity, err := s.SubmitSecondFactor(context.Background(), "123456")
	if err != nil {
		t.Fatalf("SubmitSecondFactor error: %v", err)
	}

	userID, err := auth.GetUserIDFromToken(s.Token(), []byte("test-secret"))
	if err != nil {
		t.Fatalf("session token does not parse: %v", err)
	}
	if userID != identity.ID {
		t.Fatalf("token user id %q != identity id %q", userID, identity.ID)
	}
}

func TestSubmitSecondFactor_BackendError(t *testing.T) {
	s, verifier, _ := newTestService(t)
	mustAdvanceToSecondFactor(t, s)

	verifier.err = errors.New("backend down")
	_, err := s.SubmitSecondFactor(context.Background(), "123456")
	if !errors.Is(err, common.ErrInternal) {
		t.Fatalf("want ErrInternal, got %v", err)
	}
	if s.CurrentStage() != models.StageSecondFactorPending {
		t.Fatalf("stage must stay SecondFactorPending, got %v", s.CurrentStage())
	}
}

func TestSubmitSecondFactor_WrongStage(t *testing.T) {
	s, _, _ := newTestService(t)

	if _, err := s.SubmitSecondFactor(context.Background(), "123456"); !errors.Is(err, common.ErrInvalidStage) {
		t.Fatalf("want ErrInvalidStage, got %v", err)
	}
}

func TestVerificationFailed_LazyExpiry(t *testing.T) {
	s, _, clock := newTestService(t)
	mustAdvanceToSecondFactor(t, s)

	if s.VerificationFailed() {
		t.Fatal("no signal expected before any failure")
	}

	_, _ = s.SubmitSecondFactor(context.Background(), "000000")
	if !s.VerificationFailed() {
		t.Fatal("signal expected right after a failure")
	}

	clock.Advance(1900 * time.Millisecond)
	if !s.VerificationFailed() {
		t.Fatal("signal must still be live inside the window")
	}

	clock.Advance(100 * time.Millisecond)
	if s.VerificationFailed() {
		t.Fatal("signal must auto-clear after the window")
	}
}

func TestVerificationFailed_NewAttemptResetsWindow(t *testing.T) {
	s, _, clock := newTestService(t)
	mustAdvanceToSecondFactor(t, s)

	_, _ = s.SubmitSecondFactor(context.Background(), "000000")
	clock.Advance(1500 * time.Millisecond)

	// A later call supersedes the pending clear.
	_, _ = s.SubmitSecondFactor(context.Background(), "000001")
	clock.Advance(1500 * time.Millisecond)
	if !s.VerificationFailed() {
		t.Fatal("second failure must restart the signal window")
	}
}

func TestVerificationFailed_ClearedOnSuccess(t *testing.T) {
	s, _, _ := newTestService(t)
	mustAdvanceToSecondFactor(t, s)

	_, _ = s.SubmitSecondFactor(context.Background(), "000000")
	if _, err := s.SubmitSecondFactor(context.Background(), "123456"); err != nil {
		t.Fatalf("SubmitSecondFactor error: %v", err)
	}
	if s.VerificationFailed() {
		t.Fatal("success must clear the failure signal")
	}
}

func TestLogout_FromAnyStageAndIdempotent(t *testing.T) {
	s, _, _ := newTestService(t)

	// Already Anonymous: a no-op, not an error.
	s.Logout()
	if s.CurrentStage() != models.StageAnonymous {
		t.Fatalf("expected Anonymous, got %v", s.CurrentStage())
	}

	mustAdvanceToSecondFactor(t, s)
	s.Logout()
	if s.CurrentStage() != models.StageAnonymous {
		t.Fatalf("logout from SecondFactorPending: got %v", s.CurrentStage())
	}

	mustAdvanceToSecondFactor(t, s)
	if _, err := s.SubmitSecondFactor(context.Background(), "123456"); err != nil {
		t.Fatalf("SubmitSecondFactor error: %v", err)
	}

	s.Logout()
	s.Logout() // twice in a row is equivalent to once
	if s.CurrentStage() != models.StageAnonymous {
		t.Fatalf("expected Anonymous, got %v", s.CurrentStage())
	}
	if s.CurrentIdentity() != nil || s.Token() != "" {
		t.Fatal("logout must destroy the identity and token")
	}
	if s.VerificationFailed() {
		t.Fatal("logout must discard the failure signal")
	}
}
