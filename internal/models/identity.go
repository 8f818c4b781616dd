// Package models defines the data model of the file manager core: the
// authenticated identity, authentication stages, file records with their
// share grants, and advisory notifications.
package models

// Identity describes the authenticated user. It is minted when the
// authentication state machine reaches the Authenticated stage and is
// immutable for the lifetime of the session.
type Identity struct {
	ID          string
	DisplayName string
}

// AuthStage is a discrete step of the authentication state machine.
type AuthStage string

const (
	StageAnonymous           AuthStage = "anonymous"
	StageCredentialsPending  AuthStage = "credentials_pending"
	StageSecondFactorPending AuthStage = "second_factor_pending"
	StageAuthenticated       AuthStage = "authenticated"
)
