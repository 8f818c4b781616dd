package cli

import (
	"context"
	"errors"

	"github.com/dkalachov/filevault/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for the username and password and submits them to the
// session service. On success the session moves to the code prompt; the
// password byte slice is wiped by the service before it returns.
func (v *View) Login(ctx context.Context) error {
	username, err := getSimpleText(v.reader, "Enter username", v.out)
	if err != nil {
		return err
	}

	password, err := getPassword(v.out)
	if err != nil {
		return err
	}

	if err := v.app.Session.SubmitCredentials(ctx, username, password); err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidCredentials):
			v.app.Notifications.Error("Invalid credentials")
		case errors.Is(err, common.ErrInvalidStage):
			v.app.Notifications.Error("Already signed in")
		default:
			v.app.Notifications.Error("Sign-in failed, try again")
		}
		return err
	}

	printlnFn("Credentials accepted, enter your verification code ('code')")
	return nil
}

// Code prompts for the six-digit verification code and completes sign-in.
// On success the registry is seeded with the session catalog.
func (v *View) Code(ctx context.Context) error {
	code, err := getSimpleText(v.reader, "Enter 6-digit verification code", v.out)
	if err != nil {
		return err
	}

	if _, err := v.app.Session.SubmitSecondFactor(ctx, code); err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidCode):
			v.app.Notifications.Error("Invalid verification code")
		case errors.Is(err, common.ErrInvalidStage):
			v.app.Notifications.Error("Sign in first ('login')")
		default:
			v.app.Notifications.Error("Verification failed, try again")
		}
		return err
	}

	if err := v.app.Registry.Seed(ctx); err != nil {
		return err
	}

	v.app.Notifications.Success("Successfully authenticated")
	return nil
}

// Logout ends the session and clears everything tied to it, including the
// file selection. Safe to call when not signed in.
func (v *View) Logout(ctx context.Context) error {
	v.selectedID = 0
	return v.app.Reset(ctx)
}
