package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkalachov/filevault/internal/common"
	"github.com/dkalachov/filevault/internal/models"
)

// Share prompts for a recipient and permission and grants access to the
// selected file. Sharing again with the same recipient replaces their
// permission.
func (v *View) Share(ctx context.Context) error {
	if !v.requireAuth() {
		return common.ErrUnauthorized
	}

	record, err := v.selectedFile(ctx)
	if err != nil {
		return err
	}

	recipient, err := getSimpleText(v.reader, "Enter recipient email", v.out)
	if err != nil {
		return err
	}
	permInput, err := getSimpleText(v.reader, "Enter permission (read, edit, admin)", v.out)
	if err != nil {
		return err
	}

	permission := models.Permission(permInput)
	if !permission.Valid() {
		permission = models.PermissionRead
	}

	if _, err := v.app.Sharing.Share(ctx, record.ID, recipient, permission); err != nil {
		switch {
		case errors.Is(err, common.ErrEmptyRecipient):
			v.app.Notifications.Error("Recipient cannot be empty")
		case errors.Is(err, common.ErrInvalidRecipient):
			v.app.Notifications.Error("Recipient must be a valid email address")
		case errors.Is(err, common.ErrNotOwner):
			v.app.Notifications.Error("Only the owner can share this file")
		default:
			v.app.Notifications.Error("Sharing failed")
		}
		return err
	}

	v.app.Notifications.Success(fmt.Sprintf("Securely shared %s with %s", record.Name, recipient))
	return nil
}

// Unshare prompts for a recipient and revokes their access to the selected
// file.
func (v *View) Unshare(ctx context.Context) error {
	if !v.requireAuth() {
		return common.ErrUnauthorized
	}

	record, err := v.selectedFile(ctx)
	if err != nil {
		return err
	}

	recipient, err := getSimpleText(v.reader, "Enter recipient email", v.out)
	if err != nil {
		return err
	}

	if _, err := v.app.Sharing.Unshare(ctx, record.ID, recipient); err != nil {
		switch {
		case errors.Is(err, common.ErrGrantNotFound):
			v.app.Notifications.Error("No access to revoke for that recipient")
		case errors.Is(err, common.ErrNotOwner):
			v.app.Notifications.Error("Only the owner can manage sharing")
		default:
			v.app.Notifications.Error("Revoking access failed")
		}
		return err
	}

	v.app.Notifications.Success(fmt.Sprintf("Revoked %s's access to %s", recipient, record.Name))
	return nil
}
