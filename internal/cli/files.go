package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dkalachov/filevault/internal/common"
	"github.com/dkalachov/filevault/internal/models"
)

// requireAuth posts a notification and reports false when no session exists.
func (v *View) requireAuth() bool {
	if !v.isAuthenticated() {
		v.app.Notifications.Error("Sign in first ('login')")
		return false
	}
	return true
}

// List prints the registry, newest file first.
func (v *View) List(ctx context.Context) error {
	if !v.requireAuth() {
		return common.ErrUnauthorized
	}

	records, err := v.app.Registry.List(ctx)
	if err != nil {
		v.app.Notifications.Error("Could not load files")
		return err
	}

	for _, record := range records {
		printlnFn(formatRecord(record))
	}
	return nil
}

// Upload prompts for a name and kind and registers a new encrypted file.
func (v *View) Upload(ctx context.Context) error {
	if !v.requireAuth() {
		return common.ErrUnauthorized
	}

	name, err := getSimpleText(v.reader, "Enter file name (without extension)", v.out)
	if err != nil {
		return err
	}
	kindInput, err := getSimpleText(v.reader, "Enter kind (document, spreadsheet, image, other)", v.out)
	if err != nil {
		return err
	}

	record, err := v.app.Registry.Upload(ctx, name, models.FileKind(kindInput))
	if err != nil {
		if errors.Is(err, common.ErrEmptyName) {
			v.app.Notifications.Error("File name cannot be empty")
		} else {
			v.app.Notifications.Error("Upload failed")
		}
		return err
	}

	if v.app.Blobs != nil {
		url, err := v.app.Blobs.PresignPut(ctx, record.StorageKey)
		if err != nil {
			v.app.Notifications.Error("Upload failed")
			return err
		}
		printlnFn("Upload URL:", url)
	}

	v.app.Notifications.Success("File encrypted and uploaded securely")
	return nil
}

// Select prompts for a file id and remembers it for subsequent commands.
func (v *View) Select(ctx context.Context) error {
	if !v.requireAuth() {
		return common.ErrUnauthorized
	}

	record, err := v.promptForFile(ctx)
	if err != nil {
		return err
	}

	v.selectedID = record.ID
	printlnFn("Selected", record.Name)
	return nil
}

// Show prints the selected file's details, including its share list.
func (v *View) Show(ctx context.Context) error {
	if !v.requireAuth() {
		return common.ErrUnauthorized
	}

	record, err := v.selectedFile(ctx)
	if err != nil {
		return err
	}

	printlnFn(formatRecord(record))
	for _, grant := range record.Shares {
		printlnFn(fmt.Sprintf("  shared with %s (%s)", grant.Recipient, grant.Permission))
	}
	return nil
}

// Delete removes the selected file from the registry.
func (v *View) Delete(ctx context.Context) error {
	if !v.requireAuth() {
		return common.ErrUnauthorized
	}

	record, err := v.selectedFile(ctx)
	if err != nil {
		return err
	}

	if err := v.app.Registry.Delete(ctx, record.ID); err != nil {
		if errors.Is(err, common.ErrNotOwner) {
			v.app.Notifications.Error("Only the owner can delete this file")
		} else {
			v.app.Notifications.Error("Delete failed")
		}
		return err
	}

	v.selectedID = 0
	v.app.Notifications.Success("File deleted securely")
	return nil
}

// Download hands out a presigned GET URL for the selected file when blob
// transfers are configured, and reports the decryption as started either way.
func (v *View) Download(ctx context.Context) error {
	if !v.requireAuth() {
		return common.ErrUnauthorized
	}

	record, err := v.selectedFile(ctx)
	if err != nil {
		return err
	}

	if v.app.Blobs != nil {
		url, err := v.app.Blobs.PresignGet(ctx, record.StorageKey)
		if err != nil {
			v.app.Notifications.Error("Download failed")
			return err
		}
		printlnFn("Download URL:", url)
	}

	v.app.Notifications.Success(fmt.Sprintf("Decrypting and downloading %s", record.Name))
	return nil
}

// selectedFile resolves the current selection, clearing it if the record has
// gone away in the meantime.
func (v *View) selectedFile(ctx context.Context) (*models.FileRecord, error) {
	if v.selectedID == 0 {
		v.app.Notifications.Error("Select a file first ('select')")
		return nil, common.ErrNotFound
	}

	record, err := v.app.Registry.Get(ctx, v.selectedID)
	if err != nil {
		v.selectedID = 0
		v.app.Notifications.Error("File not found")
		return nil, err
	}
	return record, nil
}

// promptForFile reads a file id and resolves it against the registry.
func (v *View) promptForFile(ctx context.Context) (*models.FileRecord, error) {
	input, err := getSimpleText(v.reader, "Enter file id", v.out)
	if err != nil {
		return nil, err
	}

	id, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		v.app.Notifications.Error("File id must be a number")
		return nil, err
	}

	record, err := v.app.Registry.Get(ctx, id)
	if err != nil {
		v.app.Notifications.Error("File not found")
		return nil, err
	}
	return record, nil
}
