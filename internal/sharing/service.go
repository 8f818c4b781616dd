// Package sharing manages per-file share grants: granting access to a
// recipient and revoking it again.
package sharing

import (
	"context"
	"strings"

	"github.com/dkalachov/filevault/internal/common"
	"github.com/dkalachov/filevault/internal/logging"
	"github.com/dkalachov/filevault/internal/models"
	"github.com/dkalachov/filevault/internal/repositories/files"
	"github.com/dkalachov/filevault/internal/timex"
)

// Service grants and revokes file access. Grants are keyed by recipient
// within a file: sharing again with the same recipient replaces the
// permission in place instead of adding a second grant.
type Service struct {
	repo   files.Repository
	clock  timex.Clock
	logger logging.Logger
}

func NewService(repo files.Repository, clock timex.Clock, logger logging.Logger) *Service {
	return &Service{repo: repo, clock: clock, logger: logger}
}

// Share grants recipient the given permission on the file. Only files owned
// by the current session can be shared.
func (s *Service) Share(ctx context.Context, fileID int64, recipient string, permission models.Permission) (*models.FileRecord, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return nil, common.ErrEmptyRecipient
	}
	if !validRecipient(recipient) {
		return nil, common.ErrInvalidRecipient
	}

	record, err := s.repo.Get(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if !record.OwnedBySelf() {
		return nil, common.ErrNotOwner
	}

	upsertGrant(record, models.ShareGrant{Recipient: recipient, Permission: permission})
	record.ModifiedAt = s.clock.Now()

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "file shared", "id", fileID, "recipient", recipient, "permission", string(permission))
	return record, nil
}

// Unshare revokes recipient's grant on the file. A recipient with no grant
// yields common.ErrGrantNotFound.
func (s *Service) Unshare(ctx context.Context, fileID int64, recipient string) (*models.FileRecord, error) {
	record, err := s.repo.Get(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if !record.OwnedBySelf() {
		return nil, common.ErrNotOwner
	}

	if !removeGrant(record, recipient) {
		return nil, common.ErrGrantNotFound
	}
	record.ModifiedAt = s.clock.Now()

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "share revoked", "id", fileID, "recipient", recipient)
	return record, nil
}

// validRecipient accepts addresses with exactly one @ separating a non-empty
// local part and domain. Anything fancier is the mail system's problem.
func validRecipient(recipient string) bool {
	local, domain, ok := strings.Cut(recipient, "@")
	if !ok || local == "" || domain == "" {
		return false
	}
	return !strings.Contains(domain, "@")
}

func upsertGrant(record *models.FileRecord, grant models.ShareGrant) {
	for i := range record.Shares {
		if record.Shares[i].Recipient == grant.Recipient {
			record.Shares[i].Permission = grant.Permission
			return
		}
	}
	record.Shares = append(record.Shares, grant)
}

func removeGrant(record *models.FileRecord, recipient string) bool {
	for i := range record.Shares {
		if record.Shares[i].Recipient == recipient {
			record.Shares = append(record.Shares[:i], record.Shares[i+1:]...)
			return true
		}
	}
	return false
}
