// Package registry implements the file registry: the catalog of file
// records visible in a session, with upload, listing and deletion.
package registry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkalachov/filevault/internal/common"
	"github.com/dkalachov/filevault/internal/logging"
	"github.com/dkalachov/filevault/internal/models"
	"github.com/dkalachov/filevault/internal/repositories/files"
	"github.com/dkalachov/filevault/internal/timex"
)

// SizeEstimator supplies the size recorded for an uploaded file. The demo
// deployment has no real payload, so sizes come from a random estimator;
// a full pipeline would report the encrypted blob's actual length.
type SizeEstimator interface {
	Estimate() int64
}

// Service owns the registry of file records. All calls arrive from a single
// control thread, so the service holds no locks.
type Service struct {
	repo   files.Repository
	clock  timex.Clock
	sizer  SizeEstimator
	logger logging.Logger
}

func NewService(repo files.Repository, clock timex.Clock, sizer SizeEstimator, logger logging.Logger) *Service {
	return &Service{repo: repo, clock: clock, sizer: sizer, logger: logger}
}

// List returns all records, newest first.
func (s *Service) List(ctx context.Context) ([]*models.FileRecord, error) {
	return s.repo.List(ctx)
}

// Get returns the record with the given id or common.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*models.FileRecord, error) {
	return s.repo.Get(ctx, id)
}

// Upload registers a new file record. The stored name is the trimmed input
// plus the extension implied by the kind; the record is owned by the current
// session and marked encrypted.
func (s *Service) Upload(ctx context.Context, name string, kind models.FileKind) (*models.FileRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrEmptyName
	}
	if !kind.Valid() {
		kind = models.KindOther
	}

	now := s.clock.Now()
	record := &models.FileRecord{
		Name:       name + kind.Extension(),
		Kind:       kind,
		SizeBytes:  s.sizer.Estimate(),
		ModifiedAt: now,
		OwnerID:    models.OwnerSelf,
		Encrypted:  true,
		StorageKey: newStorageKey(now),
	}

	stored, err := s.repo.Insert(ctx, record)
	if err != nil {
		s.logger.Error(ctx, "failed to register upload", "name", record.Name, "error", err.Error())
		return nil, err
	}
	s.logger.Info(ctx, "file uploaded", "id", stored.ID, "name", stored.Name)
	return stored, nil
}

// Delete removes a record. Only records owned by the current session may be
// deleted; foreign records yield common.ErrNotOwner.
func (s *Service) Delete(ctx context.Context, id int64) error {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !record.OwnedBySelf() {
		return common.ErrNotOwner
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "file deleted", "id", id, "name", record.Name)
	return nil
}

// Reset drops every record so the next session starts from a clean registry.
func (s *Service) Reset(ctx context.Context) error {
	return s.repo.Reset(ctx)
}

func newStorageKey(now time.Time) string {
	y, m, d := now.Date()
	return fmt.Sprintf("files/%d/%d/%d/%v", y, int(m), d, uuid.New())
}
