package registry

import (
	"context"
	"time"

	"github.com/dkalachov/filevault/internal/models"
)

// Seed populates a fresh registry with the demo catalog shown right after
// authentication. Records are inserted oldest first so List returns them in
// the order below, newest first.
func (s *Service) Seed(ctx context.Context) error {
	samples := []*models.FileRecord{
		{
			Name:       "Financial Report 2025.pdf",
			Kind:       models.KindDocument,
			SizeBytes:  mbytes(2.4),
			ModifiedAt: time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
			OwnerID:    models.OwnerSelf,
			Shares:     []models.ShareGrant{{Recipient: "alice@example.com", Permission: models.PermissionRead}},
			Encrypted:  true,
		},
		{
			Name:       "Project Roadmap.docx",
			Kind:       models.KindDocument,
			SizeBytes:  mbytes(1.1),
			ModifiedAt: time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC),
			OwnerID:    models.OwnerSelf,
			Encrypted:  true,
		},
		{
			Name:       "Team Photo.jpg",
			Kind:       models.KindImage,
			SizeBytes:  mbytes(3.8),
			ModifiedAt: time.Date(2025, 3, 22, 0, 0, 0, 0, time.UTC),
			OwnerID:    "bob@example.com",
			Shares:     []models.ShareGrant{{Recipient: "demo@example.com", Permission: models.PermissionRead}},
			Encrypted:  true,
		},
		{
			Name:       "Security Protocol.pdf",
			Kind:       models.KindDocument,
			SizeBytes:  mbytes(0.9),
			ModifiedAt: time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC),
			OwnerID:    models.OwnerSelf,
			Encrypted:  true,
		},
		{
			Name:       "Budget 2025.xlsx",
			Kind:       models.KindSpreadsheet,
			SizeBytes:  mbytes(1.6),
			ModifiedAt: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			OwnerID:    models.OwnerSelf,
			Shares: []models.ShareGrant{
				{Recipient: "charlie@example.com", Permission: models.PermissionRead},
				{Recipient: "dave@example.com", Permission: models.PermissionRead},
			},
			Encrypted: true,
		},
	}

	for i := len(samples) - 1; i >= 0; i-- {
		if _, err := s.repo.Insert(ctx, samples[i]); err != nil {
			return err
		}
	}
	return nil
}

func mbytes(v float64) int64 {
	return int64(v * 1024 * 1024)
}
