// Package files provides storage backends for the file registry: an
// in-memory implementation for the single-session deployment and a
// PostgreSQL implementation for persistent ones.
package files

import (
	"context"

	"github.com/dkalachov/filevault/internal/models"
)

// Repository stores file records. Implementations assign ids monotonically
// (ids are never reused within a session), keep records in creation order,
// and return them newest-first. Lookups on absent ids yield
// common.ErrNotFound.
type Repository interface {
	Insert(ctx context.Context, record *models.FileRecord) (*models.FileRecord, error)
	List(ctx context.Context) ([]*models.FileRecord, error)
	Get(ctx context.Context, id int64) (*models.FileRecord, error)
	Update(ctx context.Context, record *models.FileRecord) error
	Delete(ctx context.Context, id int64) error
	Reset(ctx context.Context) error
}
