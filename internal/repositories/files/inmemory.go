package files

import (
	"context"

	"github.com/dkalachov/filevault/internal/common"
	"github.com/dkalachov/filevault/internal/models"
)

// InMemoryRepository keeps the registry in process memory, newest record
// first. It is the single-session backend; all calls come from one control
// thread, so there is no locking. Records are cloned on the way in and out
// so callers can never alias stored state.
type InMemoryRepository struct {
	records []*models.FileRecord
	nextID  int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Insert(ctx context.Context, record *models.FileRecord) (*models.FileRecord, error) {
	stored := record.Clone()
	stored.ID = r.nextID
	r.nextID++

	r.records = append([]*models.FileRecord{stored}, r.records...)
	return stored.Clone(), nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*models.FileRecord, error) {
	result := make([]*models.FileRecord, 0, len(r.records))
	for _, record := range r.records {
		result = append(result, record.Clone())
	}
	return result, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id int64) (*models.FileRecord, error) {
	for _, record := range r.records {
		if record.ID == id {
			return record.Clone(), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *InMemoryRepository) Update(ctx context.Context, record *models.FileRecord) error {
	for i := range r.records {
		if r.records[i].ID == record.ID {
			r.records[i] = record.Clone()
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *InMemoryRepository) Delete(ctx context.Context, id int64) error {
	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

// Reset drops all records and restarts id assignment; used when the session
// ends and the registry is rebuilt for the next one.
func (r *InMemoryRepository) Reset(ctx context.Context) error {
	r.records = nil
	r.nextID = 1
	return nil
}
