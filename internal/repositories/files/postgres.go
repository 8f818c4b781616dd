package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dkalachov/filevault/internal/common"
	"github.com/dkalachov/filevault/internal/dbx"
	"github.com/dkalachov/filevault/internal/migrations"
	"github.com/dkalachov/filevault/internal/models"
)

// PostgresRepository implements Repository over PostgreSQL via the pgx
// stdlib driver. Shares live in file_shares keyed by (file_id, recipient),
// so the replace-by-recipient contract also holds at the schema level;
// the position column preserves grant order across rewrites.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository opens the database and applies pending migrations.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	r := &PostgresRepository{db: db}
	if err := r.runMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return r, nil
}

func (r *PostgresRepository) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	return goose.UpContext(ctx, r.db, ".")
}

// Close releases the underlying connection pool.
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresRepository) Insert(ctx context.Context, record *models.FileRecord) (*models.FileRecord, error) {
	stored := record.Clone()

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := `
			INSERT INTO files (name, kind, size_bytes, modified_at, owner_id, encrypted, storage_key)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		if err := tx.QueryRowContext(ctx, query,
			stored.Name, string(stored.Kind), stored.SizeBytes, stored.ModifiedAt,
			stored.OwnerID, stored.Encrypted, stored.StorageKey).Scan(&stored.ID); err != nil {
			return fmt.Errorf("failed to insert file: %w", err)
		}
		return insertShares(ctx, tx, stored.ID, stored.Shares)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.FileRecord, error) {
	query := `
		SELECT id, name, kind, size_bytes, modified_at, owner_id, encrypted, storage_key
		FROM files ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.FileRecord
	byID := map[int64]*models.FileRecord{}
	for rows.Next() {
		item := &models.FileRecord{}
		var kind string
		if err := rows.Scan(&item.ID, &item.Name, &kind, &item.SizeBytes,
			&item.ModifiedAt, &item.OwnerID, &item.Encrypted, &item.StorageKey); err != nil {
			return nil, err
		}
		item.Kind = models.FileKind(kind)
		result = append(result, item)
		byID[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadShares(ctx, byID); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.FileRecord, error) {
	query := `
		SELECT id, name, kind, size_bytes, modified_at, owner_id, encrypted, storage_key
		FROM files WHERE id=$1
	`
	item := &models.FileRecord{}
	var kind string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.Name, &kind,
		&item.SizeBytes, &item.ModifiedAt, &item.OwnerID, &item.Encrypted, &item.StorageKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select file: %w", err)
	}
	item.Kind = models.FileKind(kind)

	if err := r.loadShares(ctx, map[int64]*models.FileRecord{item.ID: item}); err != nil {
		return nil, err
	}
	return item, nil
}

// Update rewrites the file row and its share list in one transaction.
func (r *PostgresRepository) Update(ctx context.Context, record *models.FileRecord) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := `
			UPDATE files SET name=$2, kind=$3, size_bytes=$4, modified_at=$5,
				owner_id=$6, encrypted=$7, storage_key=$8
			WHERE id=$1
		`
		res, err := tx.ExecContext(ctx, query, record.ID, record.Name, string(record.Kind),
			record.SizeBytes, record.ModifiedAt, record.OwnerID, record.Encrypted, record.StorageKey)
		if err != nil {
			return fmt.Errorf("failed to update file: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected error: %w", err)
		}
		if n == 0 {
			return common.ErrNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM file_shares WHERE file_id=$1`, record.ID); err != nil {
			return fmt.Errorf("failed to clear shares: %w", err)
		}
		return insertShares(ctx, tx, record.ID, record.Shares)
	})
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	// file_shares rows go away via ON DELETE CASCADE
	res, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `TRUNCATE files RESTART IDENTITY CASCADE`); err != nil {
		return fmt.Errorf("failed to reset registry: %w", err)
	}
	return nil
}

func insertShares(ctx context.Context, tx dbx.DBTX, fileID int64, shares []models.ShareGrant) error {
	query := `INSERT INTO file_shares (file_id, recipient, permission, position) VALUES ($1, $2, $3, $4)`
	for i, grant := range shares {
		if _, err := tx.ExecContext(ctx, query, fileID, grant.Recipient, string(grant.Permission), i); err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) loadShares(ctx context.Context, byID map[int64]*models.FileRecord) error {
	if len(byID) == 0 {
		return nil
	}

	query := `SELECT file_id, recipient, permission FROM file_shares ORDER BY file_id, position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to select shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var fileID int64
		var recipient, permission string
		if err := rows.Scan(&fileID, &recipient, &permission); err != nil {
			return err
		}
		if record, ok := byID[fileID]; ok {
			record.Shares = append(record.Shares, models.ShareGrant{
				Recipient:  recipient,
				Permission: models.Permission(permission),
			})
		}
	}
	return rows.Err()
}
