package repositories

import (
	"context"
	"database/sql"
	"sway-pr/internal/models"
	"sway-pr/internal/utils"

	"github.com/pkg/errors"
)

type SQLUploadRepository struct {
	db *sql.DB
}

func NewSQLUploadRepository(db *sql.DB) *SQLUploadRepository {
	return &SQLUploadRepository{db: db}
}

// List returns every batch, newest first, with the number of contacts it owns.
func (r *SQLUploadRepository) List(ctx context.Context) ([]*models.Upload, error) {
	query := `
		SELECT
			u.id, u.name, u.created_at,
			(SELECT COUNT(*) FROM journalists j WHERE j.upload_id = u.id) +
			(SELECT COUNT(*) FROM media_titles m WHERE m.upload_id = u.id) AS record_count
		FROM uploads u
		ORDER BY u.created_at DESC, u.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "error querying uploads")
	}
	defer rows.Close()

	uploads := []*models.Upload{}
	for rows.Next() {
		upload := &models.Upload{}
		var createdAt utils.Timestamp
		if err := rows.Scan(&upload.ID, &upload.Name, &createdAt, &upload.RecordCount); err != nil {
			return nil, errors.Wrap(err, "error scanning upload")
		}
		upload.CreatedAt = createdAt.Time
		uploads = append(uploads, upload)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating uploads")
	}

	return uploads, nil
}

// GetByID returns nil, nil when the batch does not exist.
func (r *SQLUploadRepository) GetByID(ctx context.Context, id int64) (*models.Upload, error) {
	upload := &models.Upload{}
	var createdAt utils.Timestamp
	err := r.db.QueryRowContext(ctx, "SELECT id, name, created_at FROM uploads WHERE id = ?", id).
		Scan(&upload.ID, &upload.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error getting upload %d", id)
	}
	upload.CreatedAt = createdAt.Time
	return upload, nil
}

// Rename reports false when no batch has the given id.
func (r *SQLUploadRepository) Rename(ctx context.Context, id int64, name string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "UPDATE uploads SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return false, errors.Wrapf(err, "error renaming upload %d", id)
	}
	return rowsChanged(result)
}

// Delete removes the batch and every contact that references it in one
// transaction. It reports false when no batch has the given id.
func (r *SQLUploadRepository) Delete(ctx context.Context, id int64) (bool, int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, errors.Wrap(err, "error starting transaction")
	}
	defer tx.Rollback()

	var removed int64
	for _, table := range models.ContactTables {
		result, err := tx.ExecContext(ctx, "DELETE FROM "+string(table)+" WHERE upload_id = ?", id)
		if err != nil {
			return false, 0, errors.Wrapf(err, "error deleting %s of upload %d", table, id)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return false, 0, errors.Wrap(err, "error reading affected rows")
		}
		removed += n
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM uploads WHERE id = ?", id)
	if err != nil {
		return false, 0, errors.Wrapf(err, "error deleting upload %d", id)
	}
	found, err := rowsChanged(result)
	if err != nil {
		return false, 0, err
	}
	if !found {
		return false, 0, nil
	}

	if err = tx.Commit(); err != nil {
		return false, 0, errors.Wrap(err, "error committing transaction")
	}
	return true, removed, nil
}

func rowsChanged(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "error reading affected rows")
	}
	return n > 0, nil
}
