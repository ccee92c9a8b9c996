package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"sway-pr/internal/models"
	"sway-pr/internal/utils"

	"github.com/pkg/errors"
)

// SQLDocumentRepository stores email templates or press releases; both
// tables share one shape and the kind picks the table.
type SQLDocumentRepository struct {
	db   *sql.DB
	kind models.DocumentKind
}

func NewSQLDocumentRepository(db *sql.DB, kind models.DocumentKind) *SQLDocumentRepository {
	return &SQLDocumentRepository{db: db, kind: kind}
}

func (r *SQLDocumentRepository) Kind() models.DocumentKind {
	return r.kind
}

func (r *SQLDocumentRepository) Save(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, content, html_content, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`, r.kind)

	result, err := r.db.ExecContext(ctx, query,
		doc.Name,
		doc.Content,
		utils.NullString(doc.HTMLContent),
		nullBytes(doc.Image),
	)
	if err != nil {
		return errors.Wrapf(err, "error saving %s row", r.kind)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "error getting last insert id")
	}

	doc.ID = id
	doc.HasImage = len(doc.Image) > 0
	return nil
}

// List omits image bytes; HasImage reports whether one is stored.
func (r *SQLDocumentRepository) List(ctx context.Context) ([]*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, name, content, html_content, image IS NOT NULL, created_at, updated_at
		FROM %s
		ORDER BY created_at DESC, id DESC`, r.kind)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "error querying %s", r.kind)
	}
	defer rows.Close()

	docs := []*models.Document{}
	for rows.Next() {
		doc := &models.Document{}
		var html sql.NullString
		var createdAt, updatedAt utils.Timestamp
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.Content, &html, &doc.HasImage, &createdAt, &updatedAt); err != nil {
			return nil, errors.Wrapf(err, "error scanning %s row", r.kind)
		}
		doc.HTMLContent = html.String
		doc.CreatedAt = createdAt.Time
		doc.UpdatedAt = updatedAt.Time
		docs = append(docs, doc)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "error iterating %s", r.kind)
	}

	return docs, nil
}

func (r *SQLDocumentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	query := fmt.Sprintf("SELECT id, name, content, html_content, image, created_at, updated_at FROM %s WHERE id = ?", r.kind)

	doc := &models.Document{}
	var html sql.NullString
	var createdAt, updatedAt utils.Timestamp
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&doc.ID, &doc.Name, &doc.Content, &html, &doc.Image, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error getting %s row %d", r.kind, id)
	}

	doc.HTMLContent = html.String
	doc.HasImage = len(doc.Image) > 0
	doc.CreatedAt = createdAt.Time
	doc.UpdatedAt = updatedAt.Time
	return doc, nil
}

// Update replaces name and content. The stored image is kept unless
// doc.Image is non-empty.
func (r *SQLDocumentRepository) Update(ctx context.Context, doc *models.Document) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = ?, content = ?, html_content = ?, image = COALESCE(?, image), updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, r.kind)

	result, err := r.db.ExecContext(ctx, query, doc.Name, doc.Content, utils.NullString(doc.HTMLContent), nullBytes(doc.Image), doc.ID)
	if err != nil {
		return false, errors.Wrapf(err, "error updating %s row %d", r.kind, doc.ID)
	}
	return rowsChanged(result)
}

func (r *SQLDocumentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", r.kind), id)
	if err != nil {
		return false, errors.Wrapf(err, "error deleting %s row %d", r.kind, id)
	}
	return rowsChanged(result)
}

func nullBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
