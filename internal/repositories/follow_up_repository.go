package repositories

import (
	"context"
	"database/sql"
	"sway-pr/internal/models"
	"sway-pr/internal/utils"

	"github.com/pkg/errors"
)

type SQLFollowUpRepository struct {
	db *sql.DB
}

func NewSQLFollowUpRepository(db *sql.DB) *SQLFollowUpRepository {
	return &SQLFollowUpRepository{db: db}
}

func (r *SQLFollowUpRepository) Save(ctx context.Context, email *models.FollowUpEmail) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO follow_up_emails (name, content, outlet_name, city, created_at, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		email.Name,
		email.Content,
		utils.NullString(email.OutletName),
		utils.NullString(email.City),
	)
	if err != nil {
		return errors.Wrap(err, "error saving follow-up email")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "error getting last insert id")
	}

	email.ID = id
	return nil
}

const followUpColumns = "id, name, content, outlet_name, city, created_at, updated_at"

func (r *SQLFollowUpRepository) List(ctx context.Context) ([]*models.FollowUpEmail, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+followUpColumns+" FROM follow_up_emails ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, errors.Wrap(err, "error querying follow-up emails")
	}
	defer rows.Close()

	emails := []*models.FollowUpEmail{}
	for rows.Next() {
		email, err := scanFollowUp(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating follow-up emails")
	}

	return emails, nil
}

func (r *SQLFollowUpRepository) GetByID(ctx context.Context, id int64) (*models.FollowUpEmail, error) {
	email, err := scanFollowUp(r.db.QueryRowContext(ctx, "SELECT "+followUpColumns+" FROM follow_up_emails WHERE id = ?", id))
	if errors.Cause(err) == sql.ErrNoRows {
		return nil, nil
	}
	return email, err
}

func (r *SQLFollowUpRepository) Update(ctx context.Context, email *models.FollowUpEmail) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE follow_up_emails
		SET name = ?, content = ?, outlet_name = ?, city = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		email.Name,
		email.Content,
		utils.NullString(email.OutletName),
		utils.NullString(email.City),
		email.ID,
	)
	if err != nil {
		return false, errors.Wrapf(err, "error updating follow-up email %d", email.ID)
	}
	return rowsChanged(result)
}

func (r *SQLFollowUpRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM follow_up_emails WHERE id = ?", id)
	if err != nil {
		return false, errors.Wrapf(err, "error deleting follow-up email %d", id)
	}
	return rowsChanged(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFollowUp(row rowScanner) (*models.FollowUpEmail, error) {
	email := &models.FollowUpEmail{}
	var outlet, city sql.NullString
	var createdAt, updatedAt utils.Timestamp

	err := row.Scan(&email.ID, &email.Name, &email.Content, &outlet, &city, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, errors.Wrap(err, "error scanning follow-up email")
	}

	email.OutletName = outlet.String
	email.City = city.String
	email.CreatedAt = createdAt.Time
	email.UpdatedAt = updatedAt.Time
	return email, nil
}
