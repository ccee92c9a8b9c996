package repositories

import (
	"context"
	"database/sql"
	"sway-pr/internal/models"
	"sway-pr/internal/utils"

	"github.com/pkg/errors"
)

type SQLOutreachLogRepository struct {
	db *sql.DB
}

func NewSQLOutreachLogRepository(db *sql.DB) *SQLOutreachLogRepository {
	return &SQLOutreachLogRepository{db: db}
}

func (r *SQLOutreachLogRepository) Save(ctx context.Context, entry *models.OutreachLog) error {
	query := `
		INSERT INTO outreach_log (
			target_table, webhook_url, outlet_names, staff_members,
			contact_count, status_code, success, error_message, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`

	result, err := r.db.ExecContext(ctx, query,
		entry.TargetTable,
		entry.WebhookURL,
		utils.NullString(entry.OutletNames),
		utils.NullString(entry.StaffMembers),
		entry.ContactCount,
		entry.StatusCode,
		utils.BoolToInt(entry.Success),
		utils.NullString(entry.ErrorMessage),
	)
	if err != nil {
		return errors.Wrap(err, "error saving outreach log")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "error getting last insert id")
	}

	entry.ID = id
	return nil
}

// Recent returns the newest deliveries first.
func (r *SQLOutreachLogRepository) Recent(ctx context.Context, limit int) ([]*models.OutreachLog, error) {
	query := `
		SELECT
			id, target_table, webhook_url, outlet_names, staff_members,
			contact_count, status_code, success, error_message, created_at
		FROM outreach_log
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "error querying outreach log")
	}
	defer rows.Close()

	entries := []*models.OutreachLog{}
	for rows.Next() {
		entry := &models.OutreachLog{}
		var outlets, staff, errorMessage sql.NullString
		var createdAt utils.Timestamp

		err := rows.Scan(
			&entry.ID,
			&entry.TargetTable,
			&entry.WebhookURL,
			&outlets,
			&staff,
			&entry.ContactCount,
			&entry.StatusCode,
			&entry.Success,
			&errorMessage,
			&createdAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "error scanning outreach log")
		}

		entry.OutletNames = outlets.String
		entry.StaffMembers = staff.String
		entry.ErrorMessage = errorMessage.String
		entry.CreatedAt = createdAt.Time

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating outreach log")
	}

	return entries, nil
}
