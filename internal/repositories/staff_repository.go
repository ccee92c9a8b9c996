package repositories

import (
	"context"
	"database/sql"
	"sway-pr/internal/models"
	"sway-pr/internal/utils"

	"github.com/pkg/errors"
)

type SQLStaffRepository struct {
	db *sql.DB
}

func NewSQLStaffRepository(db *sql.DB) *SQLStaffRepository {
	return &SQLStaffRepository{db: db}
}

func (r *SQLStaffRepository) Save(ctx context.Context, staff *models.Staff) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO staff (staff_name, staff_email, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
		staff.StaffName, staff.StaffEmail)
	if err != nil {
		if utils.IsDuplicateKey(err) {
			return models.WrapError(models.KindDuplicateKey, err, "a staff member with this email already exists")
		}
		return errors.Wrap(err, "error saving staff member")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "error getting last insert id")
	}

	staff.ID = id
	return nil
}

func (r *SQLStaffRepository) List(ctx context.Context) ([]*models.Staff, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, staff_name, staff_email, created_at FROM staff ORDER BY staff_name, id")
	if err != nil {
		return nil, errors.Wrap(err, "error querying staff")
	}
	defer rows.Close()

	staff := []*models.Staff{}
	for rows.Next() {
		s := &models.Staff{}
		var createdAt utils.Timestamp
		if err := rows.Scan(&s.ID, &s.StaffName, &s.StaffEmail, &createdAt); err != nil {
			return nil, errors.Wrap(err, "error scanning staff member")
		}
		s.CreatedAt = createdAt.Time
		staff = append(staff, s)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating staff")
	}

	return staff, nil
}

func (r *SQLStaffRepository) GetByID(ctx context.Context, id int64) (*models.Staff, error) {
	s := &models.Staff{}
	var createdAt utils.Timestamp
	err := r.db.QueryRowContext(ctx, "SELECT id, staff_name, staff_email, created_at FROM staff WHERE id = ?", id).
		Scan(&s.ID, &s.StaffName, &s.StaffEmail, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error getting staff member %d", id)
	}
	s.CreatedAt = createdAt.Time
	return s, nil
}

func (r *SQLStaffRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM staff WHERE id = ?", id)
	if err != nil {
		return false, errors.Wrapf(err, "error deleting staff member %d", id)
	}
	return rowsChanged(result)
}
