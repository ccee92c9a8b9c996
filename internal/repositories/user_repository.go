package repositories

import (
	"context"
	"database/sql"
	"sway-pr/internal/models"
	"sway-pr/internal/utils"

	"github.com/pkg/errors"
)

type SQLUserRepository struct {
	db *sql.DB
}

func NewSQLUserRepository(db *sql.DB) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

func (r *SQLUserRepository) Save(ctx context.Context, user *models.User) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, is_active, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		user.Username,
		utils.NullString(user.Email),
		user.PasswordHash,
		utils.BoolToInt(user.IsActive),
		utils.BoolToInt(user.IsAdmin),
	)
	if err != nil {
		if utils.IsDuplicateKey(err) {
			return models.WrapError(models.KindDuplicateKey, err, "username already taken")
		}
		return errors.Wrap(err, "error saving user")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "error getting last insert id")
	}

	user.ID = id
	return nil
}

func (r *SQLUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *SQLUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, "username = ?", username)
}

func (r *SQLUserRepository) getOne(ctx context.Context, where string, arg any) (*models.User, error) {
	user := &models.User{}
	var email sql.NullString
	var createdAt utils.Timestamp

	err := r.db.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash, is_active, is_admin, created_at FROM users WHERE "+where, arg).
		Scan(&user.ID, &user.Username, &email, &user.PasswordHash, &user.IsActive, &user.IsAdmin, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error getting user")
	}

	user.Email = email.String
	user.CreatedAt = createdAt.Time
	return user, nil
}
