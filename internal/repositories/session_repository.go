package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"sway-pr/internal/models"
	"sway-pr/internal/utils"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// SessionStore persists login sessions. Get returns nil, nil for unknown tokens.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}

type SQLSessionRepository struct {
	db *sql.DB
}

func NewSQLSessionRepository(db *sql.DB) *SQLSessionRepository {
	return &SQLSessionRepository{db: db}
}

func (r *SQLSessionRepository) Create(ctx context.Context, session *models.Session) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)",
		session.Token, session.UserID, session.ExpiresAt.UTC())
	if err != nil {
		return errors.Wrap(err, "error creating session")
	}
	return nil
}

func (r *SQLSessionRepository) Get(ctx context.Context, token string) (*models.Session, error) {
	session := &models.Session{Token: token}
	var expiresAt utils.Timestamp
	err := r.db.QueryRowContext(ctx, "SELECT user_id, expires_at FROM sessions WHERE token = ?", token).
		Scan(&session.UserID, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error getting session")
	}
	session.ExpiresAt = expiresAt.Time
	return session, nil
}

func (r *SQLSessionRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token); err != nil {
		return errors.Wrap(err, "error deleting session")
	}
	return nil
}

// RedisSessionStore keeps sessions as JSON values that expire with the session.
type RedisSessionStore struct {
	redis  *redis.Client
	prefix string
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{redis: client, prefix: "sway:sessions"}
}

func (s *RedisSessionStore) key(token string) string {
	return s.prefix + ":" + token
}

func (s *RedisSessionStore) Create(ctx context.Context, session *models.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "error encoding session")
	}
	if err := s.redis.Set(ctx, s.key(session.Token), data, ttl).Err(); err != nil {
		return errors.Wrap(err, "error storing session")
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, token string) (*models.Session, error) {
	result, err := s.redis.Get(ctx, s.key(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, errors.Wrap(err, "error getting session")
	}
	session := &models.Session{}
	if err := json.Unmarshal([]byte(result), session); err != nil {
		return nil, errors.Wrap(err, "error decoding session")
	}
	session.Token = token
	return session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.redis.Del(ctx, s.key(token)).Err(); err != nil {
		return errors.Wrap(err, "error deleting session")
	}
	return nil
}
