package services

import (
	"context"
	"strings"
	"sway-pr/internal/models"
	"sway-pr/internal/repositories"
	"sway-pr/internal/utils"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	Save(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type AuthService struct {
	users    UserStore
	sessions repositories.SessionStore
	duration time.Duration
	now      func() time.Time
}

func NewAuthService(users UserStore, sessions repositories.SessionStore, duration time.Duration) *AuthService {
	return &AuthService{users: users, sessions: sessions, duration: duration, now: time.Now}
}

var errInvalidCredentials = models.NewError(models.KindUnauthorized, "invalid username or password")

// CreateUser stores a new active user with a bcrypt password hash.
func (s *AuthService) CreateUser(ctx context.Context, username, email, password string, admin bool) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.NewError(models.KindMissingField, "username is required")
	}
	if len(password) < 8 {
		return nil, models.NewError(models.KindMalformedInput, "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hash),
		IsActive:     true,
		IsAdmin:      admin,
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, storageFailure(err)
	}
	return user, nil
}

// Login checks the credentials and opens a new session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Session, *models.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, nil, storageFailure(err)
	}
	if user == nil || !user.IsActive {
		return nil, nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, errInvalidCredentials
	}

	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.duration),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, storageFailure(err)
	}

	utils.LogInfo("user %s logged in", user.Username)
	return session, user, nil
}

// Authenticate resolves a session token to its active user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, models.NewError(models.KindUnauthorized, "authentication required")
	}
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, storageFailure(err)
	}
	if session == nil || session.Expired(s.now()) {
		return nil, models.NewError(models.KindUnauthorized, "session expired")
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, storageFailure(err)
	}
	if user == nil || !user.IsActive {
		return nil, models.NewError(models.KindUnauthorized, "authentication required")
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return storageFailure(err)
	}
	return nil
}
