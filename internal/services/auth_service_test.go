package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sway-pr/internal/models"
	"sway-pr/internal/repositories"
	"sway-pr/internal/testkit"
)

func TestAuthService(t *testing.T) {
	db := testkit.NewSQLiteDB(t)
	svc := NewAuthService(repositories.NewSQLUserRepository(db), repositories.NewSQLSessionRepository(db), time.Hour)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "press", "press@sway.example", "correct horse", false)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	_, err = svc.CreateUser(ctx, "press", "", "another password", false)
	assert.Equal(t, models.KindDuplicateKey, models.KindOf(err))
	_, err = svc.CreateUser(ctx, "short", "", "1234", false)
	assert.Equal(t, models.KindMalformedInput, models.KindOf(err))

	_, _, err = svc.Login(ctx, "press", "wrong password")
	assert.Equal(t, models.KindUnauthorized, models.KindOf(err))
	_, _, err = svc.Login(ctx, "nobody", "correct horse")
	assert.Equal(t, models.KindUnauthorized, models.KindOf(err))

	session, loggedIn, err := svc.Login(ctx, " press ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, session.Token)

	current, err := svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "press", current.Username)

	_, err = svc.Authenticate(ctx, "")
	assert.Equal(t, models.KindUnauthorized, models.KindOf(err))
	_, err = svc.Authenticate(ctx, "forged")
	assert.Equal(t, models.KindUnauthorized, models.KindOf(err))

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.Authenticate(ctx, session.Token)
	assert.Equal(t, models.KindUnauthorized, models.KindOf(err))
	svc.now = time.Now

	require.NoError(t, svc.Logout(ctx, session.Token))
	_, err = svc.Authenticate(ctx, session.Token)
	assert.Equal(t, models.KindUnauthorized, models.KindOf(err))
}
