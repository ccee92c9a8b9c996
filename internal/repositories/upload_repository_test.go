package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sway-pr/internal/models"
	"sway-pr/internal/testkit"
)

func TestUploadRepository_ListRenameDelete(t *testing.T) {
	db := testkit.NewSQLiteDB(t)
	repo := NewSQLUploadRepository(db)
	ctx := context.Background()

	keep := importRows(t, db, models.TableJournalists, "keep", []string{"name"}, []string{"a"})
	drop := importRows(t, db, models.TableJournalists, "drop", []string{"name"}, []string{"b"}, []string{"c"})
	_, err := db.Exec("INSERT INTO media_titles (upload_id, name) VALUES (?, 'd')", drop)
	require.NoError(t, err)

	uploads, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, uploads, 2)
	counts := map[int64]int{}
	for _, u := range uploads {
		counts[u.ID] = u.RecordCount
	}
	assert.Equal(t, map[int64]int{keep: 1, drop: 3}, counts)

	ok, err := repo.Rename(ctx, keep, "renamed")
	require.NoError(t, err)
	assert.True(t, ok)
	upload, err := repo.GetByID(ctx, keep)
	require.NoError(t, err)
	assert.Equal(t, "renamed", upload.Name)

	ok, err = repo.Rename(ctx, 999, "ghost")
	require.NoError(t, err)
	assert.False(t, ok)

	found, removed, err := repo.Delete(ctx, drop)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(3), removed)
	assert.Equal(t, 1, countRows(t, db, "journalists"))
	assert.Equal(t, 0, countRows(t, db, "media_titles"))

	found, _, err = repo.Delete(ctx, drop)
	require.NoError(t, err)
	assert.False(t, found)

	missing, err := repo.GetByID(ctx, drop)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUploadRepository_DeleteRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM journalists").WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM media_titles").WithArgs(int64(4)).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, _, err = NewSQLUploadRepository(db).Delete(context.Background(), 4)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
