package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sway-pr/internal/models"
	"sway-pr/internal/testkit"
)

func importRows(t *testing.T, db *sql.DB, table models.ContactTable, batch string, columns []string, rows ...[]string) int64 {
	t.Helper()
	id, n, err := NewSQLContactRepository(db).ImportBatch(context.Background(), models.ImportRequest{
		Table:     table,
		BatchName: batch,
		Columns:   columns,
		Rows:      rows,
	})
	require.NoError(t, err)
	require.Equal(t, len(rows), n)
	return id
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestImportBatch_InsertsBatchAndRows(t *testing.T) {
	db := testkit.NewSQLiteDB(t)
	repo := NewSQLContactRepository(db)

	uploadID := importRows(t, db, models.TableJournalists, "Spring list",
		[]string{"name", "Email", "outletName"},
		[]string{"Jane Jones", "jane@daily.example", "Daily Planet"},
		[]string{"Sam Smith", "sam@herald.example", "Herald"},
	)

	records, err := repo.ListContacts(context.Background(), models.TableJournalists)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0].Contact()
	assert.Equal(t, "Jane Jones", *first.Name)
	assert.Equal(t, "Daily Planet", *first.OutletName)
	require.NotNil(t, first.UploadID)
	assert.Equal(t, uploadID, *first.UploadID)
	assert.Equal(t, "No", *first.Response)
	assert.Equal(t, "1", *first.EmailStage)
	assert.Nil(t, first.City)
	assert.Equal(t, models.TableJournalists, records[0].Table())
	assert.Equal(t, 1, countRows(t, db, "uploads"))
}

func TestImportBatch_FailureLeavesNothingBehind(t *testing.T) {
	db := testkit.NewSQLiteDB(t)
	repo := NewSQLContactRepository(db)

	_, _, err := repo.ImportBatch(context.Background(), models.ImportRequest{
		Table:     models.TableMediaTitles,
		BatchName: "broken",
		Columns:   []string{"name", "NoSuchColumn"},
		Rows:      [][]string{{"a", "b"}},
	})
	require.Error(t, err)

	assert.Equal(t, 0, countRows(t, db, "uploads"))
	assert.Equal(t, 0, countRows(t, db, "media_titles"))
}

func TestImportBatch_RollsBackOnRowError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO uploads").
		WithArgs("Batch").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("INSERT INTO journalists \\(upload_id, name\\)").
		WithArgs(int64(9), "first").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO journalists \\(upload_id, name\\)").
		WithArgs(int64(9), "second").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, _, err = NewSQLContactRepository(db).ImportBatch(context.Background(), models.ImportRequest{
		Table:     models.TableJournalists,
		BatchName: "Batch",
		Columns:   []string{"name"},
		Rows:      [][]string{{"first"}, {"second"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportBatch_RejectsRaggedRowsBeforeInserting(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO uploads").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	_, _, err = NewSQLContactRepository(db).ImportBatch(context.Background(), models.ImportRequest{
		Table:     models.TableJournalists,
		BatchName: "Batch",
		Columns:   []string{"name", "Email"},
		Rows:      [][]string{{"only-one"}},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDistinctValues(t *testing.T) {
	db := testkit.NewSQLiteDB(t)
	repo := NewSQLContactRepository(db)
	ctx := context.Background()

	first := importRows(t, db, models.TableJournalists, "j", []string{"outletName", "City"},
		[]string{"Zeta Times", "London"},
		[]string{"Alpha News", "Paris"},
		[]string{"Alpha News", ""},
		[]string{"", "London"},
	)
	importRows(t, db, models.TableMediaTitles, "m", []string{"outletName", "City"},
		[]string{"Alpha News", "Berlin"},
		[]string{"Mid Weekly", "  "},
	)

	outlets, err := repo.DistinctValues(ctx, models.ContactTables, models.FieldOutletName, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha News", "Mid Weekly", "Zeta Times"}, outlets)

	cities, err := repo.DistinctValues(ctx, models.ContactTables, models.FieldCity, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Berlin", "London", "Paris"}, cities)

	scoped, err := repo.DistinctValues(ctx, []models.ContactTable{models.TableJournalists}, models.FieldCity, &first)
	require.NoError(t, err)
	assert.Equal(t, []string{"London", "Paris"}, scoped)

	none, err := repo.DistinctValues(ctx, []models.ContactTable{models.TableMediaTitles}, models.FieldCity, &first)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDistinctValues_TrimsBeforeComparing(t *testing.T) {
	db := testkit.NewSQLiteDB(t)
	repo := NewSQLContactRepository(db)

	importRows(t, db, models.TableJournalists, "j", []string{"City"},
		[]string{"London"},
		[]string{" London"},
		[]string{"Paris  "},
	)
	importRows(t, db, models.TableMediaTitles, "m", []string{"City"},
		[]string{"  London  "},
		[]string{"Berlin"},
	)

	cities, err := repo.DistinctValues(context.Background(), models.ContactTables, models.FieldCity, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Berlin", "London", "Paris"}, cities)
}

func TestSearchContacts(t *testing.T) {
	db := testkit.NewSQLiteDB(t)
	repo := NewSQLContactRepository(db)
	ctx := context.Background()

	importRows(t, db, models.TableJournalists, "j", []string{"name", "Email", "outletName"},
		[]string{"Jane Jones", "jane@daily.example", "Daily Planet"},
		[]string{"Bob Brown", "bob@herald.example", "Herald"},
		[]string{"No Email", "", "Herald"},
		[]string{"Bad Email", "not-an-email", "Herald"},
		[]string{"Spaced", "spaced out@x.example", "Herald"},
	)
	importRows(t, db, models.TableMediaTitles, "m", []string{"name", "Email", "outletName"},
		[]string{"Cara Clark", "cara@weekly.example", "Weekly"},
		[]string{"Dan Diaz", "dan@100%.example", "Percent Post"},
	)

	items, total, err := repo.SearchContacts(ctx, "", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, items, 2)
	assert.Equal(t, "Bob Brown", items[0].ContactName)
	assert.Equal(t, "Cara Clark", items[1].ContactName)
	assert.Equal(t, "media_titles", items[1].Kind)

	items, total, err = repo.SearchContacts(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, items, 2)
	assert.Equal(t, "Jane Jones", items[1].ContactName)

	items, total, err = repo.SearchContacts(ctx, "", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Empty(t, items)

	items, total, err = repo.SearchContacts(ctx, "JONES", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "jane@daily.example", items[0].Email)

	_, total, err = repo.SearchContacts(ctx, "herald", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	// % is matched literally.
	items, _, err = repo.SearchContacts(ctx, "100%", 20, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Dan Diaz", items[0].ContactName)
}

func TestListByOutletsAndUpload(t *testing.T) {
	db := testkit.NewSQLiteDB(t)
	repo := NewSQLContactRepository(db)
	ctx := context.Background()

	jID := importRows(t, db, models.TableJournalists, "j", []string{"name", "outletName"},
		[]string{"A", "Daily"},
		[]string{"B", "Weekly"},
		[]string{"C", "Daily"},
	)
	mID := importRows(t, db, models.TableMediaTitles, "m", []string{"name", "outletName"},
		[]string{"D", "Daily"},
	)

	records, err := repo.ListByOutlets(ctx, models.TableJournalists, []string{"Daily"})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = repo.ListByOutlets(ctx, models.TableJournalists, nil)
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = repo.ListByUpload(ctx, jID)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	records, err = repo.ListByUpload(ctx, mID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.TableMediaTitles, records[0].Table())
}
