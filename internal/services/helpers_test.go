package services

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"sway-pr/config"
	"sway-pr/internal/models"
	"sway-pr/internal/repositories"
	"sway-pr/internal/testkit"
)

type recordedEvent struct {
	Type    string
	Payload interface{}
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *fakeNotifier) Publish(eventType string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{Type: eventType, Payload: payload})
}

type fakeArchive struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func (a *fakeArchive) Archive(_ context.Context, folder, fileName string, data []byte, _ string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return "", a.err
	}
	if a.files == nil {
		a.files = map[string][]byte{}
	}
	a.files[folder+"/"+fileName] = data
	return "https://archive.example/" + folder + "/" + fileName, nil
}

func testImportConfig() config.ImportConfig {
	return config.ImportConfig{MaxUploadSize: 1 << 20, FileExtension: ".csv"}
}

func testSearchConfig() config.SearchConfig {
	return config.SearchConfig{FuzzyThreshold: 80, FuzzyLimit: 10, DefaultPageSize: 20, MaxPageSize: 100}
}

type fixture struct {
	db       *sql.DB
	contacts *repositories.SQLContactRepository
	uploads  *repositories.SQLUploadRepository
	notifier *fakeNotifier
	imports  *ImportService
	queries  *QueryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testkit.NewSQLiteDB(t)
	f := &fixture{
		db:       db,
		contacts: repositories.NewSQLContactRepository(db),
		uploads:  repositories.NewSQLUploadRepository(db),
		notifier: &fakeNotifier{},
	}
	f.imports = NewImportService(f.contacts, testImportConfig()).WithNotifier(f.notifier).WithMetrics(NewMetrics())
	f.queries = NewQueryService(f.contacts, f.uploads, testSearchConfig())
	return f
}

func (f *fixture) importCSV(t *testing.T, table, batch, mapping, csv string) *models.ImportResult {
	t.Helper()
	result, err := f.imports.RunImport(context.Background(), ImportInput{
		File:          &ImportFile{Name: "contacts.csv", Content: strings.NewReader(csv)},
		TargetTable:   table,
		ColumnMapping: mapping,
		BatchName:     batch,
	})
	require.NoError(t, err)
	return result
}

func (f *fixture) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
