package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sway-pr/internal/models"
	"sway-pr/internal/wsnotify"
)

const journalistCSV = "Full Name,E-mail,Publication,Ignored\n" +
	"Jane Jones,jane@daily.example,Daily Planet,x\n" +
	"Bob Brown,bob@herald.example,Herald,y\n" +
	"Cara Clark,cara@weekly.example,Weekly,z\n"

const journalistMapping = `{"Full Name":"name","E-mail":"Email","Publication":"outletName"}`

func TestRunImport_InsertsEveryRow(t *testing.T) {
	f := newFixture(t)

	result := f.importCSV(t, "journalists", "Spring list", journalistMapping, journalistCSV)
	assert.Equal(t, 3, result.ImportedRows)
	assert.Equal(t, "journalists", result.Table)
	assert.Contains(t, result.Message, "3 rows")

	assert.Equal(t, 3, f.count(t, "journalists"))
	assert.Equal(t, 1, f.count(t, "uploads"))

	rows, err := f.queries.ListAll(context.Background(), "journalists")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Jane Jones", *(rows[0]["name"].(*string)))
	assert.Equal(t, "Daily Planet", *(rows[0]["outletName"].(*string)))
	assert.Equal(t, result.UploadID, *(rows[0]["upload_id"].(*int64)))

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, wsnotify.EventImportCompleted, f.notifier.events[0].Type)
}

func TestRunImport_MappingOrderDrivesColumnsAndUnknownEntriesAreDropped(t *testing.T) {
	f := newFixture(t)

	mapping := `{"Publication":"outletName","Missing Header":"City","Ignored":"","Full Name":"name","E-mail":"id","Ignored ":"not_a_column"}`
	result := f.importCSV(t, "media_titles", "m", mapping, journalistCSV)
	assert.Equal(t, 3, result.ImportedRows)

	records, err := f.contacts.ListContacts(context.Background(), models.TableMediaTitles)
	require.NoError(t, err)
	rec := records[0].Contact()
	assert.Equal(t, "Daily Planet", *rec.OutletName)
	assert.Equal(t, "Jane Jones", *rec.Name)
	assert.Nil(t, rec.Email)
	assert.Nil(t, rec.City)
}

func TestRunImport_DuplicateDestinationFirstWins(t *testing.T) {
	f := newFixture(t)

	f.importCSV(t, "journalists", "dup", `{"Full Name":"name","Publication":"name"}`, journalistCSV)

	records, err := f.contacts.ListContacts(context.Background(), models.TableJournalists)
	require.NoError(t, err)
	assert.Equal(t, "Jane Jones", *records[0].Contact().Name)
}

func TestRunImport_EmptyMappingLeavesStoreUnchanged(t *testing.T) {
	f := newFixture(t)

	_, err := f.imports.RunImport(context.Background(), ImportInput{
		File:          &ImportFile{Name: "contacts.csv", Content: strings.NewReader(journalistCSV)},
		TargetTable:   "journalists",
		ColumnMapping: `{"Nope":"name","Full Name":"bogus"}`,
		BatchName:     "empty",
	})
	require.Error(t, err)
	assert.Equal(t, models.KindEmptyMapping, models.KindOf(err))
	assert.Equal(t, 0, f.count(t, "uploads"))
	assert.Equal(t, 0, f.count(t, "journalists"))
	assert.Empty(t, f.notifier.events)
}

func TestRunImport_ShortRowAbortsWholeImport(t *testing.T) {
	f := newFixture(t)

	csv := "name,email,outlet\nJane,jane@x.example,Daily\nBob,bob@x.example\n"
	_, err := f.imports.RunImport(context.Background(), ImportInput{
		File:          &ImportFile{Name: "contacts.CSV", Content: strings.NewReader(csv)},
		TargetTable:   "journalists",
		ColumnMapping: `{"name":"name"}`,
		BatchName:     "short",
	})
	require.Error(t, err)
	assert.Equal(t, models.KindMalformedInput, models.KindOf(err))
	assert.Contains(t, err.Error(), "row 3")
	assert.Equal(t, 0, f.count(t, "uploads"))
	assert.Equal(t, 0, f.count(t, "journalists"))
}

func TestRunImport_PreconditionsAreCheckedInOrder(t *testing.T) {
	f := newFixture(t)
	good := func() ImportInput {
		return ImportInput{
			File:          &ImportFile{Name: "contacts.csv", Content: strings.NewReader(journalistCSV)},
			TargetTable:   "journalists",
			ColumnMapping: journalistMapping,
			BatchName:     "batch",
		}
	}

	cases := []struct {
		name   string
		mutate func(*ImportInput)
		kind   models.ErrorKind
	}{
		{"everything wrong reports the table first", func(in *ImportInput) {
			in.TargetTable, in.BatchName, in.ColumnMapping, in.File = "uploads", "", "[", nil
		}, models.KindInvalidTarget},
		{"blank batch name before bad mapping", func(in *ImportInput) {
			in.BatchName, in.ColumnMapping, in.File = "   ", "not json", nil
		}, models.KindMissingField},
		{"mapping before missing file", func(in *ImportInput) {
			in.ColumnMapping, in.File = `["name"]`, nil
		}, models.KindMalformedInput},
		{"non-string mapping value", func(in *ImportInput) {
			in.ColumnMapping = `{"Full Name": 3}`
		}, models.KindMalformedInput},
		{"missing file", func(in *ImportInput) {
			in.File = nil
		}, models.KindInvalidFileType},
		{"file without name", func(in *ImportInput) {
			in.File.Name = ""
		}, models.KindInvalidFileType},
		{"wrong extension", func(in *ImportInput) {
			in.File.Name = "contacts.xlsx"
		}, models.KindInvalidFileType},
		{"empty file", func(in *ImportInput) {
			in.File.Content = strings.NewReader("")
		}, models.KindMalformedInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := good()
			tc.mutate(&in)
			_, err := f.imports.RunImport(context.Background(), in)
			require.Error(t, err)
			assert.Equal(t, tc.kind, models.KindOf(err))
		})
	}
	assert.Equal(t, 0, f.count(t, "uploads"))
}

func TestRunImport_ArchivesSourceFile(t *testing.T) {
	f := newFixture(t)
	archive := &fakeArchive{}
	f.imports.WithArchive(archive)

	f.importCSV(t, "journalists", "archived", journalistMapping, journalistCSV)
	assert.Equal(t, []byte(journalistCSV), archive.files["imports/contacts.csv"])

	archive.err = errors.New("bucket unavailable")
	result := f.importCSV(t, "journalists", "still imported", journalistMapping, journalistCSV)
	assert.Equal(t, 3, result.ImportedRows)
}

func TestRunImport_HeaderOnlyFileCreatesEmptyBatch(t *testing.T) {
	f := newFixture(t)
	result := f.importCSV(t, "journalists", "headers only", journalistMapping, "Full Name,E-mail,Publication\n")
	assert.Equal(t, 0, result.ImportedRows)
	assert.Equal(t, 1, f.count(t, "uploads"))
}

func TestPreview(t *testing.T) {
	f := newFixture(t)
	headers, err := f.imports.Preview(strings.NewReader("a,b,c\n1,2,3\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, headers)
	assert.Equal(t, 0, f.count(t, "uploads"))
}

func TestParseColumnMapping_KeepsDocumentOrder(t *testing.T) {
	entries, err := ParseColumnMapping(`{"z":"name"," y ":" Email ","a":"City"}`)
	require.NoError(t, err)
	assert.Equal(t, []MappingEntry{{"z", "name"}, {"y", "Email"}, {"a", "City"}}, entries)

	entries, err = ParseColumnMapping(`{}`)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
