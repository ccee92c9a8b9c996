package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sway-pr/config"
	"sway-pr/internal/models"
	"sway-pr/internal/utils"
	"sway-pr/internal/wsnotify"
	"time"

	"github.com/tidwall/gjson"
)

// ContactStore is the storage the import and query services work against.
type ContactStore interface {
	ImportBatch(ctx context.Context, req models.ImportRequest) (int64, int, error)
	ListContacts(ctx context.Context, table models.ContactTable) ([]models.TableRecord, error)
	ListByUpload(ctx context.Context, uploadID int64) ([]models.TableRecord, error)
	ListByOutlets(ctx context.Context, table models.ContactTable, outlets []string) ([]models.TableRecord, error)
	DistinctValues(ctx context.Context, tables []models.ContactTable, field models.DistinctField, uploadID *int64) ([]string, error)
	SearchContacts(ctx context.Context, query string, limit, offset int) ([]models.ContactSummary, int, error)
}

// Notifier publishes live events to connected browsers.
type Notifier interface {
	Publish(eventType string, payload interface{})
}

// ImportFile is an uploaded file. A nil *ImportFile or an empty Name means
// no file was sent.
type ImportFile struct {
	Name    string
	Content io.Reader
}

type ImportInput struct {
	File          *ImportFile
	TargetTable   string
	ColumnMapping string
	BatchName     string
}

// MappingEntry maps one file header to one destination column.
type MappingEntry struct {
	Header string
	Column string
}

type ImportService struct {
	contacts ContactStore
	archive  FileArchive
	notifier Notifier
	metrics  *Metrics
	config   config.ImportConfig
}

func NewImportService(contacts ContactStore, cfg config.ImportConfig) *ImportService {
	return &ImportService{contacts: contacts, config: cfg}
}

func (s *ImportService) WithArchive(archive FileArchive) *ImportService {
	s.archive = archive
	return s
}

func (s *ImportService) WithNotifier(notifier Notifier) *ImportService {
	s.notifier = notifier
	return s
}

func (s *ImportService) WithMetrics(metrics *Metrics) *ImportService {
	s.metrics = metrics
	return s
}

// Preview returns the trimmed header names of the file. It has no side effects.
func (s *ImportService) Preview(r io.Reader) ([]string, error) {
	return ReadHeaders(r)
}

// ParseColumnMapping parses a JSON object of header to column names,
// keeping document order.
func ParseColumnMapping(raw string) ([]MappingEntry, error) {
	if !gjson.Valid(raw) {
		return nil, models.NewError(models.KindMalformedInput, "column_mapping is not valid JSON")
	}
	parsed := gjson.Parse(raw)
	if !parsed.IsObject() {
		return nil, models.NewError(models.KindMalformedInput, "column_mapping must be a JSON object")
	}

	entries := []MappingEntry{}
	var bad string
	parsed.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			bad = key.String()
			return false
		}
		entries = append(entries, MappingEntry{
			Header: strings.TrimSpace(key.String()),
			Column: strings.TrimSpace(value.String()),
		})
		return true
	})
	if bad != "" {
		return nil, models.NewError(models.KindMalformedInput, "column_mapping value for %q must be a string", bad)
	}
	return entries, nil
}

// FilterMapping drops entries whose header is not in the file, whose
// column is empty or not mappable, and repeated columns after the first.
// The result keeps mapping order.
func FilterMapping(entries []MappingEntry, headerIndex map[string]int) []MappingEntry {
	used := make(map[string]bool, len(entries))
	kept := make([]MappingEntry, 0, len(entries))
	for _, e := range entries {
		if _, ok := headerIndex[e.Header]; !ok {
			continue
		}
		if e.Column == "" || !models.IsMappableColumn(e.Column) || used[e.Column] {
			continue
		}
		used[e.Column] = true
		kept = append(kept, e)
	}
	return kept
}

// RunImport validates the request, then inserts a new batch and one contact
// per data row in a single transaction.
func (s *ImportService) RunImport(ctx context.Context, in ImportInput) (*models.ImportResult, error) {
	table, ok := models.ParseContactTable(in.TargetTable)
	if !ok {
		return nil, models.NewError(models.KindInvalidTarget, "invalid target table %q", in.TargetTable)
	}

	batchName := strings.TrimSpace(in.BatchName)
	if batchName == "" {
		return nil, models.NewError(models.KindMissingField, "upload_name is required")
	}

	mapping, err := ParseColumnMapping(in.ColumnMapping)
	if err != nil {
		return nil, err
	}

	if in.File == nil || in.File.Name == "" || in.File.Content == nil {
		return nil, models.NewError(models.KindInvalidFileType, "a %s file is required", s.config.FileExtension)
	}
	if !strings.HasSuffix(strings.ToLower(in.File.Name), strings.ToLower(s.config.FileExtension)) {
		return nil, models.NewError(models.KindInvalidFileType, "only %s files are accepted", s.config.FileExtension)
	}

	data, err := io.ReadAll(in.File.Content)
	if err != nil {
		return nil, models.WrapError(models.KindMalformedInput, err, "the file could not be read")
	}

	file, err := ReadDelimited(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	headerIndex := file.HeaderIndex()
	mapping = FilterMapping(mapping, headerIndex)
	if len(mapping) == 0 {
		return nil, models.NewError(models.KindEmptyMapping, "none of the mapped columns match the file and table")
	}

	req := models.ImportRequest{
		Table:     table,
		BatchName: batchName,
		Columns:   make([]string, len(mapping)),
		Rows:      make([][]string, 0, len(file.Rows)),
	}
	for i, e := range mapping {
		req.Columns[i] = e.Column
	}
	for n, row := range file.Rows {
		if len(row) < len(file.Headers) {
			return nil, models.NewError(models.KindMalformedInput,
				"row %d has %d fields, expected %d", n+2, len(row), len(file.Headers))
		}
		values := make([]string, len(mapping))
		for i, e := range mapping {
			values[i] = row[headerIndex[e.Header]]
		}
		req.Rows = append(req.Rows, values)
	}

	defer utils.TimeTrack(time.Now(), fmt.Sprintf("import of %d rows into %s", len(req.Rows), table))

	uploadID, imported, err := s.contacts.ImportBatch(ctx, req)
	s.metrics.ObserveImport(table.String(), imported, err)
	if err != nil {
		return nil, models.WrapError(models.KindStorageFailure, err, "the import could not be saved")
	}

	utils.LogInfo("imported %d rows into %s as upload %d (%s)", imported, table, uploadID, batchName)

	s.archiveSource(ctx, in.File.Name, data)
	if s.notifier != nil {
		s.notifier.Publish(wsnotify.EventImportCompleted, wsnotify.ImportPayload{
			UploadID:     uploadID,
			UploadName:   batchName,
			Table:        table.String(),
			ImportedRows: imported,
		})
	}

	return &models.ImportResult{
		Message:      fmt.Sprintf("Successfully imported %d rows into %s", imported, table),
		ImportedRows: imported,
		Table:        table.String(),
		UploadID:     uploadID,
	}, nil
}

// archiveSource keeps the raw file when an archive is configured. Failures
// are logged; the import has already committed.
func (s *ImportService) archiveSource(ctx context.Context, name string, data []byte) {
	if s.archive == nil {
		return
	}
	if _, err := s.archive.Archive(ctx, "imports", name, data, "text/csv"); err != nil {
		utils.LogWarning("could not archive import file %s: %v", name, err)
	}
}
