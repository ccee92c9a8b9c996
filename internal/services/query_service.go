package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"sway-pr/config"
	"sway-pr/internal/models"
)

// UploadStore is the batch storage shared by the query and upload services.
type UploadStore interface {
	List(ctx context.Context) ([]*models.Upload, error)
	GetByID(ctx context.Context, id int64) (*models.Upload, error)
	Rename(ctx context.Context, id int64, name string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, int64, error)
}

type QueryService struct {
	contacts ContactStore
	uploads  UploadStore
	config   config.SearchConfig
}

func NewQueryService(contacts ContactStore, uploads UploadStore, cfg config.SearchConfig) *QueryService {
	return &QueryService{contacts: contacts, uploads: uploads, config: cfg}
}

// ListAll returns every row of a contact table or of uploads as field maps.
func (s *QueryService) ListAll(ctx context.Context, table string) ([]map[string]any, error) {
	if table == models.TableUploads {
		uploads, err := s.uploads.List(ctx)
		if err != nil {
			return nil, storageFailure(err)
		}
		rows := make([]map[string]any, len(uploads))
		for i, u := range uploads {
			rows[i] = u.ToMap()
		}
		return rows, nil
	}

	contactTable, ok := models.ParseContactTable(table)
	if !ok {
		return nil, models.NewError(models.KindInvalidTarget, "invalid table %q", table)
	}
	records, err := s.contacts.ListContacts(ctx, contactTable)
	if err != nil {
		return nil, storageFailure(err)
	}
	return recordMaps(records), nil
}

// SchemaOf returns the columns an import into table can populate.
func (s *QueryService) SchemaOf(table string) ([]string, error) {
	if _, ok := models.ParseContactTable(table); !ok {
		return nil, models.NewError(models.KindInvalidTarget, "invalid table %q", table)
	}
	columns := make([]string, len(models.ContactColumns))
	copy(columns, models.ContactColumns)
	return columns, nil
}

// DistinctValues returns sorted distinct non-empty values of field for
// journalists, media_titles or all.
func (s *QueryService) DistinctValues(ctx context.Context, table, field string, uploadID *int64) ([]string, error) {
	var tables []models.ContactTable
	if table == models.TableAll {
		tables = models.ContactTables
	} else if t, ok := models.ParseContactTable(table); ok {
		tables = []models.ContactTable{t}
	} else {
		return nil, models.NewError(models.KindInvalidTarget, "invalid table %q", table)
	}

	f, ok := models.ParseDistinctField(field)
	if !ok {
		return nil, models.NewError(models.KindInvalidTarget, "invalid field %q", field)
	}

	values, err := s.contacts.DistinctValues(ctx, tables, f, uploadID)
	if err != nil {
		return nil, storageFailure(err)
	}
	return values, nil
}

// FuzzySearch ranks the distinct values of field across both tables
// against query. An empty query returns no matches without touching storage.
func (s *QueryService) FuzzySearch(ctx context.Context, field, query string, uploadID *int64) ([]string, error) {
	if _, ok := models.ParseDistinctField(field); !ok {
		return nil, models.NewError(models.KindInvalidTarget, "invalid field %q", field)
	}
	if strings.TrimSpace(query) == "" {
		return []string{}, nil
	}

	candidates, err := s.DistinctValues(ctx, models.TableAll, field, uploadID)
	if err != nil {
		return nil, err
	}
	return RankMatches(query, candidates, s.config.FuzzyLimit, s.config.FuzzyThreshold), nil
}

// PagedSearch lists contacts with a plausible email address from both
// tables. page starts at 1; pageSize is capped at the configured maximum.
func (s *QueryService) PagedSearch(ctx context.Context, query string, page, pageSize int) (*models.ContactPage, error) {
	if page < 1 {
		return nil, models.NewError(models.KindMalformedInput, "page must be a positive integer")
	}
	if pageSize < 1 {
		return nil, models.NewError(models.KindMalformedInput, "page_size must be a positive integer")
	}
	if pageSize > s.config.MaxPageSize {
		pageSize = s.config.MaxPageSize
	}

	// A page whose offset does not fit in an int lies past any result set;
	// only the total is fetched for it.
	limit, offset := pageSize, 0
	if page-1 > math.MaxInt/pageSize {
		limit = 0
	} else {
		offset = (page - 1) * pageSize
	}

	items, total, err := s.contacts.SearchContacts(ctx, query, limit, offset)
	if err != nil {
		return nil, storageFailure(err)
	}
	if limit == 0 {
		items = []models.ContactSummary{}
	}
	return &models.ContactPage{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}

func recordMaps(records []models.TableRecord) []map[string]any {
	rows := make([]map[string]any, len(records))
	for i, r := range records {
		rows[i] = r.Contact().ToMap()
	}
	return rows
}

func storageFailure(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.WrapError(models.KindStorageFailure, err, "the contact store is unavailable")
}
