package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sway-pr/internal/models"
	"sway-pr/internal/utils"

	"github.com/pkg/errors"
)

var contactSelectColumns = "id, upload_id, " + strings.Join(models.ContactColumns, ", ") + ", created_at, updated_at"

// Email shape filter shared by the paged listing and its count.
const validEmailCondition = `Email LIKE '%_@_%._%' AND Email NOT LIKE '% %'`

type SQLContactRepository struct {
	db *sql.DB
}

func NewSQLContactRepository(db *sql.DB) *SQLContactRepository {
	return &SQLContactRepository{db: db}
}

// ImportBatch inserts the batch row and every contact row in one transaction.
// Nothing is committed unless every row is inserted.
func (r *SQLContactRepository) ImportBatch(ctx context.Context, req models.ImportRequest) (int64, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, errors.Wrap(err, "error starting import transaction")
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "INSERT INTO uploads (name, created_at) VALUES (?, CURRENT_TIMESTAMP)", req.BatchName)
	if err != nil {
		return 0, 0, errors.Wrap(err, "error creating upload")
	}
	uploadID, err := result.LastInsertId()
	if err != nil {
		return 0, 0, errors.Wrap(err, "error getting upload id")
	}

	query := fmt.Sprintf("INSERT INTO %s (upload_id, %s) VALUES (?, %s)",
		req.Table, strings.Join(req.Columns, ", "), utils.Placeholders(len(req.Columns)))

	args := make([]any, len(req.Columns)+1)
	for i, row := range req.Rows {
		if len(row) != len(req.Columns) {
			return 0, 0, fmt.Errorf("row %d has %d values for %d columns", i+1, len(row), len(req.Columns))
		}
		args[0] = uploadID
		for j, v := range row {
			args[j+1] = v
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, 0, errors.Wrapf(err, "error inserting row %d into %s", i+1, req.Table)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, errors.Wrap(err, "error committing import")
	}

	return uploadID, len(req.Rows), nil
}

func (r *SQLContactRepository) ListContacts(ctx context.Context, table models.ContactTable) ([]models.TableRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", contactSelectColumns, table)
	return r.fetchContacts(ctx, table, query)
}

// ListByUpload returns the contacts of one batch from both tables, journalists first.
func (r *SQLContactRepository) ListByUpload(ctx context.Context, uploadID int64) ([]models.TableRecord, error) {
	var all []models.TableRecord
	for _, table := range models.ContactTables {
		query := fmt.Sprintf("SELECT %s FROM %s WHERE upload_id = ? ORDER BY id", contactSelectColumns, table)
		records, err := r.fetchContacts(ctx, table, query, uploadID)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

func (r *SQLContactRepository) ListByOutlets(ctx context.Context, table models.ContactTable, outlets []string) ([]models.TableRecord, error) {
	if len(outlets) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE TRIM(outletName) IN (%s) ORDER BY outletName, id",
		contactSelectColumns, table, utils.Placeholders(len(outlets)))
	args := make([]any, len(outlets))
	for i, o := range outlets {
		args[i] = o
	}
	return r.fetchContacts(ctx, table, query, args...)
}

func (r *SQLContactRepository) fetchContacts(ctx context.Context, table models.ContactTable, query string, args ...any) ([]models.TableRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "error querying %s", table)
	}
	defer rows.Close()

	var records []models.TableRecord
	for rows.Next() {
		var rec models.ContactRecord
		var uploadID sql.NullInt64
		var createdAt, updatedAt utils.Timestamp

		dest := make([]any, 0, len(models.ContactColumns)+4)
		dest = append(dest, &rec.ID, &uploadID)
		for _, f := range rec.Fields() {
			dest = append(dest, f)
		}
		dest = append(dest, &createdAt, &updatedAt)

		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrapf(err, "error scanning %s row", table)
		}
		if uploadID.Valid {
			id := uploadID.Int64
			rec.UploadID = &id
		}
		rec.CreatedAt = createdAt.Time
		rec.UpdatedAt = updatedAt.Time
		records = append(records, models.NewTableRecord(table, rec))
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "error iterating %s", table)
	}

	return records, nil
}

// DistinctValues returns the sorted, non-empty distinct values of field
// across the given tables, optionally restricted to one batch. Values are
// trimmed before they are compared.
func (r *SQLContactRepository) DistinctValues(ctx context.Context, tables []models.ContactTable, field models.DistinctField, uploadID *int64) ([]string, error) {
	parts := make([]string, 0, len(tables))
	var args []any
	for _, table := range tables {
		part := fmt.Sprintf("SELECT DISTINCT TRIM(%[1]s) AS value FROM %[2]s WHERE %[1]s IS NOT NULL AND TRIM(%[1]s) <> ''", field, table)
		if uploadID != nil {
			part += " AND upload_id = ?"
			args = append(args, *uploadID)
		}
		parts = append(parts, part)
	}
	query := strings.Join(parts, " UNION ")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "error querying distinct %s", field)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, errors.Wrapf(err, "error scanning distinct %s", field)
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "error iterating distinct %s", field)
	}

	// Collations differ between drivers; sort here for a stable order.
	sort.Strings(values)
	return values, nil
}

// SearchContacts pages over both contact tables. Rows without a plausible
// email address are excluded from both the items and the total.
func (r *SQLContactRepository) SearchContacts(ctx context.Context, query string, limit, offset int) ([]models.ContactSummary, int, error) {
	union := `
		SELECT id, 'journalists' AS kind, name, outletName, Email, JobTitle, City, Focus, upload_id, response, email_stage
		FROM journalists
		UNION ALL
		SELECT id, 'media_titles' AS kind, name, outletName, Email, JobTitle, City, Focus, upload_id, response, email_stage
		FROM media_titles`

	where := validEmailCondition
	var args []any
	if query = strings.TrimSpace(query); query != "" {
		pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
		where += ` AND (LOWER(COALESCE(name, '')) LIKE ? ESCAPE '!'
			OR LOWER(COALESCE(outletName, '')) LIKE ? ESCAPE '!'
			OR LOWER(Email) LIKE ? ESCAPE '!')`
		args = append(args, pattern, pattern, pattern)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM (%s) contacts WHERE %s", union, where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "error counting contacts")
	}

	pageQuery := fmt.Sprintf(`
		SELECT id, kind, name, outletName, Email, JobTitle, City, Focus, upload_id, response, email_stage
		FROM (%s) contacts
		WHERE %s
		ORDER BY name, kind, id
		LIMIT ? OFFSET ?`, union, where)

	rows, err := r.db.QueryContext(ctx, pageQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "error querying contacts")
	}
	defer rows.Close()

	items := []models.ContactSummary{}
	for rows.Next() {
		var item models.ContactSummary
		var name, outlet, email, jobTitle, city, focus, response, emailStage sql.NullString
		var uploadID sql.NullInt64

		err := rows.Scan(
			&item.ID,
			&item.Kind,
			&name,
			&outlet,
			&email,
			&jobTitle,
			&city,
			&focus,
			&uploadID,
			&response,
			&emailStage,
		)
		if err != nil {
			return nil, 0, errors.Wrap(err, "error scanning contact")
		}

		item.ContactName = name.String
		item.OutletName = outlet.String
		item.Email = email.String
		item.JobTitle = jobTitle.String
		item.City = city.String
		item.Focus = focus.String
		item.Response = response.String
		item.EmailStage = emailStage.String
		if uploadID.Valid {
			id := uploadID.Int64
			item.UploadID = &id
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "error iterating contacts")
	}

	return items, total, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
