package repositories

import (
	"context"
	"database/sql"
	"sway-pr/internal/models"
	"sway-pr/internal/utils"

	"github.com/pkg/errors"
)

type SQLCoverageRepository struct {
	db *sql.DB
}

func NewSQLCoverageRepository(db *sql.DB) *SQLCoverageRepository {
	return &SQLCoverageRepository{db: db}
}

func (r *SQLCoverageRepository) Save(ctx context.Context, report *models.CoverageReport) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO published_reports (link, article, date_of_publish, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
		report.Link,
		utils.NullString(report.Article),
		utils.NullString(report.DateOfPublish),
	)
	if err != nil {
		return errors.Wrap(err, "error saving coverage report")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "error getting last insert id")
	}

	report.ID = id
	return nil
}

const coverageColumns = "id, link, article, date_of_publish, created_at"

func (r *SQLCoverageRepository) List(ctx context.Context) ([]*models.CoverageReport, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+coverageColumns+" FROM published_reports ORDER BY date_of_publish DESC, id DESC")
	if err != nil {
		return nil, errors.Wrap(err, "error querying coverage reports")
	}
	defer rows.Close()

	reports := []*models.CoverageReport{}
	for rows.Next() {
		report, err := scanCoverage(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating coverage reports")
	}

	return reports, nil
}

func (r *SQLCoverageRepository) GetByID(ctx context.Context, id int64) (*models.CoverageReport, error) {
	report, err := scanCoverage(r.db.QueryRowContext(ctx, "SELECT "+coverageColumns+" FROM published_reports WHERE id = ?", id))
	if errors.Cause(err) == sql.ErrNoRows {
		return nil, nil
	}
	return report, err
}

func (r *SQLCoverageRepository) Update(ctx context.Context, report *models.CoverageReport) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE published_reports SET link = ?, article = ?, date_of_publish = ? WHERE id = ?",
		report.Link,
		utils.NullString(report.Article),
		utils.NullString(report.DateOfPublish),
		report.ID,
	)
	if err != nil {
		return false, errors.Wrapf(err, "error updating coverage report %d", report.ID)
	}
	return rowsChanged(result)
}

func (r *SQLCoverageRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM published_reports WHERE id = ?", id)
	if err != nil {
		return false, errors.Wrapf(err, "error deleting coverage report %d", id)
	}
	return rowsChanged(result)
}

func scanCoverage(row rowScanner) (*models.CoverageReport, error) {
	report := &models.CoverageReport{}
	var article, published sql.NullString
	var createdAt utils.Timestamp

	err := row.Scan(&report.ID, &report.Link, &article, &published, &createdAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, errors.Wrap(err, "error scanning coverage report")
	}

	report.Article = article.String
	report.DateOfPublish = published.String
	report.CreatedAt = createdAt.Time
	return report, nil
}
