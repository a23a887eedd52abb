package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type reportFileRepositoryImpl struct {
	db *database.DB
}

func NewReportFileRepository(db *database.DB) report.ReportFileRepository {
	return &reportFileRepositoryImpl{db: db}
}

const reportFileColumns = `id, path, kind, owner_id, archived, content IS NOT NULL, content, content_type, size_bytes, created_at`

// Listings skip the bytes.
const reportFileListColumns = `id, path, kind, owner_id, archived, content IS NOT NULL, NULL::bytea, content_type, size_bytes, created_at`

func scanReportFile(row pgx.Row) (report.ReportFile, error) {
	var f report.ReportFile
	err := row.Scan(
		&f.ID, &f.Path, &f.Kind, &f.OwnerID, &f.Archived, &f.HasContent,
		&f.Content, &f.ContentType, &f.SizeBytes, &f.CreatedAt,
	)
	return f, err
}

// Put implements report.ReportFileRepository.
func (r *reportFileRepositoryImpl) Put(ctx context.Context, file report.PutReportFile) (report.ReportFile, error) {
	if !file.Kind.Valid() {
		return report.ReportFile{}, fmt.Errorf("invalid report kind %q", file.Kind)
	}

	q := GetQuerier(ctx, r.db)

	var contentType *string
	if ct := file.ResolvedContentType(); ct != "" {
		contentType = &ct
	}
	var size *int
	if file.Content != nil {
		n := len(file.Content)
		size = &n
	}

	query := `
		INSERT INTO report_files (id, path, kind, owner_id, archived, content, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (path) DO UPDATE SET
			kind = EXCLUDED.kind,
			owner_id = EXCLUDED.owner_id,
			archived = EXCLUDED.archived,
			content = COALESCE(EXCLUDED.content, report_files.content),
			content_type = COALESCE(EXCLUDED.content_type, report_files.content_type),
			size_bytes = COALESCE(EXCLUDED.size_bytes, report_files.size_bytes)
		RETURNING ` + reportFileColumns

	f, err := scanReportFile(q.QueryRow(ctx, query,
		uuid.Must(uuid.NewV7()).String(),
		file.Path,
		file.Kind,
		file.OwnerID,
		file.Archived,
		file.Content,
		contentType,
		size,
	))
	if err != nil {
		if _, ok := constraintViolation(err, pgUniqueViolation); ok {
			return report.ReportFile{}, report.ErrReportFileConflict
		}
		return report.ReportFile{}, fmt.Errorf("failed to put report file %s: %w", file.Path, err)
	}
	return f, nil
}

// MarkArchived implements report.ReportFileRepository.
// An older record already sitting at newPath is an earlier archival of the same
// artifact; it is replaced so the path stays unique.
func (r *reportFileRepositoryImpl) MarkArchived(ctx context.Context, id string, newPath string) (report.ReportFile, error) {
	var archived report.ReportFile

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)
		if _, err := q.Exec(ctx, `DELETE FROM report_files WHERE path = $1 AND id <> $2`, newPath, id); err != nil {
			return fmt.Errorf("failed to clear archive path %s: %w", newPath, err)
		}

		query := `
			UPDATE report_files
			SET archived = TRUE, path = $1
			WHERE id = $2
			RETURNING ` + reportFileColumns

		f, err := scanReportFile(q.QueryRow(ctx, query, newPath, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return report.ErrReportFileNotFound
			}
			if _, ok := constraintViolation(err, pgUniqueViolation); ok {
				return report.ErrReportFileConflict
			}
			return fmt.Errorf("failed to mark report file %s archived: %w", id, err)
		}
		archived = f
		return nil
	})
	if err != nil {
		return report.ReportFile{}, err
	}
	return archived, nil
}

// GetByPath implements report.ReportFileRepository.
func (r *reportFileRepositoryImpl) GetByPath(ctx context.Context, path string) (*report.ReportFile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + reportFileColumns + ` FROM report_files WHERE path = $1`

	f, err := scanReportFile(q.QueryRow(ctx, query, path))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report file by path %s: %w", path, err)
	}
	return &f, nil
}

// GetByID implements report.ReportFileRepository.
func (r *reportFileRepositoryImpl) GetByID(ctx context.Context, id string) (report.ReportFile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + reportFileColumns + ` FROM report_files WHERE id = $1`

	f, err := scanReportFile(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.ReportFile{}, report.ErrReportFileNotFound
		}
		return report.ReportFile{}, fmt.Errorf("failed to get report file %s: %w", id, err)
	}
	return f, nil
}

// List implements report.ReportFileRepository.
func (r *reportFileRepositoryImpl) List(ctx context.Context, filter report.ReportFileFilter) ([]report.ReportFile, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Kind != nil {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argIdx))
		args = append(args, *filter.Kind)
		argIdx++
	}
	if filter.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argIdx))
		args = append(args, *filter.OwnerID)
		argIdx++
	}
	if filter.Archived != nil {
		conditions = append(conditions, fmt.Sprintf("archived = $%d", argIdx))
		args = append(args, *filter.Archived)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM report_files `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count report files: %w", err)
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	query := fmt.Sprintf(`SELECT %s FROM report_files %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		reportFileListColumns, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list report files: %w", err)
	}
	defer rows.Close()

	var files []report.ReportFile
	for rows.Next() {
		f, err := scanReportFile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan report file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate report files: %w", err)
	}
	return files, total, nil
}
