package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFileRepository_PutIsUpsertByPath(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewReportFileRepository(testDB)
	owner := newID()
	path := "reports/csv/2025-06/" + owner + ".csv"

	first, err := repo.Put(ctx, report.PutReportFile{Path: path, Kind: report.FileKindCSV, OwnerID: owner, Content: []byte("a")})
	require.NoError(t, err)
	require.NotNil(t, first.ContentType)
	assert.Equal(t, "text/csv", *first.ContentType)
	require.NotNil(t, first.SizeBytes)
	assert.Equal(t, 1, *first.SizeBytes)

	second, err := repo.Put(ctx, report.PutReportFile{Path: path, Kind: report.FileKindCSV, OwnerID: owner, Content: []byte("abc")})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "abc", string(second.Content))
	assert.Equal(t, 3, *second.SizeBytes)

	// nil content keeps stored bytes
	third, err := repo.Put(ctx, report.PutReportFile{Path: path, Kind: report.FileKindCSV, OwnerID: owner})
	require.NoError(t, err)
	assert.Equal(t, "abc", string(third.Content))
	assert.True(t, third.HasContent)

	var count int
	require.NoError(t, testDB.QueryRow(ctx, `SELECT COUNT(*) FROM report_files WHERE path = $1`, path).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestReportFileRepository_MarkArchived(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewReportFileRepository(testDB)
	owner := newID()
	working := "reports/pdf/2025-06/" + owner + ".pdf"
	archive := "reports/archives/2025-06/pdfs/" + owner + ".pdf"

	f, err := repo.Put(ctx, report.PutReportFile{Path: working, Kind: report.FileKindPDF, OwnerID: owner, Content: []byte("%PDF")})
	require.NoError(t, err)

	archived, err := repo.MarkArchived(ctx, f.ID, archive)
	require.NoError(t, err)
	assert.True(t, archived.Archived)
	assert.Equal(t, archive, archived.Path)

	missing, err := repo.GetByPath(ctx, working)
	require.NoError(t, err)
	assert.Nil(t, missing)

	// a second archival of a regenerated working file replaces the stale archive record
	again, err := repo.Put(ctx, report.PutReportFile{Path: working, Kind: report.FileKindPDF, OwnerID: owner, Content: []byte("%PDF-2")})
	require.NoError(t, err)
	rearchived, err := repo.MarkArchived(ctx, again.ID, archive)
	require.NoError(t, err)
	assert.Equal(t, again.ID, rearchived.ID)

	_, err = repo.GetByID(ctx, f.ID)
	assert.ErrorIs(t, err, report.ErrReportFileNotFound)

	_, err = repo.MarkArchived(ctx, newID(), "reports/archives/x.pdf")
	assert.ErrorIs(t, err, report.ErrReportFileNotFound)
}

func TestReportFileRepository_List(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewReportFileRepository(testDB)
	owner := newID()

	_, err := repo.Put(ctx, report.PutReportFile{Path: "reports/csv/2025-06/" + owner + ".csv", Kind: report.FileKindCSV, OwnerID: owner, Content: []byte("a")})
	require.NoError(t, err)
	_, err = repo.Put(ctx, report.PutReportFile{Path: "reports/archives/2025-06/" + owner + "_pdfs.zip", Kind: report.FileKindZip, OwnerID: owner, Archived: true})
	require.NoError(t, err)

	archived := true
	files, total, err := repo.List(ctx, report.ReportFileFilter{OwnerID: &owner, Archived: &archived})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, files, 1)
	assert.Equal(t, report.FileKindZip, files[0].Kind)
	assert.False(t, files[0].HasContent)

	kind := report.FileKindCSV
	files, _, err = repo.List(ctx, report.ReportFileFilter{Kind: &kind})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, files[0].HasContent)
	assert.Nil(t, files[0].Content)
}

func TestReportFileRepository_PutRejectsUnknownKind(t *testing.T) {
	setupTestData(t)
	_, err := postgresql.NewReportFileRepository(testDB).Put(context.Background(),
		report.PutReportFile{Path: "reports/x.xlsx", Kind: "xlsx", OwnerID: newID()})
	assert.Error(t, err)
}
