package report

import "context"

// ReportFileRepository is the report store. Put is an upsert keyed by Path.
type ReportFileRepository interface {
	Put(ctx context.Context, file PutReportFile) (ReportFile, error)
	// MarkArchived flips archived and repoints the record at the archive copy.
	MarkArchived(ctx context.Context, id string, newPath string) (ReportFile, error)
	GetByPath(ctx context.Context, path string) (*ReportFile, error)
	GetByID(ctx context.Context, id string) (ReportFile, error)
	List(ctx context.Context, filter ReportFileFilter) ([]ReportFile, int64, error)
}
