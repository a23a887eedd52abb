package report

import "errors"

var (
	ErrReportFileNotFound = errors.New("report file not found")
	ErrReportFileConflict = errors.New("report file violates unique constraint")
	ErrReportContentGone  = errors.New("report content not available")
	ErrRenderFailed       = errors.New("failed to render report artifact")
	ErrArchiveFailed      = errors.New("failed to archive report")
	ErrStoreFailed        = errors.New("failed to store report artifact")
)
