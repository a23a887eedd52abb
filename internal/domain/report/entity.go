package report

import "time"

// FileKind enum
type FileKind string

const (
	FileKindCSV FileKind = "csv"
	FileKindPDF FileKind = "pdf"
	FileKindZip FileKind = "zip"
)

var contentTypes = map[FileKind]string{
	FileKindCSV: "text/csv",
	FileKindPDF: "application/pdf",
	FileKindZip: "application/zip",
}

// ContentTypeFor maps an artifact kind to its MIME type.
func ContentTypeFor(kind FileKind) string {
	if ct, ok := contentTypes[kind]; ok {
		return ct
	}
	return "application/octet-stream"
}

func (k FileKind) Valid() bool {
	_, ok := contentTypes[k]
	return ok
}

// ReportFile is the durable record of a generated artifact, unique by Path.
// OwnerID is the manager for csv/zip and the employee for pdf.
// Content is optional; without it the bytes live only in blob storage.
// Listings leave Content nil and only report HasContent.
type ReportFile struct {
	ID          string
	Path        string
	Kind        FileKind
	OwnerID     string
	Archived    bool
	HasContent  bool
	Content     []byte
	ContentType *string
	SizeBytes   *int
	CreatedAt   time.Time
}

// PutReportFile is the upsert-by-path input for the report store.
type PutReportFile struct {
	Path        string
	Kind        FileKind
	OwnerID     string
	Archived    bool
	Content     []byte
	ContentType string
}

// ResolvedContentType returns the explicit content type or, when content is present,
// the one implied by Kind. Empty means "leave whatever is stored".
func (p PutReportFile) ResolvedContentType() string {
	if p.ContentType != "" {
		return p.ContentType
	}
	if p.Content != nil {
		return ContentTypeFor(p.Kind)
	}
	return ""
}

type ReportFileFilter struct {
	Kind     *FileKind
	OwnerID  *string
	Archived *bool
	Page     int
	Limit    int
}
