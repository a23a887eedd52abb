package report

import (
	"path"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

const (
	StatusGenerated = "generated"
	StatusSent      = "sent"
	StatusCached    = "cached"
)

// ========== REQUESTS ==========

type GenerateCSVRequest struct {
	ManagerID      string
	Year           int
	Month          int
	IncludeBonuses bool
}

func (r *GenerateCSVRequest) Validate() error {
	return validatePeriodRequest(r.ManagerID, r.Year, r.Month, "")
}

type SendCSVRequest struct {
	ManagerID      string
	Year           int
	Month          int
	IdempotencyKey string
}

func (r *SendCSVRequest) Validate() error {
	return validatePeriodRequest(r.ManagerID, r.Year, r.Month, r.IdempotencyKey)
}

type GeneratePDFsRequest struct {
	ManagerID         string
	Year              int
	Month             int
	OverwriteExisting bool
}

func (r *GeneratePDFsRequest) Validate() error {
	return validatePeriodRequest(r.ManagerID, r.Year, r.Month, "")
}

type SendPDFsRequest struct {
	ManagerID         string
	Year              int
	Month             int
	RegenerateMissing bool
	IdempotencyKey    string
}

func (r *SendPDFsRequest) Validate() error {
	return validatePeriodRequest(r.ManagerID, r.Year, r.Month, r.IdempotencyKey)
}

func validatePeriodRequest(managerID string, year, month int, idempotencyKey string) error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(managerID) {
		errs = append(errs, validator.ValidationError{Field: "managerId", Message: "must be a valid UUID"})
	}
	if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if year < 2000 || year > 9999 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 9999"})
	}
	if idempotencyKey != "" && !validator.IsValidIdempotencyKey(idempotencyKey) {
		errs = append(errs, validator.ValidationError{Field: "Idempotency-Key", Message: "must be 1-128 characters of A-Z, a-z, 0-9, '.', '_', ':' or '-'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== RESPONSES ==========

type GenerateCSVResponse struct {
	FileID   string `json:"fileId"`
	Path     string `json:"path"`
	Archived bool   `json:"archived"`
}

type SendCSVResponse struct {
	Status      string `json:"status"`
	FileID      string `json:"fileId,omitempty"`
	Archived    bool   `json:"archived"`
	ArchivePath string `json:"archivePath"`
	EmailSent   bool   `json:"emailSent"`
	Idempotent  bool   `json:"idempotent"`
}

type GeneratePDFsResponse struct {
	Generated int      `json:"generated"`
	FileIDs   []string `json:"fileIds"`
}

// ArchiveFailure records one PDF that could not be copied into the archive.
type ArchiveFailure struct {
	EmployeeID string `json:"employeeId"`
	Path       string `json:"path"`
	Error      string `json:"error"`
}

type SendPDFsResponse struct {
	Status         string           `json:"status"`
	Sent           int              `json:"sent"`
	ArchivedPDFs   int              `json:"archivedPdfs"`
	FailedArchives []ArchiveFailure `json:"failedArchives,omitempty"`
	ArchiveZipID   string           `json:"archiveZipId,omitempty"`
	ArchiveZipPath string           `json:"archiveZipPath"`
	Idempotent     bool             `json:"idempotent"`
}

type ReportFileResponse struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	Kind        FileKind  `json:"type"`
	OwnerID     string    `json:"ownerId"`
	Archived    bool      `json:"archived"`
	ContentType *string   `json:"contentType,omitempty"`
	SizeBytes   *int      `json:"sizeBytes,omitempty"`
	HasContent  bool      `json:"hasContent"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ListReportFilesResponse struct {
	Data       []ReportFileResponse `json:"data"`
	TotalCount int64                `json:"totalCount"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}

// Download is a report's bytes ready to be streamed to a client.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

func ToReportFileResponse(f ReportFile) ReportFileResponse {
	return ReportFileResponse{
		ID:          f.ID,
		Path:        f.Path,
		Kind:        f.Kind,
		OwnerID:     f.OwnerID,
		Archived:    f.Archived,
		ContentType: f.ContentType,
		SizeBytes:   f.SizeBytes,
		HasContent:  f.HasContent,
		CreatedAt:   f.CreatedAt,
	}
}

// Filename is the base name clients download the artifact as.
func (f ReportFile) Filename() string {
	return path.Base(f.Path)
}
