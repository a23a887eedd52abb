package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/idempotency"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/period"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Employee / period errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrManagerNotFound):
		NotFound(w, "Manager not found")
	case errors.Is(err, employee.ErrSelfManager):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, period.ErrMonthInfoNotFound):
		BadRequest(w, "Month info not found for the requested period", nil)
	case errors.Is(err, period.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)

	// Report errors
	case errors.Is(err, report.ErrReportFileNotFound):
		NotFound(w, "Report file not found")
	case errors.Is(err, report.ErrReportContentGone):
		NotFound(w, "Report content not available")
	case errors.Is(err, report.ErrReportFileConflict):
		BadRequest(w, "Report file already exists at this path", nil)
	case errors.Is(err, report.ErrArchiveFailed):
		InternalServerError(w, "Failed to archive report")
	case errors.Is(err, report.ErrRenderFailed):
		InternalServerError(w, "Failed to render report")

	// Idempotency errors
	case errors.Is(err, idempotency.ErrKeyNotFound):
		NotFound(w, "Idempotency key not found")
	case errors.Is(err, idempotency.ErrInProgress):
		Conflict(w, "Operation with this Idempotency-Key is already in progress")
	case errors.Is(err, idempotency.ErrEndpointMismatch):
		ValidationError(w, map[string]string{"Idempotency-Key": "already used for a different operation"})

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
