package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

const idempotencyKeyHeader = "Idempotency-Key"

type ReportHandler interface {
	// Generation
	GenerateManagerCSV(w http.ResponseWriter, r *http.Request)
	SendManagerCSV(w http.ResponseWriter, r *http.Request)
	GenerateEmployeePDFs(w http.ResponseWriter, r *http.Request)
	SendEmployeePDFs(w http.ResponseWriter, r *http.Request)

	// Report files
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	deliveryService report.DeliveryService
}

func NewReportHandler(deliveryService report.DeliveryService) ReportHandler {
	return &reportHandlerImpl{
		deliveryService: deliveryService,
	}
}

// periodParams reads the required year and month query parameters.
func periodParams(w http.ResponseWriter, r *http.Request) (year, month int, ok bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return 0, 0, false
	}

	month, err = strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "invalid month parameter", nil)
		return 0, 0, false
	}

	return year, month, true
}

// boolParam reads an optional boolean query parameter, def when absent.
func boolParam(w http.ResponseWriter, r *http.Request, name string, def bool) (bool, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		response.BadRequest(w, fmt.Sprintf("invalid %s parameter", name), nil)
		return false, false
	}
	return v, true
}

// ========== GENERATION ==========

// GenerateManagerCSV handles POST /reports-generation/managers/{managerID}/csv
func (h *reportHandlerImpl) GenerateManagerCSV(w http.ResponseWriter, r *http.Request) {
	year, month, ok := periodParams(w, r)
	if !ok {
		return
	}
	includeBonuses, ok := boolParam(w, r, "includeBonuses", true)
	if !ok {
		return
	}

	result, err := h.deliveryService.GenerateManagerCSV(r.Context(), report.GenerateCSVRequest{
		ManagerID:      chi.URLParam(r, "managerID"),
		Year:           year,
		Month:          month,
		IncludeBonuses: includeBonuses,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manager CSV generated", result)
}

// SendManagerCSV handles POST /reports-generation/managers/{managerID}/csv/send
func (h *reportHandlerImpl) SendManagerCSV(w http.ResponseWriter, r *http.Request) {
	year, month, ok := periodParams(w, r)
	if !ok {
		return
	}

	result, err := h.deliveryService.SendManagerCSV(r.Context(), report.SendCSVRequest{
		ManagerID:      chi.URLParam(r, "managerID"),
		Year:           year,
		Month:          month,
		IdempotencyKey: r.Header.Get(idempotencyKeyHeader),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GenerateEmployeePDFs handles POST /reports-generation/managers/{managerID}/pdfs
func (h *reportHandlerImpl) GenerateEmployeePDFs(w http.ResponseWriter, r *http.Request) {
	year, month, ok := periodParams(w, r)
	if !ok {
		return
	}
	overwrite, ok := boolParam(w, r, "overwriteExisting", false)
	if !ok {
		return
	}

	result, err := h.deliveryService.GenerateEmployeePDFs(r.Context(), report.GeneratePDFsRequest{
		ManagerID:         chi.URLParam(r, "managerID"),
		Year:              year,
		Month:             month,
		OverwriteExisting: overwrite,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee PDFs generated", result)
}

// SendEmployeePDFs handles POST /reports-generation/managers/{managerID}/pdfs/send
func (h *reportHandlerImpl) SendEmployeePDFs(w http.ResponseWriter, r *http.Request) {
	year, month, ok := periodParams(w, r)
	if !ok {
		return
	}
	regenerate, ok := boolParam(w, r, "regenerateMissing", false)
	if !ok {
		return
	}

	result, err := h.deliveryService.SendEmployeePDFs(r.Context(), report.SendPDFsRequest{
		ManagerID:         chi.URLParam(r, "managerID"),
		Year:              year,
		Month:             month,
		RegenerateMissing: regenerate,
		IdempotencyKey:    r.Header.Get(idempotencyKeyHeader),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== REPORT FILES ==========

// List handles GET /reports
func (h *reportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter report.ReportFileFilter
	if kind := q.Get("type"); kind != "" {
		k := report.FileKind(kind)
		if !k.Valid() {
			response.BadRequest(w, "invalid type parameter", nil)
			return
		}
		filter.Kind = &k
	}
	if owner := q.Get("ownerId"); owner != "" {
		filter.OwnerID = &owner
	}
	if raw := q.Get("archived"); raw != "" {
		archived, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(w, "invalid archived parameter", nil)
			return
		}
		filter.Archived = &archived
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	result, err := h.deliveryService.ListReports(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, listMeta(result.Page, result.Limit, result.TotalCount))
}

// GetByID handles GET /reports/{id}
func (h *reportHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	result, err := h.deliveryService.GetReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Download handles GET /reports/{id}/download
func (h *reportHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	result, err := h.deliveryService.DownloadReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, result.Filename, result.ContentType, result.Data)
}

func listMeta(page, limit int, total int64) *response.Meta {
	meta := &response.Meta{Page: page, Limit: limit, TotalItems: total}
	if limit > 0 {
		meta.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return meta
}
