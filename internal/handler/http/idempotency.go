package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/idempotency"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type IdempotencyHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
}

type idempotencyHandlerImpl struct {
	coordinator idempotency.Coordinator
}

func NewIdempotencyHandler(coordinator idempotency.Coordinator) IdempotencyHandler {
	return &idempotencyHandlerImpl{coordinator: coordinator}
}

// List handles GET /idempotency-keys
func (h *idempotencyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter idempotency.KeyFilter
	if raw := q.Get("status"); raw != "" {
		status := idempotency.Status(raw)
		switch status {
		case idempotency.StatusStarted, idempotency.StatusSucceeded, idempotency.StatusFailed:
			filter.Status = &status
		default:
			response.BadRequest(w, "invalid status parameter", nil)
			return
		}
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	keys, total, err := h.coordinator.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, keys, listMeta(filter.Page, filter.Limit, total))
}

// GetByID handles GET /idempotency-keys/{id}
func (h *idempotencyHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	result, err := h.coordinator.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
