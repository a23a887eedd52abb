package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	GetTeamSummary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	aggregationService payroll.AggregationService
}

func NewPayrollHandler(aggregationService payroll.AggregationService) PayrollHandler {
	return &payrollHandlerImpl{aggregationService: aggregationService}
}

// GetTeamSummary handles GET /reports-generation/managers/{managerID}/summary
func (h *payrollHandlerImpl) GetTeamSummary(w http.ResponseWriter, r *http.Request) {
	year, month, ok := periodParams(w, r)
	if !ok {
		return
	}
	includeBonuses, ok := boolParam(w, r, "includeBonuses", true)
	if !ok {
		return
	}

	result, err := h.aggregationService.TeamSummary(r.Context(), payroll.SummaryRequest{
		ManagerID:      chi.URLParam(r, "managerID"),
		Year:           year,
		Month:          month,
		IncludeBonuses: includeBonuses,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
