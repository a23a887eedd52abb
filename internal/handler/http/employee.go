package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	GetByID(w http.ResponseWriter, r *http.Request)
	ListTeam(w http.ResponseWriter, r *http.Request)
	AssignManager(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// GetByID handles GET /employees/{id}
func (h *employeeHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListTeam handles GET /employees/{id}/team
func (h *employeeHandlerImpl) ListTeam(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.ListTeam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AssignManager handles PUT /employees/{id}/manager
func (h *employeeHandlerImpl) AssignManager(w http.ResponseWriter, r *http.Request) {
	var req employee.AssignManagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "id")

	result, err := h.employeeService.AssignManager(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Manager assigned", result)
}
