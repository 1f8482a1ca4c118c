package employee

import (
	"bytes"
	"context"
	"net/http"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListEmployees(ctx context.Context, filter ListFilter) ([]*hr.EmployeeWithRelations, error)
	GetEmployee(ctx context.Context, id string) (*hr.EmployeeWithRelations, error)
	CreateEmployee(ctx context.Context, dto CreateEmployeeDTO) (*hr.Employee, error)
	UpdateEmployee(ctx context.Context, id string, dto UpdateEmployeeDTO) (*hr.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
	ListContracts(ctx context.Context, employeeID string) ([]*hr.Contract, error)
	ListProbationPeriods(ctx context.Context, employeeID string) ([]*hr.ProbationPeriod, error)
	ListEgresos(ctx context.Context, employeeID string) ([]*hr.Egreso, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

func filterFromQuery(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	f := ListFilter{
		Status:       hr.EmployeeStatus(q.Get("estatus")),
		CargoID:      q.Get("cargoId"),
		SupervisorID: q.Get("supervisorId"),
	}
	if f.Status != "" && !f.Status.Valid() {
		return f, internal.NewValidationFieldError("estatus", "estatus must be one of [activo inactivo periodo_prueba]", internal.ErrCodeInvalidEnum)
	}
	return f, nil
}

// ListEmployees handles GET /employees?estatus=&cargoId=&supervisorId=
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	employees, err := h.Service.ListEmployees(r.Context(), filter)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, EmployeesResponse{Employees: employees})
}

// ExportEmployees handles GET /employees/export and takes the same filters
// as the listing.
func (h *Handler) ExportEmployees(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	employees, err := h.Service.ListEmployees(r.Context(), filter)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, employees); err != nil {
		h.HandleError(w, internal.NewInternalError("failed to build workbook", err))
		return
	}

	w.Header().Set("Content-Type", XLSXContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="empleados.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Error("failed to write workbook", "error", err)
	}
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := h.Service.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	e, err := h.Service.CreateEmployee(r.Context(), dto)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto UpdateEmployeeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	e, err := h.Service.UpdateEmployee(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListContracts handles GET /employees/{id}/contracts
func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.Service.ListContracts(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ContractsResponse{Contracts: contracts})
}

// ListProbationPeriods handles GET /employees/{id}/probation-periods
func (h *Handler) ListProbationPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.Service.ListProbationPeriods(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ProbationPeriodsResponse{ProbationPeriods: periods})
}

// ListEgresos handles GET /employees/{id}/egresos
func (h *Handler) ListEgresos(w http.ResponseWriter, r *http.Request) {
	egresos, err := h.Service.ListEgresos(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, EgresosResponse{Egresos: egresos})
}
