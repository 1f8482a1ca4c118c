package probation

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListProbationPeriods(ctx context.Context, filter ListFilter) ([]*hr.ProbationPeriodWithRelations, error)
	GetProbationPeriod(ctx context.Context, id string) (*hr.ProbationPeriodWithRelations, error)
	GetExpiring(ctx context.Context) ([]*hr.ProbationPeriodWithRelations, error)
	CreateProbationPeriod(ctx context.Context, dto CreateProbationPeriodDTO) (*hr.ProbationPeriod, error)
	UpdateProbationPeriod(ctx context.Context, id string, dto UpdateProbationPeriodDTO) (*hr.ProbationPeriod, error)
	Evaluate(ctx context.Context, id string, dto EvaluateProbationDTO) (*hr.ProbationPeriod, error)
	DeleteProbationPeriod(ctx context.Context, id string) error
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

// ListProbationPeriods handles GET /probation-periods?estatus=&employeeId=
func (h *Handler) ListProbationPeriods(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		Status:     hr.ProbationStatus(q.Get("estatus")),
		EmployeeID: q.Get("employeeId"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		h.HandleError(w, internal.NewValidationFieldError("estatus", "estatus must be one of [activo completado extendido terminado]", internal.ErrCodeInvalidEnum))
		return
	}

	periods, err := h.Service.ListProbationPeriods(r.Context(), filter)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ProbationPeriodsResponse{ProbationPeriods: periods})
}

// GetExpiring handles GET /probation-periods/expiring
func (h *Handler) GetExpiring(w http.ResponseWriter, r *http.Request) {
	periods, err := h.Service.GetExpiring(r.Context())
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ProbationPeriodsResponse{ProbationPeriods: periods})
}

func (h *Handler) GetProbationPeriod(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.GetProbationPeriod(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateProbationPeriod(w http.ResponseWriter, r *http.Request) {
	var dto CreateProbationPeriodDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	p, err := h.Service.CreateProbationPeriod(r.Context(), dto)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdateProbationPeriod(w http.ResponseWriter, r *http.Request) {
	var dto UpdateProbationPeriodDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	p, err := h.Service.UpdateProbationPeriod(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

// Evaluate handles POST /probation-periods/{id}/evaluate
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var dto EvaluateProbationDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	p, err := h.Service.Evaluate(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProbationPeriod(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteProbationPeriod(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
