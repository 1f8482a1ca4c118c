package egreso

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListEgresos(ctx context.Context, filter ListFilter) ([]*hr.Egreso, error)
	GetEgreso(ctx context.Context, id string) (*hr.Egreso, error)
	CreateEgreso(ctx context.Context, dto CreateEgresoDTO) (*hr.Egreso, error)
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

// ListEgresos handles GET /egresos?employeeId=&tipo=
func (h *Handler) ListEgresos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		EmployeeID: q.Get("employeeId"),
		Type:       hr.EgresoType(q.Get("tipo")),
	}
	if filter.Type != "" && !filter.Type.Valid() {
		h.HandleError(w, internal.NewValidationFieldError("tipo", "tipo must be one of [renuncia despido jubilacion fin_contrato]", internal.ErrCodeInvalidEnum))
		return
	}

	egresos, err := h.Service.ListEgresos(r.Context(), filter)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, EgresosResponse{Egresos: egresos})
}

func (h *Handler) GetEgreso(w http.ResponseWriter, r *http.Request) {
	e, err := h.Service.GetEgreso(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) CreateEgreso(w http.ResponseWriter, r *http.Request) {
	var dto CreateEgresoDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	e, err := h.Service.CreateEgreso(r.Context(), dto)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, e)
}
