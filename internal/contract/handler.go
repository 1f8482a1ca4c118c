package contract

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListContracts(ctx context.Context, filter ListFilter) ([]*hr.Contract, error)
	GetContract(ctx context.Context, id string) (*hr.Contract, error)
	GetExpiring(ctx context.Context) ([]*hr.ContractWithEmployee, error)
	CreateContract(ctx context.Context, dto CreateContractDTO) (*hr.Contract, error)
	UpdateContract(ctx context.Context, id string, dto UpdateContractDTO) (*hr.Contract, error)
	DeleteContract(ctx context.Context, id string) error
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

// ListContracts handles GET /contracts?employeeId=&isActive=
func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{EmployeeID: q.Get("employeeId")}
	if raw := q.Get("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			h.HandleError(w, internal.NewValidationFieldError("isActive", "isActive must be true or false", internal.ErrCodeValidationFailed))
			return
		}
		filter.Active = &active
	}

	contracts, err := h.Service.ListContracts(r.Context(), filter)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ContractsResponse{Contracts: contracts})
}

// GetExpiring handles GET /contracts/expiring
func (h *Handler) GetExpiring(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.Service.GetExpiring(r.Context())
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ExpiringResponse{Contracts: contracts})
}

func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.GetContract(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var dto CreateContractDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	c, err := h.Service.CreateContract(r.Context(), dto)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) UpdateContract(w http.ResponseWriter, r *http.Request) {
	var dto UpdateContractDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	c, err := h.Service.UpdateContract(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteContract(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
