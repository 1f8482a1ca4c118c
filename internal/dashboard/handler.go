package dashboard

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/transport"
)

type ServiceAPI interface {
	GetStats(ctx context.Context) (*hr.DashboardStats, error)
	GetExpiring(ctx context.Context) (*ExpiringResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetStats(r.Context())
	if err != nil {
		h.Logger.Error("GetStats: failed to compute dashboard stats", "error", err)
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetExpiring(w http.ResponseWriter, r *http.Request) {
	expiring, err := h.Service.GetExpiring(r.Context())
	if err != nil {
		h.Logger.Error("GetExpiring: failed to list expiring records", "error", err)
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, expiring)
}
