package candidate

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListCandidates(ctx context.Context, filter ListFilter) ([]*hr.CandidateWithRelations, error)
	GetCandidate(ctx context.Context, id string) (*hr.CandidateWithRelations, error)
	CreateCandidate(ctx context.Context, dto CreateCandidateDTO) (*hr.Candidate, error)
	UpdateCandidate(ctx context.Context, id string, dto UpdateCandidateDTO) (*hr.Candidate, error)
	Evaluate(ctx context.Context, id string, dto EvaluateCandidateDTO) (*hr.Candidate, error)
	DeleteCandidate(ctx context.Context, id string) error
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

// ListCandidates handles GET /candidates?estatus=&cargoId=
func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		Status:  hr.CandidateStatus(q.Get("estatus")),
		CargoID: q.Get("cargoId"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		h.HandleError(w, internal.NewValidationFieldError("estatus", "estatus must be one of [en_evaluacion entrevista aprobado rechazado contratado]", internal.ErrCodeInvalidEnum))
		return
	}

	candidates, err := h.Service.ListCandidates(r.Context(), filter)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, CandidatesResponse{Candidates: candidates})
}

func (h *Handler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.GetCandidate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	var dto CreateCandidateDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	c, err := h.Service.CreateCandidate(r.Context(), dto)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	var dto UpdateCandidateDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	c, err := h.Service.UpdateCandidate(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

// Evaluate handles POST /candidates/{id}/evaluate
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var dto EvaluateCandidateDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}

	c, err := h.Service.Evaluate(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteCandidate(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
