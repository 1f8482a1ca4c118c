package organization

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListGerencias(ctx context.Context) ([]*hr.Gerencia, error)
	GetGerencia(ctx context.Context, id string) (*hr.Gerencia, error)
	CreateGerencia(ctx context.Context, dto CreateGerenciaDTO) (*hr.Gerencia, error)
	UpdateGerencia(ctx context.Context, id string, dto UpdateGerenciaDTO) (*hr.Gerencia, error)
	DeleteGerencia(ctx context.Context, id string) error

	ListDepartamentos(ctx context.Context, gerenciaID string) ([]*hr.Departamento, error)
	GetDepartamento(ctx context.Context, id string) (*hr.Departamento, error)
	CreateDepartamento(ctx context.Context, dto CreateDepartamentoDTO) (*hr.Departamento, error)
	UpdateDepartamento(ctx context.Context, id string, dto UpdateDepartamentoDTO) (*hr.Departamento, error)
	DeleteDepartamento(ctx context.Context, id string) error

	ListCargos(ctx context.Context, departamentoID string) ([]*hr.Cargo, error)
	GetCargo(ctx context.Context, id string) (*hr.Cargo, error)
	CreateCargo(ctx context.Context, dto CreateCargoDTO) (*hr.Cargo, error)
	UpdateCargo(ctx context.Context, id string, dto UpdateCargoDTO) (*hr.Cargo, error)
	DeleteCargo(ctx context.Context, id string) error
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

// respond writes v with status, or the error envelope when err is set.
func (h *Handler) respond(w http.ResponseWriter, status int, v interface{}, err error) {
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, status, v)
}

func (h *Handler) noContent(w http.ResponseWriter, err error) {
	if err != nil {
		h.HandleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListGerencias(w http.ResponseWriter, r *http.Request) {
	gerencias, err := h.Service.ListGerencias(r.Context())
	h.respond(w, http.StatusOK, GerenciasResponse{Gerencias: gerencias}, err)
}

func (h *Handler) GetGerencia(w http.ResponseWriter, r *http.Request) {
	g, err := h.Service.GetGerencia(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, http.StatusOK, g, err)
}

func (h *Handler) CreateGerencia(w http.ResponseWriter, r *http.Request) {
	var dto CreateGerenciaDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}
	g, err := h.Service.CreateGerencia(r.Context(), dto)
	h.respond(w, http.StatusCreated, g, err)
}

func (h *Handler) UpdateGerencia(w http.ResponseWriter, r *http.Request) {
	var dto UpdateGerenciaDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}
	g, err := h.Service.UpdateGerencia(r.Context(), chi.URLParam(r, "id"), dto)
	h.respond(w, http.StatusOK, g, err)
}

func (h *Handler) DeleteGerencia(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, h.Service.DeleteGerencia(r.Context(), chi.URLParam(r, "id")))
}

// ListDepartamentos handles GET /departamentos?gerenciaId=
func (h *Handler) ListDepartamentos(w http.ResponseWriter, r *http.Request) {
	departamentos, err := h.Service.ListDepartamentos(r.Context(), r.URL.Query().Get("gerenciaId"))
	h.respond(w, http.StatusOK, DepartamentosResponse{Departamentos: departamentos}, err)
}

func (h *Handler) GetDepartamento(w http.ResponseWriter, r *http.Request) {
	d, err := h.Service.GetDepartamento(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, http.StatusOK, d, err)
}

func (h *Handler) CreateDepartamento(w http.ResponseWriter, r *http.Request) {
	var dto CreateDepartamentoDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}
	d, err := h.Service.CreateDepartamento(r.Context(), dto)
	h.respond(w, http.StatusCreated, d, err)
}

func (h *Handler) UpdateDepartamento(w http.ResponseWriter, r *http.Request) {
	var dto UpdateDepartamentoDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}
	d, err := h.Service.UpdateDepartamento(r.Context(), chi.URLParam(r, "id"), dto)
	h.respond(w, http.StatusOK, d, err)
}

func (h *Handler) DeleteDepartamento(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, h.Service.DeleteDepartamento(r.Context(), chi.URLParam(r, "id")))
}

// ListCargos handles GET /cargos?departamentoId=
func (h *Handler) ListCargos(w http.ResponseWriter, r *http.Request) {
	cargos, err := h.Service.ListCargos(r.Context(), r.URL.Query().Get("departamentoId"))
	h.respond(w, http.StatusOK, CargosResponse{Cargos: cargos}, err)
}

func (h *Handler) GetCargo(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.GetCargo(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, http.StatusOK, c, err)
}

func (h *Handler) CreateCargo(w http.ResponseWriter, r *http.Request) {
	var dto CreateCargoDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}
	c, err := h.Service.CreateCargo(r.Context(), dto)
	h.respond(w, http.StatusCreated, c, err)
}

func (h *Handler) UpdateCargo(w http.ResponseWriter, r *http.Request) {
	var dto UpdateCargoDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, err)
		return
	}
	c, err := h.Service.UpdateCargo(r.Context(), chi.URLParam(r, "id"), dto)
	h.respond(w, http.StatusOK, c, err)
}

func (h *Handler) DeleteCargo(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, h.Service.DeleteCargo(r.Context(), chi.URLParam(r, "id")))
}
