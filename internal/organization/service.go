package organization

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/storage"
)

type RepositoryAPI interface {
	storage.OrganizationStore
	ListEmployees(ctx context.Context) ([]*hr.Employee, error)
	ListCandidates(ctx context.Context) ([]*hr.Candidate, error)
}

// Service manages the gerencia → departamento → cargo hierarchy. Parents must
// exist when a child points at them, and a node with children cannot be
// deleted.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func hasDependents(what string) error {
	return internal.NewConflictError("cannot delete: "+what+" still reference it", internal.ErrCodeHasDependents)
}

func (s *Service) ListGerencias(ctx context.Context) ([]*hr.Gerencia, error) {
	return s.repo.ListGerencias(ctx)
}

func (s *Service) GetGerencia(ctx context.Context, id string) (*hr.Gerencia, error) {
	g, err := s.repo.GetGerencia(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, internal.NewNotFoundError("gerencia not found", internal.ErrCodeGerenciaNotFound)
	}
	return g, nil
}

func (s *Service) CreateGerencia(ctx context.Context, dto CreateGerenciaDTO) (*hr.Gerencia, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	g, err := s.repo.CreateGerencia(ctx, hr.GerenciaInput{Name: dto.Nombre, Description: dto.Descripcion})
	if err != nil {
		s.logger.Error("failed to create gerencia", "error", err)
		return nil, err
	}
	s.logger.Info("gerencia created", "gerencia_id", g.ID)
	return g, nil
}

func (s *Service) UpdateGerencia(ctx context.Context, id string, dto UpdateGerenciaDTO) (*hr.Gerencia, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	g, err := s.repo.UpdateGerencia(ctx, id, hr.GerenciaPatch{Name: dto.Nombre, Description: dto.Descripcion})
	if err != nil {
		s.logger.Error("failed to update gerencia", "error", err, "gerencia_id", id)
		return nil, err
	}
	if g == nil {
		return nil, internal.NewNotFoundError("gerencia not found", internal.ErrCodeGerenciaNotFound)
	}
	return g, nil
}

func (s *Service) DeleteGerencia(ctx context.Context, id string) error {
	departamentos, err := s.repo.ListDepartamentos(ctx)
	if err != nil {
		return err
	}
	for _, d := range departamentos {
		if d.GerenciaID == id {
			return hasDependents("departamentos")
		}
	}

	deleted, err := s.repo.DeleteGerencia(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete gerencia", "error", err, "gerencia_id", id)
		return err
	}
	if !deleted {
		return internal.NewNotFoundError("gerencia not found", internal.ErrCodeGerenciaNotFound)
	}
	s.logger.Info("gerencia deleted", "gerencia_id", id)
	return nil
}

func (s *Service) requireGerencia(ctx context.Context, id string) error {
	g, err := s.repo.GetGerencia(ctx, id)
	if err != nil {
		return err
	}
	if g == nil {
		return internal.NewValidationFieldError("gerenciaId", "gerenciaId does not exist", internal.ErrCodeGerenciaNotFound)
	}
	return nil
}

// ListDepartamentos returns every departamento, or only those of gerenciaID
// when it is not empty.
func (s *Service) ListDepartamentos(ctx context.Context, gerenciaID string) ([]*hr.Departamento, error) {
	all, err := s.repo.ListDepartamentos(ctx)
	if err != nil || gerenciaID == "" {
		return all, err
	}
	out := make([]*hr.Departamento, 0, len(all))
	for _, d := range all {
		if d.GerenciaID == gerenciaID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Service) GetDepartamento(ctx context.Context, id string) (*hr.Departamento, error) {
	d, err := s.repo.GetDepartamento(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, internal.NewNotFoundError("departamento not found", internal.ErrCodeDepartamentoNotFound)
	}
	return d, nil
}

func (s *Service) CreateDepartamento(ctx context.Context, dto CreateDepartamentoDTO) (*hr.Departamento, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireGerencia(ctx, dto.GerenciaID); err != nil {
		return nil, err
	}
	d, err := s.repo.CreateDepartamento(ctx, hr.DepartamentoInput{Name: dto.Nombre, GerenciaID: dto.GerenciaID})
	if err != nil {
		s.logger.Error("failed to create departamento", "error", err)
		return nil, err
	}
	s.logger.Info("departamento created", "departamento_id", d.ID, "gerencia_id", d.GerenciaID)
	return d, nil
}

func (s *Service) UpdateDepartamento(ctx context.Context, id string, dto UpdateDepartamentoDTO) (*hr.Departamento, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if dto.GerenciaID != nil {
		if err := s.requireGerencia(ctx, *dto.GerenciaID); err != nil {
			return nil, err
		}
	}
	d, err := s.repo.UpdateDepartamento(ctx, id, hr.DepartamentoPatch{Name: dto.Nombre, GerenciaID: dto.GerenciaID})
	if err != nil {
		s.logger.Error("failed to update departamento", "error", err, "departamento_id", id)
		return nil, err
	}
	if d == nil {
		return nil, internal.NewNotFoundError("departamento not found", internal.ErrCodeDepartamentoNotFound)
	}
	return d, nil
}

func (s *Service) DeleteDepartamento(ctx context.Context, id string) error {
	cargos, err := s.repo.ListCargos(ctx)
	if err != nil {
		return err
	}
	for _, c := range cargos {
		if c.DepartamentoID == id {
			return hasDependents("cargos")
		}
	}

	deleted, err := s.repo.DeleteDepartamento(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete departamento", "error", err, "departamento_id", id)
		return err
	}
	if !deleted {
		return internal.NewNotFoundError("departamento not found", internal.ErrCodeDepartamentoNotFound)
	}
	s.logger.Info("departamento deleted", "departamento_id", id)
	return nil
}

func (s *Service) requireDepartamento(ctx context.Context, id string) error {
	d, err := s.repo.GetDepartamento(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return internal.NewValidationFieldError("departamentoId", "departamentoId does not exist", internal.ErrCodeDepartamentoNotFound)
	}
	return nil
}

// ListCargos returns every cargo, or only those of departamentoID when it is
// not empty.
func (s *Service) ListCargos(ctx context.Context, departamentoID string) ([]*hr.Cargo, error) {
	all, err := s.repo.ListCargos(ctx)
	if err != nil || departamentoID == "" {
		return all, err
	}
	out := make([]*hr.Cargo, 0, len(all))
	for _, c := range all {
		if c.DepartamentoID == departamentoID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Service) GetCargo(ctx context.Context, id string) (*hr.Cargo, error) {
	c, err := s.repo.GetCargo(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, internal.NewNotFoundError("cargo not found", internal.ErrCodeCargoNotFound)
	}
	return c, nil
}

func (s *Service) CreateCargo(ctx context.Context, dto CreateCargoDTO) (*hr.Cargo, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireDepartamento(ctx, dto.DepartamentoID); err != nil {
		return nil, err
	}
	c, err := s.repo.CreateCargo(ctx, hr.CargoInput{Name: dto.Nombre, DepartamentoID: dto.DepartamentoID})
	if err != nil {
		s.logger.Error("failed to create cargo", "error", err)
		return nil, err
	}
	s.logger.Info("cargo created", "cargo_id", c.ID, "departamento_id", c.DepartamentoID)
	return c, nil
}

func (s *Service) UpdateCargo(ctx context.Context, id string, dto UpdateCargoDTO) (*hr.Cargo, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if dto.DepartamentoID != nil {
		if err := s.requireDepartamento(ctx, *dto.DepartamentoID); err != nil {
			return nil, err
		}
	}
	c, err := s.repo.UpdateCargo(ctx, id, hr.CargoPatch{Name: dto.Nombre, DepartamentoID: dto.DepartamentoID})
	if err != nil {
		s.logger.Error("failed to update cargo", "error", err, "cargo_id", id)
		return nil, err
	}
	if c == nil {
		return nil, internal.NewNotFoundError("cargo not found", internal.ErrCodeCargoNotFound)
	}
	return c, nil
}

func (s *Service) DeleteCargo(ctx context.Context, id string) error {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return err
	}
	for _, e := range employees {
		if e.CargoID == id {
			return hasDependents("employees")
		}
	}
	candidates, err := s.repo.ListCandidates(ctx)
	if err != nil {
		return err
	}
	for _, c := range candidates {
		if c.CargoID == id {
			return hasDependents("candidates")
		}
	}

	deleted, err := s.repo.DeleteCargo(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete cargo", "error", err, "cargo_id", id)
		return err
	}
	if !deleted {
		return internal.NewNotFoundError("cargo not found", internal.ErrCodeCargoNotFound)
	}
	s.logger.Info("cargo deleted", "cargo_id", id)
	return nil
}
