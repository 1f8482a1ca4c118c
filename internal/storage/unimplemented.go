package storage

import (
	"context"
	"errors"

	"github.com/frahmantamala/hr-management/internal/core/hr"
)

// ErrNotImplemented is returned by backends that do not support an operation.
var ErrNotImplemented = errors.New("storage: operation not implemented")

// UnimplementedRepository can be embedded to satisfy Repository while only
// overriding the methods a backend or test double actually supports.
type UnimplementedRepository struct{}

var _ Repository = UnimplementedRepository{}

func (UnimplementedRepository) CreateUser(_ context.Context, _ hr.UserInput) (*hr.User, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) GetUser(_ context.Context, _ string) (*hr.User, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) GetUserByCedula(_ context.Context, _ string) (*hr.User, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) ListUsers(_ context.Context) ([]*hr.User, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) UpdateUser(_ context.Context, _ string, _ hr.UserPatch) (*hr.User, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) DeleteUser(_ context.Context, _ string) (bool, error) {
	return false, ErrNotImplemented
}

func (UnimplementedRepository) CreateGerencia(_ context.Context, _ hr.GerenciaInput) (*hr.Gerencia, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) GetGerencia(_ context.Context, _ string) (*hr.Gerencia, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) ListGerencias(_ context.Context) ([]*hr.Gerencia, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) UpdateGerencia(_ context.Context, _ string, _ hr.GerenciaPatch) (*hr.Gerencia, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) DeleteGerencia(_ context.Context, _ string) (bool, error) {
	return false, ErrNotImplemented
}

func (UnimplementedRepository) CreateDepartamento(_ context.Context, _ hr.DepartamentoInput) (*hr.Departamento, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) GetDepartamento(_ context.Context, _ string) (*hr.Departamento, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) ListDepartamentos(_ context.Context) ([]*hr.Departamento, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) UpdateDepartamento(_ context.Context, _ string, _ hr.DepartamentoPatch) (*hr.Departamento, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) DeleteDepartamento(_ context.Context, _ string) (bool, error) {
	return false, ErrNotImplemented
}

func (UnimplementedRepository) CreateCargo(_ context.Context, _ hr.CargoInput) (*hr.Cargo, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) GetCargo(_ context.Context, _ string) (*hr.Cargo, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) ListCargos(_ context.Context) ([]*hr.Cargo, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) UpdateCargo(_ context.Context, _ string, _ hr.CargoPatch) (*hr.Cargo, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) DeleteCargo(_ context.Context, _ string) (bool, error) {
	return false, ErrNotImplemented
}

func (UnimplementedRepository) CreateEmployee(_ context.Context, _ hr.EmployeeInput) (*hr.Employee, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) GetEmployee(_ context.Context, _ string) (*hr.Employee, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) GetEmployeeByUserID(_ context.Context, _ string) (*hr.Employee, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) ListEmployees(_ context.Context) ([]*hr.Employee, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) UpdateEmployee(_ context.Context, _ string, _ hr.EmployeePatch) (*hr.Employee, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) DeleteEmployee(_ context.Context, _ string) (bool, error) {
	return false, ErrNotImplemented
}

func (UnimplementedRepository) CreateContract(_ context.Context, _ hr.ContractInput) (*hr.Contract, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) GetContract(_ context.Context, _ string) (*hr.Contract, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) ListContracts(_ context.Context) ([]*hr.Contract, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) UpdateContract(_ context.Context, _ string, _ hr.ContractPatch) (*hr.Contract, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) DeleteContract(_ context.Context, _ string) (bool, error) {
	return false, ErrNotImplemented
}

func (UnimplementedRepository) GetContractsByEmployee(_ context.Context, _ string) ([]*hr.Contract, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) GetExpiringContracts(_ context.Context) ([]*hr.Contract, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) CreateProbationPeriod(_ context.Context, _ hr.ProbationPeriodInput) (*hr.ProbationPeriod, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) GetProbationPeriod(_ context.Context, _ string) (*hr.ProbationPeriod, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) ListProbationPeriods(_ context.Context) ([]*hr.ProbationPeriod, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) UpdateProbationPeriod(_ context.Context, _ string, _ hr.ProbationPeriodPatch) (*hr.ProbationPeriod, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) DeleteProbationPeriod(_ context.Context, _ string) (bool, error) {
	return false, ErrNotImplemented
}

func (UnimplementedRepository) GetProbationPeriodsByEmployee(_ context.Context, _ string) ([]*hr.ProbationPeriod, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) GetExpiringProbationPeriods(_ context.Context) ([]*hr.ProbationPeriod, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) CreateCandidate(_ context.Context, _ hr.CandidateInput) (*hr.Candidate, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) GetCandidate(_ context.Context, _ string) (*hr.Candidate, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) ListCandidates(_ context.Context) ([]*hr.Candidate, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) UpdateCandidate(_ context.Context, _ string, _ hr.CandidatePatch) (*hr.Candidate, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) DeleteCandidate(_ context.Context, _ string) (bool, error) {
	return false, ErrNotImplemented
}

func (UnimplementedRepository) CreateEgreso(_ context.Context, _ hr.EgresoInput) (*hr.Egreso, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) GetEgreso(_ context.Context, _ string) (*hr.Egreso, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) ListEgresos(_ context.Context) ([]*hr.Egreso, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedRepository) GetEgresosByEmployee(_ context.Context, _ string) ([]*hr.Egreso, error) {
	return nil, ErrNotImplemented
}
