// Package storage defines the repository port every HR read and write goes
// through, and the pieces shared by its backends.
//
// Lookups return a nil record (or false for deletes) when the id is absent;
// an error always means the backend itself failed, except ErrConflict.
package storage

import (
	"context"
	"errors"

	"github.com/frahmantamala/hr-management/internal/core/hr"
)

// ErrConflict is returned when a write violates a uniqueness constraint the
// backend enforces, such as the single active contract per employee index.
var ErrConflict = errors.New("storage: unique constraint violated")

type UserStore interface {
	CreateUser(ctx context.Context, in hr.UserInput) (*hr.User, error)
	GetUser(ctx context.Context, id string) (*hr.User, error)
	GetUserByCedula(ctx context.Context, cedula string) (*hr.User, error)
	ListUsers(ctx context.Context) ([]*hr.User, error)
	UpdateUser(ctx context.Context, id string, patch hr.UserPatch) (*hr.User, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
}

type OrganizationStore interface {
	CreateGerencia(ctx context.Context, in hr.GerenciaInput) (*hr.Gerencia, error)
	GetGerencia(ctx context.Context, id string) (*hr.Gerencia, error)
	ListGerencias(ctx context.Context) ([]*hr.Gerencia, error)
	UpdateGerencia(ctx context.Context, id string, patch hr.GerenciaPatch) (*hr.Gerencia, error)
	DeleteGerencia(ctx context.Context, id string) (bool, error)

	CreateDepartamento(ctx context.Context, in hr.DepartamentoInput) (*hr.Departamento, error)
	GetDepartamento(ctx context.Context, id string) (*hr.Departamento, error)
	ListDepartamentos(ctx context.Context) ([]*hr.Departamento, error)
	UpdateDepartamento(ctx context.Context, id string, patch hr.DepartamentoPatch) (*hr.Departamento, error)
	DeleteDepartamento(ctx context.Context, id string) (bool, error)

	CreateCargo(ctx context.Context, in hr.CargoInput) (*hr.Cargo, error)
	GetCargo(ctx context.Context, id string) (*hr.Cargo, error)
	ListCargos(ctx context.Context) ([]*hr.Cargo, error)
	UpdateCargo(ctx context.Context, id string, patch hr.CargoPatch) (*hr.Cargo, error)
	DeleteCargo(ctx context.Context, id string) (bool, error)
}

type EmployeeStore interface {
	CreateEmployee(ctx context.Context, in hr.EmployeeInput) (*hr.Employee, error)
	GetEmployee(ctx context.Context, id string) (*hr.Employee, error)
	GetEmployeeByUserID(ctx context.Context, userID string) (*hr.Employee, error)
	ListEmployees(ctx context.Context) ([]*hr.Employee, error)
	UpdateEmployee(ctx context.Context, id string, patch hr.EmployeePatch) (*hr.Employee, error)
	DeleteEmployee(ctx context.Context, id string) (bool, error)
}

type ContractStore interface {
	CreateContract(ctx context.Context, in hr.ContractInput) (*hr.Contract, error)
	GetContract(ctx context.Context, id string) (*hr.Contract, error)
	ListContracts(ctx context.Context) ([]*hr.Contract, error)
	UpdateContract(ctx context.Context, id string, patch hr.ContractPatch) (*hr.Contract, error)
	DeleteContract(ctx context.Context, id string) (bool, error)
	GetContractsByEmployee(ctx context.Context, employeeID string) ([]*hr.Contract, error)
	// GetExpiringContracts returns active contracts whose end date falls between
	// the start of today and now plus the contract window.
	GetExpiringContracts(ctx context.Context) ([]*hr.Contract, error)
}

type ProbationStore interface {
	CreateProbationPeriod(ctx context.Context, in hr.ProbationPeriodInput) (*hr.ProbationPeriod, error)
	GetProbationPeriod(ctx context.Context, id string) (*hr.ProbationPeriod, error)
	ListProbationPeriods(ctx context.Context) ([]*hr.ProbationPeriod, error)
	UpdateProbationPeriod(ctx context.Context, id string, patch hr.ProbationPeriodPatch) (*hr.ProbationPeriod, error)
	DeleteProbationPeriod(ctx context.Context, id string) (bool, error)
	GetProbationPeriodsByEmployee(ctx context.Context, employeeID string) ([]*hr.ProbationPeriod, error)
	// GetExpiringProbationPeriods returns active periods ending no later than
	// now plus the probation window.
	GetExpiringProbationPeriods(ctx context.Context) ([]*hr.ProbationPeriod, error)
}

type CandidateStore interface {
	CreateCandidate(ctx context.Context, in hr.CandidateInput) (*hr.Candidate, error)
	GetCandidate(ctx context.Context, id string) (*hr.Candidate, error)
	ListCandidates(ctx context.Context) ([]*hr.Candidate, error)
	UpdateCandidate(ctx context.Context, id string, patch hr.CandidatePatch) (*hr.Candidate, error)
	DeleteCandidate(ctx context.Context, id string) (bool, error)
}

type EgresoStore interface {
	CreateEgreso(ctx context.Context, in hr.EgresoInput) (*hr.Egreso, error)
	GetEgreso(ctx context.Context, id string) (*hr.Egreso, error)
	ListEgresos(ctx context.Context) ([]*hr.Egreso, error)
	GetEgresosByEmployee(ctx context.Context, employeeID string) ([]*hr.Egreso, error)
}

// Repository is the single seam the services depend on. The in-memory and SQL
// backends are interchangeable behind it.
type Repository interface {
	UserStore
	OrganizationStore
	EmployeeStore
	ContractStore
	ProbationStore
	CandidateStore
	EgresoStore
}
