// Package memory is the map-backed Repository used for development, tests and
// single-instance deployments.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/storage"
)

type Store struct {
	mu   sync.RWMutex
	opts storage.Options

	users         *table[hr.User]
	gerencias     *table[hr.Gerencia]
	departamentos *table[hr.Departamento]
	cargos        *table[hr.Cargo]
	employees     *table[hr.Employee]
	contracts     *table[hr.Contract]
	probation     *table[hr.ProbationPeriod]
	candidates    *table[hr.Candidate]
	egresos       *table[hr.Egreso]
}

var _ storage.Repository = (*Store)(nil)

func New(opts ...storage.Option) *Store {
	return &Store{
		opts:          storage.BuildOptions(opts...),
		users:         newTable[hr.User](),
		gerencias:     newTable[hr.Gerencia](),
		departamentos: newTable[hr.Departamento](),
		cargos:        newTable[hr.Cargo](),
		employees:     newTable[hr.Employee](),
		contracts:     newTable[hr.Contract](),
		probation:     newTable[hr.ProbationPeriod](),
		candidates:    newTable[hr.Candidate](),
		egresos:       newTable[hr.Egreso](),
	}
}

// NewFromFixture returns a store pre-populated with f.
func NewFromFixture(ctx context.Context, f *storage.Fixture, hash storage.PasswordHasher, opts ...storage.Option) (*Store, error) {
	s := New(opts...)
	if _, err := storage.Seed(ctx, s, f, hash, s.opts.Now()); err != nil {
		return nil, err
	}
	return s, nil
}

func create[T any](s *Store, t *table[T], build func(id string, now time.Time) *T) *T {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.opts.NewID()
	row := build(id, s.opts.Now())
	t.insert(id, row)
	return clone(row)
}

func get[T any](s *Store, t *table[T], id string) *T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, _ := t.get(id)
	return clone(row)
}

func find[T any](s *Store, t *table[T], match func(*T) bool) *T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *T
	t.each(func(row *T) bool {
		if match(row) {
			found = clone(row)
			return false
		}
		return true
	})
	return found
}

func list[T any](s *Store, t *table[T], keep func(*T) bool) []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*T, 0, t.len())
	t.each(func(row *T) bool {
		if keep == nil || keep(row) {
			out = append(out, clone(row))
		}
		return true
	})
	return out
}

// update applies the patch to a copy and swaps it in, so readers holding an
// earlier clone never observe a half-applied patch.
func update[T any](s *Store, t *table[T], id string, apply func(row *T, now time.Time)) *T {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := t.get(id)
	if !ok {
		return nil
	}
	next := clone(row)
	apply(next, s.opts.Now())
	t.replace(id, next)
	return clone(next)
}

func remove[T any](s *Store, t *table[T], id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return t.remove(id)
}

func (s *Store) CreateUser(_ context.Context, in hr.UserInput) (*hr.User, error) {
	return create(s, s.users, func(id string, now time.Time) *hr.User {
		return hr.NewUser(id, in, now)
	}), nil
}

func (s *Store) GetUser(_ context.Context, id string) (*hr.User, error) {
	return get(s, s.users, id), nil
}

func (s *Store) GetUserByCedula(_ context.Context, cedula string) (*hr.User, error) {
	return find(s, s.users, func(u *hr.User) bool { return u.Cedula == cedula }), nil
}

func (s *Store) ListUsers(_ context.Context) ([]*hr.User, error) {
	return list(s, s.users, nil), nil
}

func (s *Store) UpdateUser(_ context.Context, id string, patch hr.UserPatch) (*hr.User, error) {
	return update(s, s.users, id, func(u *hr.User, now time.Time) { u.Apply(patch, now) }), nil
}

func (s *Store) DeleteUser(_ context.Context, id string) (bool, error) {
	return remove(s, s.users, id), nil
}

func (s *Store) CreateGerencia(_ context.Context, in hr.GerenciaInput) (*hr.Gerencia, error) {
	return create(s, s.gerencias, func(id string, now time.Time) *hr.Gerencia {
		return hr.NewGerencia(id, in, now)
	}), nil
}

func (s *Store) GetGerencia(_ context.Context, id string) (*hr.Gerencia, error) {
	return get(s, s.gerencias, id), nil
}

func (s *Store) ListGerencias(_ context.Context) ([]*hr.Gerencia, error) {
	return list(s, s.gerencias, nil), nil
}

func (s *Store) UpdateGerencia(_ context.Context, id string, patch hr.GerenciaPatch) (*hr.Gerencia, error) {
	return update(s, s.gerencias, id, func(g *hr.Gerencia, _ time.Time) { g.Apply(patch) }), nil
}

func (s *Store) DeleteGerencia(_ context.Context, id string) (bool, error) {
	return remove(s, s.gerencias, id), nil
}

func (s *Store) CreateDepartamento(_ context.Context, in hr.DepartamentoInput) (*hr.Departamento, error) {
	return create(s, s.departamentos, func(id string, now time.Time) *hr.Departamento {
		return hr.NewDepartamento(id, in, now)
	}), nil
}

func (s *Store) GetDepartamento(_ context.Context, id string) (*hr.Departamento, error) {
	return get(s, s.departamentos, id), nil
}

func (s *Store) ListDepartamentos(_ context.Context) ([]*hr.Departamento, error) {
	return list(s, s.departamentos, nil), nil
}

func (s *Store) UpdateDepartamento(_ context.Context, id string, patch hr.DepartamentoPatch) (*hr.Departamento, error) {
	return update(s, s.departamentos, id, func(d *hr.Departamento, _ time.Time) { d.Apply(patch) }), nil
}

func (s *Store) DeleteDepartamento(_ context.Context, id string) (bool, error) {
	return remove(s, s.departamentos, id), nil
}

func (s *Store) CreateCargo(_ context.Context, in hr.CargoInput) (*hr.Cargo, error) {
	return create(s, s.cargos, func(id string, now time.Time) *hr.Cargo {
		return hr.NewCargo(id, in, now)
	}), nil
}

func (s *Store) GetCargo(_ context.Context, id string) (*hr.Cargo, error) {
	return get(s, s.cargos, id), nil
}

func (s *Store) ListCargos(_ context.Context) ([]*hr.Cargo, error) {
	return list(s, s.cargos, nil), nil
}

func (s *Store) UpdateCargo(_ context.Context, id string, patch hr.CargoPatch) (*hr.Cargo, error) {
	return update(s, s.cargos, id, func(c *hr.Cargo, _ time.Time) { c.Apply(patch) }), nil
}

func (s *Store) DeleteCargo(_ context.Context, id string) (bool, error) {
	return remove(s, s.cargos, id), nil
}

func (s *Store) CreateEmployee(_ context.Context, in hr.EmployeeInput) (*hr.Employee, error) {
	return create(s, s.employees, func(id string, now time.Time) *hr.Employee {
		return hr.NewEmployee(id, in, now)
	}), nil
}

func (s *Store) GetEmployee(_ context.Context, id string) (*hr.Employee, error) {
	return get(s, s.employees, id), nil
}

func (s *Store) GetEmployeeByUserID(_ context.Context, userID string) (*hr.Employee, error) {
	return find(s, s.employees, func(e *hr.Employee) bool { return e.UserID == userID }), nil
}

func (s *Store) ListEmployees(_ context.Context) ([]*hr.Employee, error) {
	return list(s, s.employees, nil), nil
}

func (s *Store) UpdateEmployee(_ context.Context, id string, patch hr.EmployeePatch) (*hr.Employee, error) {
	return update(s, s.employees, id, func(e *hr.Employee, now time.Time) { e.Apply(patch, now) }), nil
}

func (s *Store) DeleteEmployee(_ context.Context, id string) (bool, error) {
	return remove(s, s.employees, id), nil
}

func (s *Store) CreateContract(_ context.Context, in hr.ContractInput) (*hr.Contract, error) {
	return create(s, s.contracts, func(id string, now time.Time) *hr.Contract {
		return hr.NewContract(id, in, now)
	}), nil
}

func (s *Store) GetContract(_ context.Context, id string) (*hr.Contract, error) {
	return get(s, s.contracts, id), nil
}

func (s *Store) ListContracts(_ context.Context) ([]*hr.Contract, error) {
	return list(s, s.contracts, nil), nil
}

func (s *Store) UpdateContract(_ context.Context, id string, patch hr.ContractPatch) (*hr.Contract, error) {
	return update(s, s.contracts, id, func(c *hr.Contract, _ time.Time) { c.Apply(patch) }), nil
}

func (s *Store) DeleteContract(_ context.Context, id string) (bool, error) {
	return remove(s, s.contracts, id), nil
}

func (s *Store) GetContractsByEmployee(_ context.Context, employeeID string) ([]*hr.Contract, error) {
	return list(s, s.contracts, func(c *hr.Contract) bool { return c.EmployeeID == employeeID }), nil
}

func (s *Store) GetExpiringContracts(_ context.Context) ([]*hr.Contract, error) {
	now, window := s.opts.Now(), s.opts.Windows.Contracts
	return list(s, s.contracts, func(c *hr.Contract) bool { return c.ExpiresWithin(now, window) }), nil
}

func (s *Store) CreateProbationPeriod(_ context.Context, in hr.ProbationPeriodInput) (*hr.ProbationPeriod, error) {
	return create(s, s.probation, func(id string, now time.Time) *hr.ProbationPeriod {
		return hr.NewProbationPeriod(id, in, now)
	}), nil
}

func (s *Store) GetProbationPeriod(_ context.Context, id string) (*hr.ProbationPeriod, error) {
	return get(s, s.probation, id), nil
}

func (s *Store) ListProbationPeriods(_ context.Context) ([]*hr.ProbationPeriod, error) {
	return list(s, s.probation, nil), nil
}

func (s *Store) UpdateProbationPeriod(_ context.Context, id string, patch hr.ProbationPeriodPatch) (*hr.ProbationPeriod, error) {
	return update(s, s.probation, id, func(p *hr.ProbationPeriod, now time.Time) { p.Apply(patch, now) }), nil
}

func (s *Store) DeleteProbationPeriod(_ context.Context, id string) (bool, error) {
	return remove(s, s.probation, id), nil
}

func (s *Store) GetProbationPeriodsByEmployee(_ context.Context, employeeID string) ([]*hr.ProbationPeriod, error) {
	return list(s, s.probation, func(p *hr.ProbationPeriod) bool { return p.EmployeeID == employeeID }), nil
}

func (s *Store) GetExpiringProbationPeriods(_ context.Context) ([]*hr.ProbationPeriod, error) {
	now, window := s.opts.Now(), s.opts.Windows.Probation
	return list(s, s.probation, func(p *hr.ProbationPeriod) bool { return p.ExpiresWithin(now, window) }), nil
}

func (s *Store) CreateCandidate(_ context.Context, in hr.CandidateInput) (*hr.Candidate, error) {
	return create(s, s.candidates, func(id string, now time.Time) *hr.Candidate {
		return hr.NewCandidate(id, in, now)
	}), nil
}

func (s *Store) GetCandidate(_ context.Context, id string) (*hr.Candidate, error) {
	return get(s, s.candidates, id), nil
}

func (s *Store) ListCandidates(_ context.Context) ([]*hr.Candidate, error) {
	return list(s, s.candidates, nil), nil
}

func (s *Store) UpdateCandidate(_ context.Context, id string, patch hr.CandidatePatch) (*hr.Candidate, error) {
	return update(s, s.candidates, id, func(c *hr.Candidate, now time.Time) { c.Apply(patch, now) }), nil
}

func (s *Store) DeleteCandidate(_ context.Context, id string) (bool, error) {
	return remove(s, s.candidates, id), nil
}

func (s *Store) CreateEgreso(_ context.Context, in hr.EgresoInput) (*hr.Egreso, error) {
	return create(s, s.egresos, func(id string, now time.Time) *hr.Egreso {
		return hr.NewEgreso(id, in, now)
	}), nil
}

func (s *Store) GetEgreso(_ context.Context, id string) (*hr.Egreso, error) {
	return get(s, s.egresos, id), nil
}

func (s *Store) ListEgresos(_ context.Context) ([]*hr.Egreso, error) {
	return list(s, s.egresos, nil), nil
}

func (s *Store) GetEgresosByEmployee(_ context.Context, employeeID string) ([]*hr.Egreso, error) {
	return list(s, s.egresos, func(e *hr.Egreso) bool { return e.EmployeeID == employeeID }), nil
}
