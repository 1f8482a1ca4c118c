package relations

import (
	"context"

	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/storage"
)

// source resolves references while composing. Single reads go straight to the
// repository; list reads load each table once into a snapshot.
type source interface {
	user(ctx context.Context, id string) (*hr.User, error)
	cargo(ctx context.Context, id string) (*hr.Cargo, error)
	departamento(ctx context.Context, id string) (*hr.Departamento, error)
	gerencia(ctx context.Context, id string) (*hr.Gerencia, error)
	employee(ctx context.Context, id string) (*hr.Employee, error)
	contracts(ctx context.Context, employeeID string) ([]*hr.Contract, error)
}

type direct struct {
	repo storage.Repository
}

func (d direct) user(ctx context.Context, id string) (*hr.User, error) {
	return d.repo.GetUser(ctx, id)
}

func (d direct) cargo(ctx context.Context, id string) (*hr.Cargo, error) {
	return d.repo.GetCargo(ctx, id)
}

func (d direct) departamento(ctx context.Context, id string) (*hr.Departamento, error) {
	return d.repo.GetDepartamento(ctx, id)
}

func (d direct) gerencia(ctx context.Context, id string) (*hr.Gerencia, error) {
	return d.repo.GetGerencia(ctx, id)
}

func (d direct) employee(ctx context.Context, id string) (*hr.Employee, error) {
	return d.repo.GetEmployee(ctx, id)
}

func (d direct) contracts(ctx context.Context, employeeID string) ([]*hr.Contract, error) {
	return d.repo.GetContractsByEmployee(ctx, employeeID)
}

type snapshot struct {
	users         map[string]*hr.User
	cargos        map[string]*hr.Cargo
	departamentos map[string]*hr.Departamento
	gerencias     map[string]*hr.Gerencia
	employees     map[string]*hr.Employee
	byEmployee    map[string][]*hr.Contract

	// employeeList keeps the repository order of employees.
	employeeList []*hr.Employee
}

func loadSnapshot(ctx context.Context, repo storage.Repository) (*snapshot, error) {
	users, err := repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	cargos, err := repo.ListCargos(ctx)
	if err != nil {
		return nil, err
	}
	departamentos, err := repo.ListDepartamentos(ctx)
	if err != nil {
		return nil, err
	}
	gerencias, err := repo.ListGerencias(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := repo.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	contracts, err := repo.ListContracts(ctx)
	if err != nil {
		return nil, err
	}

	s := &snapshot{
		users:         index(users, func(u *hr.User) string { return u.ID }),
		cargos:        index(cargos, func(c *hr.Cargo) string { return c.ID }),
		departamentos: index(departamentos, func(d *hr.Departamento) string { return d.ID }),
		gerencias:     index(gerencias, func(g *hr.Gerencia) string { return g.ID }),
		employees:     index(employees, func(e *hr.Employee) string { return e.ID }),
		byEmployee:    make(map[string][]*hr.Contract),
		employeeList:  employees,
	}
	for _, c := range contracts {
		s.byEmployee[c.EmployeeID] = append(s.byEmployee[c.EmployeeID], c)
	}
	return s, nil
}

func index[T any](rows []*T, key func(*T) string) map[string]*T {
	m := make(map[string]*T, len(rows))
	for _, r := range rows {
		m[key(r)] = r
	}
	return m
}

func (s *snapshot) user(_ context.Context, id string) (*hr.User, error) {
	return s.users[id], nil
}

func (s *snapshot) cargo(_ context.Context, id string) (*hr.Cargo, error) {
	return s.cargos[id], nil
}

func (s *snapshot) departamento(_ context.Context, id string) (*hr.Departamento, error) {
	return s.departamentos[id], nil
}

func (s *snapshot) gerencia(_ context.Context, id string) (*hr.Gerencia, error) {
	return s.gerencias[id], nil
}

func (s *snapshot) employee(_ context.Context, id string) (*hr.Employee, error) {
	return s.employees[id], nil
}

func (s *snapshot) contracts(_ context.Context, employeeID string) ([]*hr.Contract, error) {
	return s.byEmployee[employeeID], nil
}
