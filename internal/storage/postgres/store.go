// Package postgres is the GORM-backed Repository. Despite the name it runs on
// any GORM dialect the server is configured with: Postgres, MySQL or SQLite.
package postgres

import (
	"context"
	"errors"
	"fmt"

	candidateDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/candidate"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	orgDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/organization"
	userDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/user"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/storage"
	"gorm.io/gorm"
)

const creationOrder = "created_at ASC, id ASC"

type Store struct {
	db   *gorm.DB
	opts storage.Options
}

var _ storage.Repository = (*Store)(nil)

func New(db *gorm.DB, opts ...storage.Option) *Store {
	return &Store{db: db, opts: storage.BuildOptions(opts...)}
}

// Models lists every table the store reads and writes.
func Models() []any {
	return []any{
		&userDatamodel.User{},
		&orgDatamodel.Gerencia{},
		&orgDatamodel.Departamento{},
		&orgDatamodel.Cargo{},
		&employeeDatamodel.Employee{},
		&employeeDatamodel.Contract{},
		&employeeDatamodel.ProbationPeriod{},
		&employeeDatamodel.Egreso{},
		&candidateDatamodel.Candidate{},
	}
}

// AutoMigrate creates the schema for development databases. Production
// schemas are managed by the migrate command.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func first[M, E any](ctx context.Context, db *gorm.DB, from func(*M) *E, query string, args ...any) (*E, error) {
	var row M
	err := db.WithContext(ctx).Where(query, args...).Order(creationOrder).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return from(&row), nil
}

func find[M, E any](ctx context.Context, db *gorm.DB, from func(*M) *E, query string, args ...any) ([]*E, error) {
	var rows []*M
	q := db.WithContext(ctx).Order(creationOrder)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*E, 0, len(rows))
	for _, row := range rows {
		out = append(out, from(row))
	}
	return out, nil
}

// translate maps driver errors GORM recognises onto storage errors. It needs
// gorm.Config.TranslateError.
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", storage.ErrConflict, err)
	}
	return err
}

func insert[M, E any](ctx context.Context, db *gorm.DB, entity *E, to func(*E) *M) (*E, error) {
	if err := db.WithContext(ctx).Create(to(entity)).Error; err != nil {
		return nil, translate(err)
	}
	return entity, nil
}

// modify loads the row, applies fn to its domain form and saves every column
// back inside one transaction.
func modify[M, E any](ctx context.Context, db *gorm.DB, id string, from func(*M) *E, to func(*E) *M, fn func(*E)) (*E, error) {
	var out *E
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row M
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		entity := from(&row)
		fn(entity)
		if err := tx.Save(to(entity)).Error; err != nil {
			return translate(err)
		}
		out = entity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func remove[M any](ctx context.Context, db *gorm.DB, id string) (bool, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(new(M))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) CreateUser(ctx context.Context, in hr.UserInput) (*hr.User, error) {
	return insert(ctx, s.db, hr.NewUser(s.opts.NewID(), in, s.opts.Now()), userToDataModel)
}

func (s *Store) GetUser(ctx context.Context, id string) (*hr.User, error) {
	return first(ctx, s.db, userFromDataModel, "id = ?", id)
}

func (s *Store) GetUserByCedula(ctx context.Context, cedula string) (*hr.User, error) {
	return first(ctx, s.db, userFromDataModel, "cedula = ?", cedula)
}

func (s *Store) ListUsers(ctx context.Context) ([]*hr.User, error) {
	return find(ctx, s.db, userFromDataModel, "")
}

func (s *Store) UpdateUser(ctx context.Context, id string, patch hr.UserPatch) (*hr.User, error) {
	return modify(ctx, s.db, id, userFromDataModel, userToDataModel, func(u *hr.User) {
		u.Apply(patch, s.opts.Now())
	})
}

func (s *Store) DeleteUser(ctx context.Context, id string) (bool, error) {
	return remove[userDatamodel.User](ctx, s.db, id)
}

func (s *Store) CreateGerencia(ctx context.Context, in hr.GerenciaInput) (*hr.Gerencia, error) {
	return insert(ctx, s.db, hr.NewGerencia(s.opts.NewID(), in, s.opts.Now()), gerenciaToDataModel)
}

func (s *Store) GetGerencia(ctx context.Context, id string) (*hr.Gerencia, error) {
	return first(ctx, s.db, gerenciaFromDataModel, "id = ?", id)
}

func (s *Store) ListGerencias(ctx context.Context) ([]*hr.Gerencia, error) {
	return find(ctx, s.db, gerenciaFromDataModel, "")
}

func (s *Store) UpdateGerencia(ctx context.Context, id string, patch hr.GerenciaPatch) (*hr.Gerencia, error) {
	return modify(ctx, s.db, id, gerenciaFromDataModel, gerenciaToDataModel, func(g *hr.Gerencia) {
		g.Apply(patch)
	})
}

func (s *Store) DeleteGerencia(ctx context.Context, id string) (bool, error) {
	return remove[orgDatamodel.Gerencia](ctx, s.db, id)
}

func (s *Store) CreateDepartamento(ctx context.Context, in hr.DepartamentoInput) (*hr.Departamento, error) {
	return insert(ctx, s.db, hr.NewDepartamento(s.opts.NewID(), in, s.opts.Now()), departamentoToDataModel)
}

func (s *Store) GetDepartamento(ctx context.Context, id string) (*hr.Departamento, error) {
	return first(ctx, s.db, departamentoFromDataModel, "id = ?", id)
}

func (s *Store) ListDepartamentos(ctx context.Context) ([]*hr.Departamento, error) {
	return find(ctx, s.db, departamentoFromDataModel, "")
}

func (s *Store) UpdateDepartamento(ctx context.Context, id string, patch hr.DepartamentoPatch) (*hr.Departamento, error) {
	return modify(ctx, s.db, id, departamentoFromDataModel, departamentoToDataModel, func(d *hr.Departamento) {
		d.Apply(patch)
	})
}

func (s *Store) DeleteDepartamento(ctx context.Context, id string) (bool, error) {
	return remove[orgDatamodel.Departamento](ctx, s.db, id)
}

func (s *Store) CreateCargo(ctx context.Context, in hr.CargoInput) (*hr.Cargo, error) {
	return insert(ctx, s.db, hr.NewCargo(s.opts.NewID(), in, s.opts.Now()), cargoToDataModel)
}

func (s *Store) GetCargo(ctx context.Context, id string) (*hr.Cargo, error) {
	return first(ctx, s.db, cargoFromDataModel, "id = ?", id)
}

func (s *Store) ListCargos(ctx context.Context) ([]*hr.Cargo, error) {
	return find(ctx, s.db, cargoFromDataModel, "")
}

func (s *Store) UpdateCargo(ctx context.Context, id string, patch hr.CargoPatch) (*hr.Cargo, error) {
	return modify(ctx, s.db, id, cargoFromDataModel, cargoToDataModel, func(c *hr.Cargo) {
		c.Apply(patch)
	})
}

func (s *Store) DeleteCargo(ctx context.Context, id string) (bool, error) {
	return remove[orgDatamodel.Cargo](ctx, s.db, id)
}

func (s *Store) CreateEmployee(ctx context.Context, in hr.EmployeeInput) (*hr.Employee, error) {
	return insert(ctx, s.db, hr.NewEmployee(s.opts.NewID(), in, s.opts.Now()), employeeToDataModel)
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*hr.Employee, error) {
	return first(ctx, s.db, employeeFromDataModel, "id = ?", id)
}

func (s *Store) GetEmployeeByUserID(ctx context.Context, userID string) (*hr.Employee, error) {
	return first(ctx, s.db, employeeFromDataModel, "user_id = ?", userID)
}

func (s *Store) ListEmployees(ctx context.Context) ([]*hr.Employee, error) {
	return find(ctx, s.db, employeeFromDataModel, "")
}

func (s *Store) UpdateEmployee(ctx context.Context, id string, patch hr.EmployeePatch) (*hr.Employee, error) {
	return modify(ctx, s.db, id, employeeFromDataModel, employeeToDataModel, func(e *hr.Employee) {
		e.Apply(patch, s.opts.Now())
	})
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) (bool, error) {
	return remove[employeeDatamodel.Employee](ctx, s.db, id)
}

func (s *Store) CreateContract(ctx context.Context, in hr.ContractInput) (*hr.Contract, error) {
	return insert(ctx, s.db, hr.NewContract(s.opts.NewID(), in, s.opts.Now()), contractToDataModel)
}

func (s *Store) GetContract(ctx context.Context, id string) (*hr.Contract, error) {
	return first(ctx, s.db, contractFromDataModel, "id = ?", id)
}

func (s *Store) ListContracts(ctx context.Context) ([]*hr.Contract, error) {
	return find(ctx, s.db, contractFromDataModel, "")
}

func (s *Store) UpdateContract(ctx context.Context, id string, patch hr.ContractPatch) (*hr.Contract, error) {
	return modify(ctx, s.db, id, contractFromDataModel, contractToDataModel, func(c *hr.Contract) {
		c.Apply(patch)
	})
}

func (s *Store) DeleteContract(ctx context.Context, id string) (bool, error) {
	return remove[employeeDatamodel.Contract](ctx, s.db, id)
}

func (s *Store) GetContractsByEmployee(ctx context.Context, employeeID string) ([]*hr.Contract, error) {
	return find(ctx, s.db, contractFromDataModel, "employee_id = ?", employeeID)
}

func (s *Store) GetExpiringContracts(ctx context.Context) ([]*hr.Contract, error) {
	from, to := hr.ExpiryRange(s.opts.Now(), s.opts.Windows.Contracts)
	return find(ctx, s.db, contractFromDataModel,
		"is_active = ? AND fecha_fin IS NOT NULL AND fecha_fin >= ? AND fecha_fin <= ?", true, from, to)
}

func (s *Store) CreateProbationPeriod(ctx context.Context, in hr.ProbationPeriodInput) (*hr.ProbationPeriod, error) {
	return insert(ctx, s.db, hr.NewProbationPeriod(s.opts.NewID(), in, s.opts.Now()), probationToDataModel)
}

func (s *Store) GetProbationPeriod(ctx context.Context, id string) (*hr.ProbationPeriod, error) {
	return first(ctx, s.db, probationFromDataModel, "id = ?", id)
}

func (s *Store) ListProbationPeriods(ctx context.Context) ([]*hr.ProbationPeriod, error) {
	return find(ctx, s.db, probationFromDataModel, "")
}

func (s *Store) UpdateProbationPeriod(ctx context.Context, id string, patch hr.ProbationPeriodPatch) (*hr.ProbationPeriod, error) {
	return modify(ctx, s.db, id, probationFromDataModel, probationToDataModel, func(p *hr.ProbationPeriod) {
		p.Apply(patch, s.opts.Now())
	})
}

func (s *Store) DeleteProbationPeriod(ctx context.Context, id string) (bool, error) {
	return remove[employeeDatamodel.ProbationPeriod](ctx, s.db, id)
}

func (s *Store) GetProbationPeriodsByEmployee(ctx context.Context, employeeID string) ([]*hr.ProbationPeriod, error) {
	return find(ctx, s.db, probationFromDataModel, "employee_id = ?", employeeID)
}

func (s *Store) GetExpiringProbationPeriods(ctx context.Context) ([]*hr.ProbationPeriod, error) {
	until := s.opts.Now().Add(s.opts.Windows.Probation)
	return find(ctx, s.db, probationFromDataModel,
		"estatus = ? AND fecha_fin <= ?", string(hr.ProbationActive), until)
}

func (s *Store) CreateCandidate(ctx context.Context, in hr.CandidateInput) (*hr.Candidate, error) {
	return insert(ctx, s.db, hr.NewCandidate(s.opts.NewID(), in, s.opts.Now()), candidateToDataModel)
}

func (s *Store) GetCandidate(ctx context.Context, id string) (*hr.Candidate, error) {
	return first(ctx, s.db, candidateFromDataModel, "id = ?", id)
}

func (s *Store) ListCandidates(ctx context.Context) ([]*hr.Candidate, error) {
	return find(ctx, s.db, candidateFromDataModel, "")
}

func (s *Store) UpdateCandidate(ctx context.Context, id string, patch hr.CandidatePatch) (*hr.Candidate, error) {
	return modify(ctx, s.db, id, candidateFromDataModel, candidateToDataModel, func(c *hr.Candidate) {
		c.Apply(patch, s.opts.Now())
	})
}

func (s *Store) DeleteCandidate(ctx context.Context, id string) (bool, error) {
	return remove[candidateDatamodel.Candidate](ctx, s.db, id)
}

func (s *Store) CreateEgreso(ctx context.Context, in hr.EgresoInput) (*hr.Egreso, error) {
	return insert(ctx, s.db, hr.NewEgreso(s.opts.NewID(), in, s.opts.Now()), egresoToDataModel)
}

func (s *Store) GetEgreso(ctx context.Context, id string) (*hr.Egreso, error) {
	return first(ctx, s.db, egresoFromDataModel, "id = ?", id)
}

func (s *Store) ListEgresos(ctx context.Context) ([]*hr.Egreso, error) {
	return find(ctx, s.db, egresoFromDataModel, "")
}

func (s *Store) GetEgresosByEmployee(ctx context.Context, employeeID string) ([]*hr.Egreso, error) {
	return find(ctx, s.db, egresoFromDataModel, "employee_id = ?", employeeID)
}
