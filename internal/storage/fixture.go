package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/frahmantamala/hr-management/internal/core/hr"
	"gopkg.in/yaml.v3"
)

const fixtureDateLayout = "2006-01-02"

// Fixture is seed data for a fresh store. Rows refer to each other by Key,
// never by id, so the same file works against any backend.
type Fixture struct {
	Gerencias        []GerenciaRow  `yaml:"gerencias"`
	Departamentos    []NamedRow     `yaml:"departamentos"`
	Cargos           []NamedRow     `yaml:"cargos"`
	Users            []UserRow      `yaml:"users"`
	Employees        []EmployeeRow  `yaml:"employees"`
	Contracts        []ContractRow  `yaml:"contracts"`
	ProbationPeriods []ProbationRow `yaml:"probation_periods"`
	Candidates       []CandidateRow `yaml:"candidates"`
}

type GerenciaRow struct {
	Key         string `yaml:"key"`
	Name        string `yaml:"nombre"`
	Description string `yaml:"descripcion"`
}

// NamedRow is a departamento (Parent is a gerencia key) or a cargo (Parent is
// a departamento key).
type NamedRow struct {
	Key    string `yaml:"key"`
	Name   string `yaml:"nombre"`
	Parent string `yaml:"parent"`
}

type UserRow struct {
	Key      string `yaml:"key"`
	Cedula   string `yaml:"cedula"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Inactive bool   `yaml:"inactive"`
}

type EmployeeRow struct {
	Key        string `yaml:"key"`
	User       string `yaml:"user"`
	Cargo      string `yaml:"cargo"`
	Supervisor string `yaml:"supervisor"`
	FirstName  string `yaml:"nombres"`
	LastName   string `yaml:"apellidos"`
	Email      string `yaml:"email"`
	Phone      string `yaml:"telefono"`
	BirthDate  string `yaml:"fecha_nacimiento"`
	StartDate  string `yaml:"fecha_ingreso"`
	Status     string `yaml:"estatus"`
}

// ContractRow dates may be absolute (2006-01-02) or relative to the seed
// time in days ("+15d", "-30d").
type ContractRow struct {
	Employee  string `yaml:"employee"`
	Type      string `yaml:"tipo"`
	StartDate string `yaml:"fecha_inicio"`
	EndDate   string `yaml:"fecha_fin"`
	Inactive  bool   `yaml:"inactive"`
}

type ProbationRow struct {
	Employee  string `yaml:"employee"`
	StartDate string `yaml:"fecha_inicio"`
	EndDate   string `yaml:"fecha_fin"`
	Status    string `yaml:"estatus"`
	Notes     string `yaml:"observaciones"`
}

type CandidateRow struct {
	Cedula      string `yaml:"cedula"`
	FirstName   string `yaml:"nombres"`
	LastName    string `yaml:"apellidos"`
	Email       string `yaml:"email"`
	Phone       string `yaml:"telefono"`
	BirthDate   string `yaml:"fecha_nacimiento"`
	Cargo       string `yaml:"cargo"`
	CVURL       string `yaml:"cv_url"`
	Notes       string `yaml:"notas"`
	Status      string `yaml:"estatus"`
	SubmittedBy string `yaml:"submitted_by"`
}

func LoadFixture(path string) (*Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: read file %s: %w", path, err)
	}
	return ParseFixture(b)
}

func ParseFixture(b []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("fixture: parse yaml: %w", err)
	}
	return &f, nil
}

// PasswordHasher turns a fixture's plain password into the stored hash.
type PasswordHasher func(plain string) (string, error)

// SeedResult maps fixture keys to the ids the store assigned.
type SeedResult struct {
	Gerencias     map[string]string
	Departamentos map[string]string
	Cargos        map[string]string
	Users         map[string]string
	Employees     map[string]string
}

type seeder struct {
	repo Repository
	hash PasswordHasher
	now  time.Time
	res  *SeedResult
}

// Seed writes the fixture into repo in dependency order. It stops at the first
// failing row; rows written before the failure stay.
func Seed(ctx context.Context, repo Repository, f *Fixture, hash PasswordHasher, now time.Time) (*SeedResult, error) {
	s := &seeder{
		repo: repo,
		hash: hash,
		now:  now,
		res: &SeedResult{
			Gerencias:     map[string]string{},
			Departamentos: map[string]string{},
			Cargos:        map[string]string{},
			Users:         map[string]string{},
			Employees:     map[string]string{},
		},
	}

	steps := []func(context.Context, *Fixture) error{
		s.organization,
		s.users,
		s.employees,
		s.contracts,
		s.probation,
		s.candidates,
	}
	for _, step := range steps {
		if err := step(ctx, f); err != nil {
			return s.res, err
		}
	}
	return s.res, nil
}

func (s *seeder) organization(ctx context.Context, f *Fixture) error {
	for _, row := range f.Gerencias {
		g, err := s.repo.CreateGerencia(ctx, hr.GerenciaInput{Name: row.Name, Description: row.Description})
		if err != nil {
			return fmt.Errorf("fixture: gerencia %q: %w", row.Key, err)
		}
		s.res.Gerencias[row.Key] = g.ID
	}
	for _, row := range f.Departamentos {
		parent, err := lookup(s.res.Gerencias, "gerencia", row.Parent)
		if err != nil {
			return fmt.Errorf("fixture: departamento %q: %w", row.Key, err)
		}
		d, err := s.repo.CreateDepartamento(ctx, hr.DepartamentoInput{Name: row.Name, GerenciaID: parent})
		if err != nil {
			return fmt.Errorf("fixture: departamento %q: %w", row.Key, err)
		}
		s.res.Departamentos[row.Key] = d.ID
	}
	for _, row := range f.Cargos {
		parent, err := lookup(s.res.Departamentos, "departamento", row.Parent)
		if err != nil {
			return fmt.Errorf("fixture: cargo %q: %w", row.Key, err)
		}
		c, err := s.repo.CreateCargo(ctx, hr.CargoInput{Name: row.Name, DepartamentoID: parent})
		if err != nil {
			return fmt.Errorf("fixture: cargo %q: %w", row.Key, err)
		}
		s.res.Cargos[row.Key] = c.ID
	}
	return nil
}

func (s *seeder) users(ctx context.Context, f *Fixture) error {
	for _, row := range f.Users {
		password := row.Password
		if s.hash != nil {
			hashed, err := s.hash(row.Password)
			if err != nil {
				return fmt.Errorf("fixture: user %q: hash password: %w", row.Key, err)
			}
			password = hashed
		}
		active := !row.Inactive
		u, err := s.repo.CreateUser(ctx, hr.UserInput{
			Cedula:   row.Cedula,
			Password: password,
			Role:     hr.Role(row.Role),
			IsActive: &active,
		})
		if err != nil {
			return fmt.Errorf("fixture: user %q: %w", row.Key, err)
		}
		s.res.Users[row.Key] = u.ID
	}
	return nil
}

// employees are created first and linked to their supervisors afterwards, so
// rows may reference supervisors listed further down.
func (s *seeder) employees(ctx context.Context, f *Fixture) error {
	for _, row := range f.Employees {
		userID, err := lookup(s.res.Users, "user", row.User)
		if err != nil {
			return fmt.Errorf("fixture: employee %q: %w", row.Key, err)
		}
		cargoID, err := lookup(s.res.Cargos, "cargo", row.Cargo)
		if err != nil {
			return fmt.Errorf("fixture: employee %q: %w", row.Key, err)
		}
		birth, err := s.date(row.BirthDate)
		if err != nil {
			return fmt.Errorf("fixture: employee %q: %w", row.Key, err)
		}
		start, err := s.date(row.StartDate)
		if err != nil {
			return fmt.Errorf("fixture: employee %q: %w", row.Key, err)
		}
		e, err := s.repo.CreateEmployee(ctx, hr.EmployeeInput{
			UserID:    userID,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Email:     row.Email,
			Phone:     row.Phone,
			BirthDate: birth,
			CargoID:   cargoID,
			StartDate: start,
			Status:    hr.EmployeeStatus(row.Status),
		})
		if err != nil {
			return fmt.Errorf("fixture: employee %q: %w", row.Key, err)
		}
		s.res.Employees[row.Key] = e.ID
	}

	for _, row := range f.Employees {
		if row.Supervisor == "" {
			continue
		}
		supID, err := lookup(s.res.Employees, "employee", row.Supervisor)
		if err != nil {
			return fmt.Errorf("fixture: employee %q supervisor: %w", row.Key, err)
		}
		_, err = s.repo.UpdateEmployee(ctx, s.res.Employees[row.Key], hr.EmployeePatch{SupervisorID: hr.Some(supID)})
		if err != nil {
			return fmt.Errorf("fixture: employee %q supervisor: %w", row.Key, err)
		}
	}
	return nil
}

func (s *seeder) contracts(ctx context.Context, f *Fixture) error {
	for i, row := range f.Contracts {
		employeeID, err := lookup(s.res.Employees, "employee", row.Employee)
		if err != nil {
			return fmt.Errorf("fixture: contract #%d: %w", i, err)
		}
		start, err := s.date(row.StartDate)
		if err != nil {
			return fmt.Errorf("fixture: contract #%d: %w", i, err)
		}
		var end *time.Time
		if row.EndDate != "" {
			t, err := s.date(row.EndDate)
			if err != nil {
				return fmt.Errorf("fixture: contract #%d: %w", i, err)
			}
			end = &t
		}
		active := !row.Inactive
		_, err = s.repo.CreateContract(ctx, hr.ContractInput{
			EmployeeID: employeeID,
			Type:       hr.ContractType(row.Type),
			StartDate:  start,
			EndDate:    end,
			IsActive:   &active,
		})
		if err != nil {
			return fmt.Errorf("fixture: contract #%d: %w", i, err)
		}
	}
	return nil
}

func (s *seeder) probation(ctx context.Context, f *Fixture) error {
	for i, row := range f.ProbationPeriods {
		employeeID, err := lookup(s.res.Employees, "employee", row.Employee)
		if err != nil {
			return fmt.Errorf("fixture: probation period #%d: %w", i, err)
		}
		start, err := s.date(row.StartDate)
		if err != nil {
			return fmt.Errorf("fixture: probation period #%d: %w", i, err)
		}
		end, err := s.date(row.EndDate)
		if err != nil {
			return fmt.Errorf("fixture: probation period #%d: %w", i, err)
		}
		_, err = s.repo.CreateProbationPeriod(ctx, hr.ProbationPeriodInput{
			EmployeeID: employeeID,
			StartDate:  start,
			EndDate:    end,
			Status:     hr.ProbationStatus(row.Status),
			Notes:      row.Notes,
		})
		if err != nil {
			return fmt.Errorf("fixture: probation period #%d: %w", i, err)
		}
	}
	return nil
}

func (s *seeder) candidates(ctx context.Context, f *Fixture) error {
	for _, row := range f.Candidates {
		cargoID, err := lookup(s.res.Cargos, "cargo", row.Cargo)
		if err != nil {
			return fmt.Errorf("fixture: candidate %q: %w", row.Cedula, err)
		}
		submitter, err := lookup(s.res.Users, "user", row.SubmittedBy)
		if err != nil {
			return fmt.Errorf("fixture: candidate %q: %w", row.Cedula, err)
		}
		birth, err := s.date(row.BirthDate)
		if err != nil {
			return fmt.Errorf("fixture: candidate %q: %w", row.Cedula, err)
		}
		_, err = s.repo.CreateCandidate(ctx, hr.CandidateInput{
			Cedula:      row.Cedula,
			FirstName:   row.FirstName,
			LastName:    row.LastName,
			Email:       row.Email,
			Phone:       row.Phone,
			BirthDate:   birth,
			CargoID:     cargoID,
			CVURL:       row.CVURL,
			Notes:       row.Notes,
			Status:      hr.CandidateStatus(row.Status),
			SubmittedBy: submitter,
		})
		if err != nil {
			return fmt.Errorf("fixture: candidate %q: %w", row.Cedula, err)
		}
	}
	return nil
}

// date parses an absolute date or a "+Nd"/"-Nd" offset from the seed time.
// An empty value is the zero time.
func (s *seeder) date(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if v[0] == '+' || v[0] == '-' {
		var days int
		if _, err := fmt.Sscanf(v, "%dd", &days); err != nil {
			return time.Time{}, fmt.Errorf("invalid relative date %q", v)
		}
		return hr.StartOfDay(s.now).AddDate(0, 0, days), nil
	}
	t, err := time.Parse(fixtureDateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", v, err)
	}
	return t, nil
}

func lookup(ids map[string]string, kind, key string) (string, error) {
	id, ok := ids[key]
	if !ok {
		return "", fmt.Errorf("unknown %s key %q", kind, key)
	}
	return id, nil
}
