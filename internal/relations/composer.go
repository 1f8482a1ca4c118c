// Package relations builds the denormalized WithRelations read models.
//
// Composition is all-or-nothing: a record whose required references do not
// resolve is left out of the result instead of being returned half-filled.
// Optional references (supervisor, contract, evaluator) are attached when
// they resolve and left empty otherwise.
package relations

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/storage"
)

type Composer struct {
	repo   storage.Repository
	logger *slog.Logger
}

func NewComposer(repo storage.Repository, logger *slog.Logger) *Composer {
	return &Composer{repo: repo, logger: logger}
}

// missing names the first reference that failed to resolve.
type missing struct {
	link string
	id   string
}

func (c *Composer) exclude(ctx context.Context, kind, id string, m *missing) {
	c.logger.DebugContext(ctx, "record excluded from composed view",
		"kind", kind, "id", id, "missing", m.link, "ref_id", m.id)
}

func (c *Composer) cargo(ctx context.Context, src source, id string) (*hr.CargoWithRelations, *missing, error) {
	cargo, err := src.cargo(ctx, id)
	if err != nil || cargo == nil {
		return nil, &missing{"cargo", id}, err
	}
	dep, err := src.departamento(ctx, cargo.DepartamentoID)
	if err != nil || dep == nil {
		return nil, &missing{"departamento", cargo.DepartamentoID}, err
	}
	ger, err := src.gerencia(ctx, dep.GerenciaID)
	if err != nil || ger == nil {
		return nil, &missing{"gerencia", dep.GerenciaID}, err
	}
	return &hr.CargoWithRelations{
		Cargo: *cargo,
		Departamento: hr.DepartamentoWithRelations{
			Departamento: *dep,
			Gerencia:     *ger,
		},
	}, nil, nil
}

func (c *Composer) employee(ctx context.Context, src source, e *hr.Employee) (*hr.EmployeeWithRelations, *missing, error) {
	user, err := src.user(ctx, e.UserID)
	if err != nil || user == nil {
		return nil, &missing{"user", e.UserID}, err
	}
	cargo, m, err := c.cargo(ctx, src, e.CargoID)
	if err != nil || m != nil {
		return nil, m, err
	}

	out := &hr.EmployeeWithRelations{
		Employee: *e,
		User:     sanitize(user),
		Cargo:    *cargo,
	}

	if e.SupervisorID != nil {
		sup, err := src.employee(ctx, *e.SupervisorID)
		if err != nil {
			return nil, nil, err
		}
		if sup != nil {
			shallow := *sup
			out.Supervisor = &shallow
		}
	}

	contracts, err := src.contracts(ctx, e.ID)
	if err != nil {
		return nil, nil, err
	}
	if active := ActiveContract(contracts); active != nil {
		picked := *active
		out.Contract = &picked
	}
	return out, nil, nil
}

// ActiveContract picks the active contract with the latest start date. Ties
// go to the first one in list order.
func ActiveContract(contracts []*hr.Contract) *hr.Contract {
	var pick *hr.Contract
	for _, c := range contracts {
		if !c.IsActive {
			continue
		}
		if pick == nil || c.StartDate.After(pick.StartDate) {
			pick = c
		}
	}
	return pick
}

func sanitize(u *hr.User) hr.User {
	out := *u
	out.Password = ""
	return out
}

func optionalUser(ctx context.Context, src source, id *string) (*hr.User, error) {
	if id == nil {
		return nil, nil
	}
	u, err := src.user(ctx, *id)
	if err != nil || u == nil {
		return nil, err
	}
	clean := sanitize(u)
	return &clean, nil
}

// ComposeEmployee resolves e's relations. ok is false when a required
// reference is missing.
func (c *Composer) ComposeEmployee(ctx context.Context, e *hr.Employee) (*hr.EmployeeWithRelations, bool, error) {
	out, m, err := c.employee(ctx, direct{c.repo}, e)
	if err != nil {
		return nil, false, err
	}
	if m != nil {
		c.exclude(ctx, "employee", e.ID, m)
		return nil, false, nil
	}
	return out, true, nil
}

func (c *Composer) GetEmployeeWithRelations(ctx context.Context, id string) (*hr.EmployeeWithRelations, error) {
	e, err := c.repo.GetEmployee(ctx, id)
	if err != nil || e == nil {
		return nil, err
	}
	out, _, err := c.ComposeEmployee(ctx, e)
	return out, err
}

func (c *Composer) ListEmployeesWithRelations(ctx context.Context) ([]*hr.EmployeeWithRelations, error) {
	snap, err := loadSnapshot(ctx, c.repo)
	if err != nil {
		return nil, err
	}

	out := make([]*hr.EmployeeWithRelations, 0, len(snap.employeeList))
	for _, e := range snap.employeeList {
		composed, m, err := c.employee(ctx, snap, e)
		if err != nil {
			return nil, err
		}
		if m != nil {
			c.exclude(ctx, "employee", e.ID, m)
			continue
		}
		out = append(out, composed)
	}
	return out, nil
}

func (c *Composer) candidate(ctx context.Context, src source, k *hr.Candidate) (*hr.CandidateWithRelations, *missing, error) {
	cargo, m, err := c.cargo(ctx, src, k.CargoID)
	if err != nil || m != nil {
		return nil, m, err
	}
	submitter, err := src.user(ctx, k.SubmittedBy)
	if err != nil || submitter == nil {
		return nil, &missing{"submittedBy", k.SubmittedBy}, err
	}
	evaluator, err := optionalUser(ctx, src, k.EvaluatedBy)
	if err != nil {
		return nil, nil, err
	}
	return &hr.CandidateWithRelations{
		Candidate:       *k,
		Cargo:           *cargo,
		SubmittedByUser: sanitize(submitter),
		EvaluatedByUser: evaluator,
	}, nil, nil
}

func (c *Composer) GetCandidateWithRelations(ctx context.Context, id string) (*hr.CandidateWithRelations, error) {
	k, err := c.repo.GetCandidate(ctx, id)
	if err != nil || k == nil {
		return nil, err
	}
	out, m, err := c.candidate(ctx, direct{c.repo}, k)
	if err != nil {
		return nil, err
	}
	if m != nil {
		c.exclude(ctx, "candidate", k.ID, m)
		return nil, nil
	}
	return out, nil
}

func (c *Composer) ListCandidatesWithRelations(ctx context.Context) ([]*hr.CandidateWithRelations, error) {
	snap, err := loadSnapshot(ctx, c.repo)
	if err != nil {
		return nil, err
	}
	candidates, err := c.repo.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*hr.CandidateWithRelations, 0, len(candidates))
	for _, k := range candidates {
		composed, m, err := c.candidate(ctx, snap, k)
		if err != nil {
			return nil, err
		}
		if m != nil {
			c.exclude(ctx, "candidate", k.ID, m)
			continue
		}
		out = append(out, composed)
	}
	return out, nil
}

func (c *Composer) probation(ctx context.Context, src source, p *hr.ProbationPeriod) (*hr.ProbationPeriodWithRelations, *missing, error) {
	e, err := src.employee(ctx, p.EmployeeID)
	if err != nil || e == nil {
		return nil, &missing{"employee", p.EmployeeID}, err
	}
	employee, m, err := c.employee(ctx, src, e)
	if err != nil || m != nil {
		return nil, m, err
	}
	evaluator, err := optionalUser(ctx, src, p.EvaluatedBy)
	if err != nil {
		return nil, nil, err
	}
	return &hr.ProbationPeriodWithRelations{
		ProbationPeriod: *p,
		Employee:        *employee,
		EvaluatedByUser: evaluator,
	}, nil, nil
}

func (c *Composer) GetProbationPeriodWithRelations(ctx context.Context, id string) (*hr.ProbationPeriodWithRelations, error) {
	p, err := c.repo.GetProbationPeriod(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	out, m, err := c.probation(ctx, direct{c.repo}, p)
	if err != nil {
		return nil, err
	}
	if m != nil {
		c.exclude(ctx, "probation_period", p.ID, m)
		return nil, nil
	}
	return out, nil
}

func (c *Composer) ListProbationPeriodsWithRelations(ctx context.Context) ([]*hr.ProbationPeriodWithRelations, error) {
	periods, err := c.repo.ListProbationPeriods(ctx)
	if err != nil {
		return nil, err
	}
	return c.ComposeProbationPeriods(ctx, periods)
}

// ComposeProbationPeriods composes an already fetched list, such as the
// expiring periods, dropping the ones whose employee does not compose.
func (c *Composer) ComposeProbationPeriods(ctx context.Context, periods []*hr.ProbationPeriod) ([]*hr.ProbationPeriodWithRelations, error) {
	snap, err := loadSnapshot(ctx, c.repo)
	if err != nil {
		return nil, err
	}

	out := make([]*hr.ProbationPeriodWithRelations, 0, len(periods))
	for _, p := range periods {
		composed, m, err := c.probation(ctx, snap, p)
		if err != nil {
			return nil, err
		}
		if m != nil {
			c.exclude(ctx, "probation_period", p.ID, m)
			continue
		}
		out = append(out, composed)
	}
	return out, nil
}

// ComposeContracts attaches the composed employee to each contract, dropping
// contracts whose employee does not compose.
func (c *Composer) ComposeContracts(ctx context.Context, contracts []*hr.Contract) ([]*hr.ContractWithEmployee, error) {
	snap, err := loadSnapshot(ctx, c.repo)
	if err != nil {
		return nil, err
	}

	out := make([]*hr.ContractWithEmployee, 0, len(contracts))
	for _, k := range contracts {
		e, err := snap.employee(ctx, k.EmployeeID)
		if err != nil {
			return nil, err
		}
		if e == nil {
			c.exclude(ctx, "contract", k.ID, &missing{"employee", k.EmployeeID})
			continue
		}
		employee, m, err := c.employee(ctx, snap, e)
		if err != nil {
			return nil, err
		}
		if m != nil {
			c.exclude(ctx, "contract", k.ID, m)
			continue
		}
		out = append(out, &hr.ContractWithEmployee{Contract: *k, Employee: *employee})
	}
	return out, nil
}
