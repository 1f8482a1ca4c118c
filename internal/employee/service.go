package employee

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/keylock"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/storage"
)

type RepositoryAPI interface {
	storage.EmployeeStore
	GetUser(ctx context.Context, id string) (*hr.User, error)
	GetCargo(ctx context.Context, id string) (*hr.Cargo, error)
	GetContractsByEmployee(ctx context.Context, employeeID string) ([]*hr.Contract, error)
	GetProbationPeriodsByEmployee(ctx context.Context, employeeID string) ([]*hr.ProbationPeriod, error)
	GetEgresosByEmployee(ctx context.Context, employeeID string) ([]*hr.Egreso, error)
}

type ComposerAPI interface {
	GetEmployeeWithRelations(ctx context.Context, id string) (*hr.EmployeeWithRelations, error)
	ListEmployeesWithRelations(ctx context.Context) ([]*hr.EmployeeWithRelations, error)
}

type Service struct {
	repo     RepositoryAPI
	composer ComposerAPI
	eventBus *events.EventBus
	logger   *slog.Logger

	// Locks serializes the uniqueness checks on user and email with the
	// writes they guard, and deletes with writes against the employee.
	Locks *keylock.Locker
}

func NewService(repo RepositoryAPI, composer ComposerAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		composer: composer,
		eventBus: eventBus,
		logger:   logger,
		Locks:    keylock.New(),
	}
}

func notFound() error {
	return internal.NewNotFoundError("employee not found", internal.ErrCodeEmployeeNotFound)
}

// ListEmployees returns the composed employees matching filter. Employees
// whose user or org chain is missing are left out.
func (s *Service) ListEmployees(ctx context.Context, filter ListFilter) ([]*hr.EmployeeWithRelations, error) {
	all, err := s.composer.ListEmployeesWithRelations(ctx)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}
	out := make([]*hr.EmployeeWithRelations, 0, len(all))
	for _, e := range all {
		if filter.matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Service) GetEmployee(ctx context.Context, id string) (*hr.EmployeeWithRelations, error) {
	e, err := s.composer.GetEmployeeWithRelations(ctx, id)
	if err != nil {
		s.logger.Error("failed to get employee", "error", err, "employee_id", id)
		return nil, err
	}
	if e == nil {
		return nil, notFound()
	}
	return e, nil
}

func (s *Service) requireEmployee(ctx context.Context, id string) (*hr.Employee, error) {
	e, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, notFound()
	}
	return e, nil
}

// checkUser verifies userID exists and is not linked to another employee.
func (s *Service) checkUser(ctx context.Context, userID, selfID string) error {
	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return internal.NewValidationFieldError("userId", "userId does not exist", internal.ErrCodeUserNotFound)
	}
	linked, err := s.repo.GetEmployeeByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if linked != nil && linked.ID != selfID {
		return internal.NewConflictError("user is already linked to another employee", internal.ErrCodeUserAlreadyLinked)
	}
	return nil
}

func (s *Service) checkCargo(ctx context.Context, cargoID string) error {
	c, err := s.repo.GetCargo(ctx, cargoID)
	if err != nil {
		return err
	}
	if c == nil {
		return internal.NewValidationFieldError("cargoId", "cargoId does not exist", internal.ErrCodeCargoNotFound)
	}
	return nil
}

func (s *Service) checkEmail(ctx context.Context, email, selfID string) error {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return err
	}
	for _, e := range employees {
		if e.ID != selfID && strings.EqualFold(e.Email, email) {
			return internal.NewConflictError("an employee with this email already exists", internal.ErrCodeDuplicateEmail)
		}
	}
	return nil
}

// checkSupervisor verifies supervisorID exists and that following the
// supervisor chain upward from it never reaches selfID.
func (s *Service) checkSupervisor(ctx context.Context, supervisorID, selfID string) error {
	if supervisorID == selfID {
		return internal.NewValidationFieldError("supervisorId", "an employee cannot supervise themselves", internal.ErrCodeSupervisorCycle)
	}

	seen := map[string]bool{}
	current := supervisorID
	for current != "" {
		if current == selfID {
			return internal.NewValidationFieldError("supervisorId", "supervisor chain would form a cycle", internal.ErrCodeSupervisorCycle)
		}
		if seen[current] {
			// pre-existing cycle above us; nothing we add can close it
			return nil
		}
		seen[current] = true

		e, err := s.repo.GetEmployee(ctx, current)
		if err != nil {
			return err
		}
		if e == nil {
			if current == supervisorID {
				return internal.NewValidationFieldError("supervisorId", "supervisorId does not exist", internal.ErrCodeEmployeeNotFound)
			}
			return nil
		}
		current = ""
		if e.SupervisorID != nil {
			current = *e.SupervisorID
		}
	}
	return nil
}

func (s *Service) CreateEmployee(ctx context.Context, dto CreateEmployeeDTO) (*hr.Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	unlock := s.Locks.Lock(keylock.UserKey(dto.UserID), keylock.EmailKey(dto.Email))
	defer unlock()

	if err := s.checkUser(ctx, dto.UserID, ""); err != nil {
		return nil, err
	}
	if err := s.checkCargo(ctx, dto.CargoID); err != nil {
		return nil, err
	}
	if dto.SupervisorID != nil && *dto.SupervisorID != "" {
		if err := s.checkSupervisor(ctx, *dto.SupervisorID, ""); err != nil {
			return nil, err
		}
	} else {
		dto.SupervisorID = nil
	}
	if err := s.checkEmail(ctx, dto.Email, ""); err != nil {
		return nil, err
	}

	e, err := s.repo.CreateEmployee(ctx, dto.toInput())
	if err != nil {
		s.logger.Error("failed to create employee", "error", err)
		return nil, err
	}

	s.logger.Info("employee created", "employee_id", e.ID, "user_id", e.UserID)
	if err := s.eventBus.Publish(ctx, events.NewEmployeeCreatedEvent(e.ID, e.UserID, e.CargoID)); err != nil {
		s.logger.Error("failed to publish employee created event", "error", err, "employee_id", e.ID)
	}
	return e, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, id string, dto UpdateEmployeeDTO) (*hr.Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	keys := []string{keylock.EmployeeKey(id)}
	if dto.UserID != nil {
		keys = append(keys, keylock.UserKey(*dto.UserID))
	}
	if dto.Email != nil {
		keys = append(keys, keylock.EmailKey(*dto.Email))
	}
	unlock := s.Locks.Lock(keys...)
	defer unlock()

	if _, err := s.requireEmployee(ctx, id); err != nil {
		return nil, err
	}

	if dto.UserID != nil {
		if err := s.checkUser(ctx, *dto.UserID, id); err != nil {
			return nil, err
		}
	}
	if dto.CargoID != nil {
		if err := s.checkCargo(ctx, *dto.CargoID); err != nil {
			return nil, err
		}
	}
	if dto.SupervisorID.Value != nil && *dto.SupervisorID.Value == "" {
		dto.SupervisorID.Value = nil
	}
	if dto.SupervisorID.Value != nil {
		if err := s.checkSupervisor(ctx, *dto.SupervisorID.Value, id); err != nil {
			return nil, err
		}
	}
	if dto.Email != nil {
		if err := s.checkEmail(ctx, *dto.Email, id); err != nil {
			return nil, err
		}
	}

	e, err := s.repo.UpdateEmployee(ctx, id, dto.toPatch())
	if err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, err
	}
	if e == nil {
		return nil, notFound()
	}
	return e, nil
}

func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	unlock := s.Locks.Lock(keylock.EmployeeKey(id))
	defer unlock()

	if _, err := s.requireEmployee(ctx, id); err != nil {
		return err
	}

	contracts, err := s.repo.GetContractsByEmployee(ctx, id)
	if err != nil {
		return err
	}
	periods, err := s.repo.GetProbationPeriodsByEmployee(ctx, id)
	if err != nil {
		return err
	}
	egresos, err := s.repo.GetEgresosByEmployee(ctx, id)
	if err != nil {
		return err
	}
	if len(contracts)+len(periods)+len(egresos) > 0 {
		return internal.NewConflictError("cannot delete: contracts, probation periods or egresos still reference it", internal.ErrCodeHasDependents)
	}

	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return err
	}
	for _, e := range employees {
		if e.SupervisorID != nil && *e.SupervisorID == id {
			return internal.NewConflictError("cannot delete: other employees report to it", internal.ErrCodeHasDependents)
		}
	}

	deleted, err := s.repo.DeleteEmployee(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return err
	}
	if !deleted {
		return notFound()
	}
	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

func (s *Service) ListContracts(ctx context.Context, employeeID string) ([]*hr.Contract, error) {
	if _, err := s.requireEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.repo.GetContractsByEmployee(ctx, employeeID)
}

func (s *Service) ListProbationPeriods(ctx context.Context, employeeID string) ([]*hr.ProbationPeriod, error) {
	if _, err := s.requireEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.repo.GetProbationPeriodsByEmployee(ctx, employeeID)
}

func (s *Service) ListEgresos(ctx context.Context, employeeID string) ([]*hr.Egreso, error) {
	if _, err := s.requireEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.repo.GetEgresosByEmployee(ctx, employeeID)
}
