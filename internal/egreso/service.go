package egreso

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/keylock"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/storage"
)

type RepositoryAPI interface {
	storage.EgresoStore
	GetEmployee(ctx context.Context, id string) (*hr.Employee, error)
	UpdateEmployee(ctx context.Context, id string, patch hr.EmployeePatch) (*hr.Employee, error)
	GetContractsByEmployee(ctx context.Context, employeeID string) ([]*hr.Contract, error)
	UpdateContract(ctx context.Context, id string, patch hr.ContractPatch) (*hr.Contract, error)
}

// Service records employee exits. Egresos are append-only; recording one
// closes out the employee.
type Service struct {
	repo     RepositoryAPI
	eventBus *events.EventBus
	logger   *slog.Logger

	// Locks holds the employee across the exit check and the close-out.
	Locks *keylock.Locker
}

func NewService(repo RepositoryAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		Locks:    keylock.New(),
	}
}

func (s *Service) ListEgresos(ctx context.Context, filter ListFilter) ([]*hr.Egreso, error) {
	var (
		all []*hr.Egreso
		err error
	)
	if filter.EmployeeID != "" {
		all, err = s.repo.GetEgresosByEmployee(ctx, filter.EmployeeID)
	} else {
		all, err = s.repo.ListEgresos(ctx)
	}
	if err != nil {
		s.logger.Error("failed to list egresos", "error", err)
		return nil, err
	}

	out := make([]*hr.Egreso, 0, len(all))
	for _, e := range all {
		if filter.matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Service) GetEgreso(ctx context.Context, id string) (*hr.Egreso, error) {
	e, err := s.repo.GetEgreso(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, internal.NewNotFoundError("egreso not found", internal.ErrCodeEgresoNotFound)
	}
	return e, nil
}

// CreateEgreso records the exit, marks the employee inactivo, deactivates its
// active contracts and publishes employee.exited.
func (s *Service) CreateEgreso(ctx context.Context, dto CreateEgresoDTO) (*hr.Egreso, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	processedBy := internal.UserIDFromContext(ctx)
	if processedBy == "" {
		return nil, internal.NewUnauthorizedError("authentication required", internal.ErrCodeInvalidToken)
	}
	unlock := s.Locks.Lock(keylock.EmployeeKey(dto.EmployeeID))
	defer unlock()

	emp, err := s.repo.GetEmployee(ctx, dto.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, internal.NewValidationFieldError("employeeId", "employeeId does not exist", internal.ErrCodeEmployeeNotFound)
	}
	if emp.Status == hr.EmployeeStatusInactive {
		return nil, internal.NewConflictError("employee has already exited", internal.ErrCodeEmployeeInactive)
	}

	v := validation.NewValidator()
	v.Field("fechaEgreso", dto.FechaEgreso.Value()).NotBefore(&emp.StartDate, "fechaIngreso")
	if err := v.Validate(); err != nil {
		return nil, err
	}

	eg, err := s.repo.CreateEgreso(ctx, dto.toInput(processedBy))
	if err != nil {
		s.logger.Error("failed to create egreso", "error", err, "employee_id", emp.ID)
		return nil, err
	}

	if err := s.closeOut(ctx, emp.ID); err != nil {
		s.logger.Error("failed to close out exited employee", "error", err, "employee_id", emp.ID, "egreso_id", eg.ID)
		return nil, err
	}

	s.logger.Info("employee exited",
		"employee_id", emp.ID,
		"egreso_id", eg.ID,
		"type", eg.Type,
		"processed_by", processedBy)
	evt := events.NewEmployeeExitedEvent(emp.ID, eg.ID, string(eg.Type), eg.ExitDate)
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		s.logger.Error("failed to publish employee exited event", "error", err, "employee_id", emp.ID)
	}
	return eg, nil
}

func (s *Service) closeOut(ctx context.Context, employeeID string) error {
	inactive := hr.EmployeeStatusInactive
	if _, err := s.repo.UpdateEmployee(ctx, employeeID, hr.EmployeePatch{Status: &inactive}); err != nil {
		return fmt.Errorf("deactivate employee: %w", err)
	}

	contracts, err := s.repo.GetContractsByEmployee(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("load contracts: %w", err)
	}
	off := false
	for _, c := range contracts {
		if !c.IsActive {
			continue
		}
		if _, err := s.repo.UpdateContract(ctx, c.ID, hr.ContractPatch{IsActive: &off}); err != nil {
			return fmt.Errorf("deactivate contract %s: %w", c.ID, err)
		}
	}
	return nil
}
