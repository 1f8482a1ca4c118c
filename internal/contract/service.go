package contract

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/keylock"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/storage"
)

type RepositoryAPI interface {
	storage.ContractStore
	GetEmployee(ctx context.Context, id string) (*hr.Employee, error)
}

type ComposerAPI interface {
	ComposeContracts(ctx context.Context, contracts []*hr.Contract) ([]*hr.ContractWithEmployee, error)
}

// Service manages employment contracts. An employee holds at most one active
// contract at a time.
type Service struct {
	repo     RepositoryAPI
	composer ComposerAPI
	logger   *slog.Logger

	// Locks serializes writes per employee. Share it with the egreso and
	// probation services so their checks see each other's writes.
	Locks *keylock.Locker
}

func NewService(repo RepositoryAPI, composer ComposerAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		composer: composer,
		logger:   logger,
		Locks:    keylock.New(),
	}
}

func activeConflict() error {
	return internal.NewConflictError("employee already has an active contract", internal.ErrCodeActiveContractExist)
}

func notFound() error {
	return internal.NewNotFoundError("contract not found", internal.ErrCodeContractNotFound)
}

func (s *Service) ListContracts(ctx context.Context, filter ListFilter) ([]*hr.Contract, error) {
	var (
		all []*hr.Contract
		err error
	)
	if filter.EmployeeID != "" {
		all, err = s.repo.GetContractsByEmployee(ctx, filter.EmployeeID)
	} else {
		all, err = s.repo.ListContracts(ctx)
	}
	if err != nil {
		s.logger.Error("failed to list contracts", "error", err)
		return nil, err
	}

	out := make([]*hr.Contract, 0, len(all))
	for _, c := range all {
		if filter.matches(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Service) GetContract(ctx context.Context, id string) (*hr.Contract, error) {
	c, err := s.repo.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound()
	}
	return c, nil
}

// GetExpiring returns active contracts ending within the configured window,
// each with its composed employee.
func (s *Service) GetExpiring(ctx context.Context) ([]*hr.ContractWithEmployee, error) {
	expiring, err := s.repo.GetExpiringContracts(ctx)
	if err != nil {
		s.logger.Error("failed to load expiring contracts", "error", err)
		return nil, err
	}
	return s.composer.ComposeContracts(ctx, expiring)
}

func (s *Service) requireEmployee(ctx context.Context, id string) (*hr.Employee, error) {
	e, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, internal.NewValidationFieldError("employeeId", "employeeId does not exist", internal.ErrCodeEmployeeNotFound)
	}
	return e, nil
}

// ensureNoOtherActive fails when employeeID already holds an active contract
// other than selfID.
func (s *Service) ensureNoOtherActive(ctx context.Context, employeeID, selfID string) error {
	contracts, err := s.repo.GetContractsByEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	for _, c := range contracts {
		if c.IsActive && c.ID != selfID {
			return activeConflict()
		}
	}
	return nil
}

// ensureEmployeeActive fails when e has exited.
func ensureEmployeeActive(e *hr.Employee) error {
	if e.Status == hr.EmployeeStatusInactive {
		return internal.NewConflictError("cannot open an active contract for an inactive employee", internal.ErrCodeEmployeeInactive)
	}
	return nil
}

func (s *Service) CreateContract(ctx context.Context, dto CreateContractDTO) (*hr.Contract, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	unlock := s.Locks.Lock(keylock.EmployeeKey(dto.EmployeeID))
	defer unlock()

	e, err := s.requireEmployee(ctx, dto.EmployeeID)
	if err != nil {
		return nil, err
	}

	active := dto.IsActive == nil || *dto.IsActive
	if active {
		if err := ensureEmployeeActive(e); err != nil {
			return nil, err
		}
		if err := s.ensureNoOtherActive(ctx, e.ID, ""); err != nil {
			return nil, err
		}
	}

	c, err := s.repo.CreateContract(ctx, dto.toInput())
	if errors.Is(err, storage.ErrConflict) {
		return nil, activeConflict()
	}
	if err != nil {
		s.logger.Error("failed to create contract", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}
	s.logger.Info("contract created", "contract_id", c.ID, "employee_id", c.EmployeeID, "type", c.Type)
	return c, nil
}

// lockContract loads contract id while holding the locks of its current
// employee and of target, retrying if the contract moves employee meanwhile.
func (s *Service) lockContract(ctx context.Context, id string, target *string) (*hr.Contract, func(), error) {
	for {
		c, err := s.GetContract(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		keys := []string{keylock.EmployeeKey(c.EmployeeID)}
		if target != nil {
			keys = append(keys, keylock.EmployeeKey(*target))
		}
		unlock := s.Locks.Lock(keys...)

		locked, err := s.GetContract(ctx, id)
		if err != nil {
			unlock()
			return nil, nil, err
		}
		if locked.EmployeeID == c.EmployeeID {
			return locked, unlock, nil
		}
		unlock()
	}
}

func (s *Service) UpdateContract(ctx context.Context, id string, dto UpdateContractDTO) (*hr.Contract, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	patch := dto.toPatch()
	existing, unlock, err := s.lockContract(ctx, id, patch.EmployeeID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// check the merged record, not just the patch
	merged := *existing
	merged.Apply(patch)

	v := validation.NewValidator()
	v.Field("fechaFin", merged.EndDate).NotBefore(&merged.StartDate, "fechaInicio")
	if err := v.Validate(); err != nil {
		return nil, err
	}

	if merged.EmployeeID != existing.EmployeeID || merged.IsActive {
		e, err := s.requireEmployee(ctx, merged.EmployeeID)
		if err != nil {
			return nil, err
		}
		if merged.IsActive {
			if err := ensureEmployeeActive(e); err != nil {
				return nil, err
			}
			if err := s.ensureNoOtherActive(ctx, merged.EmployeeID, id); err != nil {
				return nil, err
			}
		}
	}

	c, err := s.repo.UpdateContract(ctx, id, patch)
	if errors.Is(err, storage.ErrConflict) {
		return nil, activeConflict()
	}
	if err != nil {
		s.logger.Error("failed to update contract", "error", err, "contract_id", id)
		return nil, err
	}
	if c == nil {
		return nil, notFound()
	}
	return c, nil
}

func (s *Service) DeleteContract(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteContract(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete contract", "error", err, "contract_id", id)
		return err
	}
	if !deleted {
		return notFound()
	}
	s.logger.Info("contract deleted", "contract_id", id)
	return nil
}
