package probation

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/keylock"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/storage"
)

type RepositoryAPI interface {
	storage.ProbationStore
	GetEmployee(ctx context.Context, id string) (*hr.Employee, error)
}

type ComposerAPI interface {
	GetProbationPeriodWithRelations(ctx context.Context, id string) (*hr.ProbationPeriodWithRelations, error)
	ListProbationPeriodsWithRelations(ctx context.Context) ([]*hr.ProbationPeriodWithRelations, error)
	ComposeProbationPeriods(ctx context.Context, periods []*hr.ProbationPeriod) ([]*hr.ProbationPeriodWithRelations, error)
}

type Service struct {
	repo     RepositoryAPI
	composer ComposerAPI
	eventBus *events.EventBus
	logger   *slog.Logger

	// Now stamps evaluation dates.
	Now func() time.Time
	// Locks serializes opening periods against an employee's exit.
	Locks *keylock.Locker
}

func NewService(repo RepositoryAPI, composer ComposerAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		composer: composer,
		eventBus: eventBus,
		logger:   logger,
		Now:      func() time.Time { return time.Now().UTC() },
		Locks:    keylock.New(),
	}
}

func notFound() error {
	return internal.NewNotFoundError("probation period not found", internal.ErrCodeProbationNotFound)
}

func (s *Service) ListProbationPeriods(ctx context.Context, filter ListFilter) ([]*hr.ProbationPeriodWithRelations, error) {
	all, err := s.composer.ListProbationPeriodsWithRelations(ctx)
	if err != nil {
		s.logger.Error("failed to list probation periods", "error", err)
		return nil, err
	}
	out := make([]*hr.ProbationPeriodWithRelations, 0, len(all))
	for _, p := range all {
		if filter.matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) GetProbationPeriod(ctx context.Context, id string) (*hr.ProbationPeriodWithRelations, error) {
	p, err := s.composer.GetProbationPeriodWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound()
	}
	return p, nil
}

// GetExpiring returns active periods ending within the configured window.
func (s *Service) GetExpiring(ctx context.Context) ([]*hr.ProbationPeriodWithRelations, error) {
	expiring, err := s.repo.GetExpiringProbationPeriods(ctx)
	if err != nil {
		s.logger.Error("failed to load expiring probation periods", "error", err)
		return nil, err
	}
	return s.composer.ComposeProbationPeriods(ctx, expiring)
}

// requireOpenable loads the employee a period is opened for and rejects
// employees that have exited.
func (s *Service) requireOpenable(ctx context.Context, employeeID string) error {
	e, err := s.repo.GetEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	if e == nil {
		return internal.NewValidationFieldError("employeeId", "employeeId does not exist", internal.ErrCodeEmployeeNotFound)
	}
	if e.Status == hr.EmployeeStatusInactive {
		return internal.NewConflictError("cannot open a probation period for an inactive employee", internal.ErrCodeEmployeeInactive)
	}
	return nil
}

func (s *Service) CreateProbationPeriod(ctx context.Context, dto CreateProbationPeriodDTO) (*hr.ProbationPeriod, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	unlock := s.Locks.Lock(keylock.EmployeeKey(dto.EmployeeID))
	defer unlock()

	if err := s.requireOpenable(ctx, dto.EmployeeID); err != nil {
		return nil, err
	}

	p, err := s.repo.CreateProbationPeriod(ctx, dto.toInput())
	if err != nil {
		s.logger.Error("failed to create probation period", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}
	s.logger.Info("probation period created", "probation_period_id", p.ID, "employee_id", p.EmployeeID)
	return p, nil
}

func (s *Service) load(ctx context.Context, id string) (*hr.ProbationPeriod, error) {
	p, err := s.repo.GetProbationPeriod(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound()
	}
	return p, nil
}

func (s *Service) UpdateProbationPeriod(ctx context.Context, id string, dto UpdateProbationPeriodDTO) (*hr.ProbationPeriod, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	// periods never change employee; reload under its lock for a fresh status
	unlock := s.Locks.Lock(keylock.EmployeeKey(existing.EmployeeID))
	defer unlock()
	if existing, err = s.load(ctx, id); err != nil {
		return nil, err
	}

	patch := dto.toPatch()
	merged := *existing
	merged.Apply(patch, s.Now())
	v := validation.NewValidator()
	v.Field("fechaFin", merged.EndDate).NotBefore(&merged.StartDate, "fechaInicio")
	if err := v.Validate(); err != nil {
		return nil, err
	}

	if merged.Status == hr.ProbationActive && existing.Status != hr.ProbationActive {
		if err := s.requireOpenable(ctx, merged.EmployeeID); err != nil {
			return nil, err
		}
	}

	p, err := s.repo.UpdateProbationPeriod(ctx, id, patch)
	if err != nil {
		s.logger.Error("failed to update probation period", "error", err, "probation_period_id", id)
		return nil, err
	}
	if p == nil {
		return nil, notFound()
	}
	return p, nil
}

// Evaluate records the outcome of an open period and publishes
// probation.evaluated. The evaluator is the authenticated user.
func (s *Service) Evaluate(ctx context.Context, id string, dto EvaluateProbationDTO) (*hr.ProbationPeriod, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != hr.ProbationActive && existing.Status != hr.ProbationExtended {
		return nil, internal.NewConflictError("probation period is already closed", internal.ErrCodeProbationClosed)
	}

	now := s.Now()
	status := dto.Estatus
	patch := hr.ProbationPeriodPatch{
		Status:                   &status,
		Notes:                    dto.Observaciones,
		EvaluationDate:           hr.Some(now),
		SupervisorRecommendation: &dto.RecomendacionSupervisor,
		HRNotes:                  &dto.ObservacionesRrhh,
	}
	if evaluator := internal.UserIDFromContext(ctx); evaluator != "" {
		patch.EvaluatedBy = hr.Some(evaluator)
	}

	switch status {
	case hr.ProbationExtended:
		until := dto.ExtendidoHasta.Value()
		v := validation.NewValidator()
		v.Field("extendidoHasta", until).NotBefore(&existing.EndDate, "fechaFin")
		if err := v.Validate(); err != nil {
			return nil, err
		}
		patch.ExtendedUntil = hr.Some(until)
		patch.ExtensionReason = &dto.MotivoExtension
		patch.Approved = hr.Null[bool]()
	case hr.ProbationCompleted:
		patch.Approved = hr.Some(dto.Aprobado == nil || *dto.Aprobado)
	case hr.ProbationTerminated:
		patch.Approved = hr.Some(dto.Aprobado != nil && *dto.Aprobado)
	}

	p, err := s.repo.UpdateProbationPeriod(ctx, id, patch)
	if err != nil {
		s.logger.Error("failed to evaluate probation period", "error", err, "probation_period_id", id)
		return nil, err
	}
	if p == nil {
		return nil, notFound()
	}

	s.logger.Info("probation period evaluated",
		"probation_period_id", p.ID,
		"employee_id", p.EmployeeID,
		"status", p.Status)
	if err := s.eventBus.Publish(ctx, events.NewProbationEvaluatedEvent(p.ID, p.EmployeeID, string(p.Status), p.Approved)); err != nil {
		s.logger.Error("failed to publish probation evaluated event", "error", err, "probation_period_id", p.ID)
	}
	return p, nil
}

func (s *Service) DeleteProbationPeriod(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteProbationPeriod(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete probation period", "error", err, "probation_period_id", id)
		return err
	}
	if !deleted {
		return notFound()
	}
	s.logger.Info("probation period deleted", "probation_period_id", id)
	return nil
}
