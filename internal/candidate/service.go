package candidate

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/storage"
)

type RepositoryAPI interface {
	storage.CandidateStore
	GetCargo(ctx context.Context, id string) (*hr.Cargo, error)
}

type ComposerAPI interface {
	GetCandidateWithRelations(ctx context.Context, id string) (*hr.CandidateWithRelations, error)
	ListCandidatesWithRelations(ctx context.Context) ([]*hr.CandidateWithRelations, error)
}

// Service runs the recruiting pipeline. Candidates move from en_evaluacion
// through entrevista and aprobado to contratado, or end in rechazado.
type Service struct {
	repo     RepositoryAPI
	composer ComposerAPI
	eventBus *events.EventBus
	logger   *slog.Logger

	// Now stamps evaluation dates.
	Now func() time.Time
}

func NewService(repo RepositoryAPI, composer ComposerAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		composer: composer,
		eventBus: eventBus,
		logger:   logger,
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

func notFound() error {
	return internal.NewNotFoundError("candidate not found", internal.ErrCodeCandidateNotFound)
}

func (s *Service) ListCandidates(ctx context.Context, filter ListFilter) ([]*hr.CandidateWithRelations, error) {
	all, err := s.composer.ListCandidatesWithRelations(ctx)
	if err != nil {
		s.logger.Error("failed to list candidates", "error", err)
		return nil, err
	}
	out := make([]*hr.CandidateWithRelations, 0, len(all))
	for _, c := range all {
		if filter.matches(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Service) GetCandidate(ctx context.Context, id string) (*hr.CandidateWithRelations, error) {
	c, err := s.composer.GetCandidateWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound()
	}
	return c, nil
}

func (s *Service) checkCedula(ctx context.Context, cedula, selfID string) error {
	candidates, err := s.repo.ListCandidates(ctx)
	if err != nil {
		return err
	}
	for _, c := range candidates {
		if c.ID != selfID && strings.EqualFold(c.Cedula, cedula) {
			return internal.NewConflictError("a candidate with this cedula already exists", internal.ErrCodeDuplicateCedula)
		}
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

// CreateCandidate records a new application submitted by the authenticated
// user.
func (s *Service) CreateCandidate(ctx context.Context, dto CreateCandidateDTO) (*hr.Candidate, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	submittedBy := internal.UserIDFromContext(ctx)
	if submittedBy == "" {
		return nil, internal.NewUnauthorizedError("authentication required", internal.ErrCodeInvalidToken)
	}
	if err := s.checkCargo(ctx, dto.CargoID); err != nil {
		return nil, err
	}
	if err := s.checkCedula(ctx, dto.Cedula, ""); err != nil {
		return nil, err
	}

	c, err := s.repo.CreateCandidate(ctx, dto.toInput(submittedBy))
	if err != nil {
		s.logger.Error("failed to create candidate", "error", err)
		return nil, err
	}
	s.logger.Info("candidate created", "candidate_id", c.ID, "cargo_id", c.CargoID, "submitted_by", submittedBy)
	return c, nil
}

func (s *Service) UpdateCandidate(ctx context.Context, id string, dto UpdateCandidateDTO) (*hr.Candidate, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if dto.CargoID != nil {
		if err := s.checkCargo(ctx, *dto.CargoID); err != nil {
			return nil, err
		}
	}
	if dto.Cedula != nil {
		if err := s.checkCedula(ctx, *dto.Cedula, id); err != nil {
			return nil, err
		}
	}

	c, err := s.repo.UpdateCandidate(ctx, id, dto.toPatch())
	if err != nil {
		s.logger.Error("failed to update candidate", "error", err, "candidate_id", id)
		return nil, err
	}
	if c == nil {
		return nil, notFound()
	}
	return c, nil
}

// Evaluate moves a candidate to a new pipeline status. Rejected and hired
// candidates are final, and only approved candidates can be hired.
func (s *Service) Evaluate(ctx context.Context, id string, dto EvaluateCandidateDTO) (*hr.Candidate, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetCandidate(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFound()
	}

	switch {
	case existing.Status == hr.CandidateRejected || existing.Status == hr.CandidateHired:
		return nil, internal.NewConflictError("candidate is no longer in the pipeline", internal.ErrCodeCandidateClosed)
	case dto.Estatus == hr.CandidateHired && existing.Status != hr.CandidateApproved:
		return nil, internal.NewConflictError("only approved candidates can be hired", internal.ErrCodeCandidateNotApproved)
	}

	status := dto.Estatus
	patch := hr.CandidatePatch{
		Status:          &status,
		EvaluationNotes: &dto.EvaluationNotes,
		EvaluationDate:  hr.Some(s.Now()),
	}
	evaluator := internal.UserIDFromContext(ctx)
	if evaluator != "" {
		patch.EvaluatedBy = hr.Some(evaluator)
	}

	c, err := s.repo.UpdateCandidate(ctx, id, patch)
	if err != nil {
		s.logger.Error("failed to evaluate candidate", "error", err, "candidate_id", id)
		return nil, err
	}
	if c == nil {
		return nil, notFound()
	}

	s.logger.Info("candidate evaluated", "candidate_id", c.ID, "status", c.Status)
	if c.Status == hr.CandidateHired {
		if err := s.eventBus.Publish(ctx, events.NewCandidateHiredEvent(c.ID, c.CargoID, evaluator)); err != nil {
			s.logger.Error("failed to publish candidate hired event", "error", err, "candidate_id", c.ID)
		}
	}
	return c, nil
}

func (s *Service) DeleteCandidate(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteCandidate(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete candidate", "error", err, "candidate_id", id)
		return err
	}
	if !deleted {
		return notFound()
	}
	s.logger.Info("candidate deleted", "candidate_id", id)
	return nil
}
