package dashboard

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal/core/hr"
)

type RepositoryAPI interface {
	ListContracts(ctx context.Context) ([]*hr.Contract, error)
	ListCandidates(ctx context.Context) ([]*hr.Candidate, error)
	ListProbationPeriods(ctx context.Context) ([]*hr.ProbationPeriod, error)
	GetExpiringContracts(ctx context.Context) ([]*hr.Contract, error)
	GetExpiringProbationPeriods(ctx context.Context) ([]*hr.ProbationPeriod, error)
}

type ComposerAPI interface {
	ListEmployeesWithRelations(ctx context.Context) ([]*hr.EmployeeWithRelations, error)
	ComposeContracts(ctx context.Context, contracts []*hr.Contract) ([]*hr.ContractWithEmployee, error)
	ComposeProbationPeriods(ctx context.Context, periods []*hr.ProbationPeriod) ([]*hr.ProbationPeriodWithRelations, error)
}

// Service recomputes dashboard figures from live repository state on every call.
type Service struct {
	repo     RepositoryAPI
	composer ComposerAPI
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, composer ComposerAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		composer: composer,
		logger:   logger,
	}
}

func (s *Service) GetStats(ctx context.Context) (*hr.DashboardStats, error) {
	employees, err := s.composer.ListEmployeesWithRelations(ctx)
	if err != nil {
		s.logger.Error("failed to compose employees", "error", err)
		return nil, err
	}
	contracts, err := s.repo.ListContracts(ctx)
	if err != nil {
		s.logger.Error("failed to list contracts", "error", err)
		return nil, err
	}
	expiringContracts, err := s.repo.GetExpiringContracts(ctx)
	if err != nil {
		s.logger.Error("failed to list expiring contracts", "error", err)
		return nil, err
	}
	candidates, err := s.repo.ListCandidates(ctx)
	if err != nil {
		s.logger.Error("failed to list candidates", "error", err)
		return nil, err
	}
	periods, err := s.repo.ListProbationPeriods(ctx)
	if err != nil {
		s.logger.Error("failed to list probation periods", "error", err)
		return nil, err
	}
	expiringPeriods, err := s.repo.GetExpiringProbationPeriods(ctx)
	if err != nil {
		s.logger.Error("failed to list expiring probation periods", "error", err)
		return nil, err
	}

	stats := &hr.DashboardStats{
		TotalEmployees:           len(employees),
		TotalContracts:           len(contracts),
		ExpiringContracts:        len(expiringContracts),
		TotalCandidates:          len(candidates),
		ExpiringProbationPeriods: len(expiringPeriods),
	}
	for _, e := range employees {
		if e.Status == hr.EmployeeStatusProbation {
			stats.ProbationEmployees++
		}
	}
	for _, c := range contracts {
		if c.IsActive {
			stats.ActiveContracts++
		}
		if c.Type == hr.ContractIndefinite {
			stats.IndefiniteContracts++
		}
	}
	for _, c := range candidates {
		switch c.Status {
		case hr.CandidateInEvaluation:
			stats.CandidatesInEvaluation++
		case hr.CandidateApproved:
			stats.ApprovedCandidates++
		}
	}
	for _, p := range periods {
		if p.Status == hr.ProbationActive {
			stats.ActiveProbationPeriods++
		}
	}

	return stats, nil
}

// GetExpiring returns the records behind the expiring counters, composed with
// their employee. Records whose employee cannot be composed are left out.
func (s *Service) GetExpiring(ctx context.Context) (*ExpiringResponse, error) {
	contracts, err := s.repo.GetExpiringContracts(ctx)
	if err != nil {
		s.logger.Error("failed to list expiring contracts", "error", err)
		return nil, err
	}
	periods, err := s.repo.GetExpiringProbationPeriods(ctx)
	if err != nil {
		s.logger.Error("failed to list expiring probation periods", "error", err)
		return nil, err
	}

	composedContracts, err := s.composer.ComposeContracts(ctx, contracts)
	if err != nil {
		return nil, err
	}
	composedPeriods, err := s.composer.ComposeProbationPeriods(ctx, periods)
	if err != nil {
		return nil, err
	}

	return &ExpiringResponse{
		Contracts:        composedContracts,
		ProbationPeriods: composedPeriods,
	}, nil
}
