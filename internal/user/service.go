package user

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/storage"
)

type RepositoryAPI interface {
	storage.UserStore
	GetEmployeeByUserID(ctx context.Context, userID string) (*hr.Employee, error)
	ListCandidates(ctx context.Context) ([]*hr.Candidate, error)
}

type Service struct {
	repo   RepositoryAPI
	hash   storage.PasswordHasher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, hash storage.PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hash:   hash,
		logger: logger,
	}
}

func notFound() error {
	return internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
}

func (s *Service) ListUsers(ctx context.Context) ([]*hr.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*hr.User, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, err
	}
	if u == nil {
		return nil, notFound()
	}
	return u, nil
}

func (s *Service) ensureCedulaFree(ctx context.Context, cedula, selfID string) error {
	existing, err := s.repo.GetUserByCedula(ctx, cedula)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return internal.NewConflictError("a user with this cedula already exists", internal.ErrCodeDuplicateCedula)
	}
	return nil
}

func (s *Service) CreateUser(ctx context.Context, dto CreateUserDTO) (*hr.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureCedulaFree(ctx, dto.Cedula, ""); err != nil {
		return nil, err
	}

	hash, err := s.hash(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	u, err := s.repo.CreateUser(ctx, dto.toInput(hash))
	if err != nil {
		s.logger.Error("failed to create user", "error", err)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *Service) UpdateUser(ctx context.Context, id string, dto UpdateUserDTO) (*hr.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if dto.Cedula != nil {
		if err := s.ensureCedulaFree(ctx, *dto.Cedula, id); err != nil {
			return nil, err
		}
	}

	patch := hr.UserPatch{Cedula: dto.Cedula, Role: dto.Role, IsActive: dto.IsActive}
	if dto.Password != nil {
		hash, err := s.hash(*dto.Password)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		patch.Password = &hash
	}

	u, err := s.repo.UpdateUser(ctx, id, patch)
	if err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}
	if u == nil {
		return nil, notFound()
	}

	s.logger.Info("user updated", "user_id", id)
	return u, nil
}

// DeleteUser refuses to remove a user that an employee or a candidate still
// points at.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	e, err := s.repo.GetEmployeeByUserID(ctx, id)
	if err != nil {
		return err
	}
	if e != nil {
		return internal.NewConflictError("user is linked to an employee", internal.ErrCodeHasDependents)
	}

	candidates, err := s.repo.ListCandidates(ctx)
	if err != nil {
		return err
	}
	for _, c := range candidates {
		if c.SubmittedBy == id || (c.EvaluatedBy != nil && *c.EvaluatedBy == id) {
			return internal.NewConflictError("user is referenced by candidates", internal.ErrCodeHasDependents)
		}
	}

	deleted, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}
	if !deleted {
		return notFound()
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}
