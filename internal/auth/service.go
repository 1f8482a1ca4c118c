package auth

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (*Session, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	CurrentUser(ctx context.Context, claims *Claims) (*hr.User, error)
}

type RepositoryAPI interface {
	GetUser(ctx context.Context, id string) (*hr.User, error)
	GetUserByCedula(ctx context.Context, cedula string) (*hr.User, error)
	GetEmployeeByUserID(ctx context.Context, userID string) (*hr.Employee, error)
}

type EmployeeComposer interface {
	ComposeEmployee(ctx context.Context, e *hr.Employee) (*hr.EmployeeWithRelations, bool, error)
}

// Service is the main auth service with dependencies
type Service struct {
	repo       RepositoryAPI
	composer   EmployeeComposer
	tokens     TokenGenerator
	bcryptCost int
	logger     *slog.Logger
}

// NewService creates a new auth service
func NewService(repo RepositoryAPI, composer EmployeeComposer, tokens TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		composer:   composer,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Login checks the cédula and password. Unknown users, inactive users and bad
// passwords all yield ErrInvalidCredentials so callers cannot tell them apart.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*Session, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByCedula(ctx, dto.Cedula)
	if err != nil {
		s.logger.Error("failed to look up user", "error", err)
		return nil, err
	}
	if user == nil {
		s.logger.Info("login rejected", "reason", "unknown cedula")
		return nil, internal.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.logger.Info("login rejected", "reason", "inactive user", "user_id", user.ID)
		return nil, internal.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)); err != nil {
		s.logger.Info("login rejected", "reason", "password mismatch", "user_id", user.ID)
		return nil, internal.ErrInvalidCredentials
	}

	employee, err := s.employeeFor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	tokens, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID, "role", user.Role, "has_employee", employee != nil)

	user.Password = ""
	return &Session{
		AuthTokens: *tokens,
		User:       user,
		Employee:   employee,
	}, nil
}

func (s *Service) employeeFor(ctx context.Context, userID string) (*hr.EmployeeWithRelations, error) {
	e, err := s.repo.GetEmployeeByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to look up employee for user", "error", err, "user_id", userID)
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	composed, ok, err := s.composer.ComposeEmployee(ctx, e)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return composed, nil
}

// RefreshTokens validates refresh token and returns new tokens
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.CurrentUser(ctx, claims)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(tokenString)
}

// CurrentUser reloads the user a token was issued for. Users deleted or
// deactivated after issue are rejected.
func (s *Service) CurrentUser(ctx context.Context, claims *Claims) (*hr.User, error) {
	user, err := s.repo.GetUser(ctx, claims.UserID)
	if err != nil {
		s.logger.Error("failed to load token user", "error", err, "user_id", claims.UserID)
		return nil, err
	}
	if user == nil {
		return nil, internal.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, internal.ErrUserInactive
	}
	user.Password = ""
	return user, nil
}

func (s *Service) issue(user *hr.User) (*AuthTokens, error) {
	access, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		s.logger.Error("failed to generate access token", "error", err, "user_id", user.ID)
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		s.logger.Error("failed to generate refresh token", "error", err, "user_id", user.ID)
		return nil, err
	}

	tokens := &AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	}
	if gen, ok := s.tokens.(*JWTTokenGenerator); ok {
		tokens.ExpiresIn = int64(gen.AccessTokenTTL.Seconds())
	}
	return tokens, nil
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	return HashPassword(password, s.bcryptCost)
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Hasher adapts HashPassword to the seed fixture loader.
func Hasher(cost int) storage.PasswordHasher {
	return func(password string) (string, error) {
		return HashPassword(password, cost)
	}
}
