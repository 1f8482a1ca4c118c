package auth

import (
	"time"

	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenGenerator creates and checks the signed tokens handed out at login.
type TokenGenerator interface {
	GenerateAccessToken(user *hr.User) (string, error)
	GenerateRefreshToken(user *hr.User) (string, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Session is what a successful login returns: the tokens, the user and, when
// the user is linked to a composable employee, that employee's full view.
type Session struct {
	AuthTokens
	User     *hr.User                  `json:"user"`
	Employee *hr.EmployeeWithRelations `json:"employee"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID    string  `json:"user_id"`
	Cedula    string  `json:"cedula"`
	Role      hr.Role `json:"role"`
	TokenType string  `json:"token_type"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	Issuer             string
	Now                func() time.Time
}
