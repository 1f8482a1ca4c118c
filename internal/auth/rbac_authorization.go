package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/transport"
)

// Role groups used by the router.
var (
	HRRoles         = []hr.Role{hr.RoleAdmin, hr.RoleHRManager, hr.RoleHRAdmin}
	RecruitingRoles = []hr.Role{hr.RoleAdmin, hr.RoleHRManager, hr.RoleHRAdmin, hr.RoleRecruitingStaff}
	EvaluatorRoles  = []hr.Role{hr.RoleAdmin, hr.RoleHRManager, hr.RoleHRAdmin, hr.RoleSupervisor}
	AdminRoles      = []hr.Role{hr.RoleAdmin}
)

type RBACAuthorization struct {
	*transport.BaseHandler
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{BaseHandler: transport.NewBaseHandler(logger)}
}

func HasRole(user *hr.User, roles ...hr.Role) bool {
	for _, r := range roles {
		if user.Role == r {
			return true
		}
	}
	return false
}

// RequireRoles lets the request through only when the authenticated user has
// one of roles. It must run after the auth middleware.
func (ra *RBACAuthorization) RequireRoles(roles ...hr.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok {
				ra.Logger.Warn("authorization check failed: user not found in context")
				ra.HandleError(w, internal.NewUnauthorizedError("authentication required", internal.ErrCodeInvalidToken))
				return
			}

			if !HasRole(user, roles...) {
				ra.Logger.WarnContext(r.Context(), "access denied: insufficient role",
					"user_id", user.ID,
					"role", user.Role,
					"required_roles", roles)
				ra.HandleError(w, internal.ErrInsufficientRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
