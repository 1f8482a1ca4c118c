package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/relations"
	"github.com/frahmantamala/hr-management/internal/storage"
	"github.com/frahmantamala/hr-management/internal/storage/memory"
	"github.com/frahmantamala/hr-management/internal/storage/storagetest"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

const (
	accessSecret  = "test-access-secret-test-access-secret"
	refreshSecret = "test-refresh-secret-test-refresh-secret"
)

type fixture struct {
	ctx      context.Context
	clock    *storagetest.Clock
	store    *memory.Store
	tokenGen *JWTTokenGenerator
	service  *Service
	org      storagetest.Org
	alice    *hr.Employee
}

func newFixture() *fixture {
	f := &fixture{ctx: context.Background(), clock: storagetest.NewClock(storagetest.Now)}
	f.store = memory.New(storage.WithClock(f.clock.Now))
	f.tokenGen = NewJWTTokenGenerator(accessSecret, refreshSecret, 15*time.Minute, 24*time.Hour)
	f.tokenGen.Now = f.clock.Now
	f.service = NewService(f.store, relations.NewComposer(f.store, logger.Discard()), f.tokenGen, bcrypt.MinCost, logger.Discard())

	f.org = storagetest.SeedOrg(f.ctx, f.store)
	f.alice = storagetest.SeedEmployee(f.ctx, f.store, f.org, "Alice", "V-22222222")
	f.setPassword(f.alice.UserID, "correct_password")
	f.setPassword(f.org.User.ID, "correct_password")
	return f
}

func (f *fixture) setPassword(userID, password string) {
	hash, err := HashPassword(password, bcrypt.MinCost)
	gomega.Expect(err).ToNot(gomega.HaveOccurred())
	_, err = f.store.UpdateUser(f.ctx, userID, hr.UserPatch{Password: &hash})
	gomega.Expect(err).ToNot(gomega.HaveOccurred())
}

var _ = ginkgo.Describe("AuthService", func() {
	var f *fixture

	ginkgo.BeforeEach(func() {
		f = newFixture()
	})

	ginkgo.Describe("Login", func() {
		ginkgo.It("returns tokens, the user and the composed employee", func() {
			session, err := f.service.Login(f.ctx, LoginDTO{Cedula: "V-22222222", Password: "correct_password"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(session.RefreshToken).ToNot(gomega.BeEmpty())
			gomega.Expect(session.AccessToken).ToNot(gomega.Equal(session.RefreshToken))
			gomega.Expect(session.TokenType).To(gomega.Equal("Bearer"))
			gomega.Expect(session.ExpiresIn).To(gomega.Equal(int64(900)))
			gomega.Expect(session.User.ID).To(gomega.Equal(f.alice.UserID))
			gomega.Expect(session.User.Password).To(gomega.BeEmpty())
			gomega.Expect(session.Employee).ToNot(gomega.BeNil())
			gomega.Expect(session.Employee.ID).To(gomega.Equal(f.alice.ID))
			gomega.Expect(session.Employee.Cargo.Departamento.Gerencia.Name).To(gomega.Equal("D1"))
		})

		ginkgo.It("does not leak the hash through JSON", func() {
			session, err := f.service.Login(f.ctx, LoginDTO{Cedula: "V-22222222", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			raw, err := json.Marshal(session)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(string(raw)).ToNot(gomega.ContainSubstring("$2a$"))
			gomega.Expect(string(raw)).To(gomega.ContainSubstring(`"access_token"`))
		})

		ginkgo.It("returns a nil employee for users without one", func() {
			session, err := f.service.Login(f.ctx, LoginDTO{Cedula: "V-11111111", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session.Employee).To(gomega.BeNil())
		})

		ginkgo.It("still logs in when the employee no longer composes", func() {
			_, err := f.store.DeleteCargo(f.ctx, f.org.Cargo.ID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			session, err := f.service.Login(f.ctx, LoginDTO{Cedula: "V-22222222", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session.Employee).To(gomega.BeNil())
		})

		ginkgo.DescribeTable("rejects with invalid credentials",
			func(prepare func(f *fixture), cedula, password string) {
				if prepare != nil {
					prepare(f)
				}
				session, err := f.service.Login(f.ctx, LoginDTO{Cedula: cedula, Password: password})
				gomega.Expect(session).To(gomega.BeNil())
				gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
			},
			ginkgo.Entry("wrong password", nil, "V-22222222", "wrong_password"),
			ginkgo.Entry("unknown cedula", nil, "V-99999999", "correct_password"),
			ginkgo.Entry("inactive user", func(f *fixture) {
				inactive := false
				_, err := f.store.UpdateUser(f.ctx, f.alice.UserID, hr.UserPatch{IsActive: &inactive})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
			}, "V-22222222", "correct_password"),
		)

		ginkgo.It("validates the request shape first", func() {
			_, err := f.service.Login(f.ctx, LoginDTO{Cedula: "12345", Password: ""})
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeValidationFailed))
			gomega.Expect(appErr.GetDetailedMessage()).To(gomega.ContainSubstring("cedula"))
			gomega.Expect(appErr.GetDetailedMessage()).To(gomega.ContainSubstring("password is required"))
		})
	})

	ginkgo.Describe("tokens", func() {
		var user *hr.User

		ginkgo.BeforeEach(func() {
			var err error
			user, err = f.store.GetUser(f.ctx, f.alice.UserID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("round-trips the access claims", func() {
			token, err := f.tokenGen.GenerateAccessToken(user)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := f.service.ValidateAccessToken(token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal(user.ID))
			gomega.Expect(claims.Cedula).To(gomega.Equal("V-22222222"))
			gomega.Expect(claims.Role).To(gomega.Equal(hr.RoleEmployee))
			gomega.Expect(claims.TokenType).To(gomega.Equal(TokenTypeAccess))
		})

		ginkgo.It("does not accept a refresh token as an access token", func() {
			token, err := f.tokenGen.GenerateRefreshToken(user)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = f.service.ValidateAccessToken(token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})

		ginkgo.It("rejects tokens signed with another secret", func() {
			other := NewJWTTokenGenerator("another-secret-another-secret-xx", refreshSecret, 0, 0)
			other.Now = f.clock.Now
			token, err := other.GenerateAccessToken(user)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = f.service.ValidateAccessToken(token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})

		ginkgo.It("reports expiry", func() {
			token, err := f.tokenGen.GenerateAccessToken(user)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			f.clock.Advance(16 * time.Minute)
			_, err = f.service.ValidateAccessToken(token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrTokenExpired))
		})

		ginkgo.It("rejects garbage", func() {
			_, err := f.service.ValidateAccessToken("not-a-jwt")
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		var session *Session

		ginkgo.BeforeEach(func() {
			var err error
			session, err = f.service.Login(f.ctx, LoginDTO{Cedula: "V-22222222", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("issues a fresh pair", func() {
			f.clock.Advance(time.Hour)
			tokens, err := f.service.RefreshTokens(f.ctx, session.RefreshToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(tokens.AccessToken).ToNot(gomega.Equal(session.AccessToken))

			claims, err := f.service.ValidateAccessToken(tokens.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal(f.alice.UserID))
		})

		ginkgo.It("refuses an access token", func() {
			_, err := f.service.RefreshTokens(f.ctx, session.AccessToken)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})

		ginkgo.It("refuses users deactivated after login", func() {
			inactive := false
			_, err := f.store.UpdateUser(f.ctx, f.alice.UserID, hr.UserPatch{IsActive: &inactive})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = f.service.RefreshTokens(f.ctx, session.RefreshToken)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrUserInactive))
		})

		ginkgo.It("refuses users deleted after login", func() {
			_, err := f.store.DeleteUser(f.ctx, f.alice.UserID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = f.service.RefreshTokens(f.ctx, session.RefreshToken)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})
	})
})

var _ = ginkgo.Describe("Handler", func() {
	var (
		f       *fixture
		handler *Handler
		rbac    *RBACAuthorization
		token   string
	)

	ginkgo.BeforeEach(func() {
		f = newFixture()
		handler = NewHandler(transport.NewBaseHandler(logger.Discard()), f.service)
		rbac = NewRBACAuthorization(logger.Discard())

		rec := httptest.NewRecorder()
		handler.Login(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"cedula":"V-22222222","password":"correct_password"}`)))
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

		var session Session
		gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &session)).To(gomega.Succeed())
		token = session.AccessToken
	})

	protected := func(h http.Handler, bearer string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		rec := httptest.NewRecorder()
		handler.AuthMiddleware(h).ServeHTTP(rec, req)
		return rec
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, found := internal.UserFromContext(r.Context())
		gomega.Expect(found).To(gomega.BeTrue())
		w.Write([]byte(user.ID))
	})

	ginkgo.It("answers 401 on a wrong password", func() {
		rec := httptest.NewRecorder()
		handler.Login(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"cedula":"V-22222222","password":"nope"}`)))
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("INVALID_CREDENTIALS"))
	})

	ginkgo.It("answers 400 on a malformed body", func() {
		rec := httptest.NewRecorder()
		handler.Login(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{`)))
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
	})

	ginkgo.It("puts the token user in the request context", func() {
		rec := protected(ok, token)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(rec.Body.String()).To(gomega.Equal(f.alice.UserID))
	})

	ginkgo.It("answers 401 without a token", func() {
		gomega.Expect(protected(ok, "").Code).To(gomega.Equal(http.StatusUnauthorized))
	})

	ginkgo.It("answers 403 when the role is not allowed", func() {
		rec := protected(rbac.RequireRoles(HRRoles...)(ok), token)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("INSUFFICIENT_ROLE"))
	})

	ginkgo.It("passes allowed roles", func() {
		role := hr.RoleHRManager
		_, err := f.store.UpdateUser(f.ctx, f.alice.UserID, hr.UserPatch{Role: &role})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		rec := protected(rbac.RequireRoles(HRRoles...)(ok), token)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
	})

	ginkgo.It("logs out with a valid token", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.Logout(rec, req)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
	})
})
