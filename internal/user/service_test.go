package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/storage/memory"
	"github.com/frahmantamala/hr-management/internal/storage/storagetest"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/internal/user"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

func fakeHash(p string) (string, error) { return "hashed:" + p, nil }

func ptr[T any](v T) *T { return &v }

func appCode(err error) internal.ErrorCode {
	appErr, ok := internal.IsAppError(err)
	Expect(ok).To(BeTrue(), "expected AppError, got %v", err)
	return appErr.Code
}

var _ = Describe("Service", func() {
	var (
		ctx   context.Context
		store *memory.Store
		svc   *user.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = memory.New()
		svc = user.NewService(store, fakeHash, logger.Discard())
	})

	It("hashes the password and applies defaults", func() {
		u, err := svc.CreateUser(ctx, user.CreateUserDTO{Cedula: "V-12345678", Password: "secret1"})
		Expect(err).NotTo(HaveOccurred())
		Expect(u.Role).To(Equal(hr.RoleEmployee))
		Expect(u.IsActive).To(BeTrue())

		stored, err := store.GetUser(ctx, u.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.Password).To(Equal("hashed:secret1"))
	})

	DescribeTable("rejects invalid input",
		func(dto user.CreateUserDTO, field string) {
			_, err := svc.CreateUser(ctx, dto)
			Expect(appCode(err)).To(Equal(internal.ErrCodeValidationFailed))
			appErr, _ := internal.IsAppError(err)
			Expect(appErr.GetDetailedMessage()).To(ContainSubstring(field))
		},
		Entry("bad cedula", user.CreateUserDTO{Cedula: "X-1", Password: "secret1"}, "cedula"),
		Entry("short password", user.CreateUserDTO{Cedula: "V-12345678", Password: "123"}, "password"),
		Entry("unknown role", user.CreateUserDTO{Cedula: "V-12345678", Password: "secret1", Role: "root"}, "role"),
	)

	It("refuses duplicate cedulas on create and update", func() {
		_, err := svc.CreateUser(ctx, user.CreateUserDTO{Cedula: "V-12345678", Password: "secret1"})
		Expect(err).NotTo(HaveOccurred())
		other, err := svc.CreateUser(ctx, user.CreateUserDTO{Cedula: "E-87654321", Password: "secret1"})
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.CreateUser(ctx, user.CreateUserDTO{Cedula: "V-12345678", Password: "secret1"})
		Expect(appCode(err)).To(Equal(internal.ErrCodeDuplicateCedula))

		_, err = svc.UpdateUser(ctx, other.ID, user.UpdateUserDTO{Cedula: ptr("V-12345678")})
		Expect(appCode(err)).To(Equal(internal.ErrCodeDuplicateCedula))

		_, err = svc.UpdateUser(ctx, other.ID, user.UpdateUserDTO{Cedula: ptr("E-87654321")})
		Expect(err).NotTo(HaveOccurred())
	})

	It("rehashes a changed password", func() {
		u, err := svc.CreateUser(ctx, user.CreateUserDTO{Cedula: "V-12345678", Password: "secret1"})
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.UpdateUser(ctx, u.ID, user.UpdateUserDTO{Password: ptr("secret2")})
		Expect(err).NotTo(HaveOccurred())
		stored, _ := store.GetUser(ctx, u.ID)
		Expect(stored.Password).To(Equal("hashed:secret2"))
	})

	It("reports missing users as not found", func() {
		_, err := svc.GetUser(ctx, "nope")
		Expect(appCode(err)).To(Equal(internal.ErrCodeUserNotFound))
		_, err = svc.UpdateUser(ctx, "nope", user.UpdateUserDTO{IsActive: ptr(false)})
		Expect(appCode(err)).To(Equal(internal.ErrCodeUserNotFound))
		Expect(appCode(svc.DeleteUser(ctx, "nope"))).To(Equal(internal.ErrCodeUserNotFound))
	})

	It("refuses to delete a user linked to an employee", func() {
		org := storagetest.SeedOrg(ctx, store)
		e := storagetest.SeedEmployee(ctx, store, org, "Alice", "V-22222222")

		Expect(appCode(svc.DeleteUser(ctx, e.UserID))).To(Equal(internal.ErrCodeHasDependents))
		Expect(svc.DeleteUser(ctx, org.User.ID)).To(Succeed())
	})

	It("refuses to delete a user that submitted candidates", func() {
		org := storagetest.SeedOrg(ctx, store)
		_, err := store.CreateCandidate(ctx, hr.CandidateInput{Cedula: "V-30000001", CargoID: org.Cargo.ID, SubmittedBy: org.User.ID})
		Expect(err).NotTo(HaveOccurred())

		Expect(appCode(svc.DeleteUser(ctx, org.User.ID))).To(Equal(internal.ErrCodeHasDependents))
	})
})

var _ = Describe("Handler", func() {
	var (
		store  *memory.Store
		router *chi.Mux
	)

	BeforeEach(func() {
		store = memory.New()
		h := user.NewHandler(transport.NewBaseHandler(logger.Discard()), user.NewService(store, fakeHash, logger.Discard()))
		router = chi.NewRouter()
		router.Get("/users", h.ListUsers)
		router.Post("/users", h.CreateUser)
		router.Get("/users/me", h.GetCurrentUser)
		router.Get("/users/{id}", h.GetUser)
		router.Patch("/users/{id}", h.UpdateUser)
		router.Delete("/users/{id}", h.DeleteUser)
	})

	do := func(req *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	It("creates, reads and deletes over HTTP without exposing the hash", func() {
		rec := do(httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"cedula":"V-12345678","password":"secret1","role":"supervisor"}`)))
		Expect(rec.Code).To(Equal(http.StatusCreated))
		Expect(rec.Body.String()).NotTo(ContainSubstring("hashed:"))

		var created hr.User
		Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
		Expect(created.Role).To(Equal(hr.RoleSupervisor))

		rec = do(httptest.NewRequest(http.MethodGet, "/users/"+created.ID, nil))
		Expect(rec.Code).To(Equal(http.StatusOK))

		rec = do(httptest.NewRequest(http.MethodGet, "/users", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		var list user.UsersResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &list)).To(Succeed())
		Expect(list.Users).To(HaveLen(1))

		Expect(do(httptest.NewRequest(http.MethodDelete, "/users/"+created.ID, nil)).Code).To(Equal(http.StatusNoContent))
		Expect(do(httptest.NewRequest(http.MethodDelete, "/users/"+created.ID, nil)).Code).To(Equal(http.StatusNotFound))
	})

	It("returns the authenticated user on /users/me", func() {
		u, err := store.CreateUser(context.Background(), hr.UserInput{Cedula: "V-12345678", Password: "x"})
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req = req.WithContext(internal.ContextWithUser(req.Context(), u))
		rec := do(req)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(u.ID))

		Expect(do(httptest.NewRequest(http.MethodGet, "/users/me", nil)).Code).To(Equal(http.StatusUnauthorized))
	})

	It("answers 400 for invalid payloads", func() {
		rec := do(httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"cedula":"123"}`)))
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("VALIDATION_FAILED"))
	})
})
