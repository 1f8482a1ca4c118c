package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/candidate"
	"github.com/frahmantamala/hr-management/internal/contract"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/dashboard"
	"github.com/frahmantamala/hr-management/internal/egreso"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/organization"
	"github.com/frahmantamala/hr-management/internal/probation"
	"github.com/frahmantamala/hr-management/internal/relations"
	"github.com/frahmantamala/hr-management/internal/storage/memory"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/internal/transport/middleware"
	"github.com/frahmantamala/hr-management/internal/transport/rest"
	"github.com/frahmantamala/hr-management/internal/user"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rest Suite")
}

var _ = Describe("RegisterAllRoutes", func() {
	var (
		server *httptest.Server
		opts   rest.Options
	)

	BeforeEach(func() {
		opts = rest.Options{}
	})

	JustBeforeEach(func() {
		ctx := context.Background()
		lg := logger.Discard()
		store := memory.New()
		hash := auth.Hasher(4)

		for cedula, role := range map[string]hr.Role{"V-10000000": hr.RoleAdmin, "V-20000000": hr.RoleEmployee} {
			pw, err := hash("secreto123")
			Expect(err).NotTo(HaveOccurred())
			_, err = store.CreateUser(ctx, hr.UserInput{Cedula: cedula, Password: pw, Role: role})
			Expect(err).NotTo(HaveOccurred())
		}

		bus := events.NewEventBus(lg)
		composer := relations.NewComposer(store, lg)
		base := transport.NewBaseHandler(lg)
		tokens := auth.NewJWTTokenGenerator(strings.Repeat("a", 32), strings.Repeat("b", 32), time.Minute, time.Hour)

		router := chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.Handlers{
			Health:       rest.NewHealthHandler(nil, "memory"),
			Auth:         auth.NewHandler(base, auth.NewService(store, composer, tokens, 4, lg)),
			RBAC:         auth.NewRBACAuthorization(lg),
			User:         user.NewHandler(base, user.NewService(store, hash, lg)),
			Organization: organization.NewHandler(base, organization.NewService(store, lg)),
			Employee:     employee.NewHandler(base, employee.NewService(store, composer, bus, lg)),
			Contract:     contract.NewHandler(base, contract.NewService(store, composer, lg)),
			Probation:    probation.NewHandler(base, probation.NewService(store, composer, bus, lg)),
			Candidate:    candidate.NewHandler(base, candidate.NewService(store, composer, bus, lg)),
			Egreso:       egreso.NewHandler(base, egreso.NewService(store, bus, lg)),
			Dashboard:    dashboard.NewHandler(base, dashboard.NewService(store, composer, lg)),
		}, opts, lg)

		server = httptest.NewServer(router)
		DeferCleanup(server.Close)
	})

	call := func(method, path, token, body string) *http.Response {
		var req *http.Request
		var err error
		if body == "" {
			req, err = http.NewRequest(method, server.URL+path, nil)
		} else {
			req, err = http.NewRequest(method, server.URL+path, strings.NewReader(body))
			if err == nil {
				req.Header.Set("Content-Type", "application/json")
			}
		}
		Expect(err).NotTo(HaveOccurred())
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := http.DefaultClient.Do(req)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(resp.Body.Close)
		return resp
	}

	login := func(cedula string) string {
		resp := call(http.MethodPost, "/api/v1/auth/login", "", `{"cedula":"`+cedula+`","password":"secreto123"}`)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		var session auth.Session
		Expect(json.NewDecoder(resp.Body).Decode(&session)).To(Succeed())
		Expect(session.AccessToken).NotTo(BeEmpty())
		return session.AccessToken
	}

	It("serves health without authentication", func() {
		Expect(call(http.MethodGet, "/api/v1/ping", "", "").StatusCode).To(Equal(http.StatusOK))
		resp := call(http.MethodGet, "/api/v1/health", "", "")
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		var health rest.HealthResponse
		Expect(json.NewDecoder(resp.Body).Decode(&health)).To(Succeed())
		Expect(health.Components).To(HaveKey("memory"))
	})

	It("requires a bearer token for the API", func() {
		Expect(call(http.MethodGet, "/api/v1/employees", "", "").StatusCode).To(Equal(http.StatusUnauthorized))
		Expect(call(http.MethodGet, "/api/v1/employees", "garbage", "").StatusCode).To(Equal(http.StatusUnauthorized))
	})

	It("rejects a wrong password", func() {
		resp := call(http.MethodPost, "/api/v1/auth/login", "", `{"cedula":"V-10000000","password":"incorrecta"}`)
		Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
	})

	It("gates writes by role", func() {
		admin := login("V-10000000")
		staff := login("V-20000000")

		Expect(call(http.MethodGet, "/api/v1/users/me", staff, "").StatusCode).To(Equal(http.StatusOK))
		Expect(call(http.MethodGet, "/api/v1/users", staff, "").StatusCode).To(Equal(http.StatusForbidden))
		Expect(call(http.MethodGet, "/api/v1/users", admin, "").StatusCode).To(Equal(http.StatusOK))

		Expect(call(http.MethodPost, "/api/v1/gerencias", staff, `{"nombre":"Ops"}`).StatusCode).To(Equal(http.StatusForbidden))
		Expect(call(http.MethodPost, "/api/v1/gerencias", admin, `{"nombre":"Ops"}`).StatusCode).To(Equal(http.StatusCreated))
		Expect(call(http.MethodGet, "/api/v1/gerencias", staff, "").StatusCode).To(Equal(http.StatusOK))

		Expect(call(http.MethodGet, "/api/v1/contracts", staff, "").StatusCode).To(Equal(http.StatusForbidden))
		Expect(call(http.MethodGet, "/api/v1/contracts/expiring", admin, "").StatusCode).To(Equal(http.StatusOK))
		Expect(call(http.MethodGet, "/api/v1/candidates", staff, "").StatusCode).To(Equal(http.StatusForbidden))
		Expect(call(http.MethodGet, "/api/v1/egresos", admin, "").StatusCode).To(Equal(http.StatusOK))
		Expect(call(http.MethodGet, "/api/v1/probation-periods/expiring", admin, "").StatusCode).To(Equal(http.StatusOK))
	})

	Context("with request validation", func() {
		BeforeEach(func() {
			doc, err := middleware.LoadOpenAPI(context.Background(), "../../../api/openapi.yml")
			Expect(err).NotTo(HaveOccurred())
			opts.Validator, err = middleware.OpenAPIValidator(doc, logger.Discard())
			Expect(err).NotTo(HaveOccurred())
		})

		It("authenticates before it validates", func() {
			bad := `{"employeeId":"x","fechaEgreso":"2024-06-30","tipo":"abandono"}`
			Expect(call(http.MethodPost, "/api/v1/egresos", "", bad).StatusCode).To(Equal(http.StatusUnauthorized))

			admin := login("V-10000000")
			Expect(call(http.MethodPost, "/api/v1/egresos", admin, bad).StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("validates public auth requests", func() {
			Expect(call(http.MethodPost, "/api/v1/auth/login", "", `{"cedula":42}`).StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	It("serves the dashboard to any signed-in user", func() {
		staff := login("V-20000000")
		resp := call(http.MethodGet, "/api/v1/dashboard/stats", staff, "")
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		var stats hr.DashboardStats
		Expect(json.NewDecoder(resp.Body).Decode(&stats)).To(Succeed())
		Expect(stats.TotalEmployees).To(BeZero())

		Expect(call(http.MethodGet, "/api/v1/dashboard/expiring", staff, "").StatusCode).To(Equal(http.StatusOK))
	})
})
