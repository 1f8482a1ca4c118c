package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/candidate"
	"github.com/frahmantamala/hr-management/internal/contract"
	"github.com/frahmantamala/hr-management/internal/dashboard"
	"github.com/frahmantamala/hr-management/internal/egreso"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/organization"
	"github.com/frahmantamala/hr-management/internal/probation"
	"github.com/frahmantamala/hr-management/internal/transport/middleware"
	"github.com/frahmantamala/hr-management/internal/transport/swagger"
	"github.com/frahmantamala/hr-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers bundles every HTTP handler the API mounts. Nil handlers leave
// their routes unregistered.
type Handlers struct {
	Health       *HealthHandler
	Auth         *auth.Handler
	RBAC         *auth.RBACAuthorization
	User         *user.Handler
	Organization *organization.Handler
	Employee     *employee.Handler
	Contract     *contract.Handler
	Probation    *probation.Handler
	Candidate    *candidate.Handler
	Egreso       *egreso.Handler
	Dashboard    *dashboard.Handler
}

// Options carries the router-level switches.
type Options struct {
	OpenAPISpec string
	Validator   func(http.Handler) http.Handler
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, opts Options, logger *slog.Logger) {
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	if opts.OpenAPISpec != "" {
		router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, opts.OpenAPISpec)
		})
		router.Handle("/swagger/*", swagger.Handler("/openapi.yml"))
	}

	router.Route("/api/v1", func(r chi.Router) {
		if h.Health != nil {
			r.Get("/health", h.Health.healthCheckHandler)
			r.Get("/ping", h.Health.pingHandler)
		}

		if h.Auth == nil {
			return
		}

		validate := func(vr chi.Router) {
			if opts.Validator != nil {
				vr.Use(opts.Validator)
			}
		}

		r.Route("/auth", func(sr chi.Router) {
			validate(sr)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// authenticate before validating so anonymous callers learn nothing
		// about request schemas
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			validate(pr)
			registerProtected(pr, h)
		})
	})
}

func registerProtected(pr chi.Router, h Handlers) {
	rbac := h.RBAC
	hrOnly := rbac.RequireRoles(auth.HRRoles...)

	if h.User != nil {
		pr.Route("/users", func(ur chi.Router) {
			ur.Get("/me", h.User.GetCurrentUser)
			ur.Group(func(ar chi.Router) {
				ar.Use(rbac.RequireRoles(auth.AdminRoles...))
				ar.Get("/", h.User.ListUsers)
				ar.Post("/", h.User.CreateUser)
				ar.Get("/{id}", h.User.GetUser)
				ar.Patch("/{id}", h.User.UpdateUser)
				ar.Delete("/{id}", h.User.DeleteUser)
			})
		})
	}

	if o := h.Organization; o != nil {
		pr.Route("/gerencias", func(gr chi.Router) {
			gr.Get("/", o.ListGerencias)
			gr.Get("/{id}", o.GetGerencia)
			gr.With(hrOnly).Post("/", o.CreateGerencia)
			gr.With(hrOnly).Patch("/{id}", o.UpdateGerencia)
			gr.With(hrOnly).Delete("/{id}", o.DeleteGerencia)
		})
		pr.Route("/departamentos", func(dr chi.Router) {
			dr.Get("/", o.ListDepartamentos)
			dr.Get("/{id}", o.GetDepartamento)
			dr.With(hrOnly).Post("/", o.CreateDepartamento)
			dr.With(hrOnly).Patch("/{id}", o.UpdateDepartamento)
			dr.With(hrOnly).Delete("/{id}", o.DeleteDepartamento)
		})
		pr.Route("/cargos", func(cr chi.Router) {
			cr.Get("/", o.ListCargos)
			cr.Get("/{id}", o.GetCargo)
			cr.With(hrOnly).Post("/", o.CreateCargo)
			cr.With(hrOnly).Patch("/{id}", o.UpdateCargo)
			cr.With(hrOnly).Delete("/{id}", o.DeleteCargo)
		})
	}

	if e := h.Employee; e != nil {
		pr.Route("/employees", func(er chi.Router) {
			er.Get("/", e.ListEmployees)
			er.Get("/{id}", e.GetEmployee)

			er.Group(func(mr chi.Router) {
				mr.Use(hrOnly)
				mr.Get("/export", e.ExportEmployees)
				mr.Post("/", e.CreateEmployee)
				mr.Patch("/{id}", e.UpdateEmployee)
				mr.Delete("/{id}", e.DeleteEmployee)
				mr.Get("/{id}/contracts", e.ListContracts)
				mr.Get("/{id}/egresos", e.ListEgresos)
			})

			er.With(rbac.RequireRoles(auth.EvaluatorRoles...)).Get("/{id}/probation-periods", e.ListProbationPeriods)
		})
	}

	if c := h.Contract; c != nil {
		pr.Route("/contracts", func(cr chi.Router) {
			cr.Use(hrOnly)
			cr.Get("/", c.ListContracts)
			cr.Get("/expiring", c.GetExpiring)
			cr.Post("/", c.CreateContract)
			cr.Get("/{id}", c.GetContract)
			cr.Patch("/{id}", c.UpdateContract)
			cr.Delete("/{id}", c.DeleteContract)
		})
	}

	if p := h.Probation; p != nil {
		pr.Route("/probation-periods", func(ppr chi.Router) {
			ppr.Group(func(er chi.Router) {
				er.Use(rbac.RequireRoles(auth.EvaluatorRoles...))
				er.Get("/", p.ListProbationPeriods)
				er.Get("/expiring", p.GetExpiring)
				er.Get("/{id}", p.GetProbationPeriod)
				er.Post("/{id}/evaluate", p.Evaluate)
			})
			ppr.Group(func(mr chi.Router) {
				mr.Use(hrOnly)
				mr.Post("/", p.CreateProbationPeriod)
				mr.Patch("/{id}", p.UpdateProbationPeriod)
				mr.Delete("/{id}", p.DeleteProbationPeriod)
			})
		})
	}

	if c := h.Candidate; c != nil {
		pr.Route("/candidates", func(cr chi.Router) {
			cr.Group(func(rr chi.Router) {
				rr.Use(rbac.RequireRoles(auth.RecruitingRoles...))
				rr.Get("/", c.ListCandidates)
				rr.Post("/", c.CreateCandidate)
				rr.Get("/{id}", c.GetCandidate)
				rr.Patch("/{id}", c.UpdateCandidate)
			})
			cr.Group(func(mr chi.Router) {
				mr.Use(hrOnly)
				mr.Post("/{id}/evaluate", c.Evaluate)
				mr.Delete("/{id}", c.DeleteCandidate)
			})
		})
	}

	if eg := h.Egreso; eg != nil {
		pr.Route("/egresos", func(er chi.Router) {
			er.Use(hrOnly)
			er.Get("/", eg.ListEgresos)
			er.Post("/", eg.CreateEgreso)
			er.Get("/{id}", eg.GetEgreso)
		})
	}

	if d := h.Dashboard; d != nil {
		pr.Route("/dashboard", func(dr chi.Router) {
			dr.Get("/stats", d.GetStats)
			dr.Get("/expiring", d.GetExpiring)
		})
	}
}
