package organization_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/organization"
	"github.com/frahmantamala/hr-management/internal/storage/memory"
	"github.com/frahmantamala/hr-management/internal/storage/storagetest"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOrganization(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Organization Suite")
}

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
		svc   *organization.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = memory.New()
		svc = organization.NewService(store, logger.Discard())
	})

	It("builds the hierarchy top-down", func() {
		g, err := svc.CreateGerencia(ctx, organization.CreateGerenciaDTO{Nombre: "Operaciones"})
		Expect(err).NotTo(HaveOccurred())
		d, err := svc.CreateDepartamento(ctx, organization.CreateDepartamentoDTO{Nombre: "Logistica", GerenciaID: g.ID})
		Expect(err).NotTo(HaveOccurred())
		c, err := svc.CreateCargo(ctx, organization.CreateCargoDTO{Nombre: "Analista", DepartamentoID: d.ID})
		Expect(err).NotTo(HaveOccurred())
		Expect(c.DepartamentoID).To(Equal(d.ID))
	})

	It("rejects children of missing parents", func() {
		_, err := svc.CreateDepartamento(ctx, organization.CreateDepartamentoDTO{Nombre: "X", GerenciaID: "nope"})
		Expect(appCode(err)).To(Equal(internal.ErrCodeGerenciaNotFound))

		_, err = svc.CreateCargo(ctx, organization.CreateCargoDTO{Nombre: "X", DepartamentoID: "nope"})
		Expect(appCode(err)).To(Equal(internal.ErrCodeDepartamentoNotFound))

		org := storagetest.SeedOrg(ctx, store)
		_, err = svc.UpdateCargo(ctx, org.Cargo.ID, organization.UpdateCargoDTO{DepartamentoID: ptr("nope")})
		Expect(appCode(err)).To(Equal(internal.ErrCodeDepartamentoNotFound))
	})

	It("requires names", func() {
		_, err := svc.CreateGerencia(ctx, organization.CreateGerenciaDTO{})
		Expect(appCode(err)).To(Equal(internal.ErrCodeValidationFailed))
		_, err = svc.UpdateGerencia(ctx, "any", organization.UpdateGerenciaDTO{Nombre: ptr("")})
		Expect(appCode(err)).To(Equal(internal.ErrCodeValidationFailed))
	})

	It("refuses to delete nodes that still have dependents", func() {
		org := storagetest.SeedOrg(ctx, store)

		Expect(appCode(svc.DeleteGerencia(ctx, org.Gerencia.ID))).To(Equal(internal.ErrCodeHasDependents))
		Expect(appCode(svc.DeleteDepartamento(ctx, org.Departamento.ID))).To(Equal(internal.ErrCodeHasDependents))

		storagetest.SeedEmployee(ctx, store, org, "Alice", "V-22222222")
		Expect(appCode(svc.DeleteCargo(ctx, org.Cargo.ID))).To(Equal(internal.ErrCodeHasDependents))
	})

	It("refuses to delete a cargo with candidates", func() {
		org := storagetest.SeedOrg(ctx, store)
		_, err := store.CreateCandidate(ctx, hr.CandidateInput{Cedula: "V-30000001", CargoID: org.Cargo.ID, SubmittedBy: org.User.ID})
		Expect(err).NotTo(HaveOccurred())

		Expect(appCode(svc.DeleteCargo(ctx, org.Cargo.ID))).To(Equal(internal.ErrCodeHasDependents))
	})

	It("deletes bottom-up once nothing references the node", func() {
		org := storagetest.SeedOrg(ctx, store)

		Expect(svc.DeleteCargo(ctx, org.Cargo.ID)).To(Succeed())
		Expect(svc.DeleteDepartamento(ctx, org.Departamento.ID)).To(Succeed())
		Expect(svc.DeleteGerencia(ctx, org.Gerencia.ID)).To(Succeed())
		Expect(appCode(svc.DeleteGerencia(ctx, org.Gerencia.ID))).To(Equal(internal.ErrCodeGerenciaNotFound))
	})

	It("filters children by parent", func() {
		org := storagetest.SeedOrg(ctx, store)
		other, err := svc.CreateGerencia(ctx, organization.CreateGerenciaDTO{Nombre: "D2"})
		Expect(err).NotTo(HaveOccurred())
		_, err = svc.CreateDepartamento(ctx, organization.CreateDepartamentoDTO{Nombre: "Dept2", GerenciaID: other.ID})
		Expect(err).NotTo(HaveOccurred())

		all, err := svc.ListDepartamentos(ctx, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(2))

		filtered, err := svc.ListDepartamentos(ctx, org.Gerencia.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(filtered).To(HaveLen(1))
		Expect(filtered[0].ID).To(Equal(org.Departamento.ID))

		cargos, err := svc.ListCargos(ctx, "unknown")
		Expect(err).NotTo(HaveOccurred())
		Expect(cargos).To(BeEmpty())
	})
})

var _ = Describe("Handler", func() {
	var router *chi.Mux

	BeforeEach(func() {
		store := memory.New()
		h := organization.NewHandler(transport.NewBaseHandler(logger.Discard()), organization.NewService(store, logger.Discard()))
		router = chi.NewRouter()
		router.Get("/gerencias", h.ListGerencias)
		router.Post("/gerencias", h.CreateGerencia)
		router.Get("/gerencias/{id}", h.GetGerencia)
		router.Patch("/gerencias/{id}", h.UpdateGerencia)
		router.Delete("/gerencias/{id}", h.DeleteGerencia)
		router.Post("/departamentos", h.CreateDepartamento)
		router.Get("/departamentos", h.ListDepartamentos)
		router.Post("/cargos", h.CreateCargo)
		router.Get("/cargos", h.ListCargos)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	It("serves the hierarchy over HTTP", func() {
		rec := do(http.MethodPost, "/gerencias", `{"nombre":"Operaciones","descripcion":"ops"}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))
		var g hr.Gerencia
		Expect(json.Unmarshal(rec.Body.Bytes(), &g)).To(Succeed())
		Expect(g.Description).To(Equal("ops"))

		rec = do(http.MethodPost, "/departamentos", `{"nombre":"Logistica","gerenciaId":"`+g.ID+`"}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))

		rec = do(http.MethodGet, "/departamentos?gerenciaId="+g.ID, "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		var list organization.DepartamentosResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &list)).To(Succeed())
		Expect(list.Departamentos).To(HaveLen(1))

		rec = do(http.MethodPatch, "/gerencias/"+g.ID, `{"nombre":"Ops"}`)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"nombre":"Ops"`))

		rec = do(http.MethodDelete, "/gerencias/"+g.ID, "")
		Expect(rec.Code).To(Equal(http.StatusConflict))
		Expect(rec.Body.String()).To(ContainSubstring("HAS_DEPENDENTS"))
	})

	It("answers 404 and 400 where appropriate", func() {
		Expect(do(http.MethodGet, "/gerencias/nope", "").Code).To(Equal(http.StatusNotFound))
		Expect(do(http.MethodPost, "/cargos", `{"nombre":"X","departamentoId":"nope"}`).Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodPost, "/gerencias", `{`).Code).To(Equal(http.StatusBadRequest))
	})
})
