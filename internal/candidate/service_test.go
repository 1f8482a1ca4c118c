package candidate_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/candidate"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/relations"
	"github.com/frahmantamala/hr-management/internal/storage/memory"
	"github.com/frahmantamala/hr-management/internal/storage/storagetest"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCandidate(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Candidate Suite")
}

func ptr[T any](v T) *T { return &v }

func appCode(err error) internal.ErrorCode {
	appErr, ok := internal.IsAppError(err)
	Expect(ok).To(BeTrue(), "expected AppError, got %v", err)
	return appErr.Code
}

type hires struct {
	mu  sync.Mutex
	ids []string
}

func (h *hires) handle(_ context.Context, e events.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ids = append(h.ids, e.(*events.CandidateHiredEvent).CandidateID)
	return nil
}

func (h *hires) all() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.ids...)
}

var _ = Describe("Service", func() {
	var (
		ctx    context.Context
		authed context.Context
		store  *memory.Store
		org    storagetest.Org
		hired  *hires
		svc    *candidate.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = memory.New()
		org = storagetest.SeedOrg(ctx, store)
		authed = internal.ContextWithUser(ctx, org.User)

		bus := events.NewEventBus(logger.Discard())
		hired = &hires{}
		bus.Subscribe(events.EventTypeCandidateHired, hired.handle)

		svc = candidate.NewService(store, relations.NewComposer(store, logger.Discard()), bus, logger.Discard())
		svc.Now = func() time.Time { return storagetest.Now }
	})

	apply := func(cedula string) *hr.Candidate {
		c, err := svc.CreateCandidate(authed, candidate.CreateCandidateDTO{
			Cedula:    cedula,
			Nombres:   "Carla",
			Apellidos: "Rojas",
			Email:     "carla@mail.test",
			CargoID:   org.Cargo.ID,
		})
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	It("records the submitter and starts in evaluation", func() {
		c := apply("V-30000001")
		Expect(c.Status).To(Equal(hr.CandidateInEvaluation))
		Expect(c.SubmittedBy).To(Equal(org.User.ID))

		composed, err := svc.GetCandidate(ctx, c.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(composed.SubmittedByUser.Cedula).To(Equal("V-11111111"))
		Expect(composed.Cargo.Departamento.Gerencia.ID).To(Equal(org.Gerencia.ID))
	})

	It("requires an authenticated submitter, a real cargo and a unique cedula", func() {
		dto := candidate.CreateCandidateDTO{Cedula: "V-30000001", Nombres: "C", Apellidos: "R", Email: "c@mail.test", CargoID: org.Cargo.ID}

		_, err := svc.CreateCandidate(ctx, dto)
		Expect(appCode(err)).To(Equal(internal.ErrCodeInvalidToken))

		bad := dto
		bad.CargoID = "nope"
		_, err = svc.CreateCandidate(authed, bad)
		Expect(appCode(err)).To(Equal(internal.ErrCodeCargoNotFound))

		first := apply("V-30000001")
		_, err = svc.CreateCandidate(authed, dto)
		Expect(appCode(err)).To(Equal(internal.ErrCodeDuplicateCedula))

		second := apply("V-30000002")
		_, err = svc.UpdateCandidate(ctx, second.ID, candidate.UpdateCandidateDTO{Cedula: ptr(first.Cedula)})
		Expect(appCode(err)).To(Equal(internal.ErrCodeDuplicateCedula))
	})

	It("walks the pipeline and publishes candidate.hired", func() {
		c := apply("V-30000001")

		_, err := svc.Evaluate(authed, c.ID, candidate.EvaluateCandidateDTO{Estatus: hr.CandidateHired})
		Expect(appCode(err)).To(Equal(internal.ErrCodeCandidateNotApproved))

		approved, err := svc.Evaluate(authed, c.ID, candidate.EvaluateCandidateDTO{Estatus: hr.CandidateApproved, EvaluationNotes: "ok"})
		Expect(err).NotTo(HaveOccurred())
		Expect(approved.EvaluatedBy).To(Equal(ptr(org.User.ID)))
		Expect(approved.EvaluationDate).To(Equal(ptr(storagetest.Now)))
		Expect(hired.all()).To(BeEmpty())

		done, err := svc.Evaluate(authed, c.ID, candidate.EvaluateCandidateDTO{Estatus: hr.CandidateHired})
		Expect(err).NotTo(HaveOccurred())
		Expect(done.Status).To(Equal(hr.CandidateHired))
		Eventually(hired.all).Should(Equal([]string{c.ID}))

		_, err = svc.Evaluate(authed, c.ID, candidate.EvaluateCandidateDTO{Estatus: hr.CandidateRejected})
		Expect(appCode(err)).To(Equal(internal.ErrCodeCandidateClosed))
	})

	It("does not move a candidate back into evaluation", func() {
		c := apply("V-30000001")
		_, err := svc.Evaluate(authed, c.ID, candidate.EvaluateCandidateDTO{Estatus: hr.CandidateInEvaluation})
		Expect(appCode(err)).To(Equal(internal.ErrCodeValidationFailed))
	})

	It("filters and drops candidates whose cargo is gone", func() {
		a := apply("V-30000001")
		apply("V-30000002")
		_, err := svc.Evaluate(authed, a.ID, candidate.EvaluateCandidateDTO{Estatus: hr.CandidateInterview})
		Expect(err).NotTo(HaveOccurred())

		interviewing, err := svc.ListCandidates(ctx, candidate.ListFilter{Status: hr.CandidateInterview})
		Expect(err).NotTo(HaveOccurred())
		Expect(interviewing).To(HaveLen(1))

		_, err = store.DeleteCargo(ctx, org.Cargo.ID)
		Expect(err).NotTo(HaveOccurred())
		all, err := svc.ListCandidates(ctx, candidate.ListFilter{})
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(BeEmpty())
		_, err = svc.GetCandidate(ctx, a.ID)
		Expect(appCode(err)).To(Equal(internal.ErrCodeCandidateNotFound))
	})
})

var _ = Describe("Handler", func() {
	var (
		org    storagetest.Org
		router http.Handler
	)

	BeforeEach(func() {
		ctx := context.Background()
		store := memory.New()
		org = storagetest.SeedOrg(ctx, store)

		svc := candidate.NewService(store, relations.NewComposer(store, logger.Discard()), events.NewEventBus(logger.Discard()), logger.Discard())
		h := candidate.NewHandler(transport.NewBaseHandler(logger.Discard()), svc)
		mux := chi.NewRouter()
		mux.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithUser(r.Context(), org.User)))
			})
		})
		mux.Get("/candidates", h.ListCandidates)
		mux.Post("/candidates", h.CreateCandidate)
		mux.Get("/candidates/{id}", h.GetCandidate)
		mux.Patch("/candidates/{id}", h.UpdateCandidate)
		mux.Delete("/candidates/{id}", h.DeleteCandidate)
		mux.Post("/candidates/{id}/evaluate", h.Evaluate)
		router = mux
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

	It("serves the recruiting flow", func() {
		rec := do(http.MethodPost, "/candidates", `{"cedula":"V-30000001","nombres":"Carla","apellidos":"Rojas","email":"carla@mail.test","cargoId":"`+org.Cargo.ID+`","fechaNacimiento":"1995-02-03"}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))
		var created hr.Candidate
		Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
		id := created.ID

		Expect(do(http.MethodGet, "/candidates?estatus=en_evaluacion", "").Body.String()).To(ContainSubstring(id))
		Expect(do(http.MethodGet, "/candidates?estatus=nuevo", "").Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodGet, "/candidates/"+id, "").Body.String()).To(ContainSubstring(`"submittedByUser"`))

		Expect(do(http.MethodPost, "/candidates/"+id+"/evaluate", `{"estatus":"contratado"}`).Code).To(Equal(http.StatusConflict))
		Expect(do(http.MethodPost, "/candidates/"+id+"/evaluate", `{"estatus":"aprobado"}`).Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodPatch, "/candidates/"+id, `{"notas":"segunda entrevista"}`).Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodDelete, "/candidates/"+id, "").Code).To(Equal(http.StatusNoContent))
		Expect(do(http.MethodDelete, "/candidates/"+id, "").Code).To(Equal(http.StatusNotFound))
	})

	It("rejects malformed cedulas", func() {
		rec := do(http.MethodPost, "/candidates", `{"cedula":"12345","nombres":"C","apellidos":"R","email":"c@mail.test","cargoId":"`+org.Cargo.ID+`"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("cedula"))
	})
})
