package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/dashboard"
	"github.com/frahmantamala/hr-management/internal/relations"
	"github.com/frahmantamala/hr-management/internal/storage"
	"github.com/frahmantamala/hr-management/internal/storage/memory"
	"github.com/frahmantamala/hr-management/internal/storage/storagetest"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDashboard(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dashboard Suite")
}

func ptr[T any](v T) *T { return &v }

var _ = Describe("Service", func() {
	var (
		ctx      context.Context
		clock    *storagetest.Clock
		store    *memory.Store
		composer *relations.Composer
		svc      *dashboard.Service
		org      storagetest.Org
		alice    *hr.Employee
		bob      *hr.Employee
	)

	day := 24 * time.Hour

	BeforeEach(func() {
		ctx = context.Background()
		clock = storagetest.NewClock(storagetest.Now)
		store = memory.New(storage.WithClock(clock.Now))
		composer = relations.NewComposer(store, logger.Discard())
		svc = dashboard.NewService(store, composer, logger.Discard())

		org = storagetest.SeedOrg(ctx, store)
		alice = storagetest.SeedEmployee(ctx, store, org, "Alice", "V-20000001")
		bob = storagetest.SeedEmployee(ctx, store, org, "Bob", "V-20000002")
		_, err := store.UpdateEmployee(ctx, bob.ID, hr.EmployeePatch{Status: ptr(hr.EmployeeStatusProbation)})
		Expect(err).NotTo(HaveOccurred())

		// orphan: its cargo does not exist
		orphan, err := store.CreateEmployee(ctx, hr.EmployeeInput{UserID: org.User.ID, FirstName: "Carl", Email: "carl@corp.test", CargoID: "missing"})
		Expect(err).NotTo(HaveOccurred())

		now := clock.Now()
		mustContract := func(in hr.ContractInput) {
			_, err := store.CreateContract(ctx, in)
			Expect(err).NotTo(HaveOccurred())
		}
		mustContract(hr.ContractInput{EmployeeID: alice.ID, Type: hr.ContractIndefinite, StartDate: now.AddDate(-1, 0, 0)})
		mustContract(hr.ContractInput{EmployeeID: bob.ID, Type: hr.ContractFixedTerm, StartDate: now.AddDate(0, -1, 0), EndDate: ptr(now.Add(15 * day))})
		mustContract(hr.ContractInput{EmployeeID: orphan.ID, Type: hr.ContractFixedTerm, StartDate: now, EndDate: ptr(now.Add(10 * day))})
		mustContract(hr.ContractInput{EmployeeID: alice.ID, Type: hr.ContractFixedTerm, StartDate: now.AddDate(-2, 0, 0), EndDate: ptr(now.Add(5 * day)), IsActive: ptr(false)})

		mustCandidate := func(cedula string, status hr.CandidateStatus) {
			_, err := store.CreateCandidate(ctx, hr.CandidateInput{Cedula: cedula, FirstName: cedula, CargoID: org.Cargo.ID, SubmittedBy: org.User.ID, Status: status})
			Expect(err).NotTo(HaveOccurred())
		}
		mustCandidate("V-30000001", "")
		mustCandidate("V-30000002", hr.CandidateApproved)
		mustCandidate("V-30000003", hr.CandidateRejected)

		mustPeriod := func(employeeID string, end time.Time, status hr.ProbationStatus) {
			_, err := store.CreateProbationPeriod(ctx, hr.ProbationPeriodInput{EmployeeID: employeeID, StartDate: now.AddDate(0, -2, 0), EndDate: end, Status: status})
			Expect(err).NotTo(HaveOccurred())
		}
		mustPeriod(bob.ID, now.Add(5*day), "")
		mustPeriod(bob.ID, now.Add(-60*day), hr.ProbationCompleted)
		mustPeriod(alice.ID, now.Add(30*day), hr.ProbationActive)
	})

	It("computes every counter from the live state", func() {
		stats, err := svc.GetStats(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(*stats).To(Equal(hr.DashboardStats{
			TotalEmployees:           2,
			ProbationEmployees:       1,
			TotalContracts:           4,
			ActiveContracts:          3,
			IndefiniteContracts:      1,
			ExpiringContracts:        2,
			TotalCandidates:          3,
			CandidatesInEvaluation:   1,
			ApprovedCandidates:       1,
			ActiveProbationPeriods:   2,
			ExpiringProbationPeriods: 1,
		}))
	})

	It("keeps totalEmployees equal to the composed employee list", func() {
		composed, err := composer.ListEmployeesWithRelations(ctx)
		Expect(err).NotTo(HaveOccurred())
		stats, err := svc.GetStats(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.TotalEmployees).To(Equal(len(composed)))

		_, err = store.DeleteEmployee(ctx, alice.ID)
		Expect(err).NotTo(HaveOccurred())

		composed, err = composer.ListEmployeesWithRelations(ctx)
		Expect(err).NotTo(HaveOccurred())
		stats, err = svc.GetStats(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.TotalEmployees).To(Equal(len(composed)))
		Expect(stats.TotalEmployees).To(Equal(1))
	})

	It("reflects contract toggles and clock movement on the next call", func() {
		contracts, err := store.GetContractsByEmployee(ctx, bob.ID)
		Expect(err).NotTo(HaveOccurred())
		_, err = store.UpdateContract(ctx, contracts[0].ID, hr.ContractPatch{IsActive: ptr(false)})
		Expect(err).NotTo(HaveOccurred())

		stats, err := svc.GetStats(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.ExpiringContracts).To(Equal(1))
		Expect(stats.ActiveContracts).To(Equal(2))

		clock.Advance(25 * day)
		stats, err = svc.GetStats(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.ExpiringContracts).To(Equal(0))
		Expect(stats.ExpiringProbationPeriods).To(Equal(2))
	})

	It("lists expiring records composed with their employee", func() {
		expiring, err := svc.GetExpiring(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(expiring.Contracts).To(HaveLen(1))
		Expect(expiring.Contracts[0].Employee.ID).To(Equal(bob.ID))
		Expect(expiring.ProbationPeriods).To(HaveLen(1))
		Expect(expiring.ProbationPeriods[0].Employee.Cargo.Departamento.Gerencia.Name).To(Equal("D1"))
	})
})

var _ = Describe("Handler", func() {
	It("serves the stats record with camelCase keys", func() {
		store := memory.New()
		svc := dashboard.NewService(store, relations.NewComposer(store, logger.Discard()), logger.Discard())
		h := dashboard.NewHandler(transport.NewBaseHandler(logger.Discard()), svc)

		rec := httptest.NewRecorder()
		h.GetStats(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil))

		Expect(rec.Code).To(Equal(http.StatusOK))
		var body map[string]int
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body).To(HaveLen(11))
		Expect(body).To(HaveKeyWithValue("totalEmployees", 0))
		Expect(body).To(HaveKey("expiringProbationPeriods"))
	})

	It("answers 501 when the backend does not implement the queries", func() {
		var repo storage.UnimplementedRepository
		svc := dashboard.NewService(repo, relations.NewComposer(repo, logger.Discard()), logger.Discard())
		h := dashboard.NewHandler(transport.NewBaseHandler(logger.Discard()), svc)

		rec := httptest.NewRecorder()
		h.GetExpiring(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/expiring", nil))
		Expect(rec.Code).To(Equal(http.StatusNotImplemented))
	})
})
