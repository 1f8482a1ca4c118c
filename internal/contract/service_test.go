package contract_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/contract"
	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/relations"
	"github.com/frahmantamala/hr-management/internal/storage"
	"github.com/frahmantamala/hr-management/internal/storage/memory"
	"github.com/frahmantamala/hr-management/internal/storage/storagetest"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestContract(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Contract Suite")
}

func ptr[T any](v T) *T { return &v }

func date(t time.Time) *hr.Date { return &hr.Date{Time: t} }

func appCode(err error) internal.ErrorCode {
	appErr, ok := internal.IsAppError(err)
	Expect(ok).To(BeTrue(), "expected AppError, got %v", err)
	return appErr.Code
}

// slowStore adds a round-trip's worth of latency to the active-contract read,
// widening the gap between the check and the write.
type slowStore struct {
	*memory.Store
}

func (s slowStore) GetContractsByEmployee(ctx context.Context, employeeID string) ([]*hr.Contract, error) {
	time.Sleep(time.Millisecond)
	return s.Store.GetContractsByEmployee(ctx, employeeID)
}

// indexedStore answers like a database whose one-active-contract index
// already holds a row for the employee.
type indexedStore struct {
	*memory.Store
}

func (s indexedStore) CreateContract(context.Context, hr.ContractInput) (*hr.Contract, error) {
	return nil, fmt.Errorf("%w: idx_contracts_one_active", storage.ErrConflict)
}

var _ = Describe("Service", func() {
	var (
		ctx   context.Context
		clock *storagetest.Clock
		store *memory.Store
		org   storagetest.Org
		alice *hr.Employee
		svc   *contract.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		clock = storagetest.NewClock(storagetest.Now)
		store = memory.New(storage.WithClock(clock.Now))
		org = storagetest.SeedOrg(ctx, store)
		alice = storagetest.SeedEmployee(ctx, store, org, "Alice", "V-22222222")
		svc = contract.NewService(store, relations.NewComposer(store, logger.Discard()), logger.Discard())
	})

	fixedTerm := func(days int) contract.CreateContractDTO {
		return contract.CreateContractDTO{
			EmployeeID:   alice.ID,
			TipoContrato: hr.ContractFixedTerm,
			FechaInicio:  date(storagetest.Now.AddDate(0, -1, 0)),
			FechaFin:     date(storagetest.Now.AddDate(0, 0, days)),
		}
	}

	It("allows a single active contract per employee", func() {
		first, err := svc.CreateContract(ctx, fixedTerm(15))
		Expect(err).NotTo(HaveOccurred())
		Expect(first.IsActive).To(BeTrue())

		_, err = svc.CreateContract(ctx, fixedTerm(60))
		Expect(appCode(err)).To(Equal(internal.ErrCodeActiveContractExist))

		inactive := fixedTerm(60)
		inactive.IsActive = ptr(false)
		second, err := svc.CreateContract(ctx, inactive)
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.UpdateContract(ctx, second.ID, contract.UpdateContractDTO{IsActive: ptr(true)})
		Expect(appCode(err)).To(Equal(internal.ErrCodeActiveContractExist))

		_, err = svc.UpdateContract(ctx, first.ID, contract.UpdateContractDTO{IsActive: ptr(false)})
		Expect(err).NotTo(HaveOccurred())
		_, err = svc.UpdateContract(ctx, second.ID, contract.UpdateContractDTO{IsActive: ptr(true)})
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects end dates before the start date, on create and on the merged update", func() {
		dto := fixedTerm(15)
		dto.FechaFin = date(storagetest.Now.AddDate(-1, 0, 0))
		_, err := svc.CreateContract(ctx, dto)
		Expect(appCode(err)).To(Equal(internal.ErrCodeValidationFailed))

		c, err := svc.CreateContract(ctx, fixedTerm(15))
		Expect(err).NotTo(HaveOccurred())
		_, err = svc.UpdateContract(ctx, c.ID, contract.UpdateContractDTO{FechaInicio: date(storagetest.Now.AddDate(1, 0, 0))})
		Expect(appCode(err)).To(Equal(internal.ErrCodeValidationFailed))

		open, err := svc.UpdateContract(ctx, c.ID, contract.UpdateContractDTO{
			TipoContrato: ptr(hr.ContractIndefinite),
			FechaFin:     hr.Null[hr.Date](),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(open.EndDate).To(BeNil())
	})

	It("checks the employee", func() {
		dto := fixedTerm(15)
		dto.EmployeeID = "nope"
		_, err := svc.CreateContract(ctx, dto)
		Expect(appCode(err)).To(Equal(internal.ErrCodeEmployeeNotFound))

		inactive := hr.EmployeeStatusInactive
		_, err = store.UpdateEmployee(ctx, alice.ID, hr.EmployeePatch{Status: &inactive})
		Expect(err).NotTo(HaveOccurred())
		_, err = svc.CreateContract(ctx, fixedTerm(15))
		Expect(appCode(err)).To(Equal(internal.ErrCodeEmployeeInactive))
	})

	It("lists expiring contracts with their employee until they are toggled off", func() {
		c, err := svc.CreateContract(ctx, fixedTerm(15))
		Expect(err).NotTo(HaveOccurred())

		expiring, err := svc.GetExpiring(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(expiring).To(HaveLen(1))
		Expect(expiring[0].Employee.FirstName).To(Equal("Alice"))

		_, err = svc.UpdateContract(ctx, c.ID, contract.UpdateContractDTO{IsActive: ptr(false)})
		Expect(err).NotTo(HaveOccurred())
		expiring, err = svc.GetExpiring(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(expiring).To(BeEmpty())
	})

	It("keeps a single active contract under concurrent creates", func() {
		svc = contract.NewService(slowStore{store}, relations.NewComposer(store, logger.Discard()), logger.Discard())

		const callers = 64
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			created   int
			conflicts int
		)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				_, err := svc.CreateContract(ctx, fixedTerm(15))
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					created++
					return
				}
				Expect(appCode(err)).To(Equal(internal.ErrCodeActiveContractExist))
				conflicts++
			}()
		}
		wg.Wait()

		Expect(created).To(Equal(1))
		Expect(conflicts).To(Equal(callers - 1))
		active, err := svc.ListContracts(ctx, contract.ListFilter{EmployeeID: alice.ID, Active: ptr(true)})
		Expect(err).NotTo(HaveOccurred())
		Expect(active).To(HaveLen(1))
	})

	It("maps a unique index violation to an active contract conflict", func() {
		svc = contract.NewService(indexedStore{store}, relations.NewComposer(store, logger.Discard()), logger.Discard())
		_, err := svc.CreateContract(ctx, fixedTerm(15))
		Expect(appCode(err)).To(Equal(internal.ErrCodeActiveContractExist))
	})

	It("does not reactivate a contract once the employee has exited", func() {
		old := fixedTerm(15)
		old.IsActive = ptr(false)
		c, err := svc.CreateContract(ctx, old)
		Expect(err).NotTo(HaveOccurred())

		bob := storagetest.SeedEmployee(ctx, store, org, "Bob", "V-33333333")
		other := fixedTerm(15)
		other.EmployeeID = bob.ID
		other.IsActive = ptr(false)
		moved, err := svc.CreateContract(ctx, other)
		Expect(err).NotTo(HaveOccurred())

		inactive := hr.EmployeeStatusInactive
		_, err = store.UpdateEmployee(ctx, alice.ID, hr.EmployeePatch{Status: &inactive})
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.UpdateContract(ctx, c.ID, contract.UpdateContractDTO{IsActive: ptr(true)})
		Expect(appCode(err)).To(Equal(internal.ErrCodeEmployeeInactive))

		_, err = svc.UpdateContract(ctx, moved.ID, contract.UpdateContractDTO{EmployeeID: ptr(alice.ID), IsActive: ptr(true)})
		Expect(appCode(err)).To(Equal(internal.ErrCodeEmployeeInactive))

		stored, err := svc.GetContract(ctx, c.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.IsActive).To(BeFalse())

		// edits that keep the contract closed still go through
		closed, err := svc.UpdateContract(ctx, c.ID, contract.UpdateContractDTO{TipoContrato: ptr(hr.ContractIndefinite)})
		Expect(err).NotTo(HaveOccurred())
		Expect(closed.Type).To(Equal(hr.ContractIndefinite))
	})

	It("filters the listing", func() {
		_, err := svc.CreateContract(ctx, fixedTerm(15))
		Expect(err).NotTo(HaveOccurred())
		old := fixedTerm(15)
		old.IsActive = ptr(false)
		_, err = svc.CreateContract(ctx, old)
		Expect(err).NotTo(HaveOccurred())

		all, err := svc.ListContracts(ctx, contract.ListFilter{EmployeeID: alice.ID})
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(2))

		active, err := svc.ListContracts(ctx, contract.ListFilter{Active: ptr(true)})
		Expect(err).NotTo(HaveOccurred())
		Expect(active).To(HaveLen(1))
	})
})

var _ = Describe("Handler", func() {
	var (
		store  *memory.Store
		alice  *hr.Employee
		router *chi.Mux
	)

	BeforeEach(func() {
		ctx := context.Background()
		store = memory.New(storage.WithClock(storagetest.NewClock(storagetest.Now).Now))
		org := storagetest.SeedOrg(ctx, store)
		alice = storagetest.SeedEmployee(ctx, store, org, "Alice", "V-22222222")

		svc := contract.NewService(store, relations.NewComposer(store, logger.Discard()), logger.Discard())
		h := contract.NewHandler(transport.NewBaseHandler(logger.Discard()), svc)
		router = chi.NewRouter()
		router.Get("/contracts", h.ListContracts)
		router.Post("/contracts", h.CreateContract)
		router.Get("/contracts/expiring", h.GetExpiring)
		router.Get("/contracts/{id}", h.GetContract)
		router.Patch("/contracts/{id}", h.UpdateContract)
		router.Delete("/contracts/{id}", h.DeleteContract)
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

	It("round-trips a contract and clears its end date with null", func() {
		rec := do(http.MethodPost, "/contracts", `{"employeeId":"`+alice.ID+`","tipoContrato":"determinado","fechaInicio":"2024-06-01","fechaFin":"2024-06-20"}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))
		var c hr.Contract
		Expect(json.Unmarshal(rec.Body.Bytes(), &c)).To(Succeed())
		Expect(c.EndDate).NotTo(BeNil())

		rec = do(http.MethodGet, "/contracts/expiring", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		var expiring contract.ExpiringResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &expiring)).To(Succeed())
		Expect(expiring.Contracts).To(HaveLen(1))

		rec = do(http.MethodPatch, "/contracts/"+c.ID, `{"tipoContrato":"indefinido","fechaFin":null}`)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"fechaFin":null`))

		Expect(do(http.MethodDelete, "/contracts/"+c.ID, "").Code).To(Equal(http.StatusNoContent))
		Expect(do(http.MethodGet, "/contracts/"+c.ID, "").Code).To(Equal(http.StatusNotFound))
	})

	It("answers 409 for a second active contract and 400 for bad filters", func() {
		body := `{"employeeId":"` + alice.ID + `","tipoContrato":"indefinido","fechaInicio":"2024-01-01"}`
		Expect(do(http.MethodPost, "/contracts", body).Code).To(Equal(http.StatusCreated))
		Expect(do(http.MethodPost, "/contracts", body).Code).To(Equal(http.StatusConflict))
		Expect(do(http.MethodGet, "/contracts?isActive=maybe", "").Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodPost, "/contracts", `{"employeeId":"`+alice.ID+`","tipoContrato":"temporal","fechaInicio":"2024-01-01"}`).Code).To(Equal(http.StatusBadRequest))
	})
})
