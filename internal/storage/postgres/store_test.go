package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/storage"
	"github.com/frahmantamala/hr-management/internal/storage/postgres"
	"github.com/frahmantamala/hr-management/internal/storage/storagetest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSQLStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SQL Store Suite")
}

// openSQLite returns a fresh in-memory database. A single connection keeps
// every query on the same memory database.
func openSQLite() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	Expect(err).NotTo(HaveOccurred())

	sqlDB, err := db.DB()
	Expect(err).NotTo(HaveOccurred())
	sqlDB.SetMaxOpenConns(1)
	DeferCleanup(sqlDB.Close)

	Expect(postgres.AutoMigrate(db)).To(Succeed())
	return db
}

var _ = storagetest.DescribeRepository("sql", func(clock *storagetest.Clock) storage.Repository {
	return postgres.New(openSQLite(), storage.WithClock(clock.Now))
})

var _ = Describe("SQL Store", func() {
	var (
		ctx   context.Context
		db    *gorm.DB
		store *postgres.Store
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = openSQLite()
		store = postgres.New(db, storage.WithClock(storagetest.NewClock(storagetest.Now).Now))
	})

	It("stores the password hash it is given", func() {
		u, err := store.CreateUser(ctx, hr.UserInput{Cedula: "V-12345678", Password: "$2a$10$hash"})
		Expect(err).NotTo(HaveOccurred())

		var stored string
		Expect(db.Raw("SELECT password FROM users WHERE id = ?", u.ID).Scan(&stored).Error).To(Succeed())
		Expect(stored).To(Equal("$2a$10$hash"))
	})

	It("rejects a duplicate cedula", func() {
		_, err := store.CreateUser(ctx, hr.UserInput{Cedula: "V-12345678"})
		Expect(err).NotTo(HaveOccurred())

		_, err = store.CreateUser(ctx, hr.UserInput{Cedula: "V-12345678"})
		Expect(err).To(MatchError(storage.ErrConflict))
	})

	It("reports the one-active-contract index as a conflict", func() {
		Expect(db.Exec("CREATE UNIQUE INDEX idx_contracts_one_active ON contracts(employee_id) WHERE is_active").Error).To(Succeed())
		org := storagetest.SeedOrg(ctx, store)
		e := storagetest.SeedEmployee(ctx, store, org, "Alice", "V-22222222")

		_, err := store.CreateContract(ctx, hr.ContractInput{EmployeeID: e.ID, Type: hr.ContractIndefinite, StartDate: storagetest.Now})
		Expect(err).NotTo(HaveOccurred())
		_, err = store.CreateContract(ctx, hr.ContractInput{EmployeeID: e.ID, Type: hr.ContractIndefinite, StartDate: storagetest.Now})
		Expect(err).To(MatchError(storage.ErrConflict))

		off := false
		closed, err := store.CreateContract(ctx, hr.ContractInput{EmployeeID: e.ID, Type: hr.ContractFixedTerm, StartDate: storagetest.Now, IsActive: &off})
		Expect(err).NotTo(HaveOccurred())
		on := true
		_, err = store.UpdateContract(ctx, closed.ID, hr.ContractPatch{IsActive: &on})
		Expect(err).To(MatchError(storage.ErrConflict))
	})

	It("surfaces query failures as errors", func() {
		Expect(db.Migrator().DropTable("employees")).To(Succeed())

		_, err := store.ListEmployees(ctx)
		Expect(err).To(HaveOccurred())

		_, err = store.GetEmployee(ctx, "any")
		Expect(err).To(HaveOccurred())
	})

	It("round-trips nullable columns", func() {
		org := storagetest.SeedOrg(ctx, store)
		e := storagetest.SeedEmployee(ctx, store, org, "Alice", "V-22222222")
		p, err := store.CreateProbationPeriod(ctx, hr.ProbationPeriodInput{
			EmployeeID: e.ID,
			StartDate:  storagetest.Now,
			EndDate:    storagetest.Now.AddDate(0, 3, 0),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Approved).To(BeNil())

		_, err = store.UpdateProbationPeriod(ctx, p.ID, hr.ProbationPeriodPatch{
			Approved:      hr.Some(false),
			ExtendedUntil: hr.Some(storagetest.Now.AddDate(0, 4, 0)),
		})
		Expect(err).NotTo(HaveOccurred())

		stored, err := store.GetProbationPeriod(ctx, p.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.Approved).NotTo(BeNil())
		Expect(*stored.Approved).To(BeFalse())
		Expect(*stored.ExtendedUntil).To(BeTemporally("==", storagetest.Now.AddDate(0, 4, 0)))

		_, err = store.UpdateProbationPeriod(ctx, p.ID, hr.ProbationPeriodPatch{ExtendedUntil: hr.Null[time.Time]()})
		Expect(err).NotTo(HaveOccurred())
		stored, err = store.GetProbationPeriod(ctx, p.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.ExtendedUntil).To(BeNil())
		Expect(stored.Approved).NotTo(BeNil())
	})
})
