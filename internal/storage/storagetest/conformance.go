package storagetest

import (
	"context"
	"time"

	"github.com/frahmantamala/hr-management/internal/core/hr"
	"github.com/frahmantamala/hr-management/internal/storage"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// Now is the reference time the conformance specs run at.
var Now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

// Factory returns an empty repository reading time from clock.
type Factory func(clock *Clock) storage.Repository

// Org is a complete gerencia → departamento → cargo chain plus one user.
type Org struct {
	Gerencia     *hr.Gerencia
	Departamento *hr.Departamento
	Cargo        *hr.Cargo
	User         *hr.User
}

// SeedOrg creates the D1/Dept1/C1 hierarchy and the user V-11111111.
func SeedOrg(ctx context.Context, repo storage.Repository) Org {
	g, err := repo.CreateGerencia(ctx, hr.GerenciaInput{Name: "D1"})
	Expect(err).NotTo(HaveOccurred())
	d, err := repo.CreateDepartamento(ctx, hr.DepartamentoInput{Name: "Dept1", GerenciaID: g.ID})
	Expect(err).NotTo(HaveOccurred())
	c, err := repo.CreateCargo(ctx, hr.CargoInput{Name: "C1", DepartamentoID: d.ID})
	Expect(err).NotTo(HaveOccurred())
	u, err := repo.CreateUser(ctx, hr.UserInput{Cedula: "V-11111111", Password: "hash"})
	Expect(err).NotTo(HaveOccurred())
	return Org{Gerencia: g, Departamento: d, Cargo: c, User: u}
}

// SeedEmployee creates an employee on org's cargo linked to a fresh user.
func SeedEmployee(ctx context.Context, repo storage.Repository, org Org, name, cedula string) *hr.Employee {
	u, err := repo.CreateUser(ctx, hr.UserInput{Cedula: cedula, Password: "hash"})
	Expect(err).NotTo(HaveOccurred())
	e, err := repo.CreateEmployee(ctx, hr.EmployeeInput{
		UserID:    u.ID,
		FirstName: name,
		LastName:  "Test",
		Email:     cedula + "@corp.test",
		CargoID:   org.Cargo.ID,
		BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	Expect(err).NotTo(HaveOccurred())
	return e
}

func ptr[T any](v T) *T { return &v }

// DescribeRepository registers the shared repository specs.
func DescribeRepository(name string, factory Factory) bool {
	return Describe(name+" repository", func() {
		var (
			ctx   context.Context
			clock *Clock
			repo  storage.Repository
		)

		BeforeEach(func() {
			ctx = context.Background()
			clock = NewClock(Now)
			repo = factory(clock)
		})

		Describe("create", func() {
			It("assigns ids and defaults", func() {
				u, err := repo.CreateUser(ctx, hr.UserInput{Cedula: "V-12345678", Password: "hash"})
				Expect(err).NotTo(HaveOccurred())
				Expect(u.ID).NotTo(BeEmpty())
				Expect(u.Role).To(Equal(hr.RoleEmployee))
				Expect(u.IsActive).To(BeTrue())
				Expect(u.CreatedAt).To(BeTemporally("==", Now))
				Expect(u.UpdatedAt).To(BeTemporally("==", Now))

				other, err := repo.CreateUser(ctx, hr.UserInput{Cedula: "V-87654321", Password: "hash"})
				Expect(err).NotTo(HaveOccurred())
				Expect(other.ID).NotTo(Equal(u.ID))
			})

			It("defaults statuses", func() {
				org := SeedOrg(ctx, repo)
				e := SeedEmployee(ctx, repo, org, "Alice", "V-22222222")
				Expect(e.Status).To(Equal(hr.EmployeeStatusActive))

				c, err := repo.CreateContract(ctx, hr.ContractInput{EmployeeID: e.ID, Type: hr.ContractIndefinite, StartDate: Now})
				Expect(err).NotTo(HaveOccurred())
				Expect(c.IsActive).To(BeTrue())
				Expect(c.EndDate).To(BeNil())

				p, err := repo.CreateProbationPeriod(ctx, hr.ProbationPeriodInput{EmployeeID: e.ID, StartDate: Now, EndDate: Now.AddDate(0, 3, 0)})
				Expect(err).NotTo(HaveOccurred())
				Expect(p.Status).To(Equal(hr.ProbationActive))

				k, err := repo.CreateCandidate(ctx, hr.CandidateInput{Cedula: "V-33333333", CargoID: org.Cargo.ID, SubmittedBy: org.User.ID})
				Expect(err).NotTo(HaveOccurred())
				Expect(k.Status).To(Equal(hr.CandidateInEvaluation))
			})
		})

		Describe("get", func() {
			It("returns nil without error for unknown ids", func() {
				u, err := repo.GetUser(ctx, "missing")
				Expect(err).NotTo(HaveOccurred())
				Expect(u).To(BeNil())

				e, err := repo.GetEmployee(ctx, "missing")
				Expect(err).NotTo(HaveOccurred())
				Expect(e).To(BeNil())

				g, err := repo.GetEgreso(ctx, "missing")
				Expect(err).NotTo(HaveOccurred())
				Expect(g).To(BeNil())
			})

			It("finds users by cedula and employees by user", func() {
				org := SeedOrg(ctx, repo)
				e := SeedEmployee(ctx, repo, org, "Alice", "V-22222222")

				u, err := repo.GetUserByCedula(ctx, "V-22222222")
				Expect(err).NotTo(HaveOccurred())
				Expect(u).NotTo(BeNil())
				Expect(u.ID).To(Equal(e.UserID))

				byUser, err := repo.GetEmployeeByUserID(ctx, e.UserID)
				Expect(err).NotTo(HaveOccurred())
				Expect(byUser.ID).To(Equal(e.ID))

				none, err := repo.GetUserByCedula(ctx, "V-99999999")
				Expect(err).NotTo(HaveOccurred())
				Expect(none).To(BeNil())

				noEmployee, err := repo.GetEmployeeByUserID(ctx, org.User.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(noEmployee).To(BeNil())
			})
		})

		Describe("list", func() {
			It("returns rows in creation order", func() {
				for _, n := range []string{"A", "B", "C"} {
					_, err := repo.CreateGerencia(ctx, hr.GerenciaInput{Name: n})
					Expect(err).NotTo(HaveOccurred())
					clock.Advance(time.Second)
				}
				all, err := repo.ListGerencias(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(all).To(HaveLen(3))
				Expect(all[0].Name).To(Equal("A"))
				Expect(all[1].Name).To(Equal("B"))
				Expect(all[2].Name).To(Equal("C"))
			})

			It("returns an empty list for an empty store", func() {
				all, err := repo.ListCandidates(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(all).To(BeEmpty())
			})

			It("filters contracts, probation periods and egresos by employee", func() {
				org := SeedOrg(ctx, repo)
				a := SeedEmployee(ctx, repo, org, "Alice", "V-22222222")
				b := SeedEmployee(ctx, repo, org, "Bob", "V-33333333")

				for _, e := range []*hr.Employee{a, b, a} {
					_, err := repo.CreateContract(ctx, hr.ContractInput{EmployeeID: e.ID, Type: hr.ContractFixedTerm, StartDate: Now})
					Expect(err).NotTo(HaveOccurred())
					_, err = repo.CreateProbationPeriod(ctx, hr.ProbationPeriodInput{EmployeeID: e.ID, StartDate: Now, EndDate: Now.AddDate(0, 3, 0)})
					Expect(err).NotTo(HaveOccurred())
				}
				_, err := repo.CreateEgreso(ctx, hr.EgresoInput{EmployeeID: b.ID, ExitDate: Now, Type: hr.EgresoResignation, ProcessedBy: org.User.ID})
				Expect(err).NotTo(HaveOccurred())

				contracts, err := repo.GetContractsByEmployee(ctx, a.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(contracts).To(HaveLen(2))

				periods, err := repo.GetProbationPeriodsByEmployee(ctx, b.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(periods).To(HaveLen(1))

				egresos, err := repo.GetEgresosByEmployee(ctx, b.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(egresos).To(HaveLen(1))
				Expect(egresos[0].Type).To(Equal(hr.EgresoResignation))

				none, err := repo.GetEgresosByEmployee(ctx, a.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(none).To(BeEmpty())
			})
		})

		Describe("update", func() {
			It("merges only the patched fields and keeps id and createdAt", func() {
				org := SeedOrg(ctx, repo)
				e := SeedEmployee(ctx, repo, org, "Alice", "V-22222222")

				updated, err := repo.UpdateEmployee(ctx, e.ID, hr.EmployeePatch{Phone: ptr("0414-1234567")})
				Expect(err).NotTo(HaveOccurred())
				Expect(updated.ID).To(Equal(e.ID))
				Expect(updated.CreatedAt).To(BeTemporally("==", e.CreatedAt))
				Expect(updated.Phone).To(Equal("0414-1234567"))
				Expect(updated.FirstName).To(Equal("Alice"))
				Expect(updated.Email).To(Equal(e.Email))

				stored, err := repo.GetEmployee(ctx, e.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(stored.Phone).To(Equal("0414-1234567"))
			})

			It("strictly increases updatedAt even when the clock stands still", func() {
				u, err := repo.CreateUser(ctx, hr.UserInput{Cedula: "V-12345678", Password: "hash"})
				Expect(err).NotTo(HaveOccurred())

				first, err := repo.UpdateUser(ctx, u.ID, hr.UserPatch{Role: ptr(hr.RoleSupervisor)})
				Expect(err).NotTo(HaveOccurred())
				Expect(first.UpdatedAt).To(BeTemporally(">", u.UpdatedAt))

				second, err := repo.UpdateUser(ctx, u.ID, hr.UserPatch{IsActive: ptr(false)})
				Expect(err).NotTo(HaveOccurred())
				Expect(second.UpdatedAt).To(BeTemporally(">", first.UpdatedAt))
				Expect(second.Role).To(Equal(hr.RoleSupervisor))
				Expect(second.IsActive).To(BeFalse())
				Expect(second.CreatedAt).To(BeTemporally("==", u.CreatedAt))
			})

			It("uses the clock when it has moved", func() {
				u, err := repo.CreateUser(ctx, hr.UserInput{Cedula: "V-12345678", Password: "hash"})
				Expect(err).NotTo(HaveOccurred())
				clock.Advance(time.Hour)

				updated, err := repo.UpdateUser(ctx, u.ID, hr.UserPatch{Cedula: ptr("V-12345679")})
				Expect(err).NotTo(HaveOccurred())
				Expect(updated.UpdatedAt).To(BeTemporally("==", Now.Add(time.Hour)))
			})

			It("sets and clears nullable fields", func() {
				org := SeedOrg(ctx, repo)
				boss := SeedEmployee(ctx, repo, org, "Boss", "V-22222222")
				e := SeedEmployee(ctx, repo, org, "Alice", "V-33333333")

				linked, err := repo.UpdateEmployee(ctx, e.ID, hr.EmployeePatch{SupervisorID: hr.Some(boss.ID)})
				Expect(err).NotTo(HaveOccurred())
				Expect(linked.SupervisorID).NotTo(BeNil())
				Expect(*linked.SupervisorID).To(Equal(boss.ID))

				untouched, err := repo.UpdateEmployee(ctx, e.ID, hr.EmployeePatch{Phone: ptr("1")})
				Expect(err).NotTo(HaveOccurred())
				Expect(untouched.SupervisorID).NotTo(BeNil())

				cleared, err := repo.UpdateEmployee(ctx, e.ID, hr.EmployeePatch{SupervisorID: hr.Null[string]()})
				Expect(err).NotTo(HaveOccurred())
				Expect(cleared.SupervisorID).To(BeNil())

				stored, err := repo.GetEmployee(ctx, e.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(stored.SupervisorID).To(BeNil())
			})

			It("records a probation evaluation", func() {
				org := SeedOrg(ctx, repo)
				e := SeedEmployee(ctx, repo, org, "Alice", "V-22222222")
				p, err := repo.CreateProbationPeriod(ctx, hr.ProbationPeriodInput{EmployeeID: e.ID, StartDate: Now, EndDate: Now.AddDate(0, 0, 5)})
				Expect(err).NotTo(HaveOccurred())

				evaluated, err := repo.UpdateProbationPeriod(ctx, p.ID, hr.ProbationPeriodPatch{
					Status:         ptr(hr.ProbationCompleted),
					EvaluatedBy:    hr.Some(org.User.ID),
					EvaluationDate: hr.Some(Now),
					Approved:       hr.Some(true),
					HRNotes:        ptr("ok"),
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(evaluated.Status).To(Equal(hr.ProbationCompleted))
				Expect(*evaluated.EvaluatedBy).To(Equal(org.User.ID))
				Expect(*evaluated.Approved).To(BeTrue())
				Expect(evaluated.HRNotes).To(Equal("ok"))
			})

			It("returns nil for unknown ids", func() {
				u, err := repo.UpdateUser(ctx, "missing", hr.UserPatch{Role: ptr(hr.RoleAdmin)})
				Expect(err).NotTo(HaveOccurred())
				Expect(u).To(BeNil())

				c, err := repo.UpdateCargo(ctx, "missing", hr.CargoPatch{Name: ptr("x")})
				Expect(err).NotTo(HaveOccurred())
				Expect(c).To(BeNil())
			})
		})

		Describe("delete", func() {
			It("removes the row once", func() {
				g, err := repo.CreateGerencia(ctx, hr.GerenciaInput{Name: "D1"})
				Expect(err).NotTo(HaveOccurred())

				ok, err := repo.DeleteGerencia(ctx, g.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeTrue())

				gone, err := repo.GetGerencia(ctx, g.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(gone).To(BeNil())

				again, err := repo.DeleteGerencia(ctx, g.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(again).To(BeFalse())
			})

			It("does not cascade", func() {
				org := SeedOrg(ctx, repo)
				e := SeedEmployee(ctx, repo, org, "Alice", "V-22222222")

				ok, err := repo.DeleteCargo(ctx, org.Cargo.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeTrue())

				stored, err := repo.GetEmployee(ctx, e.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(stored).NotTo(BeNil())
				Expect(stored.CargoID).To(Equal(org.Cargo.ID))
			})

			It("keeps the order of the remaining rows", func() {
				var ids []string
				for _, n := range []string{"A", "B", "C"} {
					g, err := repo.CreateGerencia(ctx, hr.GerenciaInput{Name: n})
					Expect(err).NotTo(HaveOccurred())
					ids = append(ids, g.ID)
					clock.Advance(time.Second)
				}
				_, err := repo.DeleteGerencia(ctx, ids[1])
				Expect(err).NotTo(HaveOccurred())

				all, err := repo.ListGerencias(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(all).To(HaveLen(2))
				Expect(all[0].Name).To(Equal("A"))
				Expect(all[1].Name).To(Equal("C"))
			})
		})

		Describe("expiring contracts", func() {
			var employee *hr.Employee

			BeforeEach(func() {
				org := SeedOrg(ctx, repo)
				employee = SeedEmployee(ctx, repo, org, "Alice", "V-22222222")
			})

			contract := func(end *time.Time, active bool) *hr.Contract {
				c, err := repo.CreateContract(ctx, hr.ContractInput{
					EmployeeID: employee.ID,
					Type:       hr.ContractFixedTerm,
					StartDate:  Now.AddDate(-1, 0, 0),
					EndDate:    end,
					IsActive:   &active,
				})
				Expect(err).NotTo(HaveOccurred())
				return c
			}

			ids := func() []string {
				list, err := repo.GetExpiringContracts(ctx)
				Expect(err).NotTo(HaveOccurred())
				out := make([]string, 0, len(list))
				for _, c := range list {
					out = append(out, c.ID)
				}
				return out
			}

			It("includes active contracts ending within thirty days", func() {
				soon := contract(ptr(Now.AddDate(0, 0, 15)), true)
				today := contract(ptr(hr.StartOfDay(Now)), true)
				edge := contract(ptr(Now.AddDate(0, 0, 30)), true)
				Expect(ids()).To(ConsistOf(soon.ID, today.ID, edge.ID))
			})

			It("excludes inactive, open-ended, past and distant contracts", func() {
				contract(ptr(Now.AddDate(0, 0, 15)), false)
				contract(nil, true)
				contract(ptr(Now.AddDate(0, 0, -1)), true)
				contract(ptr(Now.AddDate(0, 0, 31)), true)
				Expect(ids()).To(BeEmpty())
			})

			It("drops a contract once it is toggled inactive", func() {
				c := contract(ptr(Now.AddDate(0, 0, 15)), true)
				Expect(ids()).To(ConsistOf(c.ID))

				_, err := repo.UpdateContract(ctx, c.ID, hr.ContractPatch{IsActive: ptr(false)})
				Expect(err).NotTo(HaveOccurred())
				Expect(ids()).To(BeEmpty())
			})

			It("follows the clock", func() {
				c := contract(ptr(Now.AddDate(0, 0, 45)), true)
				Expect(ids()).To(BeEmpty())

				clock.Advance(20 * 24 * time.Hour)
				Expect(ids()).To(ConsistOf(c.ID))
			})
		})

		Describe("expiring probation periods", func() {
			var employee *hr.Employee

			BeforeEach(func() {
				org := SeedOrg(ctx, repo)
				employee = SeedEmployee(ctx, repo, org, "Alice", "V-22222222")
			})

			period := func(end time.Time, status hr.ProbationStatus) *hr.ProbationPeriod {
				p, err := repo.CreateProbationPeriod(ctx, hr.ProbationPeriodInput{
					EmployeeID: employee.ID,
					StartDate:  Now.AddDate(0, -3, 0),
					EndDate:    end,
					Status:     status,
				})
				Expect(err).NotTo(HaveOccurred())
				return p
			}

			It("includes active periods ending within seven days, overdue ones too", func() {
				soon := period(Now.AddDate(0, 0, 3), hr.ProbationActive)
				overdue := period(Now.AddDate(0, 0, -2), hr.ProbationActive)
				period(Now.AddDate(0, 0, 8), hr.ProbationActive)
				period(Now.AddDate(0, 0, 3), hr.ProbationExtended)
				period(Now.AddDate(0, 0, 3), hr.ProbationCompleted)

				list, err := repo.GetExpiringProbationPeriods(ctx)
				Expect(err).NotTo(HaveOccurred())
				got := make([]string, 0, len(list))
				for _, p := range list {
					got = append(got, p.ID)
				}
				Expect(got).To(ConsistOf(soon.ID, overdue.ID))
			})
		})
	})
}
