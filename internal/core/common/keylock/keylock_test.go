package keylock_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/frahmantamala/hr-management/internal/core/common/keylock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestKeylock(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Keylock Suite")
}

var _ = Describe("Locker", func() {
	var locks *keylock.Locker

	BeforeEach(func() {
		locks = keylock.New()
	})

	It("lets one holder per key into the critical section", func() {
		var (
			wg      sync.WaitGroup
			inside  atomic.Int32
			maxSeen atomic.Int32
		)
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				unlock := locks.Lock(keylock.EmployeeKey("e-1"))
				defer unlock()

				n := inside.Add(1)
				if n > maxSeen.Load() {
					maxSeen.Store(n)
				}
				time.Sleep(time.Millisecond)
				inside.Add(-1)
			}()
		}
		wg.Wait()
		Expect(maxSeen.Load()).To(Equal(int32(1)))
		Expect(locks.Len()).To(BeZero())
	})

	It("does not block unrelated keys", func() {
		unlock := locks.Lock(keylock.EmployeeKey("e-1"))
		defer unlock()

		done := make(chan struct{})
		go func() {
			locks.Lock(keylock.EmployeeKey("e-2"))()
			close(done)
		}()
		Eventually(done).Should(BeClosed())
	})

	It("takes overlapping key sets in a stable order", func() {
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				locks.Lock("a", "b")()
			}()
			go func() {
				defer wg.Done()
				locks.Lock("b", "a", "a")()
			}()
		}
		wg.Wait()
		Expect(locks.Len()).To(BeZero())
	})

	It("releases once even when unlock is called twice", func() {
		unlock := locks.Lock("k", "")
		unlock()
		unlock()
		Expect(locks.Len()).To(BeZero())
	})

	It("folds email case and padding into one key", func() {
		Expect(keylock.EmailKey(" Ana@Empresa.test")).To(Equal(keylock.EmailKey("ana@empresa.test")))
	})
})
