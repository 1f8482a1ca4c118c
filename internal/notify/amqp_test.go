package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/notify"
	"github.com/frahmantamala/hr-management/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	amqp "github.com/rabbitmq/amqp091-go"
)

func TestNotify(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notify Suite")
}

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *fakeChannel) messages() []published {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]published(nil), c.sent...)
}

var _ = Describe("Forwarder", func() {
	var (
		ch  *fakeChannel
		fwd *notify.Forwarder
	)

	BeforeEach(func() {
		ch = &fakeChannel{}
		fwd = notify.NewForwarder(ch, "hr.events", logger.Discard())
	})

	It("publishes the event as persistent JSON routed by type", func() {
		exit := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
		event := events.NewEmployeeExitedEvent("e-1", "g-1", "renuncia", exit)

		Expect(fwd.Handle(context.Background(), event)).To(Succeed())

		sent := ch.messages()
		Expect(sent).To(HaveLen(1))
		Expect(sent[0].exchange).To(Equal("hr.events"))
		Expect(sent[0].key).To(Equal(events.EventTypeEmployeeExited))
		Expect(sent[0].msg.MessageId).To(Equal(event.EventID()))
		Expect(sent[0].msg.DeliveryMode).To(Equal(amqp.Persistent))
		Expect(sent[0].msg.ContentType).To(Equal("application/json"))

		var body map[string]interface{}
		Expect(json.Unmarshal(sent[0].msg.Body, &body)).To(Succeed())
		Expect(body).To(HaveKeyWithValue("employee_id", "e-1"))
		Expect(body).To(HaveKeyWithValue("exit_type", "renuncia"))
		Expect(body).To(HaveKeyWithValue("type", events.EventTypeEmployeeExited))
	})

	It("wraps broker failures", func() {
		ch.err = errors.New("channel closed")
		err := fwd.Handle(context.Background(), events.NewCandidateHiredEvent("k-1", "c-1", "u-1"))
		Expect(err).To(MatchError(ContainSubstring("channel closed")))
	})

	It("forwards everything published on an attached bus", func() {
		bus := events.NewEventBus(logger.Discard())
		fwd.Attach(bus)

		Expect(bus.Publish(context.Background(), events.NewEmployeeCreatedEvent("e-1", "u-1", "c-1"))).To(Succeed())
		Expect(bus.Publish(context.Background(), events.NewProbationEvaluatedEvent("p-1", "e-1", "completado", nil))).To(Succeed())

		Eventually(func() []string {
			var keys []string
			for _, p := range ch.messages() {
				keys = append(keys, p.key)
			}
			return keys
		}).Should(ConsistOf(events.EventTypeEmployeeCreated, events.EventTypeProbationEvaluated))
	})

	It("closes cleanly when built without a connection", func() {
		Expect(fwd.Close()).To(Succeed())
	})
})
