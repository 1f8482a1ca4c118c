package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/notify"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Inspect the HR event types and publish sample events to check broker wiring`,
}

var listEventsCmd = &cobra.Command{
	Use:   "types",
	Short: "List the event types the server publishes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range events.AllEventTypes {
			fmt.Println(t)
		}
	},
}

var publishEventCmd = &cobra.Command{
	Use:       "publish [event-type]",
	Short:     "Publish a sample event",
	Long:      `Publish a sample event on a local bus and, when notify is enabled, forward it to the broker`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: events.AllEventTypes,
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishSampleEvent(args[0])
	},
}

var eventSubject string

func sampleEvent(eventType, subject string) events.Event {
	switch eventType {
	case events.EventTypeEmployeeCreated:
		return events.NewEmployeeCreatedEvent(subject, uuid.NewString(), uuid.NewString())
	case events.EventTypeEmployeeExited:
		return events.NewEmployeeExitedEvent(subject, uuid.NewString(), "renuncia", time.Now().UTC())
	case events.EventTypeCandidateHired:
		return events.NewCandidateHiredEvent(subject, uuid.NewString(), uuid.NewString())
	default:
		approved := true
		return events.NewProbationEvaluatedEvent(uuid.NewString(), subject, "completado", &approved)
	}
}

func publishSampleEvent(eventType string) error {
	lg := logger.LoggerWrapper()
	bus := events.NewEventBus(lg)

	bus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		lg.Info("sample handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	if cfg.Notify.Enabled {
		fwd, err := notify.Dial(cfg.Notify.AMQPURL, cfg.Notify.Exchange, lg)
		if err != nil {
			return err
		}
		defer fwd.Close()
		fwd.Attach(bus)
	}

	subject := eventSubject
	if subject == "" {
		subject = uuid.NewString()
	}
	event := sampleEvent(eventType, subject)

	lg.Info("publishing sample event", "event_type", eventType, "event_id", event.EventID())
	if err := bus.PublishSync(context.Background(), event); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}

	lg.Info("sample event published")
	return nil
}

func init() {
	publishEventCmd.Flags().StringVar(&eventSubject, "subject", "", "Employee or candidate id carried by the event")

	eventCmd.AddCommand(listEventsCmd)
	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
