package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal/core/common/keylock"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/core/hr"
)

// EventHandler keeps employee status in step with events other services
// publish.
type EventHandler struct {
	repo   RepositoryAPI
	logger *slog.Logger

	// Locks keeps a promotion from landing after a concurrent exit.
	Locks *keylock.Locker
}

func NewEventHandler(repo RepositoryAPI, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		repo:   repo,
		logger: logger,
		Locks:  keylock.New(),
	}
}

// HandleProbationEvaluated promotes an employee from periodo_prueba to activo
// once a probation period is completed with approval.
func (h *EventHandler) HandleProbationEvaluated(ctx context.Context, event events.Event) error {
	evt, ok := event.(*events.ProbationEvaluatedEvent)
	if !ok {
		h.logger.Error("invalid event type for probation evaluated handler", "event_type", event.EventType())
		return fmt.Errorf("expected ProbationEvaluatedEvent, got %T", event)
	}

	if hr.ProbationStatus(evt.Status) != hr.ProbationCompleted || evt.Approved == nil || !*evt.Approved {
		return nil
	}
	unlock := h.Locks.Lock(keylock.EmployeeKey(evt.EmployeeID))
	defer unlock()

	e, err := h.repo.GetEmployee(ctx, evt.EmployeeID)
	if err != nil {
		return fmt.Errorf("load employee %s: %w", evt.EmployeeID, err)
	}
	if e == nil || e.Status != hr.EmployeeStatusProbation {
		return nil
	}

	active := hr.EmployeeStatusActive
	if _, err := h.repo.UpdateEmployee(ctx, e.ID, hr.EmployeePatch{Status: &active}); err != nil {
		h.logger.Error("failed to promote employee after probation",
			"error", err,
			"employee_id", e.ID,
			"event_id", evt.EventID())
		return fmt.Errorf("promote employee %s: %w", e.ID, err)
	}

	h.logger.Info("employee promoted after probation",
		"employee_id", e.ID,
		"probation_period_id", evt.ProbationPeriodID,
		"event_id", evt.EventID())
	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeProbationEvaluated, h.HandleProbationEvaluated)

	h.logger.Info("employee event handlers registered",
		"handlers", []string{events.EventTypeProbationEvaluated})
}
