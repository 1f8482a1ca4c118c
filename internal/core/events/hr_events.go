package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeEmployeeCreated    = "employee.created"
	EventTypeEmployeeExited     = "employee.exited"
	EventTypeCandidateHired     = "candidate.hired"
	EventTypeProbationEvaluated = "probation.evaluated"
)

var AllEventTypes = []string{
	EventTypeEmployeeCreated,
	EventTypeEmployeeExited,
	EventTypeCandidateHired,
	EventTypeProbationEvaluated,
}

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

type EmployeeCreatedEvent struct {
	BaseEvent
	EmployeeID string `json:"employee_id"`
	UserID     string `json:"user_id"`
	CargoID    string `json:"cargo_id"`
}

func NewEmployeeCreatedEvent(employeeID, userID, cargoID string) *EmployeeCreatedEvent {
	return &EmployeeCreatedEvent{
		BaseEvent: newBase(EventTypeEmployeeCreated, map[string]interface{}{
			"employee_id": employeeID,
			"user_id":     userID,
			"cargo_id":    cargoID,
		}),
		EmployeeID: employeeID,
		UserID:     userID,
		CargoID:    cargoID,
	}
}

type EmployeeExitedEvent struct {
	BaseEvent
	EmployeeID string    `json:"employee_id"`
	EgresoID   string    `json:"egreso_id"`
	ExitType   string    `json:"exit_type"`
	ExitDate   time.Time `json:"exit_date"`
}

func NewEmployeeExitedEvent(employeeID, egresoID, exitType string, exitDate time.Time) *EmployeeExitedEvent {
	return &EmployeeExitedEvent{
		BaseEvent: newBase(EventTypeEmployeeExited, map[string]interface{}{
			"employee_id": employeeID,
			"egreso_id":   egresoID,
			"exit_type":   exitType,
			"exit_date":   exitDate,
		}),
		EmployeeID: employeeID,
		EgresoID:   egresoID,
		ExitType:   exitType,
		ExitDate:   exitDate,
	}
}

type CandidateHiredEvent struct {
	BaseEvent
	CandidateID string `json:"candidate_id"`
	CargoID     string `json:"cargo_id"`
	EvaluatedBy string `json:"evaluated_by"`
}

func NewCandidateHiredEvent(candidateID, cargoID, evaluatedBy string) *CandidateHiredEvent {
	return &CandidateHiredEvent{
		BaseEvent: newBase(EventTypeCandidateHired, map[string]interface{}{
			"candidate_id": candidateID,
			"cargo_id":     cargoID,
			"evaluated_by": evaluatedBy,
		}),
		CandidateID: candidateID,
		CargoID:     cargoID,
		EvaluatedBy: evaluatedBy,
	}
}

type ProbationEvaluatedEvent struct {
	BaseEvent
	ProbationPeriodID string `json:"probation_period_id"`
	EmployeeID        string `json:"employee_id"`
	Status            string `json:"status"`
	Approved          *bool  `json:"approved"`
}

func NewProbationEvaluatedEvent(periodID, employeeID, status string, approved *bool) *ProbationEvaluatedEvent {
	return &ProbationEvaluatedEvent{
		BaseEvent: newBase(EventTypeProbationEvaluated, map[string]interface{}{
			"probation_period_id": periodID,
			"employee_id":         employeeID,
			"status":              status,
			"approved":            approved,
		}),
		ProbationPeriodID: periodID,
		EmployeeID:        employeeID,
		Status:            status,
		Approved:          approved,
	}
}
