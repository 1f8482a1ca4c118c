package hr

import "time"

type ProbationStatus string

const (
	ProbationActive     ProbationStatus = "activo"
	ProbationCompleted  ProbationStatus = "completado"
	ProbationExtended   ProbationStatus = "extendido"
	ProbationTerminated ProbationStatus = "terminado"
)

func (s ProbationStatus) Valid() bool {
	switch s {
	case ProbationActive, ProbationCompleted, ProbationExtended, ProbationTerminated:
		return true
	}
	return false
}

type ProbationPeriod struct {
	ID                       string          `json:"id"`
	EmployeeID               string          `json:"employeeId"`
	StartDate                time.Time       `json:"fechaInicio"`
	EndDate                  time.Time       `json:"fechaFin"`
	Status                   ProbationStatus `json:"estatus"`
	Notes                    string          `json:"observaciones"`
	EvaluatedBy              *string         `json:"evaluadoPor"`
	EvaluationDate           *time.Time      `json:"fechaEvaluacion"`
	ExtendedUntil            *time.Time      `json:"extendidoHasta"`
	ExtensionReason          string          `json:"motivoExtension"`
	SupervisorRecommendation string          `json:"recomendacionSupervisor"`
	HRNotes                  string          `json:"observacionesRrhh"`
	Approved                 *bool           `json:"aprobado"`
	CreatedAt                time.Time       `json:"createdAt"`
	UpdatedAt                time.Time       `json:"updatedAt"`
}

type ProbationPeriodInput struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Status     ProbationStatus
	Notes      string
}

type ProbationPeriodPatch struct {
	EmployeeID               *string
	StartDate                *time.Time
	EndDate                  *time.Time
	Status                   *ProbationStatus
	Notes                    *string
	EvaluatedBy              Nullable[string]
	EvaluationDate           Nullable[time.Time]
	ExtendedUntil            Nullable[time.Time]
	ExtensionReason          *string
	SupervisorRecommendation *string
	HRNotes                  *string
	Approved                 Nullable[bool]
}

func NewProbationPeriod(id string, in ProbationPeriodInput, now time.Time) *ProbationPeriod {
	p := &ProbationPeriod{
		ID:         id,
		EmployeeID: in.EmployeeID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Status:     in.Status,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if p.Status == "" {
		p.Status = ProbationActive
	}
	return p
}

func (p *ProbationPeriod) Apply(patch ProbationPeriodPatch, now time.Time) {
	set(&p.EmployeeID, patch.EmployeeID)
	set(&p.StartDate, patch.StartDate)
	set(&p.EndDate, patch.EndDate)
	set(&p.Status, patch.Status)
	set(&p.Notes, patch.Notes)
	patch.EvaluatedBy.apply(&p.EvaluatedBy)
	patch.EvaluationDate.apply(&p.EvaluationDate)
	patch.ExtendedUntil.apply(&p.ExtendedUntil)
	set(&p.ExtensionReason, patch.ExtensionReason)
	set(&p.SupervisorRecommendation, patch.SupervisorRecommendation)
	set(&p.HRNotes, patch.HRNotes)
	patch.Approved.apply(&p.Approved)
	p.UpdatedAt = Later(p.UpdatedAt, now)
}

// ExpiresWithin reports whether an active probation period ends no later than
// now+window. Overdue active periods are included: they still need a decision.
func (p *ProbationPeriod) ExpiresWithin(now time.Time, window time.Duration) bool {
	return p.Status == ProbationActive && !p.EndDate.After(now.Add(window))
}
