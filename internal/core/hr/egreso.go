package hr

import "time"

type EgresoType string

const (
	EgresoResignation EgresoType = "renuncia"
	EgresoDismissal   EgresoType = "despido"
	EgresoRetirement  EgresoType = "jubilacion"
	EgresoContractEnd EgresoType = "fin_contrato"
)

func (t EgresoType) Valid() bool {
	switch t {
	case EgresoResignation, EgresoDismissal, EgresoRetirement, EgresoContractEnd:
		return true
	}
	return false
}

// Egreso records an employee exit. Egresos are append-only.
type Egreso struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	ExitDate    time.Time  `json:"fechaEgreso"`
	Type        EgresoType `json:"tipo"`
	Reason      string     `json:"motivo"`
	ProcessedBy string     `json:"procesadoPor"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type EgresoInput struct {
	EmployeeID  string
	ExitDate    time.Time
	Type        EgresoType
	Reason      string
	ProcessedBy string
}

func NewEgreso(id string, in EgresoInput, now time.Time) *Egreso {
	return &Egreso{
		ID:          id,
		EmployeeID:  in.EmployeeID,
		ExitDate:    in.ExitDate,
		Type:        in.Type,
		Reason:      in.Reason,
		ProcessedBy: in.ProcessedBy,
		CreatedAt:   now,
	}
}
