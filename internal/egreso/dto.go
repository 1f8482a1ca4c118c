package egreso

import (
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	"github.com/frahmantamala/hr-management/internal/core/hr"
)

type CreateEgresoDTO struct {
	EmployeeID  string        `json:"employeeId"`
	FechaEgreso *hr.Date      `json:"fechaEgreso"`
	Tipo        hr.EgresoType `json:"tipo"`
	Motivo      string        `json:"motivo"`
}

// ListFilter narrows GET /egresos. Empty fields match everything.
type ListFilter struct {
	EmployeeID string
	Type       hr.EgresoType
}

func (f ListFilter) matches(e *hr.Egreso) bool {
	if f.EmployeeID != "" && e.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	return true
}

type EgresosResponse struct {
	Egresos []*hr.Egreso `json:"egresos"`
}

var typeNames = []string{
	string(hr.EgresoResignation),
	string(hr.EgresoDismissal),
	string(hr.EgresoRetirement),
	string(hr.EgresoContractEnd),
}

func validType(s string) bool { return hr.EgresoType(s).Valid() }

func (d CreateEgresoDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("employeeId", d.EmployeeID).Required()
	v.Field("fechaEgreso", d.FechaEgreso.Ptr()).Required()
	v.Field("tipo", string(d.Tipo)).Required().OneOf(validType, typeNames...)
	v.Field("motivo", d.Motivo).MaxLength(2000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d CreateEgresoDTO) toInput(processedBy string) hr.EgresoInput {
	return hr.EgresoInput{
		EmployeeID:  d.EmployeeID,
		ExitDate:    d.FechaEgreso.Value(),
		Type:        d.Tipo,
		Reason:      d.Motivo,
		ProcessedBy: processedBy,
	}
}
