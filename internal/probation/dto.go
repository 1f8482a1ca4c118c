package probation

import (
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	"github.com/frahmantamala/hr-management/internal/core/hr"
)

type CreateProbationPeriodDTO struct {
	EmployeeID    string             `json:"employeeId"`
	FechaInicio   *hr.Date           `json:"fechaInicio"`
	FechaFin      *hr.Date           `json:"fechaFin"`
	Estatus       hr.ProbationStatus `json:"estatus"`
	Observaciones string             `json:"observaciones"`
}

type UpdateProbationPeriodDTO struct {
	FechaInicio   *hr.Date            `json:"fechaInicio"`
	FechaFin      *hr.Date            `json:"fechaFin"`
	Estatus       *hr.ProbationStatus `json:"estatus"`
	Observaciones *string             `json:"observaciones"`
}

// EvaluateProbationDTO closes or extends a probation period. Aprobado
// defaults from the outcome: true for completado, false for terminado.
type EvaluateProbationDTO struct {
	Estatus                 hr.ProbationStatus `json:"estatus"`
	Aprobado                *bool              `json:"aprobado"`
	Observaciones           *string            `json:"observaciones"`
	RecomendacionSupervisor string             `json:"recomendacionSupervisor"`
	ObservacionesRrhh       string             `json:"observacionesRrhh"`
	ExtendidoHasta          *hr.Date           `json:"extendidoHasta"`
	MotivoExtension         string             `json:"motivoExtension"`
}

// ListFilter narrows GET /probation-periods. Empty fields match everything.
type ListFilter struct {
	Status     hr.ProbationStatus
	EmployeeID string
}

func (f ListFilter) matches(p *hr.ProbationPeriodWithRelations) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.EmployeeID != "" && p.EmployeeID != f.EmployeeID {
		return false
	}
	return true
}

type ProbationPeriodsResponse struct {
	ProbationPeriods []*hr.ProbationPeriodWithRelations `json:"probationPeriods"`
}

var statusNames = []string{
	string(hr.ProbationActive),
	string(hr.ProbationCompleted),
	string(hr.ProbationExtended),
	string(hr.ProbationTerminated),
}

func validStatus(s string) bool { return hr.ProbationStatus(s).Valid() }

func validOutcome(s string) bool {
	switch hr.ProbationStatus(s) {
	case hr.ProbationCompleted, hr.ProbationExtended, hr.ProbationTerminated:
		return true
	}
	return false
}

func (d CreateProbationPeriodDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("employeeId", d.EmployeeID).Required()
	v.Field("fechaInicio", d.FechaInicio.Ptr()).Required()
	v.Field("fechaFin", d.FechaFin.Ptr()).Required().NotBefore(d.FechaInicio.Ptr(), "fechaInicio")
	v.Field("estatus", string(d.Estatus)).OneOf(validStatus, statusNames...)
	v.Field("observaciones", d.Observaciones).MaxLength(2000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d UpdateProbationPeriodDTO) Validate() error {
	v := validation.NewValidator()
	if d.Estatus != nil {
		v.Field("estatus", string(*d.Estatus)).Required().OneOf(validStatus, statusNames...)
	}
	v.Field("observaciones", d.Observaciones).MaxLength(2000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks the request on its own; the extension date is checked
// against the stored period by the service.
func (d EvaluateProbationDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("estatus", string(d.Estatus)).Required().OneOf(validOutcome, statusNames[1:]...)
	if d.Estatus == hr.ProbationExtended {
		v.Field("extendidoHasta", d.ExtendidoHasta.Ptr()).Required()
		v.Field("motivoExtension", d.MotivoExtension).Required()
	}
	v.Field("observacionesRrhh", d.ObservacionesRrhh).MaxLength(2000)
	v.Field("recomendacionSupervisor", d.RecomendacionSupervisor).MaxLength(2000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d CreateProbationPeriodDTO) toInput() hr.ProbationPeriodInput {
	return hr.ProbationPeriodInput{
		EmployeeID: d.EmployeeID,
		StartDate:  d.FechaInicio.Value(),
		EndDate:    d.FechaFin.Value(),
		Status:     d.Estatus,
		Notes:      d.Observaciones,
	}
}

func (d UpdateProbationPeriodDTO) toPatch() hr.ProbationPeriodPatch {
	return hr.ProbationPeriodPatch{
		StartDate: d.FechaInicio.Ptr(),
		EndDate:   d.FechaFin.Ptr(),
		Status:    d.Estatus,
		Notes:     d.Observaciones,
	}
}
