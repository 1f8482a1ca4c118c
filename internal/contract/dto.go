package contract

import (
	"time"

	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	"github.com/frahmantamala/hr-management/internal/core/hr"
)

type CreateContractDTO struct {
	EmployeeID   string          `json:"employeeId"`
	TipoContrato hr.ContractType `json:"tipoContrato"`
	FechaInicio  *hr.Date        `json:"fechaInicio"`
	FechaFin     *hr.Date        `json:"fechaFin"`
	IsActive     *bool           `json:"isActive"`
}

type UpdateContractDTO struct {
	EmployeeID   *string              `json:"employeeId"`
	TipoContrato *hr.ContractType     `json:"tipoContrato"`
	FechaInicio  *hr.Date             `json:"fechaInicio"`
	FechaFin     hr.Nullable[hr.Date] `json:"fechaFin"`
	IsActive     *bool                `json:"isActive"`
}

// ListFilter narrows GET /contracts. Nil or empty fields match everything.
type ListFilter struct {
	EmployeeID string
	Active     *bool
}

func (f ListFilter) matches(c *hr.Contract) bool {
	if f.EmployeeID != "" && c.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Active != nil && c.IsActive != *f.Active {
		return false
	}
	return true
}

type ContractsResponse struct {
	Contracts []*hr.Contract `json:"contracts"`
}

type ExpiringResponse struct {
	Contracts []*hr.ContractWithEmployee `json:"contracts"`
}

var typeNames = []string{
	string(hr.ContractIndefinite),
	string(hr.ContractFixedTerm),
	string(hr.ContractProjectBase),
	string(hr.ContractInternship),
}

func validType(s string) bool { return hr.ContractType(s).Valid() }

func (d CreateContractDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("employeeId", d.EmployeeID).Required()
	v.Field("tipoContrato", string(d.TipoContrato)).Required().OneOf(validType, typeNames...)
	v.Field("fechaInicio", d.FechaInicio.Ptr()).Required()
	v.Field("fechaFin", d.FechaFin.Ptr()).NotBefore(d.FechaInicio.Ptr(), "fechaInicio")
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d UpdateContractDTO) Validate() error {
	v := validation.NewValidator()
	if d.EmployeeID != nil {
		v.Field("employeeId", *d.EmployeeID).Required()
	}
	if d.TipoContrato != nil {
		v.Field("tipoContrato", string(*d.TipoContrato)).Required().OneOf(validType, typeNames...)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d CreateContractDTO) toInput() hr.ContractInput {
	return hr.ContractInput{
		EmployeeID: d.EmployeeID,
		Type:       d.TipoContrato,
		StartDate:  d.FechaInicio.Value(),
		EndDate:    d.FechaFin.Ptr(),
		IsActive:   d.IsActive,
	}
}

func (d UpdateContractDTO) toPatch() hr.ContractPatch {
	end := hr.Nullable[time.Time]{Set: d.FechaFin.Set}
	if d.FechaFin.Value != nil {
		end.Value = d.FechaFin.Value.Ptr()
	}
	return hr.ContractPatch{
		EmployeeID: d.EmployeeID,
		Type:       d.TipoContrato,
		StartDate:  d.FechaInicio.Ptr(),
		EndDate:    end,
		IsActive:   d.IsActive,
	}
}
