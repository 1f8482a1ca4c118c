package employee

import (
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	"github.com/frahmantamala/hr-management/internal/core/hr"
)

type CreateEmployeeDTO struct {
	UserID          string            `json:"userId"`
	Nombres         string            `json:"nombres"`
	Apellidos       string            `json:"apellidos"`
	Email           string            `json:"email"`
	Telefono        string            `json:"telefono"`
	FechaNacimiento *hr.Date          `json:"fechaNacimiento"`
	CargoID         string            `json:"cargoId"`
	SupervisorID    *string           `json:"supervisorId"`
	FechaIngreso    *hr.Date          `json:"fechaIngreso"`
	Estatus         hr.EmployeeStatus `json:"estatus"`
}

type UpdateEmployeeDTO struct {
	UserID          *string             `json:"userId"`
	Nombres         *string             `json:"nombres"`
	Apellidos       *string             `json:"apellidos"`
	Email           *string             `json:"email"`
	Telefono        *string             `json:"telefono"`
	FechaNacimiento *hr.Date            `json:"fechaNacimiento"`
	CargoID         *string             `json:"cargoId"`
	SupervisorID    hr.Nullable[string] `json:"supervisorId"`
	FechaIngreso    *hr.Date            `json:"fechaIngreso"`
	Estatus         *hr.EmployeeStatus  `json:"estatus"`
}

// ListFilter narrows GET /employees. Empty fields match everything.
type ListFilter struct {
	Status       hr.EmployeeStatus
	CargoID      string
	SupervisorID string
}

func (f ListFilter) matches(e *hr.EmployeeWithRelations) bool {
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.CargoID != "" && e.CargoID != f.CargoID {
		return false
	}
	if f.SupervisorID != "" && (e.SupervisorID == nil || *e.SupervisorID != f.SupervisorID) {
		return false
	}
	return true
}

type EmployeesResponse struct {
	Employees []*hr.EmployeeWithRelations `json:"employees"`
}

type ContractsResponse struct {
	Contracts []*hr.Contract `json:"contracts"`
}

type ProbationPeriodsResponse struct {
	ProbationPeriods []*hr.ProbationPeriod `json:"probationPeriods"`
}

type EgresosResponse struct {
	Egresos []*hr.Egreso `json:"egresos"`
}

var statusNames = []string{
	string(hr.EmployeeStatusActive),
	string(hr.EmployeeStatusInactive),
	string(hr.EmployeeStatusProbation),
}

func validStatus(s string) bool { return hr.EmployeeStatus(s).Valid() }

func (d CreateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("userId", d.UserID).Required()
	v.Field("nombres", d.Nombres).Required().MaxLength(100)
	v.Field("apellidos", d.Apellidos).Required().MaxLength(100)
	v.Field("email", d.Email).Required().Email()
	v.Field("telefono", d.Telefono).MaxLength(30)
	v.Field("fechaNacimiento", d.FechaNacimiento.Ptr()).NotFuture()
	v.Field("cargoId", d.CargoID).Required()
	v.Field("fechaIngreso", d.FechaIngreso.Ptr()).Required()
	v.Field("estatus", string(d.Estatus)).OneOf(validStatus, statusNames...)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d UpdateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	if d.UserID != nil {
		v.Field("userId", *d.UserID).Required()
	}
	if d.Nombres != nil {
		v.Field("nombres", *d.Nombres).Required().MaxLength(100)
	}
	if d.Apellidos != nil {
		v.Field("apellidos", *d.Apellidos).Required().MaxLength(100)
	}
	if d.Email != nil {
		v.Field("email", *d.Email).Required().Email()
	}
	v.Field("telefono", d.Telefono).MaxLength(30)
	v.Field("fechaNacimiento", d.FechaNacimiento.Ptr()).NotFuture()
	if d.CargoID != nil {
		v.Field("cargoId", *d.CargoID).Required()
	}
	if d.Estatus != nil {
		v.Field("estatus", string(*d.Estatus)).Required().OneOf(validStatus, statusNames...)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d CreateEmployeeDTO) toInput() hr.EmployeeInput {
	return hr.EmployeeInput{
		UserID:       d.UserID,
		FirstName:    d.Nombres,
		LastName:     d.Apellidos,
		Email:        d.Email,
		Phone:        d.Telefono,
		BirthDate:    d.FechaNacimiento.Value(),
		CargoID:      d.CargoID,
		SupervisorID: d.SupervisorID,
		StartDate:    d.FechaIngreso.Value(),
		Status:       d.Estatus,
	}
}

func (d UpdateEmployeeDTO) toPatch() hr.EmployeePatch {
	return hr.EmployeePatch{
		UserID:       d.UserID,
		FirstName:    d.Nombres,
		LastName:     d.Apellidos,
		Email:        d.Email,
		Phone:        d.Telefono,
		BirthDate:    d.FechaNacimiento.Ptr(),
		CargoID:      d.CargoID,
		SupervisorID: d.SupervisorID,
		StartDate:    d.FechaIngreso.Ptr(),
		Status:       d.Estatus,
	}
}
