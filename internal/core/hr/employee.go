package hr

import "time"

type EmployeeStatus string

const (
	EmployeeStatusActive    EmployeeStatus = "activo"
	EmployeeStatusInactive  EmployeeStatus = "inactivo"
	EmployeeStatusProbation EmployeeStatus = "periodo_prueba"
)

func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusInactive, EmployeeStatusProbation:
		return true
	}
	return false
}

type Employee struct {
	ID           string         `json:"id"`
	UserID       string         `json:"userId"`
	FirstName    string         `json:"nombres"`
	LastName     string         `json:"apellidos"`
	Email        string         `json:"email"`
	Phone        string         `json:"telefono"`
	BirthDate    time.Time      `json:"fechaNacimiento"`
	CargoID      string         `json:"cargoId"`
	SupervisorID *string        `json:"supervisorId"`
	StartDate    time.Time      `json:"fechaIngreso"`
	Status       EmployeeStatus `json:"estatus"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

type EmployeeInput struct {
	UserID       string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	BirthDate    time.Time
	CargoID      string
	SupervisorID *string
	StartDate    time.Time
	Status       EmployeeStatus
}

type EmployeePatch struct {
	UserID       *string
	FirstName    *string
	LastName     *string
	Email        *string
	Phone        *string
	BirthDate    *time.Time
	CargoID      *string
	SupervisorID Nullable[string]
	StartDate    *time.Time
	Status       *EmployeeStatus
}

func NewEmployee(id string, in EmployeeInput, now time.Time) *Employee {
	e := &Employee{
		ID:        id,
		UserID:    in.UserID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		BirthDate: in.BirthDate,
		CargoID:   in.CargoID,
		StartDate: in.StartDate,
		Status:    in.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.SupervisorID != nil {
		sid := *in.SupervisorID
		e.SupervisorID = &sid
	}
	if e.Status == "" {
		e.Status = EmployeeStatusActive
	}
	return e
}

func (e *Employee) Apply(p EmployeePatch, now time.Time) {
	set(&e.UserID, p.UserID)
	set(&e.FirstName, p.FirstName)
	set(&e.LastName, p.LastName)
	set(&e.Email, p.Email)
	set(&e.Phone, p.Phone)
	set(&e.BirthDate, p.BirthDate)
	set(&e.CargoID, p.CargoID)
	p.SupervisorID.apply(&e.SupervisorID)
	set(&e.StartDate, p.StartDate)
	set(&e.Status, p.Status)
	e.UpdatedAt = Later(e.UpdatedAt, now)
}
