package postgres

import (
	candidateDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/candidate"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	orgDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/organization"
	userDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/user"
	"github.com/frahmantamala/hr-management/internal/core/hr"
)

func userToDataModel(u *hr.User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:        u.ID,
		Cedula:    u.Cedula,
		Password:  u.Password,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func userFromDataModel(u *userDatamodel.User) *hr.User {
	return &hr.User{
		ID:        u.ID,
		Cedula:    u.Cedula,
		Password:  u.Password,
		Role:      hr.Role(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func gerenciaToDataModel(g *hr.Gerencia) *orgDatamodel.Gerencia {
	return &orgDatamodel.Gerencia{ID: g.ID, Name: g.Name, Description: g.Description, CreatedAt: g.CreatedAt}
}

func gerenciaFromDataModel(g *orgDatamodel.Gerencia) *hr.Gerencia {
	return &hr.Gerencia{ID: g.ID, Name: g.Name, Description: g.Description, CreatedAt: g.CreatedAt}
}

func departamentoToDataModel(d *hr.Departamento) *orgDatamodel.Departamento {
	return &orgDatamodel.Departamento{ID: d.ID, Name: d.Name, GerenciaID: d.GerenciaID, CreatedAt: d.CreatedAt}
}

func departamentoFromDataModel(d *orgDatamodel.Departamento) *hr.Departamento {
	return &hr.Departamento{ID: d.ID, Name: d.Name, GerenciaID: d.GerenciaID, CreatedAt: d.CreatedAt}
}

func cargoToDataModel(c *hr.Cargo) *orgDatamodel.Cargo {
	return &orgDatamodel.Cargo{ID: c.ID, Name: c.Name, DepartamentoID: c.DepartamentoID, CreatedAt: c.CreatedAt}
}

func cargoFromDataModel(c *orgDatamodel.Cargo) *hr.Cargo {
	return &hr.Cargo{ID: c.ID, Name: c.Name, DepartamentoID: c.DepartamentoID, CreatedAt: c.CreatedAt}
}

func employeeToDataModel(e *hr.Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:           e.ID,
		UserID:       e.UserID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		Phone:        e.Phone,
		BirthDate:    e.BirthDate,
		CargoID:      e.CargoID,
		SupervisorID: e.SupervisorID,
		StartDate:    e.StartDate,
		Status:       string(e.Status),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func employeeFromDataModel(e *employeeDatamodel.Employee) *hr.Employee {
	return &hr.Employee{
		ID:           e.ID,
		UserID:       e.UserID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		Phone:        e.Phone,
		BirthDate:    e.BirthDate,
		CargoID:      e.CargoID,
		SupervisorID: e.SupervisorID,
		StartDate:    e.StartDate,
		Status:       hr.EmployeeStatus(e.Status),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func contractToDataModel(c *hr.Contract) *employeeDatamodel.Contract {
	return &employeeDatamodel.Contract{
		ID:         c.ID,
		EmployeeID: c.EmployeeID,
		Type:       string(c.Type),
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
		IsActive:   c.IsActive,
		CreatedAt:  c.CreatedAt,
	}
}

func contractFromDataModel(c *employeeDatamodel.Contract) *hr.Contract {
	return &hr.Contract{
		ID:         c.ID,
		EmployeeID: c.EmployeeID,
		Type:       hr.ContractType(c.Type),
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
		IsActive:   c.IsActive,
		CreatedAt:  c.CreatedAt,
	}
}

func probationToDataModel(p *hr.ProbationPeriod) *employeeDatamodel.ProbationPeriod {
	return &employeeDatamodel.ProbationPeriod{
		ID:                       p.ID,
		EmployeeID:               p.EmployeeID,
		StartDate:                p.StartDate,
		EndDate:                  p.EndDate,
		Status:                   string(p.Status),
		Notes:                    p.Notes,
		EvaluatedBy:              p.EvaluatedBy,
		EvaluationDate:           p.EvaluationDate,
		ExtendedUntil:            p.ExtendedUntil,
		ExtensionReason:          p.ExtensionReason,
		SupervisorRecommendation: p.SupervisorRecommendation,
		HRNotes:                  p.HRNotes,
		Approved:                 p.Approved,
		CreatedAt:                p.CreatedAt,
		UpdatedAt:                p.UpdatedAt,
	}
}

func probationFromDataModel(p *employeeDatamodel.ProbationPeriod) *hr.ProbationPeriod {
	return &hr.ProbationPeriod{
		ID:                       p.ID,
		EmployeeID:               p.EmployeeID,
		StartDate:                p.StartDate,
		EndDate:                  p.EndDate,
		Status:                   hr.ProbationStatus(p.Status),
		Notes:                    p.Notes,
		EvaluatedBy:              p.EvaluatedBy,
		EvaluationDate:           p.EvaluationDate,
		ExtendedUntil:            p.ExtendedUntil,
		ExtensionReason:          p.ExtensionReason,
		SupervisorRecommendation: p.SupervisorRecommendation,
		HRNotes:                  p.HRNotes,
		Approved:                 p.Approved,
		CreatedAt:                p.CreatedAt,
		UpdatedAt:                p.UpdatedAt,
	}
}

func candidateToDataModel(c *hr.Candidate) *candidateDatamodel.Candidate {
	return &candidateDatamodel.Candidate{
		ID:              c.ID,
		Cedula:          c.Cedula,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Email:           c.Email,
		Phone:           c.Phone,
		BirthDate:       c.BirthDate,
		CargoID:         c.CargoID,
		CVURL:           c.CVURL,
		Notes:           c.Notes,
		Status:          string(c.Status),
		SubmittedBy:     c.SubmittedBy,
		EvaluatedBy:     c.EvaluatedBy,
		EvaluationNotes: c.EvaluationNotes,
		EvaluationDate:  c.EvaluationDate,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func candidateFromDataModel(c *candidateDatamodel.Candidate) *hr.Candidate {
	return &hr.Candidate{
		ID:              c.ID,
		Cedula:          c.Cedula,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Email:           c.Email,
		Phone:           c.Phone,
		BirthDate:       c.BirthDate,
		CargoID:         c.CargoID,
		CVURL:           c.CVURL,
		Notes:           c.Notes,
		Status:          hr.CandidateStatus(c.Status),
		SubmittedBy:     c.SubmittedBy,
		EvaluatedBy:     c.EvaluatedBy,
		EvaluationNotes: c.EvaluationNotes,
		EvaluationDate:  c.EvaluationDate,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func egresoToDataModel(e *hr.Egreso) *employeeDatamodel.Egreso {
	return &employeeDatamodel.Egreso{
		ID:          e.ID,
		EmployeeID:  e.EmployeeID,
		ExitDate:    e.ExitDate,
		Type:        string(e.Type),
		Reason:      e.Reason,
		ProcessedBy: e.ProcessedBy,
		CreatedAt:   e.CreatedAt,
	}
}

func egresoFromDataModel(e *employeeDatamodel.Egreso) *hr.Egreso {
	return &hr.Egreso{
		ID:          e.ID,
		EmployeeID:  e.EmployeeID,
		ExitDate:    e.ExitDate,
		Type:        hr.EgresoType(e.Type),
		Reason:      e.Reason,
		ProcessedBy: e.ProcessedBy,
		CreatedAt:   e.CreatedAt,
	}
}
