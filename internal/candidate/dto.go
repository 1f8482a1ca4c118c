package candidate

import (
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	"github.com/frahmantamala/hr-management/internal/core/hr"
)

type CreateCandidateDTO struct {
	Cedula          string   `json:"cedula"`
	Nombres         string   `json:"nombres"`
	Apellidos       string   `json:"apellidos"`
	Email           string   `json:"email"`
	Telefono        string   `json:"telefono"`
	FechaNacimiento *hr.Date `json:"fechaNacimiento"`
	CargoID         string   `json:"cargoId"`
	CvURL           string   `json:"cvUrl"`
	Notas           string   `json:"notas"`
}

type UpdateCandidateDTO struct {
	Cedula          *string  `json:"cedula"`
	Nombres         *string  `json:"nombres"`
	Apellidos       *string  `json:"apellidos"`
	Email           *string  `json:"email"`
	Telefono        *string  `json:"telefono"`
	FechaNacimiento *hr.Date `json:"fechaNacimiento"`
	CargoID         *string  `json:"cargoId"`
	CvURL           *string  `json:"cvUrl"`
	Notas           *string  `json:"notas"`
}

type EvaluateCandidateDTO struct {
	Estatus         hr.CandidateStatus `json:"estatus"`
	EvaluationNotes string             `json:"evaluationNotes"`
}

// ListFilter narrows GET /candidates. Empty fields match everything.
type ListFilter struct {
	Status  hr.CandidateStatus
	CargoID string
}

func (f ListFilter) matches(c *hr.CandidateWithRelations) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.CargoID != "" && c.CargoID != f.CargoID {
		return false
	}
	return true
}

type CandidatesResponse struct {
	Candidates []*hr.CandidateWithRelations `json:"candidates"`
}

var outcomeNames = []string{
	string(hr.CandidateInterview),
	string(hr.CandidateApproved),
	string(hr.CandidateRejected),
	string(hr.CandidateHired),
}

func validOutcome(s string) bool {
	st := hr.CandidateStatus(s)
	return st.Valid() && st != hr.CandidateInEvaluation
}

func (d CreateCandidateDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("cedula", d.Cedula).Required().Cedula()
	v.Field("nombres", d.Nombres).Required().MaxLength(100)
	v.Field("apellidos", d.Apellidos).Required().MaxLength(100)
	v.Field("email", d.Email).Required().Email()
	v.Field("telefono", d.Telefono).MaxLength(30)
	v.Field("fechaNacimiento", d.FechaNacimiento.Ptr()).NotFuture()
	v.Field("cargoId", d.CargoID).Required()
	v.Field("cvUrl", d.CvURL).MaxLength(500)
	v.Field("notas", d.Notas).MaxLength(2000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d UpdateCandidateDTO) Validate() error {
	v := validation.NewValidator()
	if d.Cedula != nil {
		v.Field("cedula", *d.Cedula).Required().Cedula()
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
	v.Field("cvUrl", d.CvURL).MaxLength(500)
	v.Field("notas", d.Notas).MaxLength(2000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d EvaluateCandidateDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("estatus", string(d.Estatus)).Required().OneOf(validOutcome, outcomeNames...)
	v.Field("evaluationNotes", d.EvaluationNotes).MaxLength(2000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d CreateCandidateDTO) toInput(submittedBy string) hr.CandidateInput {
	return hr.CandidateInput{
		Cedula:      d.Cedula,
		FirstName:   d.Nombres,
		LastName:    d.Apellidos,
		Email:       d.Email,
		Phone:       d.Telefono,
		BirthDate:   d.FechaNacimiento.Value(),
		CargoID:     d.CargoID,
		CVURL:       d.CvURL,
		Notes:       d.Notas,
		SubmittedBy: submittedBy,
	}
}

func (d UpdateCandidateDTO) toPatch() hr.CandidatePatch {
	return hr.CandidatePatch{
		Cedula:    d.Cedula,
		FirstName: d.Nombres,
		LastName:  d.Apellidos,
		Email:     d.Email,
		Phone:     d.Telefono,
		BirthDate: d.FechaNacimiento.Ptr(),
		CargoID:   d.CargoID,
		CVURL:     d.CvURL,
		Notes:     d.Notas,
	}
}
