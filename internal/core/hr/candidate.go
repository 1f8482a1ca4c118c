package hr

import "time"

type CandidateStatus string

const (
	CandidateInEvaluation CandidateStatus = "en_evaluacion"
	CandidateInterview    CandidateStatus = "entrevista"
	CandidateApproved     CandidateStatus = "aprobado"
	CandidateRejected     CandidateStatus = "rechazado"
	CandidateHired        CandidateStatus = "contratado"
)

func (s CandidateStatus) Valid() bool {
	switch s {
	case CandidateInEvaluation, CandidateInterview, CandidateApproved, CandidateRejected, CandidateHired:
		return true
	}
	return false
}

type Candidate struct {
	ID              string          `json:"id"`
	Cedula          string          `json:"cedula"`
	FirstName       string          `json:"nombres"`
	LastName        string          `json:"apellidos"`
	Email           string          `json:"email"`
	Phone           string          `json:"telefono"`
	BirthDate       time.Time       `json:"fechaNacimiento"`
	CargoID         string          `json:"cargoId"`
	CVURL           string          `json:"cvUrl"`
	Notes           string          `json:"notas"`
	Status          CandidateStatus `json:"estatus"`
	SubmittedBy     string          `json:"submittedBy"`
	EvaluatedBy     *string         `json:"evaluatedBy"`
	EvaluationNotes string          `json:"evaluationNotes"`
	EvaluationDate  *time.Time      `json:"evaluationDate"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type CandidateInput struct {
	Cedula      string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	BirthDate   time.Time
	CargoID     string
	CVURL       string
	Notes       string
	Status      CandidateStatus
	SubmittedBy string
}

type CandidatePatch struct {
	Cedula          *string
	FirstName       *string
	LastName        *string
	Email           *string
	Phone           *string
	BirthDate       *time.Time
	CargoID         *string
	CVURL           *string
	Notes           *string
	Status          *CandidateStatus
	EvaluatedBy     Nullable[string]
	EvaluationNotes *string
	EvaluationDate  Nullable[time.Time]
}

func NewCandidate(id string, in CandidateInput, now time.Time) *Candidate {
	c := &Candidate{
		ID:          id,
		Cedula:      in.Cedula,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Phone:       in.Phone,
		BirthDate:   in.BirthDate,
		CargoID:     in.CargoID,
		CVURL:       in.CVURL,
		Notes:       in.Notes,
		Status:      in.Status,
		SubmittedBy: in.SubmittedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if c.Status == "" {
		c.Status = CandidateInEvaluation
	}
	return c
}

func (c *Candidate) Apply(p CandidatePatch, now time.Time) {
	set(&c.Cedula, p.Cedula)
	set(&c.FirstName, p.FirstName)
	set(&c.LastName, p.LastName)
	set(&c.Email, p.Email)
	set(&c.Phone, p.Phone)
	set(&c.BirthDate, p.BirthDate)
	set(&c.CargoID, p.CargoID)
	set(&c.CVURL, p.CVURL)
	set(&c.Notes, p.Notes)
	set(&c.Status, p.Status)
	p.EvaluatedBy.apply(&c.EvaluatedBy)
	set(&c.EvaluationNotes, p.EvaluationNotes)
	p.EvaluationDate.apply(&c.EvaluationDate)
	c.UpdatedAt = Later(c.UpdatedAt, now)
}
