package candidate

import "time"

type Candidate struct {
	ID              string     `gorm:"column:id;primaryKey;size:36"`
	Cedula          string     `gorm:"column:cedula;size:20;uniqueIndex"`
	FirstName       string     `gorm:"column:nombres;not null"`
	LastName        string     `gorm:"column:apellidos"`
	Email           string     `gorm:"column:email"`
	Phone           string     `gorm:"column:telefono"`
	BirthDate       time.Time  `gorm:"column:fecha_nacimiento"`
	CargoID         string     `gorm:"column:cargo_id;size:36;index"`
	CVURL           string     `gorm:"column:cv_url"`
	Notes           string     `gorm:"column:notas"`
	Status          string     `gorm:"column:estatus;size:32;not null"`
	SubmittedBy     string     `gorm:"column:submitted_by;size:36;index"`
	EvaluatedBy     *string    `gorm:"column:evaluated_by;size:36"`
	EvaluationNotes string     `gorm:"column:evaluation_notes"`
	EvaluationDate  *time.Time `gorm:"column:evaluation_date"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime:false;index"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime:false;precision:6"`
}

func (Candidate) TableName() string {
	return "candidates"
}
