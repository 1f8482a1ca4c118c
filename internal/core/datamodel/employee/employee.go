package employee

import "time"

// References to other tables are plain indexed columns. The repository never
// cascades, so dangling ids are allowed and the read side excludes them.
type Employee struct {
	ID           string    `gorm:"column:id;primaryKey;size:36"`
	UserID       string    `gorm:"column:user_id;size:36;not null;index"`
	FirstName    string    `gorm:"column:nombres;not null"`
	LastName     string    `gorm:"column:apellidos"`
	Email        string    `gorm:"column:email;size:255;uniqueIndex"`
	Phone        string    `gorm:"column:telefono"`
	BirthDate    time.Time `gorm:"column:fecha_nacimiento"`
	CargoID      string    `gorm:"column:cargo_id;size:36;not null;index"`
	SupervisorID *string   `gorm:"column:supervisor_id;size:36;index"`
	StartDate    time.Time `gorm:"column:fecha_ingreso"`
	Status       string    `gorm:"column:estatus;size:32;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime:false;index"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime:false;precision:6"`
}

func (Employee) TableName() string {
	return "employees"
}

type Contract struct {
	ID         string     `gorm:"column:id;primaryKey;size:36"`
	EmployeeID string     `gorm:"column:employee_id;size:36;not null;index"`
	Type       string     `gorm:"column:tipo_contrato;size:32;not null"`
	StartDate  time.Time  `gorm:"column:fecha_inicio"`
	EndDate    *time.Time `gorm:"column:fecha_fin;index"`
	IsActive   bool       `gorm:"column:is_active;not null"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime:false;index"`
}

func (Contract) TableName() string {
	return "contracts"
}

type ProbationPeriod struct {
	ID                       string     `gorm:"column:id;primaryKey;size:36"`
	EmployeeID               string     `gorm:"column:employee_id;size:36;not null;index"`
	StartDate                time.Time  `gorm:"column:fecha_inicio"`
	EndDate                  time.Time  `gorm:"column:fecha_fin;index"`
	Status                   string     `gorm:"column:estatus;size:32;not null"`
	Notes                    string     `gorm:"column:observaciones"`
	EvaluatedBy              *string    `gorm:"column:evaluado_por;size:36"`
	EvaluationDate           *time.Time `gorm:"column:fecha_evaluacion"`
	ExtendedUntil            *time.Time `gorm:"column:extendido_hasta"`
	ExtensionReason          string     `gorm:"column:motivo_extension"`
	SupervisorRecommendation string     `gorm:"column:recomendacion_supervisor"`
	HRNotes                  string     `gorm:"column:observaciones_rrhh"`
	Approved                 *bool      `gorm:"column:aprobado"`
	CreatedAt                time.Time  `gorm:"column:created_at;autoCreateTime:false;index"`
	UpdatedAt                time.Time  `gorm:"column:updated_at;autoUpdateTime:false;precision:6"`
}

func (ProbationPeriod) TableName() string {
	return "probation_periods"
}

type Egreso struct {
	ID          string    `gorm:"column:id;primaryKey;size:36"`
	EmployeeID  string    `gorm:"column:employee_id;size:36;not null;index"`
	ExitDate    time.Time `gorm:"column:fecha_egreso"`
	Type        string    `gorm:"column:tipo;size:32;not null"`
	Reason      string    `gorm:"column:motivo"`
	ProcessedBy string    `gorm:"column:procesado_por;size:36"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime:false;index"`
}

func (Egreso) TableName() string {
	return "egresos"
}
