package organization

import "time"

type Gerencia struct {
	ID          string    `gorm:"column:id;primaryKey;size:36"`
	Name        string    `gorm:"column:nombre;not null"`
	Description string    `gorm:"column:descripcion"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime:false;index"`
}

func (Gerencia) TableName() string {
	return "gerencias"
}

type Departamento struct {
	ID         string    `gorm:"column:id;primaryKey;size:36"`
	Name       string    `gorm:"column:nombre;not null"`
	GerenciaID string    `gorm:"column:gerencia_id;size:36;not null;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime:false;index"`
}

func (Departamento) TableName() string {
	return "departamentos"
}

type Cargo struct {
	ID             string    `gorm:"column:id;primaryKey;size:36"`
	Name           string    `gorm:"column:nombre;not null"`
	DepartamentoID string    `gorm:"column:departamento_id;size:36;not null;index"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime:false;index"`
}

func (Cargo) TableName() string {
	return "cargos"
}
