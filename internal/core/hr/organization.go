package hr

import "time"

// Gerencia is a division, the top of the org hierarchy.
type Gerencia struct {
	ID          string    `json:"id"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	CreatedAt   time.Time `json:"createdAt"`
}

type GerenciaInput struct {
	Name        string
	Description string
}

type GerenciaPatch struct {
	Name        *string
	Description *string
}

func NewGerencia(id string, in GerenciaInput, now time.Time) *Gerencia {
	return &Gerencia{ID: id, Name: in.Name, Description: in.Description, CreatedAt: now}
}

func (g *Gerencia) Apply(p GerenciaPatch) {
	set(&g.Name, p.Name)
	set(&g.Description, p.Description)
}

// Departamento belongs to a Gerencia.
type Departamento struct {
	ID         string    `json:"id"`
	Name       string    `json:"nombre"`
	GerenciaID string    `json:"gerenciaId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type DepartamentoInput struct {
	Name       string
	GerenciaID string
}

type DepartamentoPatch struct {
	Name       *string
	GerenciaID *string
}

func NewDepartamento(id string, in DepartamentoInput, now time.Time) *Departamento {
	return &Departamento{ID: id, Name: in.Name, GerenciaID: in.GerenciaID, CreatedAt: now}
}

func (d *Departamento) Apply(p DepartamentoPatch) {
	set(&d.Name, p.Name)
	set(&d.GerenciaID, p.GerenciaID)
}

// Cargo is a position title inside a Departamento.
type Cargo struct {
	ID             string    `json:"id"`
	Name           string    `json:"nombre"`
	DepartamentoID string    `json:"departamentoId"`
	CreatedAt      time.Time `json:"createdAt"`
}

type CargoInput struct {
	Name           string
	DepartamentoID string
}

type CargoPatch struct {
	Name           *string
	DepartamentoID *string
}

func NewCargo(id string, in CargoInput, now time.Time) *Cargo {
	return &Cargo{ID: id, Name: in.Name, DepartamentoID: in.DepartamentoID, CreatedAt: now}
}

func (c *Cargo) Apply(p CargoPatch) {
	set(&c.Name, p.Name)
	set(&c.DepartamentoID, p.DepartamentoID)
}
