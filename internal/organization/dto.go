package organization

import (
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	"github.com/frahmantamala/hr-management/internal/core/hr"
)

type CreateGerenciaDTO struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

type UpdateGerenciaDTO struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

type CreateDepartamentoDTO struct {
	Nombre     string `json:"nombre"`
	GerenciaID string `json:"gerenciaId"`
}

type UpdateDepartamentoDTO struct {
	Nombre     *string `json:"nombre"`
	GerenciaID *string `json:"gerenciaId"`
}

type CreateCargoDTO struct {
	Nombre         string `json:"nombre"`
	DepartamentoID string `json:"departamentoId"`
}

type UpdateCargoDTO struct {
	Nombre         *string `json:"nombre"`
	DepartamentoID *string `json:"departamentoId"`
}

type GerenciasResponse struct {
	Gerencias []*hr.Gerencia `json:"gerencias"`
}

type DepartamentosResponse struct {
	Departamentos []*hr.Departamento `json:"departamentos"`
}

type CargosResponse struct {
	Cargos []*hr.Cargo `json:"cargos"`
}

func finish(v *validation.ValidationBuilder) error {
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d CreateGerenciaDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("nombre", d.Nombre).Required().MaxLength(120)
	v.Field("descripcion", d.Descripcion).MaxLength(500)
	return finish(v)
}

func (d UpdateGerenciaDTO) Validate() error {
	v := validation.NewValidator()
	if d.Nombre != nil {
		v.Field("nombre", *d.Nombre).Required().MaxLength(120)
	}
	v.Field("descripcion", d.Descripcion).MaxLength(500)
	return finish(v)
}

func (d CreateDepartamentoDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("nombre", d.Nombre).Required().MaxLength(120)
	v.Field("gerenciaId", d.GerenciaID).Required()
	return finish(v)
}

func (d UpdateDepartamentoDTO) Validate() error {
	v := validation.NewValidator()
	if d.Nombre != nil {
		v.Field("nombre", *d.Nombre).Required().MaxLength(120)
	}
	if d.GerenciaID != nil {
		v.Field("gerenciaId", *d.GerenciaID).Required()
	}
	return finish(v)
}

func (d CreateCargoDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("nombre", d.Nombre).Required().MaxLength(120)
	v.Field("departamentoId", d.DepartamentoID).Required()
	return finish(v)
}

func (d UpdateCargoDTO) Validate() error {
	v := validation.NewValidator()
	if d.Nombre != nil {
		v.Field("nombre", *d.Nombre).Required().MaxLength(120)
	}
	if d.DepartamentoID != nil {
		v.Field("departamentoId", *d.DepartamentoID).Required()
	}
	return finish(v)
}
