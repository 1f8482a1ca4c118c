package user

import (
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	"github.com/frahmantamala/hr-management/internal/core/hr"
)

type CreateUserDTO struct {
	Cedula   string  `json:"cedula"`
	Password string  `json:"password"`
	Role     hr.Role `json:"role"`
	IsActive *bool   `json:"isActive"`
}

type UpdateUserDTO struct {
	Cedula   *string  `json:"cedula"`
	Password *string  `json:"password"`
	Role     *hr.Role `json:"role"`
	IsActive *bool    `json:"isActive"`
}

type UsersResponse struct {
	Users []*hr.User `json:"users"`
}

func roleNames() []string {
	names := make([]string, len(hr.Roles))
	for i, r := range hr.Roles {
		names[i] = string(r)
	}
	return names
}

func validRole(s string) bool { return hr.Role(s).Valid() }

func (d CreateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("cedula", d.Cedula).Required().Cedula()
	v.Field("password", d.Password).Required().MinLength(6)
	v.Field("role", string(d.Role)).OneOf(validRole, roleNames()...)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d UpdateUserDTO) Validate() error {
	v := validation.NewValidator()
	if d.Cedula != nil {
		v.Field("cedula", *d.Cedula).Required().Cedula()
	}
	if d.Password != nil {
		v.Field("password", *d.Password).Required().MinLength(6)
	}
	if d.Role != nil {
		v.Field("role", string(*d.Role)).Required().OneOf(validRole, roleNames()...)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d CreateUserDTO) toInput(hash string) hr.UserInput {
	return hr.UserInput{
		Cedula:   d.Cedula,
		Password: hash,
		Role:     d.Role,
		IsActive: d.IsActive,
	}
}
