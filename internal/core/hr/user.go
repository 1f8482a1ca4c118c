package hr

import "time"

type Role string

const (
	RoleAdmin           Role = "admin"
	RoleHRManager       Role = "gerente_rrhh"
	RoleHRAdmin         Role = "admin_rrhh"
	RoleSupervisor      Role = "supervisor"
	RoleRecruitingStaff Role = "empleado_captacion"
	RoleEmployee        Role = "empleado"
)

var Roles = []Role{RoleAdmin, RoleHRManager, RoleHRAdmin, RoleSupervisor, RoleRecruitingStaff, RoleEmployee}

func (r Role) Valid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

// User holds login credentials. Password is a bcrypt hash and never serialized.
type User struct {
	ID        string    `json:"id"`
	Cedula    string    `json:"cedula"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UserInput struct {
	Cedula   string
	Password string
	Role     Role
	IsActive *bool
}

type UserPatch struct {
	Cedula   *string
	Password *string
	Role     *Role
	IsActive *bool
}

func NewUser(id string, in UserInput, now time.Time) *User {
	u := &User{
		ID:        id,
		Cedula:    in.Cedula,
		Password:  in.Password,
		Role:      in.Role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if u.Role == "" {
		u.Role = RoleEmployee
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	return u
}

func (u *User) Apply(p UserPatch, now time.Time) {
	set(&u.Cedula, p.Cedula)
	set(&u.Password, p.Password)
	set(&u.Role, p.Role)
	set(&u.IsActive, p.IsActive)
	u.UpdatedAt = Later(u.UpdatedAt, now)
}

// Later returns now, or prev plus one microsecond when the clock has not moved
// past prev, so that consecutive updates always get increasing timestamps.
func Later(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Microsecond)
}
