package user

import "time"

type User struct {
	ID        string    `gorm:"column:id;primaryKey;size:36"`
	Cedula    string    `gorm:"column:cedula;size:20;uniqueIndex;not null"`
	Password  string    `gorm:"column:password;not null"`
	Role      string    `gorm:"column:role;size:32;not null"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false;index"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false;precision:6"`
}

func (User) TableName() string {
	return "users"
}
