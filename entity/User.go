package entity

import (
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type User struct {
	gorm.Model
	Username string `json:"username" gorm:"uniqueIndex"`
	Password string `json:"-"` // bcrypt hash
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
