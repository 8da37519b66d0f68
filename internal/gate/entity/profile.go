package entity

import (
	"time"
)

// Admin roles
const (
	RoleDepartmentAdmin = "department_admin"
	RoleSecurityAdmin   = "security_admin"
)

// Profile is one admin user. Department admins are fixed to one department;
// security admins have facility-wide scope and a null department.
type Profile struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Email        string    `json:"email" gorm:"size:128;not null;uniqueIndex"`
	FullName     string    `json:"full_name" gorm:"size:200;not null"`
	Role         string    `json:"role" gorm:"size:32;not null"`
	Department   string    `json:"department,omitempty" gorm:"size:32"`
	PasswordHash string    `json:"-" gorm:"size:128;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
