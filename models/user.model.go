package models

import (
	"time"
)

// Roles a user may hold. Warden is an alias of admin used by some hostels.
const (
	RoleStudent    = "student"
	RoleTechnician = "technician"
	RoleAdmin      = "admin"
	RoleWarden     = "warden"
)

// AdminRoles are the roles allowed on the triage/assignment endpoints.
var AdminRoles = []string{RoleAdmin, RoleWarden}

// IsValidRole reports whether role is one of the known roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTechnician, RoleAdmin, RoleWarden:
		return true
	}
	return false
}

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	Role           string    `gorm:"default:'student';index" json:"role"`
	RoomNumber     string    `json:"room_number"`
	BlockNumber    string    `json:"block_number"`
	Phone          string    `json:"phone"`
	WorkArea       string    `json:"work_area"`
	RegisterNumber *string   `gorm:"uniqueIndex" json:"register_number"` // students only
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
