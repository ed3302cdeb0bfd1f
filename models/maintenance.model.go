package models

import (
	"strings"
	"time"
)

// Ticket statuses. Resolved is terminal.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"

	// legacyStatusCompleted is what older technician clients send for resolved.
	legacyStatusCompleted = "completed"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const DefaultComplaintType = "other"

// NormalizeStatus lower-cases s and maps the legacy "completed" spelling onto
// StatusResolved. It does not validate the result.
func NormalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == legacyStatusCompleted {
		return StatusResolved
	}
	return s
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

func IsValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// transitions lists, per current status, the statuses a ticket may move to.
var transitions = map[string][]string{
	StatusPending:    {StatusInProgress, StatusResolved},
	StatusInProgress: {StatusInProgress, StatusResolved},
	StatusResolved:   nil,
}

// CanTransition reports whether a ticket in status from may be moved to status to.
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves status s.
func IsTerminal(s string) bool {
	return len(transitions[s]) == 0
}

// MaintenanceRequest is a ticket filed by a student.
type MaintenanceRequest struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UserID            uint       `gorm:"not null;index" json:"user_id"`
	Title             string     `gorm:"not null" json:"title"`
	Description       string     `json:"description"`
	ComplaintType     string     `gorm:"default:'other'" json:"complaint_type"`
	RoomNumber        string     `json:"room_number"`
	Status            string     `gorm:"default:'pending';index" json:"status"`
	Priority          string     `gorm:"default:'medium'" json:"priority"`
	AssignedTo        *uint      `gorm:"index" json:"assigned_to"`
	AssignedByAdminID *uint      `json:"assigned_by_admin_id"`
	AssignedAt        *time.Time `json:"assigned_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	CompletedAt       *time.Time `json:"completed_at"`
}

// MaintenanceRequestView is a ticket joined with the display names the
// dashboards show next to it. Columns that a listing does not join stay empty.
type MaintenanceRequestView struct {
	MaintenanceRequest
	StudentName    string `json:"student_name,omitempty"`
	StudentRoom    string `json:"student_room,omitempty"`
	StudentPhone   string `json:"student_phone,omitempty"`
	TechnicianName string `json:"technician_name,omitempty"`
	AdminName      string `json:"admin_name,omitempty"`
}
