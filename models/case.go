package models

import "time"

// Case statuses.
const (
	CaseStatusActive   = "active"
	CaseStatusClosed   = "closed"
	CaseStatusArchived = "archived"
)

// Case is a legal case belonging to one client and one advocate.
type Case struct {
	CaseID      int       `gorm:"primaryKey;column:case_id" json:"case_id"`
	ClientID    int       `gorm:"column:client_id;index" json:"client_id"`
	AdvocateID  int       `gorm:"column:advocate_id;uniqueIndex:idx_cases_advocate_case_number" json:"advocate_id"`
	Title       string    `gorm:"column:title;size:255" json:"title"`
	CaseNumber  string    `gorm:"column:case_number;size:100;uniqueIndex:idx_cases_advocate_case_number" json:"case_number"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Status      string    `gorm:"column:status;size:20;default:active" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	Client Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// TableName overrides
func (Case) TableName() string {
	return "cases"
}

// IsValidCaseStatus reports whether s is a known case status label.
func IsValidCaseStatus(s string) bool {
	return s == CaseStatusActive || s == CaseStatusClosed || s == CaseStatusArchived
}
