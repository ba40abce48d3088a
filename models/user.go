package models

import "time"

// Role names. Advocates own records; admins see everything.
const (
	RoleAdvocate = "advocate"
	RoleAdmin    = "admin"
)

type User struct {
	UserID       int       `gorm:"primaryKey;column:user_id" json:"user_id"`
	Email        string    `gorm:"column:email;size:255;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:255" json:"-"`
	FullName     string    `gorm:"column:full_name;size:255" json:"full_name"`
	Role         string    `gorm:"column:role;size:20;default:advocate" json:"role"`
	Active       bool      `gorm:"column:active;default:true" json:"active"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

// Principal is the authenticated caller, resolved once by the auth middleware
// and passed into handlers and services.
type Principal struct {
	UserID int
	Email  string
	Role   string
	Active bool
}

// IsAdmin reports whether the principal may access records of any advocate.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
