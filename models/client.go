package models

import "time"

// Client is a legal-aid client managed by a single advocate.
type Client struct {
	ClientID   int       `gorm:"primaryKey;column:client_id" json:"client_id"`
	AdvocateID int       `gorm:"column:advocate_id;index" json:"advocate_id"`
	FullName   string    `gorm:"column:full_name;size:255" json:"full_name"`
	Email      string    `gorm:"column:email;size:255;index" json:"email"`
	Phone      string    `gorm:"column:phone;size:20" json:"phone"`
	Address    string    `gorm:"column:address;type:text" json:"address"`
	Notes      string    `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	Advocate User `gorm:"foreignKey:AdvocateID" json:"-"`
}

// TableName overrides
func (Client) TableName() string {
	return "clients"
}
