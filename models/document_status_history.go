package models

import "time"

// DocumentStatusHistory is the append-only audit trail of document status
// changes. FromStatus is NULL only for the creation entry; ChangedBy is NULL
// when the change came from the automation system or the user was removed.
type DocumentStatusHistory struct {
	HistoryID  int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	DocumentID int       `gorm:"column:document_id;index" json:"document_id"`
	FromStatus *string   `gorm:"column:from_status;size:20" json:"from_status"`
	ToStatus   string    `gorm:"column:to_status;size:20" json:"to_status"`
	ChangedBy  *int      `gorm:"column:changed_by" json:"changed_by"`
	Notes      string    `gorm:"column:notes;type:text" json:"notes"`
	ChangedAt  time.Time `gorm:"column:changed_at" json:"changed_at"`

	// Relations
	Changer *User `gorm:"foreignKey:ChangedBy" json:"-"`
}

// TableName overrides
func (DocumentStatusHistory) TableName() string {
	return "document_status_history"
}
