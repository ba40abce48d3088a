package models

import "time"

// Document statuses, in processing-pipeline order.
const (
	StatusUploaded       = "uploaded"
	StatusReadyToProcess = "ready_to_process"
	StatusInProgress     = "in_progress"
	StatusProcessed      = "processed"
)

// Document file types.
const (
	FileTypeImage = "image"
	FileTypePDF   = "pdf"
)

// ValidTransitions is the forward-only status pipeline for advocate-driven
// changes. The automation gateway writes statuses directly and does not
// consult this table.
var ValidTransitions = map[string][]string{
	StatusUploaded:       {StatusReadyToProcess},
	StatusReadyToProcess: {StatusInProgress},
	StatusInProgress:     {StatusProcessed},
	StatusProcessed:      {},
}

// Document is an uploaded file linked to a case. AdvocateID is denormalized
// from the owning case so ownership checks stay one query.
type Document struct {
	DocumentID          int       `gorm:"primaryKey;column:document_id" json:"document_id"`
	CaseID              int       `gorm:"column:case_id;index" json:"case_id"`
	AdvocateID          int       `gorm:"column:advocate_id;index" json:"advocate_id"`
	Name                string    `gorm:"column:name;size:255" json:"name"`
	FilePath            string    `gorm:"column:file_path;type:text" json:"file_path"`
	FileType            string    `gorm:"column:file_type;size:10" json:"file_type"`
	FileSizeBytes       int64     `gorm:"column:file_size_bytes" json:"file_size_bytes"`
	MimeType            string    `gorm:"column:mime_type;size:100" json:"mime_type"`
	Status              string    `gorm:"column:status;size:20;default:uploaded;index" json:"status"`
	Notes               string    `gorm:"column:notes;type:text" json:"notes"`
	ProcessedOutputPath *string   `gorm:"column:processed_output_path" json:"processed_output_path"`
	CreatedAt           time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	Case          Case                    `gorm:"foreignKey:CaseID" json:"case,omitempty"`
	StatusHistory []DocumentStatusHistory `gorm:"foreignKey:DocumentID" json:"status_history,omitempty"`
}

// TableName overrides
func (Document) TableName() string {
	return "documents"
}

// CanTransitionTo reports whether the advocate-facing pipeline allows moving
// from the document's current status to target. Pure check, no side effects.
func (d *Document) CanTransitionTo(target string) bool {
	for _, next := range ValidTransitions[d.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is a known document status label.
func IsValidStatus(s string) bool {
	_, ok := ValidTransitions[s]
	return ok
}

// IsValidFileType reports whether s is a supported file type.
func IsValidFileType(s string) bool {
	return s == FileTypeImage || s == FileTypePDF
}
