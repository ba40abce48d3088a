package services

import (
	"errors"
	"fmt"
	"legal-aid-api/models"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DocumentService owns the document lifecycle: creation, the status state
// machine, its audit trail, and results reported by the automation system.
type DocumentService struct {
	db       *gorm.DB
	notifier AutomationNotifier
}

func NewDocumentService(db *gorm.DB, notifier AutomationNotifier) *DocumentService {
	return &DocumentService{db: db, notifier: notifier}
}

type CreateDocumentInput struct {
	CaseID        int
	Name          string
	FilePath      string
	FileType      string
	FileSizeBytes int64
	MimeType      string
	Notes         string
}

type ListDocumentsFilter struct {
	Status   string
	FileType string
	CaseID   int
	Search   string
}

type AutomationResultInput struct {
	DocumentID     int
	Status         string
	OutputFilePath string
}

// scoped restricts a query to documents the principal may see.
func scoped(db *gorm.DB, p models.Principal) *gorm.DB {
	if p.IsAdmin() {
		return db
	}
	return db.Where("advocate_id = ?", p.UserID)
}

// withHistory preloads everything the document projection needs. History is
// newest first.
func withHistory(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Case").
		Preload("Case.Client").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at DESC, history_id DESC")
		}).
		Preload("StatusHistory.Changer")
}

func (s *DocumentService) validateCreate(in *CreateDocumentInput) *ValidationError {
	details := map[string]string{}
	if in.CaseID == 0 {
		details["case_id"] = "case_id is required"
	}
	if strings.TrimSpace(in.Name) == "" {
		details["name"] = "name is required"
	}
	if strings.TrimSpace(in.FilePath) == "" {
		details["file_path"] = "file_path is required"
	}
	if !models.IsValidFileType(in.FileType) {
		details["file_type"] = fmt.Sprintf("file_type must be %q or %q", models.FileTypeImage, models.FileTypePDF)
	}
	if in.FileSizeBytes < 0 {
		details["file_size_bytes"] = "file_size_bytes must not be negative"
	}
	if strings.TrimSpace(in.MimeType) == "" {
		details["mime_type"] = "mime_type is required"
	}
	if len(details) > 0 {
		return &ValidationError{Message: "Validation failed", Details: details}
	}
	return nil
}

// Create persists a new document in the uploaded state and seeds its audit
// trail. The owning advocate is always the case owner; a client-supplied
// advocate id is never trusted.
func (s *DocumentService) Create(p models.Principal, in *CreateDocumentInput) (*models.Document, error) {
	if vErr := s.validateCreate(in); vErr != nil {
		return nil, vErr
	}

	var kase models.Case
	if err := scoped(s.db, p).First(&kase, "case_id = ?", in.CaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{
				Message: "Validation failed",
				Details: map[string]string{"case_id": "case not found"},
			}
		}
		return nil, err
	}

	doc := models.Document{
		CaseID:        kase.CaseID,
		AdvocateID:    kase.AdvocateID,
		Name:          in.Name,
		FilePath:      in.FilePath,
		FileType:      in.FileType,
		FileSizeBytes: in.FileSizeBytes,
		MimeType:      in.MimeType,
		Status:        models.StatusUploaded,
		Notes:         in.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
		changedBy := p.UserID
		entry := models.DocumentStatusHistory{
			DocumentID: doc.DocumentID,
			FromStatus: nil,
			ToStatus:   models.StatusUploaded,
			ChangedBy:  &changedBy,
			ChangedAt:  time.Now(),
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(p, doc.DocumentID)
}

// GetByID returns the full document projection for a document the principal
// owns (or any document for admins). Foreign documents report not found.
func (s *DocumentService) GetByID(p models.Principal, documentID int) (*models.Document, error) {
	var doc models.Document
	if err := withHistory(scoped(s.db, p)).First(&doc, "document_id = ?", documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// List returns the principal's documents, newest first.
func (s *DocumentService) List(p models.Principal, filter *ListDocumentsFilter) ([]models.Document, error) {
	q := withHistory(scoped(s.db, p)).Order("created_at DESC, document_id DESC")
	if filter != nil {
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.FileType != "" {
			q = q.Where("file_type = ?", filter.FileType)
		}
		if filter.CaseID != 0 {
			q = q.Where("case_id = ?", filter.CaseID)
		}
		if filter.Search != "" {
			q = q.Where("name LIKE ?", "%"+filter.Search+"%")
		}
	}

	var docs []models.Document
	if err := q.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Transition advances a document one step through the pipeline on behalf of
// the principal. The read-check-write runs in one transaction, guarded by a
// conditional update on the previously read status so two concurrent requests
// cannot both win. Exactly one audit entry is appended per success. When the
// target is ready_to_process the automation notifier fires after the commit;
// its failure never rolls anything back.
func (s *DocumentService) Transition(p models.Principal, documentID int, target, notes string) (*models.Document, error) {
	var notify *ReadyToProcessPayload

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var doc models.Document
		if err := scoped(tx.Preload("Case"), p).First(&doc, "document_id = ?", documentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// The document is resolved first so an unknown or foreign id answers
		// not-found even when the requested label is garbage.
		if !models.IsValidStatus(target) {
			return &ValidationError{
				Message: "Validation failed",
				Details: map[string]string{"status": fmt.Sprintf("unknown status %q", target)},
			}
		}

		if !doc.CanTransitionTo(target) {
			return &InvalidTransitionError{From: doc.Status, To: target}
		}

		now := time.Now()
		res := tx.Model(&models.Document{}).
			Where("document_id = ? AND status = ?", doc.DocumentID, doc.Status).
			Updates(map[string]interface{}{"status": target, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// A concurrent writer moved the document first; re-evaluate the
			// request against the fresh status.
			var fresh models.Document
			if err := tx.First(&fresh, "document_id = ?", doc.DocumentID).Error; err != nil {
				return err
			}
			return &InvalidTransitionError{From: fresh.Status, To: target}
		}

		fromStatus := doc.Status
		changedBy := p.UserID
		entry := models.DocumentStatusHistory{
			DocumentID: doc.DocumentID,
			FromStatus: &fromStatus,
			ToStatus:   target,
			ChangedBy:  &changedBy,
			Notes:      notes,
			ChangedAt:  now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		if target == models.StatusReadyToProcess {
			notify = &ReadyToProcessPayload{
				DocumentID:    doc.DocumentID,
				DocumentName:  doc.Name,
				FilePath:      doc.FilePath,
				CaseTitle:     doc.Case.Title,
				AdvocateEmail: p.Email,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if notify != nil {
		s.notifier.NotifyReadyToProcess(*notify)
	}

	return s.GetByID(p, documentID)
}

// ApplyAutomationResult records a processing result reported by the automation
// system. The status is written as-is: the automation system is trusted to move
// documents backward or skip steps, so the pipeline table is not consulted. An
// audit entry is still appended, attributed to nobody (rendered as "System").
func (s *DocumentService) ApplyAutomationResult(in *AutomationResultInput) (*models.Document, error) {
	if in.DocumentID == 0 || in.Status == "" {
		return nil, &ValidationError{Message: "document_id and status are required"}
	}
	if !models.IsValidStatus(in.Status) {
		return nil, &ValidationError{
			Message: "Validation failed",
			Details: map[string]string{"status": fmt.Sprintf("unknown status %q", in.Status)},
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var doc models.Document
		if err := tx.First(&doc, "document_id = ?", in.DocumentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := time.Now()
		updates := map[string]interface{}{"status": in.Status, "updated_at": now}
		if in.OutputFilePath != "" {
			updates["processed_output_path"] = in.OutputFilePath
		}
		if err := tx.Model(&models.Document{}).
			Where("document_id = ?", doc.DocumentID).
			Updates(updates).Error; err != nil {
			return err
		}

		fromStatus := doc.Status
		entry := models.DocumentStatusHistory{
			DocumentID: doc.DocumentID,
			FromStatus: &fromStatus,
			ToStatus:   in.Status,
			ChangedBy:  nil,
			ChangedAt:  now,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	var doc models.Document
	if err := s.db.First(&doc, "document_id = ?", in.DocumentID).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete hard-deletes a document and its audit trail.
func (s *DocumentService) Delete(p models.Principal, documentID int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var doc models.Document
		if err := scoped(tx, p).First(&doc, "document_id = ?", documentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("document_id = ?", doc.DocumentID).
			Delete(&models.DocumentStatusHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Document{}, "document_id = ?", doc.DocumentID).Error
	})
}
