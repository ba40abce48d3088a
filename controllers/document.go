package controllers

import (
	"legal-aid-api/middleware"
	"legal-aid-api/models"
	"legal-aid-api/services"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// DocumentController exposes the document lifecycle over HTTP. It is built
// once at startup with the document service (and through it, the automation
// notifier) injected.
type DocumentController struct {
	svc *services.DocumentService
}

func NewDocumentController(svc *services.DocumentService) *DocumentController {
	return &DocumentController{svc: svc}
}

type CreateDocumentRequest struct {
	CaseID        int    `json:"case_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	FilePath      string `json:"file_path" binding:"required"`
	FileType      string `json:"file_type" binding:"required"`
	FileSizeBytes int64  `json:"file_size_bytes"`
	MimeType      string `json:"mime_type" binding:"required"`
	Notes         string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

type documentHistoryResponse struct {
	HistoryID     int       `json:"history_id"`
	FromStatus    *string   `json:"from_status"`
	ToStatus      string    `json:"to_status"`
	ChangedBy     *int      `json:"changed_by"`
	ChangedByName string    `json:"changed_by_name"`
	Notes         string    `json:"notes"`
	ChangedAt     time.Time `json:"changed_at"`
}

type documentResponse struct {
	DocumentID          int                       `json:"document_id"`
	CaseID              int                       `json:"case_id"`
	CaseTitle           string                    `json:"case_title"`
	ClientID            int                       `json:"client_id"`
	ClientName          string                    `json:"client_name"`
	AdvocateID          int                       `json:"advocate_id"`
	Name                string                    `json:"name"`
	FilePath            string                    `json:"file_path"`
	FileType            string                    `json:"file_type"`
	FileSizeBytes       int64                     `json:"file_size_bytes"`
	MimeType            string                    `json:"mime_type"`
	Status              string                    `json:"status"`
	Notes               string                    `json:"notes"`
	ProcessedOutputPath *string                   `json:"processed_output_path"`
	CreatedAt           time.Time                 `json:"created_at"`
	UpdatedAt           time.Time                 `json:"updated_at"`
	StatusHistory       []documentHistoryResponse `json:"status_history"`
}

// newDocumentResponse flattens a preloaded document into the API projection.
// History is already ordered newest first by the service.
func newDocumentResponse(doc *models.Document) documentResponse {
	history := make([]documentHistoryResponse, 0, len(doc.StatusHistory))
	for _, entry := range doc.StatusHistory {
		name := "System"
		if entry.Changer != nil {
			name = entry.Changer.FullName
		}
		history = append(history, documentHistoryResponse{
			HistoryID:     entry.HistoryID,
			FromStatus:    entry.FromStatus,
			ToStatus:      entry.ToStatus,
			ChangedBy:     entry.ChangedBy,
			ChangedByName: name,
			Notes:         entry.Notes,
			ChangedAt:     entry.ChangedAt,
		})
	}

	return documentResponse{
		DocumentID:          doc.DocumentID,
		CaseID:              doc.CaseID,
		CaseTitle:           doc.Case.Title,
		ClientID:            doc.Case.ClientID,
		ClientName:          doc.Case.Client.FullName,
		AdvocateID:          doc.AdvocateID,
		Name:                doc.Name,
		FilePath:            doc.FilePath,
		FileType:            doc.FileType,
		FileSizeBytes:       doc.FileSizeBytes,
		MimeType:            doc.MimeType,
		Status:              doc.Status,
		Notes:               doc.Notes,
		ProcessedOutputPath: doc.ProcessedOutputPath,
		CreatedAt:           doc.CreatedAt,
		UpdatedAt:           doc.UpdatedAt,
		StatusHistory:       history,
	}
}

// List returns the principal's documents with optional filters
func (ctl *DocumentController) List(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	filter := services.ListDocumentsFilter{
		Status:   c.Query("status"),
		FileType: c.Query("file_type"),
		Search:   c.Query("search"),
	}
	if caseID, err := strconv.Atoi(c.Query("case_id")); err == nil {
		filter.CaseID = caseID
	}

	docs, err := ctl.svc.List(p, &filter)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]documentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, newDocumentResponse(&docs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"documents": out})
}

// Get returns one document with its full status history
func (ctl *DocumentController) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondNotFound(c)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	doc, err := ctl.svc.GetByID(p, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newDocumentResponse(doc))
}

// Create registers an uploaded document on one of the principal's cases
func (ctl *DocumentController) Create(c *gin.Context) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	doc, err := ctl.svc.Create(p, &services.CreateDocumentInput{
		CaseID:        req.CaseID,
		Name:          req.Name,
		FilePath:      req.FilePath,
		FileType:      req.FileType,
		FileSizeBytes: req.FileSizeBytes,
		MimeType:      req.MimeType,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newDocumentResponse(doc))
}

// UpdateStatus advances a document through the processing pipeline
func (ctl *DocumentController) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondNotFound(c)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	doc, err := ctl.svc.Transition(p, id, req.Status, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newDocumentResponse(doc))
}

// Delete hard-deletes a document and its history
func (ctl *DocumentController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondNotFound(c)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	if err := ctl.svc.Delete(p, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}
