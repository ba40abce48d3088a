package controllers

import (
	"legal-aid-api/config"
	"legal-aid-api/middleware"
	"legal-aid-api/models"
	"legal-aid-api/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CaseRequest struct {
	ClientID    int    `json:"client_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	CaseNumber  string `json:"case_number" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func caseScope(c *gin.Context) (*gorm.DB, models.Principal) {
	p, _ := middleware.CurrentPrincipal(c)
	q := config.DB.Model(&models.Case{})
	if !p.IsAdmin() {
		q = q.Where("advocate_id = ?", p.UserID)
	}
	return q, p
}

// GetCases lists the principal's cases, newest first
func GetCases(c *gin.Context) {
	q, _ := caseScope(c)

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if clientID, err := strconv.Atoi(c.Query("client_id")); err == nil {
		q = q.Where("client_id = ?", clientID)
	}
	if search := c.Query("search"); search != "" {
		q = q.Where("title LIKE ? OR case_number LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var cases []models.Case
	if err := q.Preload("Client").Order("created_at DESC, case_id DESC").Find(&cases).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cases": cases})
}

// GetCase returns one case by id
func GetCase(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondNotFound(c)
		return
	}

	q, _ := caseScope(c)
	var kase models.Case
	if err := q.Preload("Client").First(&kase, "case_id = ?", id).Error; err != nil {
		respondNotFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"case": kase})
}

// CreateCase creates a case for one of the principal's clients
func CreateCase(c *gin.Context) {
	var req CaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)

	// The client must belong to the requester; the case owner is always the
	// client's advocate, never a value from the request.
	clientQuery := config.DB.Model(&models.Client{})
	if !p.IsAdmin() {
		clientQuery = clientQuery.Where("advocate_id = ?", p.UserID)
	}
	var client models.Client
	if err := clientQuery.First(&client, "client_id = ?", req.ClientID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Validation failed",
			"details": gin.H{"client_id": "client not found"},
		}})
		return
	}

	status := req.Status
	if status == "" {
		status = models.CaseStatusActive
	}
	if !models.IsValidCaseStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid case status",
		}})
		return
	}

	caseNumber, ok := utils.NormalizeCaseNumber(req.CaseNumber)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Validation failed",
			"details": gin.H{"case_number": "case_number must contain only letters, digits and dashes"},
		}})
		return
	}

	kase := models.Case{
		ClientID:    client.ClientID,
		AdvocateID:  client.AdvocateID,
		Title:       utils.SanitizeInput(req.Title),
		CaseNumber:  caseNumber,
		Description: req.Description,
		Status:      status,
	}

	if err := config.DB.Create(&kase).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"case": kase})
}

// UpdateCase updates a case owned by the principal
func UpdateCase(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondNotFound(c)
		return
	}

	type CaseUpdateRequest struct {
		Title       *string `json:"title"`
		CaseNumber  *string `json:"case_number"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
	}

	var req CaseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	q, _ := caseScope(c)
	var kase models.Case
	if err := q.First(&kase, "case_id = ?", id).Error; err != nil {
		respondNotFound(c)
		return
	}

	if req.Title != nil {
		kase.Title = utils.SanitizeInput(*req.Title)
	}
	if req.CaseNumber != nil {
		caseNumber, ok := utils.NormalizeCaseNumber(*req.CaseNumber)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Validation failed",
				"details": gin.H{"case_number": "case_number must contain only letters, digits and dashes"},
			}})
			return
		}
		kase.CaseNumber = caseNumber
	}
	if req.Description != nil {
		kase.Description = *req.Description
	}
	if req.Status != nil {
		if !models.IsValidCaseStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid case status",
			}})
			return
		}
		kase.Status = *req.Status
	}

	if err := config.DB.Save(&kase).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"case": kase})
}

// DeleteCase removes a case with its documents and their status history
func DeleteCase(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondNotFound(c)
		return
	}

	q, _ := caseScope(c)
	var kase models.Case
	if err := q.First(&kase, "case_id = ?", id).Error; err != nil {
		respondNotFound(c)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteCaseDocuments(tx, []int{kase.CaseID}); err != nil {
			return err
		}
		return tx.Delete(&models.Case{}, "case_id = ?", kase.CaseID).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Case deleted successfully"})
}
