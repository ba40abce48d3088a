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

type ClientRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
}

// clientScope restricts queries to the principal's clients (admins see all).
func clientScope(c *gin.Context) (*gorm.DB, models.Principal) {
	p, _ := middleware.CurrentPrincipal(c)
	q := config.DB.Model(&models.Client{})
	if !p.IsAdmin() {
		q = q.Where("advocate_id = ?", p.UserID)
	}
	return q, p
}

// GetClients lists the principal's clients, newest first
func GetClients(c *gin.Context) {
	q, _ := clientScope(c)

	if search := c.Query("search"); search != "" {
		q = q.Where("full_name LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var clients []models.Client
	if err := q.Order("created_at DESC, client_id DESC").Find(&clients).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// GetClient returns one client by id
func GetClient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondNotFound(c)
		return
	}

	q, _ := clientScope(c)
	var client models.Client
	if err := q.First(&client, "client_id = ?", id).Error; err != nil {
		respondNotFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": client})
}

// CreateClient creates a client owned by the principal
func CreateClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	client := models.Client{
		AdvocateID: p.UserID,
		FullName:   utils.SanitizeInput(req.FullName),
		Email:      utils.SanitizeInput(req.Email),
		Phone:      utils.SanitizeInput(req.Phone),
		Address:    req.Address,
		Notes:      req.Notes,
	}

	if err := config.DB.Create(&client).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"client": client})
}

// UpdateClient updates a client owned by the principal
func UpdateClient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondNotFound(c)
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	q, _ := clientScope(c)
	var client models.Client
	if err := q.First(&client, "client_id = ?", id).Error; err != nil {
		respondNotFound(c)
		return
	}

	client.FullName = utils.SanitizeInput(req.FullName)
	client.Email = utils.SanitizeInput(req.Email)
	client.Phone = utils.SanitizeInput(req.Phone)
	client.Address = req.Address
	client.Notes = req.Notes

	if err := config.DB.Save(&client).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": client})
}

// DeleteClient removes a client with all of their cases, documents and
// document history
func DeleteClient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondNotFound(c)
		return
	}

	q, _ := clientScope(c)
	var client models.Client
	if err := q.First(&client, "client_id = ?", id).Error; err != nil {
		respondNotFound(c)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var caseIDs []int
		if err := tx.Model(&models.Case{}).
			Where("client_id = ?", client.ClientID).
			Pluck("case_id", &caseIDs).Error; err != nil {
			return err
		}

		if len(caseIDs) > 0 {
			if err := deleteCaseDocuments(tx, caseIDs); err != nil {
				return err
			}
			if err := tx.Where("case_id IN ?", caseIDs).Delete(&models.Case{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Client{}, "client_id = ?", client.ClientID).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

// deleteCaseDocuments removes all documents (and their status history) that
// belong to the given cases.
func deleteCaseDocuments(tx *gorm.DB, caseIDs []int) error {
	var docIDs []int
	if err := tx.Model(&models.Document{}).
		Where("case_id IN ?", caseIDs).
		Pluck("document_id", &docIDs).Error; err != nil {
		return err
	}
	if len(docIDs) == 0 {
		return nil
	}
	if err := tx.Where("document_id IN ?", docIDs).
		Delete(&models.DocumentStatusHistory{}).Error; err != nil {
		return err
	}
	return tx.Where("document_id IN ?", docIDs).Delete(&models.Document{}).Error
}
