package controllers

import (
	"legal-aid-api/config"
	"legal-aid-api/middleware"
	"legal-aid-api/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetDashboardStats returns record counts scoped to the principal. Admins get
// global counts.
func GetDashboardStats(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	scope := func(db *gorm.DB) *gorm.DB {
		if p.IsAdmin() {
			return db
		}
		return db.Where("advocate_id = ?", p.UserID)
	}

	var totalClients, totalCases, totalDocuments int64
	if err := scope(config.DB.Model(&models.Client{})).Count(&totalClients).Error; err != nil {
		respondError(c, err)
		return
	}
	if err := scope(config.DB.Model(&models.Case{})).Count(&totalCases).Error; err != nil {
		respondError(c, err)
		return
	}
	if err := scope(config.DB.Model(&models.Document{})).Count(&totalDocuments).Error; err != nil {
		respondError(c, err)
		return
	}

	byStatus := gin.H{}
	for status := range models.ValidTransitions {
		var n int64
		if err := scope(config.DB.Model(&models.Document{})).
			Where("status = ?", status).Count(&n).Error; err != nil {
			respondError(c, err)
			return
		}
		byStatus[status] = n
	}

	c.JSON(http.StatusOK, gin.H{
		"total_clients":       totalClients,
		"total_cases":         totalCases,
		"total_documents":     totalDocuments,
		"documents_by_status": byStatus,
	})
}
