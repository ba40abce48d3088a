package controllers

import (
	"legal-aid-api/config"
	"legal-aid-api/models"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetUsers lists every account. Admin only.
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("created_at ASC, user_id ASC").Find(&users).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// SetUserActive activates or deactivates an account. Admin only; a deactivated
// advocate's tokens stop working on their next request.
func SetUserActive(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondNotFound(c)
		return
	}

	type ActiveRequest struct {
		Active *bool `json:"active" binding:"required"`
	}

	var req ActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	var user models.User
	if err := config.DB.First(&user, "user_id = ?", id).Error; err != nil {
		respondNotFound(c)
		return
	}

	user.Active = *req.Active
	if err := config.DB.Save(&user).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
