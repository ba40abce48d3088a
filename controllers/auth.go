package controllers

import (
	"legal-aid-api/config"
	"legal-aid-api/middleware"
	"legal-aid-api/models"
	"legal-aid-api/utils"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string      `json:"token"`
	User    models.User `json:"user"`
	Message string      `json:"message"`
}

// Login handles user authentication
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	var user models.User
	if err := config.DB.First(&user, "email = ?", req.Email).Error; err != nil {
		abortInvalidCredentials(c)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		abortInvalidCredentials(c)
		return
	}

	if !user.Active {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Account is deactivated",
		}})
		return
	}

	token, err := generateToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:   token,
		User:    user,
		Message: "Login successful",
	})
}

// Logout acknowledges the logout. Tokens are stateless, so the client simply
// discards its copy; there is no server-side session to revoke.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// GetProfile returns the current user's profile
func GetProfile(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	var user models.User
	if err := config.DB.First(&user, "user_id = ?", p.UserID).Error; err != nil {
		respondNotFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile updates the current user's name and email
func UpdateProfile(c *gin.Context) {
	type ProfileUpdateRequest struct {
		FullName *string `json:"full_name"`
		Email    *string `json:"email"`
	}

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)

	var user models.User
	if err := config.DB.First(&user, "user_id = ?", p.UserID).Error; err != nil {
		respondNotFound(c)
		return
	}

	if req.FullName != nil {
		user.FullName = utils.SanitizeInput(*req.FullName)
	}
	if req.Email != nil {
		email := utils.SanitizeInput(*req.Email)
		if !utils.ValidateEmail(email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid email address",
			}})
			return
		}
		user.Email = email
	}

	if err := config.DB.Save(&user).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ChangePassword handles password change
func ChangePassword(c *gin.Context) {
	type PasswordChangeRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}

	var req PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if ok, msg := utils.ValidatePassword(req.NewPassword); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": msg,
		}})
		return
	}

	p, _ := middleware.CurrentPrincipal(c)

	var user models.User
	if err := config.DB.First(&user, "user_id = ?", p.UserID).Error; err != nil {
		respondNotFound(c)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Current password is incorrect",
		}})
		return
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	user.PasswordHash = hash
	if err := config.DB.Save(&user).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func abortInvalidCredentials(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{
		"code":    "UNAUTHORIZED",
		"message": "Invalid email or password",
	}})
}

// generateToken creates a signed JWT for the user
func generateToken(user models.User) (string, error) {
	expireHours, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS"))
	if err != nil {
		expireHours = 24
	}

	claims := middleware.Claims{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
