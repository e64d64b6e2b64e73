package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	RoleID   int    `json:"role_id"`
}

// login handles POST /login. The response is the flat shape the storefront
// client expects: token plus profile fields.
func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	var user UserRecord
	err := s.db.Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to look up user"})
		return
	}

	if err := s.passwords.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"name":    user.Name,
		"email":   user.Email,
		"role_id": user.RoleID,
	})
}

// signup handles POST /signup.
func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email and a password of at least 8 characters are required"})
		return
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	roleID := req.RoleID
	if roleID == 0 {
		roleID = 1
	}

	user := UserRecord{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		RoleID:       roleID,
	}
	if err := s.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "An account with this email already exists"})
		return
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":   token,
		"name":    user.Name,
		"email":   user.Email,
		"role_id": user.RoleID,
	})
}

// verify handles GET /verify for an authenticated session.
func (s *Server) verify(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	var user UserRecord
	if err := s.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unknown user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"name":    user.Name,
			"email":   user.Email,
			"role_id": user.RoleID,
		},
	})
}
