package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmhire/tmhire-backend/internal/model"
)

type registerRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	Name        string `json:"name"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
}

// Register creates a company and its first operator account.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := h.auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	company := model.Company{ID: uuid.NewString(), Name: req.CompanyName}
	user := model.User{
		ID:           uuid.NewString(),
		CompanyID:    company.ID,
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}

	err = h.store.DB().WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&company).Error; err != nil {
			return err
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email is already registered"})
		return
	}

	token, err := h.auth.IssueToken(user.ID, company.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":      token,
		"user_id":    user.ID,
		"company_id": company.ID,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.UserByEmail(c.Request.Context(), req.Email)
	if err != nil || !h.auth.CheckPassword(user.PasswordHash, req.Password) {
		// Deliberately identical for unknown email and wrong password.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.auth.IssueToken(user.ID, user.CompanyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"user_id":    user.ID,
		"company_id": user.CompanyID,
	})
}
