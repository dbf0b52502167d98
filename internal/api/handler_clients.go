package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tmhire/tmhire-backend/internal/model"
	"github.com/tmhire/tmhire-backend/internal/mw"
)

type clientRequest struct {
	Name          string `json:"name" binding:"required"`
	Address       string `json:"address"`
	ContactName   string `json:"contact_name"`
	ContactNumber string `json:"contact_number"`
}

// ListClients returns all clients of the authenticated company.
func (h *Handler) ListClients(c *gin.Context) {
	clients, err := h.store.Clients(c.Request.Context(), mw.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetClient returns a single client.
func (h *Handler) GetClient(c *gin.Context) {
	client, err := h.store.Client(c.Request.Context(), mw.CompanyID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// CreateClient creates a client.
func (h *Handler) CreateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client := model.Client{
		ID:            uuid.NewString(),
		CompanyID:     mw.CompanyID(c),
		Name:          req.Name,
		Address:       req.Address,
		ContactName:   req.ContactName,
		ContactNumber: req.ContactNumber,
	}
	if err := h.store.CreateClient(c.Request.Context(), &client); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

// UpdateClient replaces a client's fields.
func (h *Handler) UpdateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, err := h.store.Client(c.Request.Context(), mw.CompanyID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	client.Name = req.Name
	client.Address = req.Address
	client.ContactName = req.ContactName
	client.ContactNumber = req.ContactNumber
	if err := h.store.SaveClient(c.Request.Context(), client); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient removes a client.
func (h *Handler) DeleteClient(c *gin.Context) {
	if err := h.store.DeleteClient(c.Request.Context(), mw.CompanyID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
