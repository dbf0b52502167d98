package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tmhire/tmhire-backend/internal/model"
	"github.com/tmhire/tmhire-backend/internal/mw"
)

type plantRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Address  string `json:"address"`
	Status   string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// ListPlants returns all batching plants of the authenticated company.
func (h *Handler) ListPlants(c *gin.Context) {
	plants, err := h.store.Plants(c.Request.Context(), mw.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plants)
}

// GetPlant returns a single plant.
func (h *Handler) GetPlant(c *gin.Context) {
	plant, err := h.store.Plant(c.Request.Context(), mw.CompanyID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plant)
}

// CreatePlant creates a plant.
func (h *Handler) CreatePlant(c *gin.Context) {
	var req plantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status == "" {
		req.Status = "active"
	}

	plant := model.Plant{
		ID:        uuid.NewString(),
		CompanyID: mw.CompanyID(c),
		Name:      req.Name,
		Location:  req.Location,
		Address:   req.Address,
		Status:    req.Status,
	}
	if err := h.store.CreatePlant(c.Request.Context(), &plant); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plant)
}

// UpdatePlant replaces a plant's fields.
func (h *Handler) UpdatePlant(c *gin.Context) {
	var req plantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plant, err := h.store.Plant(c.Request.Context(), mw.CompanyID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	plant.Name = req.Name
	plant.Location = req.Location
	plant.Address = req.Address
	if req.Status != "" {
		plant.Status = req.Status
	}
	if err := h.store.SavePlant(c.Request.Context(), plant); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plant)
}

// DeletePlant removes a plant. Vehicles based there keep existing with no
// plant assignment.
func (h *Handler) DeletePlant(c *gin.Context) {
	if err := h.store.DeletePlant(c.Request.Context(), mw.CompanyID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
