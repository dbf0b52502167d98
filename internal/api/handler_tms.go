package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tmhire/tmhire-backend/internal/model"
	"github.com/tmhire/tmhire-backend/internal/mw"
)

type tmRequest struct {
	Identifier string  `json:"identifier" binding:"required"`
	Capacity   float64 `json:"capacity" binding:"required,gt=0"`
	PlantID    *string `json:"plant_id"`
}

// ListTMs returns the company's transit mixer roster.
func (h *Handler) ListTMs(c *gin.Context) {
	tms, err := h.store.TMs(c.Request.Context(), mw.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tms)
}

// GetTM returns a single transit mixer.
func (h *Handler) GetTM(c *gin.Context) {
	tm, err := h.store.TM(c.Request.Context(), mw.CompanyID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tm)
}

// CreateTM registers a transit mixer.
func (h *Handler) CreateTM(c *gin.Context) {
	var req tmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	companyID := mw.CompanyID(c)
	if req.PlantID != nil {
		if _, err := h.store.Plant(c.Request.Context(), companyID, *req.PlantID); err != nil {
			respondError(c, err)
			return
		}
	}

	tm := model.TransitMixer{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		PlantID:    req.PlantID,
		Identifier: req.Identifier,
		Capacity:   req.Capacity,
	}
	if err := h.store.CreateTM(c.Request.Context(), &tm); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tm)
}

// UpdateTM replaces a transit mixer's fields.
func (h *Handler) UpdateTM(c *gin.Context) {
	var req tmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	companyID := mw.CompanyID(c)
	tm, err := h.store.TM(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if req.PlantID != nil {
		if _, err := h.store.Plant(c.Request.Context(), companyID, *req.PlantID); err != nil {
			respondError(c, err)
			return
		}
	}

	tm.Identifier = req.Identifier
	tm.Capacity = req.Capacity
	tm.PlantID = req.PlantID
	if err := h.store.SaveTM(c.Request.Context(), tm); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tm)
}

// DeleteTM removes a transit mixer from the roster.
func (h *Handler) DeleteTM(c *gin.Context) {
	if err := h.store.DeleteTM(c.Request.Context(), mw.CompanyID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAverageCapacity returns the fleet's average drum capacity, the figure
// the capacity table is consulted with.
func (h *Handler) GetAverageCapacity(c *gin.Context) {
	avg, err := h.store.AverageTMCapacity(c.Request.Context(), mw.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"average_capacity": avg})
}
