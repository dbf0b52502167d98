package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tmhire/tmhire-backend/internal/model"
	"github.com/tmhire/tmhire-backend/internal/mw"
	"github.com/tmhire/tmhire-backend/internal/plan"
)

type fleetRequirementRequest struct {
	Quantity      float64 `json:"quantity" binding:"required,gt=0"`
	PumpingSpeed  float64 `json:"pumping_speed" binding:"required,gt=0"`
	OnwardTimeMin int     `json:"onward_time_min" binding:"required,gt=0"`
	ReturnTimeMin int     `json:"return_time_min" binding:"required,gt=0"`
	BufferTimeMin int     `json:"buffer_time_min" binding:"gte=0"`
}

// ComputeFleetRequirement answers how many vehicles a prospective delivery
// needs, without creating a schedule.
func (h *Handler) ComputeFleetRequirement(c *gin.Context) {
	var req fleetRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := plan.Input{
		Quantity:     req.Quantity,
		PumpingSpeed: req.PumpingSpeed,
		OnwardTime:   time.Duration(req.OnwardTimeMin) * time.Minute,
		ReturnTime:   time.Duration(req.ReturnTimeMin) * time.Minute,
		BufferTime:   time.Duration(req.BufferTimeMin) * time.Minute,
	}
	requirement, err := h.scheduler.ComputeFleetRequirement(c.Request.Context(), mw.CompanyID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tm_count":           requirement.TMCount,
		"unloading_time_min": int(requirement.UnloadingTime / time.Minute),
		"pumping_minutes":    int(requirement.PumpingTime / time.Minute),
	})
}

type scheduleRequest struct {
	ClientID      string  `json:"client_id" binding:"required"`
	SiteAddress   string  `json:"site_address"`
	Quantity      float64 `json:"quantity" binding:"required,gt=0"`
	PumpingSpeed  float64 `json:"pumping_speed" binding:"required,gt=0"`
	OnwardTimeMin int     `json:"onward_time_min" binding:"required,gt=0"`
	ReturnTimeMin int     `json:"return_time_min" binding:"required,gt=0"`
	BufferTimeMin int     `json:"buffer_time_min" binding:"gte=0"`
}

func (r *scheduleRequest) toModel() *model.Schedule {
	return &model.Schedule{
		ClientID:      r.ClientID,
		SiteAddress:   r.SiteAddress,
		Quantity:      r.Quantity,
		PumpingSpeed:  r.PumpingSpeed,
		OnwardTimeMin: r.OnwardTimeMin,
		ReturnTimeMin: r.ReturnTimeMin,
		BufferTimeMin: r.BufferTimeMin,
	}
}

// ListSchedules returns every schedule of the authenticated company.
func (h *Handler) ListSchedules(c *gin.Context) {
	schedules, err := h.store.Schedules(c.Request.Context(), mw.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// GetSchedule returns one schedule with its trip table.
func (h *Handler) GetSchedule(c *gin.Context) {
	schedule, err := h.store.Schedule(c.Request.Context(), mw.CompanyID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// CreateSchedule stores a new draft delivery.
func (h *Handler) CreateSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule := req.toModel()
	if err := h.scheduler.CreateSchedule(c.Request.Context(), mw.CompanyID(c), schedule); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

// UpdateSchedule replaces a schedule's input parameters. Any generated
// trip table is discarded and the schedule returns to draft.
func (h *Handler) UpdateSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := req.toModel()
	update.ID = c.Param("id")
	schedule, err := h.scheduler.UpdateSchedule(c.Request.Context(), mw.CompanyID(c), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// DeleteSchedule removes a schedule, releasing any calendar slots it holds.
func (h *Handler) DeleteSchedule(c *gin.Context) {
	if err := h.scheduler.DeleteSchedule(c.Request.Context(), mw.CompanyID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type generateRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	TMIDs     []string  `json:"tm_ids"`
}

// GenerateSchedule computes the trip table. tm_ids, when present, override
// the calculated fleet size and fix the rotation order.
func (h *Handler) GenerateSchedule(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule, err := h.scheduler.GenerateSchedule(c.Request.Context(), mw.CompanyID(c), c.Param("id"), req.StartTime, req.TMIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// CommitSchedule reserves the trip table's vehicle windows in the
// availability calendar.
func (h *Handler) CommitSchedule(c *gin.Context) {
	schedule, err := h.scheduler.CommitSchedule(c.Request.Context(), mw.CompanyID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// ReleaseSchedule frees the schedule's calendar slots.
func (h *Handler) ReleaseSchedule(c *gin.Context) {
	schedule, err := h.scheduler.ReleaseSchedule(c.Request.Context(), mw.CompanyID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}
