package api

import (
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tmhire/tmhire-backend/internal/auth"
	"github.com/tmhire/tmhire-backend/internal/calendar"
	"github.com/tmhire/tmhire-backend/internal/plan"
	"github.com/tmhire/tmhire-backend/internal/service"
	"github.com/tmhire/tmhire-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store     store.Store
	scheduler *service.Scheduler
	auth      *auth.Manager
	webpush   *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, scheduler *service.Scheduler, authManager *auth.Manager, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:     s,
		scheduler: scheduler,
		auth:      authManager,
		webpush:   webpushOptions,
	}
}

// respondError maps service and engine errors to HTTP responses.
func respondError(c *gin.Context, err error) {
	var conflict *calendar.ConflictError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "vehicle is already booked",
			"tm_id": conflict.TMID,
			"start": conflict.Start,
			"end":   conflict.End,
		})
	case errors.Is(err, service.ErrAlreadyCommitted),
		errors.Is(err, service.ErrNotGenerated):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, plan.ErrInvalidInputParameters),
		errors.Is(err, plan.ErrInvalidFleetSize),
		errors.Is(err, plan.ErrInvalidDuration),
		errors.Is(err, plan.ErrOutOfRangeCapacity),
		errors.Is(err, service.ErrNoFleet):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
