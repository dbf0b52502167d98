package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tmhire/tmhire-backend/internal/mw"
)

// GetCalendar returns one vehicle's committed slots for a date, ordered by
// start instant. The date defaults to today (UTC).
func (h *Handler) GetCalendar(c *gin.Context) {
	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	companyID := mw.CompanyID(c)
	tmID := c.Param("tm_id")
	if _, err := h.store.TM(c.Request.Context(), companyID, tmID); err != nil {
		respondError(c, err)
		return
	}

	slots, err := h.scheduler.CalendarFor(c.Request.Context(), companyID, tmID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}
