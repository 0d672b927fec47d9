package api

import (
	"net/http"
	"time"

	reqdto "github.com/ronygeorgen/golf-backend-sub000/internal/handler/dto/request"
	resdto "github.com/ronygeorgen/golf-backend-sub000/internal/handler/dto/response"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// @Summary List bookable slots
// @Description Returns the 30-minute slot grid for a date, merged across bays
// @Tags availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param category query string true "simulator or coaching"
// @Param duration_minutes query int true "Requested duration"
// @Param bay_id query string false "Restrict to one bay"
// @Param coach_id query string false "Coach for coaching bookings"
// @Success 200 {object} resdto.DayAvailabilityResponse
// @Failure 400 {object} map[string]string
// @Router /availability/slots [get]
func (h *AvailabilityHandler) GetSlots(c *gin.Context) {
	var q reqdto.SlotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	params, err := q.ToParams()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	view, err := h.availability.Slots(c.Request.Context(), params)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromDayAvailability(view))
}

// @Summary Get open windows for a resource
// @Description Returns the raw opening windows for one resource and date
// @Tags availability
// @Produce json
// @Param id path string true "Resource ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.OpenWindowResponse
// @Failure 400 {object} map[string]string
// @Router /availability/resources/{id}/windows [get]
func (h *AvailabilityHandler) GetOpenWindows(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": reqdto.ErrInvalidDate.Error(),
		})
		return
	}

	windows, err := h.availability.OpenWindows(c.Request.Context(), resourceID, date)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOpenWindows(windows))
}
