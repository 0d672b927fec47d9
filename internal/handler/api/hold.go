package api

import (
	"net/http"

	reqdto "github.com/ronygeorgen/golf-backend-sub000/internal/handler/dto/request"
	resdto "github.com/ronygeorgen/golf-backend-sub000/internal/handler/dto/response"
	"github.com/ronygeorgen/golf-backend-sub000/internal/handler/middleware"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type HoldHandler struct {
	holdCommands commands.HoldCommands
}

func NewHoldHandler(holdCommands commands.HoldCommands) *HoldHandler {
	return &HoldHandler{holdCommands: holdCommands}
}

// @Summary Place a temporary hold
// @Description Reserves a slot while the client checks out. The returned token references the hold in the payment flow.
// @Tags holds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateHoldRequest true "Hold request"
// @Success 201 {object} resdto.HoldCreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} httperr.Response
// @Router /holds [post]
func (h *HoldHandler) CreateHold(c *gin.Context) {
	clientID, ok := middleware.GetUserID(c)
	if !ok {
		internalError(c)
		return
	}

	var req reqdto.CreateHoldRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params, err := req.ToParams(clientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	result, err := h.holdCommands.Create(c.Request.Context(), params)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromHoldResult(result))
}

// @Summary Cancel a hold
// @Tags holds
// @Security BearerAuth
// @Param token path string true "Hold token"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Router /holds/{token} [delete]
func (h *HoldHandler) CancelHold(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		internalError(c)
		return
	}
	role, _ := middleware.GetUserRole(c)

	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid hold token format",
		})
		return
	}

	if err := h.holdCommands.Cancel(c.Request.Context(), actorID, role.IsStaff(), token); err != nil {
		writeDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Expire overdue holds
// @Description Bulk-expires reserved holds whose deadline has passed. Reads already ignore them; this reclaims the rows.
// @Tags holds
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SweepResponse
// @Router /holds/sweep [post]
func (h *HoldHandler) SweepExpired(c *gin.Context) {
	expired, err := h.holdCommands.SweepExpired(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.SweepResponse{Expired: expired})
}
