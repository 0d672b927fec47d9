package api

import (
	"net/http"

	resdto "github.com/ronygeorgen/golf-backend-sub000/internal/handler/dto/response"
	"github.com/ronygeorgen/golf-backend-sub000/internal/handler/middleware"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CreditHandler struct {
	creditQueries queries.CreditQueries
}

func NewCreditHandler(creditQueries queries.CreditQueries) *CreditHandler {
	return &CreditHandler{creditQueries: creditQueries}
}

// @Summary Credit balance
// @Description Spendable balance across the client's active packages. Unaccepted gifts are listed but excluded from the totals.
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CreditBalanceResponse
// @Router /credits/balance [get]
func (h *CreditHandler) GetBalance(c *gin.Context) {
	clientID, ok := middleware.GetUserID(c)
	if !ok {
		internalError(c)
		return
	}

	view, err := h.creditQueries.Balance(c.Request.Context(), clientID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCreditBalance(view))
}
