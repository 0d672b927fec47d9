package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	reqdto "github.com/ronygeorgen/golf-backend-sub000/internal/handler/dto/request"
	resdto "github.com/ronygeorgen/golf-backend-sub000/internal/handler/dto/response"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const signatureHeader = "X-Payment-Signature"

// WebhookHandler receives payment-provider callbacks. The route is
// unauthenticated; authenticity comes from the HMAC signature over the raw
// body.
type WebhookHandler struct {
	holdCommands  commands.HoldCommands
	signingSecret []byte
}

func NewWebhookHandler(holdCommands commands.HoldCommands, signingSecret string) *WebhookHandler {
	return &WebhookHandler{
		holdCommands:  holdCommands,
		signingSecret: []byte(signingSecret),
	}
}

// @Summary Payment confirmation webhook
// @Description Promotes a paid hold into a confirmed booking. Redeliveries of the same payment_ref return the original booking with 200.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Payment-Signature header string true "Hex HMAC-SHA256 of the request body"
// @Param request body reqdto.PaymentWebhookRequest true "Payment notification"
// @Success 200 {object} resdto.PaymentConfirmedResponse
// @Success 201 {object} resdto.PaymentConfirmedResponse
// @Failure 401 {object} map[string]string
// @Failure 410 {object} httperr.Response
// @Router /webhooks/payment [post]
func (h *WebhookHandler) ConfirmPayment(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unable to read request body",
		})
		return
	}

	if !h.verifySignature(body, c.GetHeader(signatureHeader)) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid webhook signature",
		})
		return
	}

	var req reqdto.PaymentWebhookRequest
	if bindErr := binding.JSON.BindBody(body, &req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.holdCommands.ConfirmPayment(c.Request.Context(), req.Token, req.PaymentRef)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromConfirmResult(result))
}

func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if len(h.signingSecret) == 0 || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, h.signingSecret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
