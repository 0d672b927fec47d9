package api

import (
	"errors"
	"net/http"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/credit"
	"github.com/ronygeorgen/golf-backend-sub000/internal/handler/httperr"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/errs"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/queries"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

// writeDomainError translates a usecase error into the HTTP response. Typed
// errors carry detail payloads (which rule closed the facility, how much
// credit was short); sentinel errors map to a status and message.
func writeDomainError(c *gin.Context, err error) {
	var conflictErr *shared.ConflictError
	if errors.As(err, &conflictErr) {
		httperr.AbortWithError(c, http.StatusConflict, err, "Requested time is no longer available", gin.H{
			"resource_id": conflictErr.ResourceID,
			"source":      conflictErr.Source,
			"event_id":    conflictErr.EventID,
			"event_title": conflictErr.EventTitle,
		})
		return
	}

	var closedErr *shared.ClosedError
	if errors.As(err, &closedErr) {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Facility is closed for the requested time", gin.H{
			"rule_id":    closedErr.RuleID,
			"rule_title": closedErr.RuleTitle,
		})
		return
	}

	var insufficientErr *credit.InsufficientError
	if errors.As(err, &insufficientErr) {
		httperr.AbortWithError(c, http.StatusPaymentRequired, err, "Insufficient credit", gin.H{
			"requested_sessions": insufficientErr.RequestedSessions,
			"requested_minutes":  insufficientErr.RequestedMinutes,
			"available_sessions": insufficientErr.AvailableSessions,
			"available_minutes":  insufficientErr.AvailableMinutes,
		})
		return
	}

	switch {
	case errors.Is(err, errs.ErrInvalidInterval):
		httperr.Abort(c, http.StatusBadRequest, err, "Invalid time interval")
	case errors.Is(err, errs.ErrResourceNotFound):
		httperr.Abort(c, http.StatusNotFound, err, "Resource not found")
	case errors.Is(err, errs.ErrResourceInactive):
		httperr.Abort(c, http.StatusUnprocessableEntity, err, "Resource is not active")
	case errors.Is(err, errs.ErrBookingNotFound):
		httperr.Abort(c, http.StatusNotFound, err, "Booking not found")
	case errors.Is(err, errs.ErrBookingLocked):
		httperr.Abort(c, http.StatusConflict, err, "Booking starts too soon to modify")
	case errors.Is(err, errs.ErrBookingCancelled):
		httperr.Abort(c, http.StatusConflict, err, "Booking is already cancelled")
	case errors.Is(err, errs.ErrHoldNotFound):
		httperr.Abort(c, http.StatusNotFound, err, "Hold not found")
	case errors.Is(err, errs.ErrHoldExpired):
		httperr.Abort(c, http.StatusGone, err, "Hold has expired")
	case errors.Is(err, errs.ErrHoldNotOpen):
		httperr.Abort(c, http.StatusConflict, err, "Hold is not in a reservable state")
	case errors.Is(err, errs.ErrPurchaseNotEligible):
		httperr.Abort(c, http.StatusPaymentRequired, err, "No eligible credit package")
	case errors.Is(err, errs.ErrInsufficientCredit):
		httperr.Abort(c, http.StatusPaymentRequired, err, "Insufficient credit")
	case errors.Is(err, queries.ErrForbidden):
		httperr.Abort(c, http.StatusForbidden, err, "Access denied")
	case infra.IsKind(err, infra.KindNotFound):
		httperr.Abort(c, http.StatusNotFound, err, "Not found")
	default:
		httperr.Abort(c, http.StatusInternalServerError, err, "Internal server error")
	}
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
