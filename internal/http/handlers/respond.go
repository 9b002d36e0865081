package handlers

import (
	"errors"
	"net/http"

	"github.com/geocoder89/eventdesk/internal/app"
	"github.com/geocoder89/eventdesk/internal/http/middlewares"
	"github.com/geocoder89/eventdesk/internal/persistence"
	"github.com/geocoder89/eventdesk/internal/registry"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	if s := ctx.GetString(middlewares.CtxRequestID); s != "" {
		return s
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.JSON(status, gin.H{
		"error": APIError{
			Code:      code,
			Message:   message,
			RequestID: requestIDFrom(ctx),
			Details:   details,
		},
	})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, nil)
}

func RespondConflict(ctx *gin.Context, code, message string) {
	RespondError(ctx, http.StatusConflict, code, message, nil)
}

// RespondDomainError maps the registry and persistence taxonomy onto HTTP.
func RespondDomainError(ctx *gin.Context, err error, fallback string) {
	var verr *registry.ValidationError
	var nf *registry.NotFoundError

	switch {
	case errors.As(err, &verr):
		RespondBadRequest(ctx, "Invalid request body", gin.H{"fields": verr.Fields})
	case errors.Is(err, registry.ErrValidation):
		RespondBadRequest(ctx, err.Error(), nil)
	case errors.As(err, &nf):
		RespondNotFound(ctx, capitalize(nf.Kind.Error()))
	case errors.Is(err, registry.ErrCapacity):
		RespondConflict(ctx, "event_full", "This event is already at full capacity.")
	case errors.Is(err, registry.ErrDuplicateBooking):
		RespondConflict(ctx, "already_booked", "This attendee is already booked for this event.")
	case errors.Is(err, registry.ErrNotBooked):
		RespondError(ctx, http.StatusNotFound, "not_booked", "No booking found for this attendee and event.", nil)
	case errors.Is(err, app.ErrNoSaver):
		RespondError(ctx, http.StatusServiceUnavailable, "persistence_disabled", "Saving is not configured.", nil)
	case errors.Is(err, registry.ErrConsistency), errors.Is(err, persistence.ErrCorruptData):
		RespondError(ctx, http.StatusInternalServerError, "consistency_error", fallback, nil)
	default:
		RespondInternal(ctx, fallback)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
