package handlers

import (
	"context"
	"net/http"

	"github.com/geocoder89/eventdesk/internal/registry"
	"github.com/gin-gonic/gin"
)

type BookingsService interface {
	BookEvent(ctx context.Context, eventID, attendeeID string) (registry.BookingResult, error)
	CancelBooking(ctx context.Context, eventID, attendeeID string) (registry.BookingResult, error)
}

type BookingsHandler struct {
	svc BookingsService
}

func NewBookingsHandler(svc BookingsService) *BookingsHandler {
	return &BookingsHandler{svc: svc}
}

type CreateBookingRequest struct {
	AttendeeID string `json:"attendeeId"`
}

func (h *BookingsHandler) Book(ctx *gin.Context) {
	var req CreateBookingRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.AttendeeID == "" {
		RespondBadRequest(ctx, "Invalid request body", gin.H{"fields": []FieldError{
			{Field: "attendeeId", Rule: "required", Message: "is required"},
		}})
		return
	}

	// URL param is the source of truth for the event
	res, err := h.svc.BookEvent(ctx.Request.Context(), ctx.Param("id"), req.AttendeeID)
	if err != nil {
		RespondDomainError(ctx, err, "Could not book event")
		return
	}

	ctx.JSON(http.StatusCreated, res)
}

func (h *BookingsHandler) Cancel(ctx *gin.Context) {
	res, err := h.svc.CancelBooking(ctx.Request.Context(), ctx.Param("id"), ctx.Param("attendeeId"))
	if err != nil {
		RespondDomainError(ctx, err, "Could not cancel booking")
		return
	}

	ctx.JSON(http.StatusOK, res)
}
