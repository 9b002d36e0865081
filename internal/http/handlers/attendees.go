package handlers

import (
	"context"
	"net/http"

	"github.com/geocoder89/eventdesk/internal/domain/attendee"
	"github.com/geocoder89/eventdesk/internal/domain/event"
	"github.com/gin-gonic/gin"
)

type AttendeesService interface {
	RegisterAttendee(ctx context.Context, req attendee.RegisterAttendeeRequest) (attendee.Attendee, error)
	Attendee(ctx context.Context, id string) (attendee.Attendee, []event.Event, error)
}

type AttendeesHandler struct {
	svc AttendeesService
}

func NewAttendeesHandler(svc AttendeesService) *AttendeesHandler {
	return &AttendeesHandler{svc: svc}
}

type attendeeEvent struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Venue string `json:"venue"`
}

func (h *AttendeesHandler) Register(ctx *gin.Context) {
	var req attendee.RegisterAttendeeRequest

	if !BindJSON(ctx, &req) {
		return
	}

	a, err := h.svc.RegisterAttendee(ctx.Request.Context(), req)
	if err != nil {
		RespondDomainError(ctx, err, "Could not register attendee")
		return
	}

	ctx.JSON(http.StatusCreated, a)
}

func (h *AttendeesHandler) GetByID(ctx *gin.Context) {
	a, events, err := h.svc.Attendee(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		RespondDomainError(ctx, err, "Could not fetch attendee")
		return
	}

	booked := make([]attendeeEvent, 0, len(events))
	for _, e := range events {
		booked = append(booked, attendeeEvent{ID: e.ID, Title: e.Title, Date: e.Date, Time: e.Time, Venue: e.Venue})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"attendee": a,
		"events":   booked,
	})
}
