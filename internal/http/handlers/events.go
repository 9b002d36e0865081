package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/geocoder89/eventdesk/internal/cache"
	"github.com/geocoder89/eventdesk/internal/domain/event"
	"github.com/geocoder89/eventdesk/internal/registry"
	"github.com/geocoder89/eventdesk/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type EventsService interface {
	CreateEvent(ctx context.Context, req event.CreateEventRequest) (event.Event, error)
	Event(ctx context.Context, id string) (event.Event, error)
	FindEvents(ctx context.Context, keyword string) []event.Event
	GenerateReport(ctx context.Context, eventID string) (registry.Report, error)
}

type EventsHandler struct {
	svc   EventsService
	cache *cache.Cache
}

func NewEventsHandler(svc EventsService, c *cache.Cache) *EventsHandler {
	return &EventsHandler{svc: svc, cache: c}
}

// EventView is an event plus its derived seat figures.
type EventView struct {
	event.Event
	AvailableSeats int  `json:"availableSeats"`
	IsFull         bool `json:"isFull"`
}

func viewOf(e event.Event) EventView {
	return EventView{Event: e, AvailableSeats: e.AvailableSeats(), IsFull: e.IsFull()}
}

func (h *EventsHandler) CreateEvent(ctx *gin.Context) {
	var req event.CreateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	e, err := h.svc.CreateEvent(ctx.Request.Context(), req)
	if err != nil {
		RespondDomainError(ctx, err, "Could not create event")
		return
	}

	ctx.JSON(http.StatusCreated, viewOf(e))
}

// ListEvents serves both the plain listing and keyword search (?q=).
func (h *EventsHandler) ListEvents(ctx *gin.Context) {
	q := ctx.Query("q")

	limit := defaultPageSize
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPageSize {
			RespondBadRequest(ctx, "limit must be between 1 and "+strconv.Itoa(maxPageSize), nil)
			return
		}
		limit = n
	}

	afterID := ""
	if raw := ctx.Query("cursor"); raw != "" {
		c, err := utils.DecodeEventCursor(raw)
		if err != nil {
			RespondBadRequest(ctx, "invalid cursor", nil)
			return
		}
		afterID = c.AfterID
	}

	events := h.search(ctx.Request.Context(), q)

	start := 0
	if afterID != "" {
		start = len(events)
		for i, e := range events {
			if e.ID == afterID {
				start = i + 1
				break
			}
		}
	}

	end := start + limit
	if end > len(events) {
		end = len(events)
	}

	page := make([]EventView, 0, end-start)
	for _, e := range events[start:end] {
		page = append(page, viewOf(e))
	}

	resp := gin.H{
		"items": page,
		"count": len(page),
		"total": len(events),
	}

	if end < len(events) && len(page) > 0 {
		next, err := utils.EncodeEventCursor(page[len(page)-1].ID)
		if err != nil {
			RespondInternal(ctx, "Could not list events")
			return
		}
		resp["nextCursor"] = next
	}

	ctx.JSON(http.StatusOK, resp)
}

func (h *EventsHandler) search(ctx context.Context, q string) []event.Event {
	key := utils.BuildEventsSearchCacheKey(q)

	if h.cache != nil {
		if v, ok := h.cache.Get(key); ok {
			if events, ok := v.([]event.Event); ok {
				return events
			}
		}
	}

	var gen uint64
	if h.cache != nil {
		gen = h.cache.Generation()
	}

	events := h.svc.FindEvents(ctx, q)

	// a mutation that cleared the cache meanwhile makes this result stale
	if h.cache != nil {
		h.cache.SetIfGeneration(key, events, gen)
	}
	return events
}

func (h *EventsHandler) GetEventByID(ctx *gin.Context) {
	e, err := h.svc.Event(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		RespondDomainError(ctx, err, "Could not fetch event")
		return
	}

	ctx.JSON(http.StatusOK, viewOf(e))
}

func (h *EventsHandler) Report(ctx *gin.Context) {
	rep, err := h.svc.GenerateReport(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		RespondDomainError(ctx, err, "Could not build report")
		return
	}

	respondReport(ctx, rep)
}
