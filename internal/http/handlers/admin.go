package handlers

import (
	"context"
	"net/http"

	"github.com/geocoder89/eventdesk/internal/observability"
	"github.com/gin-gonic/gin"
)

type AdminService interface {
	Save(ctx context.Context) error
	Dirty() bool
}

type AdminHandler struct {
	svc   AdminService
	stats *observability.SaveStats
}

func NewAdminHandler(svc AdminService, stats *observability.SaveStats) *AdminHandler {
	return &AdminHandler{svc: svc, stats: stats}
}

func (h *AdminHandler) Save(ctx *gin.Context) {
	if err := h.svc.Save(ctx.Request.Context()); err != nil {
		RespondDomainError(ctx, err, "Could not save data")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"saved": true})
}

func (h *AdminHandler) Stats(ctx *gin.Context) {
	resp := gin.H{"dirty": h.svc.Dirty()}
	if h.stats != nil {
		resp["autosave"] = h.stats.Snapshot()
	}
	ctx.JSON(http.StatusOK, resp)
}
