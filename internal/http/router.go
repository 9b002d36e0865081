package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/geocoder89/eventdesk/internal/app"
	"github.com/geocoder89/eventdesk/internal/cache"
	"github.com/geocoder89/eventdesk/internal/http/handlers"
	"github.com/geocoder89/eventdesk/internal/http/middlewares"
	"github.com/geocoder89/eventdesk/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20

type RouterDeps struct {
	Env  string
	Log  *slog.Logger
	Desk *app.Desk

	// optional
	Prom      *observability.Prom
	Gatherer  prometheus.Gatherer
	Ping      func(ctx context.Context) error
	SaveStats *observability.SaveStats
	RateLimit middlewares.RateLimitConfig
	CacheTTL  time.Duration
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(otelgin.Middleware("eventdesk"))
	r.Use(middlewares.RequestLogger(log))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.SecurityHeaders())

	// health
	h := handlers.NewHealthHandler(deps.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// search results are cached until the next mutation
	searchCache := cache.New(deps.CacheTTL)
	deps.Desk.OnChange(searchCache.Clear)

	eventsHandler := handlers.NewEventsHandler(deps.Desk, searchCache)
	attendeesHandler := handlers.NewAttendeesHandler(deps.Desk)
	bookingsHandler := handlers.NewBookingsHandler(deps.Desk)
	adminHandler := handlers.NewAdminHandler(deps.Desk, deps.SaveStats)

	limiter := middlewares.NewRateLimiter(deps.RateLimit)

	api := r.Group("/")
	api.Use(limiter.Middleware(middlewares.KeyByIP))
	api.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	api.Use(middlewares.RequireJSON())

	api.POST("/events", eventsHandler.CreateEvent)
	api.GET("/events", eventsHandler.ListEvents)
	api.GET("/events/:id", eventsHandler.GetEventByID)
	api.GET("/events/:id/report", eventsHandler.Report)

	api.POST("/events/:id/bookings", bookingsHandler.Book)
	api.DELETE("/events/:id/bookings/:attendeeId", bookingsHandler.Cancel)

	api.POST("/attendees", attendeesHandler.Register)
	api.GET("/attendees/:id", attendeesHandler.GetByID)

	api.POST("/admin/save", adminHandler.Save)
	api.GET("/admin/stats", adminHandler.Stats)

	return r
}
