package routes

import (
	"net/http"
	"time"

	"simplyfly/internal/draft"
	"simplyfly/internal/flow"
	"simplyfly/internal/notifications"
	"simplyfly/internal/passengers"
	"simplyfly/internal/payment"
	"simplyfly/internal/seatmap"
	"simplyfly/internal/shared/config"
	"simplyfly/internal/shared/middleware"
	"simplyfly/internal/tickets"
	"simplyfly/internal/upstream"
	"simplyfly/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	cache     cache.Service // nil when redis is unavailable
	client    upstream.Client
	publisher notifications.Publisher
}

func NewRouter(cfg *config.Config, cacheService cache.Service, client upstream.Client, publisher notifications.Publisher) *Router {
	return &Router{
		config:    cfg,
		cache:     cacheService,
		client:    client,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupFlowRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if r.cache != nil {
			if err := r.cache.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":    "unhealthy",
					"error":     err.Error(),
					"timestamp": time.Now(),
					"service":   "simplyfly-flow",
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "simplyfly-flow",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupFlowRoutes wires the whole booking flow: seat map, draft, passenger
// details, payment and confirmation. Every screen past session creation
// requires a session token; screens past the first are behind a flow guard.
func (r *Router) setupFlowRoutes(rg *gin.RouterGroup) {
	flowStore := r.newFlowStore()
	flowManager := flow.NewManager(flowStore)
	flowController := flow.NewController(flowManager, r.config)

	draftStore := r.newDraftStore()

	seatmapService := seatmap.NewService(flowManager, draftStore, r.client, r.cache, r.config.Redis.SeatMapTTL)
	seatmapController := seatmap.NewController(seatmapService)

	passengersService := passengers.NewService(flowManager, draftStore, r.client, r.publisher)
	passengersController := passengers.NewController(passengersService, draftStore)

	paymentService := payment.NewService(flowManager, draftStore, r.client, r.publisher, r.config.Upstream.CleanupTimeout)
	paymentController := payment.NewController(paymentService)

	ticketsService := tickets.NewService(flowManager, draftStore)
	ticketsController := tickets.NewController(ticketsService)

	fg := rg.Group("/flow")
	{
		fg.POST("/session", flowController.OpenSession)

		authed := fg.Group("")
		authed.Use(middleware.FlowSession(r.config))
		{
			// Seat selection needs only an open session
			authed.GET("/seatmap", seatmapController.GetSeatMap)
			authed.POST("/seats/toggle", seatmapController.ToggleSeat)
			authed.POST("/seats/confirm", seatmapController.ConfirmSeats)

			// Passenger details require confirmed seats
			details := authed.Group("")
			details.Use(flow.Guard(flowManager, flow.StateSeatsChosen, "passenger-details"))
			{
				details.GET("/draft", passengersController.GetDraft)
				details.POST("/passengers", passengersController.Submit)
			}

			// Payment requires submitted passenger details
			pay := authed.Group("")
			pay.Use(flow.Guard(flowManager, flow.StateDetailsSubmitted, "payment"))
			{
				pay.GET("/payment", paymentController.Load)
				pay.POST("/payment", paymentController.Pay)
				pay.POST("/payment/abandon", paymentController.Abandon)
			}

			// Confirmation requires a completed payment
			confirm := authed.Group("")
			confirm.Use(flow.Guard(flowManager, flow.StatePaid, "confirmation"))
			{
				confirm.GET("/confirmation", ticketsController.Confirmation)
				confirm.GET("/confirmation/ticket", ticketsController.ETicket)
			}
		}
	}
}

func (r *Router) newFlowStore() flow.Store {
	if r.cache != nil {
		return flow.NewRedisStore(r.cache, r.config.Redis.FlowSessionTTL)
	}
	return flow.NewMemoryStore()
}

func (r *Router) newDraftStore() draft.Store {
	if r.cache != nil {
		return draft.NewRedisStore(r.cache, r.config.Redis.DraftTTL)
	}
	return draft.NewMemoryStore()
}
