package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/events-api/internal/container"
	handlers "github.com/gatherly/events-api/internal/interface/http"
	"github.com/gatherly/events-api/internal/interface/middleware"
	"github.com/gatherly/events-api/pkg/helpers"
)

// EventModule wires event CRUD and the registration workflow.
// Public: GET /api/events, GET /api/events/:id, GET /api/events/organizer/:username
// Protected: POST/PUT/DELETE on events, registration routes

type EventModule struct {
	Events        *handlers.EventHandler
	Registrations *handlers.RegistrationHandler
	JWT           *helpers.JWTManager
	routes        *handlers.EventRoutes
}

func NewEventModule(events *handlers.EventHandler, regs *handlers.RegistrationHandler, jwt *helpers.JWTManager) *EventModule {
	return &EventModule{
		Events:        events,
		Registrations: regs,
		JWT:           jwt,
		routes:        handlers.NewEventRoutes(events, regs, jwt),
	}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	publicLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)
	authed := middleware.Auth(m.JWT)
	userLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil)

	rg.GET("/events", publicLimiter, m.Events.List)
	rg.POST("/events", authed, userLimiter, m.Events.Create)

	// Every /events/<x> route keeps the wildcard in the same position;
	// mixing in a static "organizer" segment would make gin's tree panic
	// at startup, so EventRoutes dispatches the two-segment shapes.
	rg.GET("/events/:id", publicLimiter, m.Events.Get)
	rg.PUT("/events/:id", authed, userLimiter, m.Events.Update)
	rg.DELETE("/events/:id", authed, userLimiter, m.Events.Delete)
	rg.GET("/events/:id/:sub", publicLimiter, m.routes.GetSub)
	rg.POST("/events/:id/:sub", authed, userLimiter, m.routes.PostSub)

	rg.GET("/user/registrations", authed, userLimiter, m.Registrations.ListMine)
}
