package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/events-api/internal/interface/middleware"
	"github.com/gatherly/events-api/pkg/helpers"
	"github.com/gatherly/events-api/pkg/response"
)

// EventRoutes dispatches the two-segment /events routes. Gin's routing tree
// rejects a static segment ("organizer") next to a wildcard (":id") at the
// same position, so /events/organizer/:username and
// /events/:id/{register,registrations} share one parameterized shape and
// are told apart here.
type EventRoutes struct {
	Events        *EventHandler
	Registrations *RegistrationHandler
	JWT           *helpers.JWTManager
}

func NewEventRoutes(events *EventHandler, regs *RegistrationHandler, jwt *helpers.JWTManager) *EventRoutes {
	return &EventRoutes{Events: events, Registrations: regs, JWT: jwt}
}

// GetSub handles GET /events/:id/:sub. The organizer listing is public; the
// registrations listing needs a caller identity, authenticated here because
// the shared route shape cannot carry different middleware per branch.
func (r *EventRoutes) GetSub(c *gin.Context) {
	switch {
	case c.Param("id") == "organizer":
		c.Params = append(c.Params, gin.Param{Key: "username", Value: c.Param("sub")})
		r.Events.ListByOrganizer(c)
	case c.Param("sub") == "registrations":
		if !middleware.Authenticate(c, r.JWT) {
			return
		}
		r.Registrations.ListForEvent(c)
	default:
		response.Error(c, http.StatusNotFound, "not found", nil)
	}
}

// PostSub handles POST /events/:id/:sub; register is the only subresource.
func (r *EventRoutes) PostSub(c *gin.Context) {
	if c.Param("sub") != "register" {
		response.Error(c, http.StatusNotFound, "not found", nil)
		return
	}
	r.Registrations.Register(c)
}
