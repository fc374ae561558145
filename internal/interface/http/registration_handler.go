package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gatherly/events-api/internal/application"
	"github.com/gatherly/events-api/internal/domain/entity"
	"github.com/gatherly/events-api/internal/interface/middleware"
	"github.com/gatherly/events-api/pkg/response"
)

type RegistrationHandler struct {
	Svc    *application.RegistrationService
	Logger *logrus.Logger
}

func NewRegistrationHandler(svc *application.RegistrationService, logger *logrus.Logger) *RegistrationHandler {
	return &RegistrationHandler{Svc: svc, Logger: logger}
}

type registrationResponse struct {
	ID           string    `json:"id"`
	Event        string    `json:"event"`
	User         string    `json:"user"`
	RegisteredAt time.Time `json:"registered_at"`
}

func toRegistrationResponses(regs []entity.EventRegistration) []registrationResponse {
	out := make([]registrationResponse, 0, len(regs))
	for _, r := range regs {
		out = append(out, registrationResponse{
			ID:           r.ID,
			Event:        r.EventTitle,
			User:         r.Username,
			RegisteredAt: r.RegisteredAt,
		})
	}
	return out
}

// Register POST /api/events/:id/register — authenticated.
func (h *RegistrationHandler) Register(c *gin.Context) {
	_, err := h.Svc.Register(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEventNotFound):
			response.Error(c, http.StatusNotFound, "Event not found", nil)
		case errors.Is(err, application.ErrOwnEvent):
			response.Error(c, http.StatusBadRequest, "You cannot register for your own event.", nil)
		case errors.Is(err, application.ErrAlreadyRegistered):
			response.Error(c, http.StatusBadRequest, "You are already registered for this event.", nil)
		default:
			h.Logger.WithError(err).Error("event registration failed")
			response.Error(c, http.StatusInternalServerError, "registration failed", nil)
		}
		return
	}
	response.Success[any](c, http.StatusCreated, nil, "Registration successful.", nil)
}

// ListForEvent GET /api/events/:id/registrations — organizer only.
func (h *RegistrationHandler) ListForEvent(c *gin.Context) {
	regs, err := h.Svc.ListForEvent(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEventNotFound):
			response.Error(c, http.StatusNotFound, "Event not found", nil)
		case errors.Is(err, application.ErrNotOrganizer):
			response.Error(c, http.StatusForbidden, "You are not authorized to view registrations for this event.", nil)
		default:
			h.Logger.WithError(err).Error("list registrations failed")
			response.Error(c, http.StatusInternalServerError, "failed to list registrations", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, toRegistrationResponses(regs), "registrations", gin.H{"count": len(regs)})
}

// ListMine GET /api/user/registrations — authenticated.
func (h *RegistrationHandler) ListMine(c *gin.Context) {
	regs, err := h.Svc.ListForUser(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.Logger.WithError(err).Error("list own registrations failed")
		response.Error(c, http.StatusInternalServerError, "failed to list registrations", nil)
		return
	}
	response.Success(c, http.StatusOK, toRegistrationResponses(regs), "registrations", gin.H{"count": len(regs)})
}
