package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gatherly/events-api/internal/application"
	"github.com/gatherly/events-api/internal/domain/entity"
	"github.com/gatherly/events-api/internal/domain/repository"
	"github.com/gatherly/events-api/internal/interface/middleware"
	"github.com/gatherly/events-api/pkg/response"
	"github.com/gatherly/events-api/pkg/validation"
)

type EventHandler struct {
	Svc    *application.EventService
	Logger *logrus.Logger
}

func NewEventHandler(svc *application.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger}
}

// eventRequest deliberately has no organizer field: the organizer is always
// the authenticated caller and is never accepted on input.
type eventRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	Location    string    `json:"location" binding:"required,max=255"`
}

type eventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Organizer   string    `json:"organizer"`
}

func toEventResponse(e *entity.Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Location:    e.Location,
		Organizer:   e.Organizer,
	}
}

func toEventResponses(events []entity.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for i := range events {
		out = append(out, toEventResponse(&events[i]))
	}
	return out
}

// List GET /api/events — public, filterable.
func (h *EventHandler) List(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	events, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		h.Logger.WithError(err).Error("list events failed")
		response.Error(c, http.StatusInternalServerError, "failed to list events", nil)
		return
	}
	response.Success(c, http.StatusOK, toEventResponses(events), "events", gin.H{"count": len(events)})
}

// Create POST /api/events — authenticated; caller becomes organizer.
func (h *EventHandler) Create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
	})
	if err != nil {
		h.Logger.WithError(err).Error("create event failed")
		response.Error(c, http.StatusInternalServerError, "failed to create event", nil)
		return
	}
	response.Success(c, http.StatusCreated, toEventResponse(e), "event created", nil)
}

// Get GET /api/events/:id — public.
func (h *EventHandler) Get(c *gin.Context) {
	e, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "view")
		return
	}
	response.Success(c, http.StatusOK, toEventResponse(e), "event", nil)
}

// Update PUT /api/events/:id — organizer only.
func (h *EventHandler) Update(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Svc.Update(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey), application.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
	})
	if err != nil {
		h.writeError(c, err, "update")
		return
	}
	response.Success(c, http.StatusOK, toEventResponse(e), "event updated", nil)
}

// Delete DELETE /api/events/:id — organizer only; cascades to registrations.
func (h *EventHandler) Delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.writeError(c, err, "delete")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListByOrganizer GET /api/events/organizer/:username — public.
func (h *EventHandler) ListByOrganizer(c *gin.Context) {
	events, err := h.Svc.ListByOrganizer(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, application.ErrOrganizerNotFound) {
			response.Error(c, http.StatusNotFound, "Organizer not found.", nil)
			return
		}
		h.Logger.WithError(err).Error("list events by organizer failed")
		response.Error(c, http.StatusInternalServerError, "failed to list events", nil)
		return
	}
	response.Success(c, http.StatusOK, toEventResponses(events), "events", gin.H{"count": len(events)})
}

func (h *EventHandler) writeError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, application.ErrEventNotFound):
		response.Error(c, http.StatusNotFound, "Event not found", nil)
	case errors.Is(err, application.ErrNotOrganizer):
		response.Error(c, http.StatusForbidden, "You are not allowed to "+op+" this event.", nil)
	default:
		h.Logger.WithError(err).Error("event operation failed")
		response.Error(c, http.StatusInternalServerError, "event operation failed", nil)
	}
}

// filterFromQuery translates list query parameters into a store filter.
// date_from/date_to accept RFC 3339 timestamps or plain dates and are
// inclusive bounds.
func filterFromQuery(c *gin.Context) (repository.EventFilter, error) {
	f := repository.EventFilter{
		Search:           c.Query("search"),
		LocationContains: c.Query("location_contains"),
		Organizer:        c.Query("organizer"),
	}
	if v := c.Query("date_from"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return f, errors.New("invalid date_from")
		}
		f.DateFrom = &t
	}
	if v := c.Query("date_to"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return f, errors.New("invalid date_to")
		}
		f.DateTo = &t
	}
	return f, nil
}

func parseDateParam(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
