package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/calendar/internal/application/calendar"
	mw "github.com/rezkam/calendar/internal/infrastructure/http/middleware"
	"github.com/rezkam/calendar/internal/infrastructure/http/openapi"
)

// EventHandler adapts HTTP requests to calendar service calls.
type EventHandler struct {
	service *calendar.Service
	now     func() time.Time
}

// NewEventHandler creates a new HTTP API handler.
func NewEventHandler(service *calendar.Service) *EventHandler {
	return &EventHandler{
		service: service,
		now:     time.Now,
	}
}

// NewOpenAPIRouter creates the API router with request validation against the
// embedded OpenAPI document. It is meant to be mounted under /api; production
// code and tests both use it so they see identical behavior.
func NewOpenAPIRouter(service *calendar.Service) (http.Handler, error) {
	h := NewEventHandler(service)

	spec, err := openapi.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}

	r := chi.NewRouter()
	r.Use(mw.NewValidator(spec, mw.ValidationConfig{MultiError: true}))
	h.Routes(r)

	return r, nil
}

// Routes registers every API route on r.
func (h *EventHandler) Routes(r chi.Router) {
	r.Get("/events", h.ListEvents)
	r.Post("/events", h.CreateEvent)
	r.Get("/events/{id}", h.GetEvent)
	r.Put("/events/{id}", h.UpdateEvent)
	r.Delete("/events/{id}", h.DeleteEvent)

	r.Post("/events-list", h.CreateEvents)

	r.Post("/recurring-events", h.SaveRecurringEvent)
	r.Put("/recurring-events/{repeatId}", h.UpdateRecurringGroup)
	r.Delete("/recurring-events/{repeatId}", h.DeleteRecurringGroup)

	r.Post("/recurrence/preview", h.PreviewOccurrences)

	r.Get("/calendar.ics", h.ExportCalendar)
}
