package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"

	"github.com/rezkam/calendar/internal/domain"
	"github.com/rezkam/calendar/internal/infrastructure/http/response"
)

// ListEvents handles GET /events?from&until&repeatId.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var params domain.ListEventsParams
	var ok bool
	if params.From, ok = dateParam(w, q.Get("from"), "from"); !ok {
		return
	}
	if params.Until, ok = dateParam(w, q.Get("until"), "until"); !ok {
		return
	}
	if repeatID := q.Get("repeatId"); repeatID != "" {
		params.RepeatID = &repeatID
	}

	events, err := h.service.ListEvents(r.Context(), params)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, eventListResponse{Events: MapEventsToDTO(events)})
}

// GetEvent handles GET /events/{id}.
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, MapEventToDTO(event))
}

// CreateEvent handles POST /events. The event is stored as given; repeat
// rules are not expanded here (see SaveRecurringEvent).
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := decodeEvent(w, r)
	if !ok {
		return
	}

	created, err := h.service.CreateEvent(r.Context(), event)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "event created via HTTP", "event_id", created.ID)
	response.Created(w, MapEventToDTO(created))
}

// CreateEvents handles POST /events-list, storing every event in one transaction.
func (h *EventHandler) CreateEvents(w http.ResponseWriter, r *http.Request) {
	var req createEventsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	events := make([]*domain.Event, 0, len(req.Events))
	for _, dto := range req.Events {
		event, err := MapDTOToEvent(dto)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}
		events = append(events, event)
	}

	created, err := h.service.CreateEvents(r.Context(), events)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "events created via HTTP", "count", len(created))
	response.Created(w, eventListResponse{Events: MapEventsToDTO(created)})
}

// UpdateEvent handles PUT /events/{id}?scope=single|all.
// With scope=all the response lists every event of the group.
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	scope, err := domain.NewScope(r.URL.Query().Get("scope"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	event, ok := decodeEvent(w, r)
	if !ok {
		return
	}
	event.ID = chi.URLParam(r, "id")

	updated, err := h.service.UpdateEvent(r.Context(), event, scope)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	if scope == domain.ScopeAll {
		response.OK(w, eventListResponse{Events: MapEventsToDTO(updated)})
		return
	}
	response.OK(w, MapEventToDTO(updated[0]))
}

// DeleteEvent handles DELETE /events/{id}?scope=single|all.
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	scope, err := domain.NewScope(r.URL.Query().Get("scope"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeleteEvent(r.Context(), id, scope); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "event deleted via HTTP", "event_id", id, "scope", string(scope))
	w.WriteHeader(http.StatusNoContent)
}

// dateParam parses an optional date query parameter. An empty value is no bound.
func dateParam(w http.ResponseWriter, value, name string) (*civil.Date, bool) {
	if value == "" {
		return nil, true
	}
	d, err := domain.NewDate(value)
	if err != nil {
		response.ValidationError(w, name, err.Error())
		return nil, false
	}
	return &d, true
}

// decodeEvent writes the error response itself and reports false on failure.
func decodeEvent(w http.ResponseWriter, r *http.Request) (*domain.Event, bool) {
	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		response.BadRequest(w, "invalid JSON")
		return nil, false
	}

	event, err := MapDTOToEvent(dto)
	if err != nil {
		response.FromDomainError(w, r, err)
		return nil, false
	}
	return event, true
}
