package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/calendar/internal/infrastructure/http/response"
)

// SaveRecurringEvent handles POST /recurring-events: the repeat rule is
// validated and expanded, and every occurrence is stored under a new group id.
func (h *EventHandler) SaveRecurringEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := decodeEvent(w, r)
	if !ok {
		return
	}

	created, err := h.service.SaveEvent(r.Context(), event)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "recurring event saved via HTTP",
		"occurrences", len(created),
		"repeat_type", string(event.Repeat.Type))
	response.Created(w, eventListResponse{Events: MapEventsToDTO(created)})
}

// UpdateRecurringGroup handles PUT /recurring-events/{repeatId}.
func (h *EventHandler) UpdateRecurringGroup(w http.ResponseWriter, r *http.Request) {
	var dto GroupUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	updated, err := h.service.UpdateRecurringGroup(r.Context(), chi.URLParam(r, "repeatId"), MapGroupUpdate(dto))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, eventListResponse{Events: MapEventsToDTO(updated)})
}

// DeleteRecurringGroup handles DELETE /recurring-events/{repeatId}.
func (h *EventHandler) DeleteRecurringGroup(w http.ResponseWriter, r *http.Request) {
	repeatID := chi.URLParam(r, "repeatId")

	n, err := h.service.DeleteRecurringGroup(r.Context(), repeatID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "recurring group deleted via HTTP", "repeat_id", repeatID, "events", n)
	w.WriteHeader(http.StatusNoContent)
}

// PreviewOccurrences handles POST /recurrence/preview. Nothing is stored.
func (h *EventHandler) PreviewOccurrences(w http.ResponseWriter, r *http.Request) {
	event, ok := decodeEvent(w, r)
	if !ok {
		return
	}

	dates, err := h.service.PreviewOccurrences(r.Context(), event)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, previewResponse{Dates: mapDates(dates)})
}
