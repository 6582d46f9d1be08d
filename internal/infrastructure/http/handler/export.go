package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/rezkam/calendar/internal/domain"
	"github.com/rezkam/calendar/internal/infrastructure/http/response"
	"github.com/rezkam/calendar/internal/infrastructure/ical"
)

// ExportCalendar handles GET /calendar.ics with every stored event.
func (h *EventHandler) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.ListEvents(r.Context(), domain.ListEventsParams{})
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := ical.Encode(&buf, events, h.now().UTC()); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.ErrorContext(r.Context(), "failed to write calendar export", "error", err)
	}
}
