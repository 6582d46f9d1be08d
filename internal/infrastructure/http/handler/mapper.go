package handler

import (
	"cloud.google.com/go/civil"

	"github.com/rezkam/calendar/internal/domain"
	"github.com/rezkam/calendar/internal/ptr"
	"github.com/rezkam/calendar/internal/recurrence"
)

// RepeatDTO is the wire form of a repeat rule. A nil or empty EndDate means no end date.
type RepeatDTO struct {
	Type     string  `json:"type"`
	Interval int     `json:"interval"`
	EndDate  *string `json:"endDate,omitempty"`
	ID       *string `json:"id,omitempty"`
}

// EventDTO is the wire form of an event.
type EventDTO struct {
	ID               string    `json:"id,omitempty"`
	Title            string    `json:"title"`
	Date             string    `json:"date"`
	StartTime        string    `json:"startTime"`
	EndTime          string    `json:"endTime"`
	Description      string    `json:"description"`
	Location         string    `json:"location"`
	Category         string    `json:"category"`
	Repeat           RepeatDTO `json:"repeat"`
	NotificationTime int       `json:"notificationTime"`
}

// GroupUpdateDTO carries the content fields of an update applied to a whole group.
type GroupUpdateDTO struct {
	Title            string `json:"title"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	Description      string `json:"description"`
	Location         string `json:"location"`
	Category         string `json:"category"`
	NotificationTime int    `json:"notificationTime"`
}

type eventListResponse struct {
	Events []EventDTO `json:"events"`
}

type createEventsRequest struct {
	Events []EventDTO `json:"events"`
}

type previewResponse struct {
	Dates []string `json:"dates"`
}

// MapEventToDTO converts a domain event to its wire form.
func MapEventToDTO(e *domain.Event) EventDTO {
	dto := EventDTO{
		ID:               e.ID,
		Title:            e.Title,
		Date:             e.Date.String(),
		StartTime:        e.StartTime,
		EndTime:          e.EndTime,
		Description:      e.Description,
		Location:         e.Location,
		Category:         e.Category,
		NotificationTime: e.NotificationTime,
		Repeat: RepeatDTO{
			Type:     string(e.Repeat.Type),
			Interval: e.Repeat.Interval,
		},
	}

	if end, ok := e.Repeat.EndDate.Get(); ok {
		dto.Repeat.EndDate = ptr.To(end.String())
	}
	if e.Repeat.ID != "" {
		dto.Repeat.ID = ptr.To(e.Repeat.ID)
	}

	return dto
}

// MapEventsToDTO converts a slice of events; the result is never nil.
func MapEventsToDTO(events []*domain.Event) []EventDTO {
	out := make([]EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, MapEventToDTO(e))
	}
	return out
}

// MapDTOToEvent parses the wire form into a domain event. Field level checks
// (title, times, notice) are left to Event.Validate in the service.
func MapDTOToEvent(dto EventDTO) (*domain.Event, error) {
	date, err := domain.NewDate(dto.Date)
	if err != nil {
		return nil, err
	}

	repeatType, err := domain.NewRepeatType(dto.Repeat.Type)
	if err != nil {
		return nil, err
	}

	endDate, err := recurrence.ParseEndDate(ptr.Deref(dto.Repeat.EndDate, ""))
	if err != nil {
		return nil, err
	}

	return &domain.Event{
		ID:               dto.ID,
		Title:            dto.Title,
		Date:             date,
		StartTime:        dto.StartTime,
		EndTime:          dto.EndTime,
		Description:      dto.Description,
		Location:         dto.Location,
		Category:         dto.Category,
		NotificationTime: dto.NotificationTime,
		Repeat: domain.RepeatInfo{
			Type:     repeatType,
			Interval: dto.Repeat.Interval,
			EndDate:  endDate,
			ID:       ptr.Deref(dto.Repeat.ID, ""),
		},
	}, nil
}

// MapGroupUpdate converts the wire form of a group update.
func MapGroupUpdate(dto GroupUpdateDTO) domain.GroupUpdate {
	return domain.GroupUpdate{
		Title:            dto.Title,
		StartTime:        dto.StartTime,
		EndTime:          dto.EndTime,
		Description:      dto.Description,
		Location:         dto.Location,
		Category:         dto.Category,
		NotificationTime: dto.NotificationTime,
	}
}

func mapDates(dates []civil.Date) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return out
}
