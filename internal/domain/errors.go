package domain

import "errors"

// Domain errors returned by repository implementations.
var (
	// ErrEventNotFound indicates the specified event does not exist.
	ErrEventNotFound = errors.New("event not found")

	// ErrRecurringGroupNotFound indicates no event carries the given repeat group ID.
	ErrRecurringGroupNotFound = errors.New("recurring group not found")

	// ErrInvalidID indicates the provided ID format is invalid.
	ErrInvalidID = errors.New("invalid ID format")
)

// Validation errors.
var (
	ErrTitleRequired     = errors.New("title is required")
	ErrTitleTooLong      = errors.New("title must be 255 characters or less")
	ErrInvalidDate       = errors.New("date must be formatted as YYYY-MM-DD")
	ErrInvalidTime       = errors.New("time must be formatted as HH:MM")
	ErrInvalidTimeRange  = errors.New("end time must be after start time")
	ErrInvalidRepeatType = errors.New("invalid repeat type")
	ErrInvalidScope      = errors.New("invalid scope")
	ErrInvalidNotice     = errors.New("notification time must not be negative")

	// ErrInvalidRepeat wraps recurrence policy violations (end date, interval).
	ErrInvalidRepeat = errors.New("invalid repeat rule")
)

// Workflow errors.
var (
	// ErrNotRecurring is returned when a group operation targets an event without a repeat group.
	ErrNotRecurring = errors.New("event is not part of a recurring group")

	// ErrEmptyBatch is returned when a batch create carries no events.
	ErrEmptyBatch = errors.New("batch contains no events")
)
