package recurrence

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/samber/mo"

	"github.com/rezkam/calendar/internal/domain"
)

// Interval bounds applied by DefaultPolicy.
const (
	MinInterval = 1
	MaxInterval = 999
)

// DefaultHorizon is the furthest date a recurrence may reach unless configured otherwise.
var DefaultHorizon = civil.Date{Year: 2025, Month: time.December, Day: 31}

// ErrorKind classifies a repeat rule validation failure.
type ErrorKind string

const (
	InvalidEndDate  ErrorKind = "InvalidEndDate"
	InvalidInterval ErrorKind = "InvalidInterval"
)

// ValidationError is a repeat rule violation with a user-facing message.
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is makes every ValidationError match domain.ErrInvalidRepeat.
func (e *ValidationError) Is(target error) bool {
	return target == domain.ErrInvalidRepeat
}

// Policy bounds every recurrence: the horizon caps end dates and the
// interval must stay within [MinInterval, MaxInterval].
type Policy struct {
	Horizon     civil.Date
	MinInterval int
	MaxInterval int
}

// DefaultPolicy returns the policy with DefaultHorizon and the default interval bounds.
func DefaultPolicy() Policy {
	return NewPolicy(DefaultHorizon)
}

// NewPolicy returns the default interval bounds with a custom horizon.
func NewPolicy(horizon civil.Date) Policy {
	return Policy{
		Horizon:     horizon,
		MinInterval: MinInterval,
		MaxInterval: MaxInterval,
	}
}

// DefaultEndDate fills an absent end date with the horizon. A present end date is returned as is.
func (p Policy) DefaultEndDate(end mo.Option[civil.Date]) civil.Date {
	return end.OrElse(p.Horizon)
}

// EffectiveEndDate clamps the end date down to the horizon; an absent end date means the horizon.
func (p Policy) EffectiveEndDate(end mo.Option[civil.Date]) civil.Date {
	d := p.DefaultEndDate(end)
	if d.After(p.Horizon) {
		return p.Horizon
	}
	return d
}

// ValidateEndDate checks a repeat end date against the event start date and the horizon.
// An empty end date is valid.
func (p Policy) ValidateEndDate(start, end string) error {
	if end == "" {
		return nil
	}

	startDate, errStart := ParseDate(start)
	endDate, errEnd := ParseDate(end)
	if errStart != nil || errEnd != nil {
		return endDateError("유효한 날짜 형식이 아닙니다.")
	}

	if endDate.Before(startDate) {
		return endDateError("반복 종료일은 시작일 이후여야 합니다.")
	}

	if endDate.After(p.Horizon) {
		return endDateError(fmt.Sprintf("반복 종료일은 %s 이전이어야 합니다.", p.Horizon))
	}

	return nil
}

// ParseEndDate parses an optional repeat end date. An empty string is absent.
func ParseEndDate(s string) (mo.Option[civil.Date], error) {
	if s == "" {
		return mo.None[civil.Date](), nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return mo.None[civil.Date](), endDateError("유효한 날짜 형식이 아닙니다.")
	}
	return mo.Some(d), nil
}

// ValidateInterval checks the repeat interval against the policy bounds.
func (p Policy) ValidateInterval(interval int) error {
	if interval < p.MinInterval {
		return intervalError(fmt.Sprintf("반복 간격은 %d 이상이어야 합니다.", p.MinInterval))
	}
	if interval > p.MaxInterval {
		return intervalError(fmt.Sprintf("반복 간격은 %d 이하여야 합니다.", p.MaxInterval))
	}
	return nil
}

// ValidateRule validates the repeat rule of a seed event. Non-repeating events always pass.
func (p Policy) ValidateRule(seed *domain.Event) error {
	if !seed.Repeat.Type.IsRepeating() {
		return nil
	}

	if err := p.ValidateInterval(seed.Repeat.Interval); err != nil {
		return err
	}

	end := ""
	if d, ok := seed.Repeat.EndDate.Get(); ok {
		end = d.String()
	}
	return p.ValidateEndDate(seed.Date.String(), end)
}

func endDateError(msg string) *ValidationError {
	return &ValidationError{Kind: InvalidEndDate, Field: "repeat.endDate", Message: msg}
}

func intervalError(msg string) *ValidationError {
	return &ValidationError{Kind: InvalidInterval, Field: "repeat.interval", Message: msg}
}
