package domain

import (
	"fmt"
	"strings"
)

// RepeatType is the recurrence variant of an event.
// Value object - immutable string enum, only constructed through NewRepeatType.
type RepeatType string

const (
	RepeatNone    RepeatType = "none"
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
	RepeatYearly  RepeatType = "yearly"
)

// NewRepeatType validates and creates a RepeatType. Empty input means RepeatNone.
func NewRepeatType(s string) (RepeatType, error) {
	if s == "" {
		return RepeatNone, nil
	}

	repeatType := RepeatType(strings.ToLower(s))

	switch repeatType {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return repeatType, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidRepeatType, s)
	}
}

// IsRepeating reports whether the type produces more than the seed occurrence.
func (t RepeatType) IsRepeating() bool {
	return t != RepeatNone && t != ""
}

// Scope selects how far an update or delete reaches into a recurring group.
type Scope string

const (
	// ScopeDefault applies the operation to the addressed event without touching its group membership.
	ScopeDefault Scope = ""
	// ScopeSingle applies the operation to one occurrence; updates detach it from its group.
	ScopeSingle Scope = "single"
	// ScopeAll applies the operation to every event of the recurring group.
	ScopeAll Scope = "all"
)

// NewScope validates and creates a Scope.
func NewScope(s string) (Scope, error) {
	scope := Scope(strings.ToLower(s))

	switch scope {
	case ScopeDefault, ScopeSingle, ScopeAll:
		return scope, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidScope, s)
	}
}
