package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStatus is returned when a status string is not recognised.
	ErrUnknownStatus = errors.New("unknown status")

	// ErrUnknownFilter is returned when a filter mode string is not recognised.
	ErrUnknownFilter = errors.New("unknown filter mode")
)

// Status is a card's self-assessed memorization level.
type Status string

const (
	StatusUnknown   Status = "unknown"
	StatusAmbiguous Status = "ambiguous"
	StatusKnown     Status = "known"
)

// Statuses lists every status in study priority order.
var Statuses = []Status{StatusUnknown, StatusAmbiguous, StatusKnown}

var statusLabels = map[Status]string{
	StatusUnknown:   "覚えていない",
	StatusAmbiguous: "曖昧",
	StatusKnown:     "覚えた",
}

// ParseStatus converts a stored or submitted string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusUnknown, StatusAmbiguous, StatusKnown:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Label returns the display label for the status.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// FilterMode selects which statuses are eligible for a study deck.
type FilterMode string

const (
	FilterUnknown            FilterMode = "unknown"
	FilterAmbiguous          FilterMode = "ambiguous"
	FilterUnknownOrAmbiguous FilterMode = "unknown-or-ambiguous"
	FilterAll                FilterMode = "all"
)

// FilterModes lists every filter mode in the order the settings form shows them.
var FilterModes = []FilterMode{FilterUnknown, FilterAmbiguous, FilterUnknownOrAmbiguous, FilterAll}

// ParseFilterMode converts a stored or submitted string into a FilterMode.
func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(s) {
	case FilterUnknown, FilterAmbiguous, FilterUnknownOrAmbiguous, FilterAll:
		return FilterMode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// Keep reports whether a card with the given status passes the filter.
func (f FilterMode) Keep(s Status) bool {
	switch f {
	case FilterUnknown:
		return s == StatusUnknown
	case FilterAmbiguous:
		return s == StatusAmbiguous
	case FilterUnknownOrAmbiguous:
		return s != StatusKnown
	case FilterAll:
		return true
	}
	return false
}

// Label returns the display label for the filter mode.
func (f FilterMode) Label() string {
	switch f {
	case FilterUnknown:
		return "覚えていないのみ"
	case FilterAmbiguous:
		return "曖昧のみ"
	case FilterUnknownOrAmbiguous:
		return "覚えていない＋曖昧"
	case FilterAll:
		return "すべて"
	}
	return string(f)
}
