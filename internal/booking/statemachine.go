package booking

import (
	"fmt"
	"slices"

	"voyager-be/internal/apperr"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// NextStatuses returns where a booking in s may go. Terminal states return nil.
func NextStatuses(s Status) []Status {
	return transitions[s]
}

func CanTransition(from, to Status) error {
	if slices.Contains(transitions[from], to) {
		return nil
	}
	if len(transitions[from]) == 0 {
		return apperr.Wrap(apperr.InvalidTransition,
			fmt.Sprintf("Cannot move booking from %s to %s; %s is final", from, to, from),
			ErrInvalidTransition)
	}
	return apperr.Wrap(apperr.InvalidTransition,
		fmt.Sprintf("Cannot move booking from %s to %s; allowed: %v", from, to, transitions[from]),
		ErrInvalidTransition)
}
