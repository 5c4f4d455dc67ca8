package order

import (
	"fmt"

	"voyager-be/internal/apperr"
)

// sequence is the only path an order walks. Each status may move to the one
// after it and nowhere else.
var sequence = []Status{StatusPending, StatusPreparing, StatusReady, StatusDelivered}

var successor = func() map[Status]Status {
	m := make(map[Status]Status, len(sequence)-1)
	for i := 0; i+1 < len(sequence); i++ {
		m[sequence[i]] = sequence[i+1]
	}
	return m
}()

// Next returns the status that follows s, or false when s is terminal or off the path.
func Next(s Status) (Status, bool) {
	n, ok := successor[s]
	return n, ok
}

// CanTransition reports whether an order in from may be moved to to.
func CanTransition(from, to Status) error {
	if n, ok := Next(from); ok && n == to {
		return nil
	}
	return apperr.Wrap(apperr.InvalidTransition, describe(from, to), ErrInvalidTransition)
}

func describe(from, to Status) string {
	if n, ok := Next(from); ok {
		return fmt.Sprintf("Cannot move order from %s to %s; next status is %s", from, to, n)
	}
	return fmt.Sprintf("Cannot move order from %s to %s; %s is final", from, to, from)
}
