package lifecycle

import (
	"errors"
	"fmt"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/subscription"
)

var (
	// ErrNoTransition indicates the event has no edge from the current status.
	ErrNoTransition = errors.New("no transition for event in current status")

	// ErrTransitionRejected indicates every candidate transition was blocked
	// by its guards.
	ErrTransitionRejected = errors.New("transition rejected by guards")
)

func newNoTransitionError(from subscription.Status, event Event) error {
	return fmt.Errorf("%w: status %q, event %q", ErrNoTransition, from, event)
}

func newTransitionRejectedError(from subscription.Status, event Event) error {
	return fmt.Errorf("%w: status %q, event %q", ErrTransitionRejected, from, event)
}
