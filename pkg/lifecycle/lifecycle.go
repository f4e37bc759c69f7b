package lifecycle

import (
	"context"
	"time"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/health"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/subscription"
)

// Event triggers a subscription status transition. Events originate outside
// the core: the billing-cycle job, the payment gateway adapter or a manual
// cancellation.
type Event string

const (
	EventActivate         Event = "activate"
	EventPaymentFailed    Event = "payment_failed"
	EventGrantGrace       Event = "grant_grace"
	EventPaymentRecovered Event = "payment_recovered"
	EventCancel           Event = "cancel"
	EventExpire           Event = "expire"
)

// Guard evaluates whether a transition is allowed for the subscription at the
// given instant.
type Guard func(ctx context.Context, sub *subscription.Subscription, now time.Time) bool

// Transition defines one edge of the status graph, optionally guarded.
type Transition struct {
	From   subscription.Status
	Event  Event
	To     subscription.Status
	Guards []Guard
}

// Machine resolves subscription status transitions against a fixed transition
// table. It is stateless by design: the subscription record owns its status,
// the orchestrator persists changes, and the machine only answers what the
// next status would be. Safe for concurrent use once built.
type Machine struct {
	transitions map[subscription.Status]map[Event][]Transition
}

// NewMachine builds a machine with the standard subscription status graph:
//
//	trialing -> active | cancelled | expired
//	active   -> past_due | cancelled | expired
//	past_due -> grace | active | cancelled | expired
//	grace    -> active | cancelled | expired
//
// Cancelled and expired are terminal. Expiry from any non-terminal status is
// guarded by ShouldExpire, so stale end dates on auto-renewing subscriptions
// never expire them.
func NewMachine() *Machine {
	m := &Machine{transitions: make(map[subscription.Status]map[Event][]Transition)}

	m.add(subscription.StatusTrialing, EventActivate, subscription.StatusActive)
	m.add(subscription.StatusActive, EventPaymentFailed, subscription.StatusPastDue)
	m.add(subscription.StatusPastDue, EventGrantGrace, subscription.StatusGrace)
	m.add(subscription.StatusPastDue, EventPaymentRecovered, subscription.StatusActive)
	m.add(subscription.StatusGrace, EventPaymentRecovered, subscription.StatusActive)

	for _, from := range []subscription.Status{
		subscription.StatusTrialing,
		subscription.StatusActive,
		subscription.StatusPastDue,
		subscription.StatusGrace,
	} {
		m.add(from, EventCancel, subscription.StatusCancelled)
		m.add(from, EventExpire, subscription.StatusExpired, Guard(guardShouldExpire))
	}

	return m
}

func (m *Machine) add(from subscription.Status, event Event, to subscription.Status, guards ...Guard) {
	if _, ok := m.transitions[from]; !ok {
		m.transitions[from] = make(map[Event][]Transition)
	}
	m.transitions[from][event] = append(m.transitions[from][event], Transition{
		From:   from,
		Event:  event,
		To:     to,
		Guards: guards,
	})
}

// Next resolves the status the subscription would move to if the event fired
// now. It never mutates the subscription; the caller applies and persists the
// returned status.
func (m *Machine) Next(ctx context.Context, sub *subscription.Subscription, event Event, now time.Time) (subscription.Status, error) {
	candidates, ok := m.transitions[sub.Status][event]
	if !ok || len(candidates) == 0 {
		return "", newNoTransitionError(sub.Status, event)
	}

	// First transition with passing guards wins.
	for _, t := range candidates {
		if guardsPass(ctx, t.Guards, sub, now) {
			return t.To, nil
		}
	}
	return "", newTransitionRejectedError(sub.Status, event)
}

// CanFire reports whether the event has an allowed transition from the
// subscription's current status.
func (m *Machine) CanFire(ctx context.Context, sub *subscription.Subscription, event Event, now time.Time) bool {
	for _, t := range m.transitions[sub.Status][event] {
		if guardsPass(ctx, t.Guards, sub, now) {
			return true
		}
	}
	return false
}

// Events lists the events with at least one allowed transition from the
// subscription's current status. Terminal statuses return nothing.
func (m *Machine) Events(ctx context.Context, sub *subscription.Subscription, now time.Time) []Event {
	var events []Event
	for event := range m.transitions[sub.Status] {
		if m.CanFire(ctx, sub, event, now) {
			events = append(events, event)
		}
	}
	return events
}

func guardsPass(ctx context.Context, guards []Guard, sub *subscription.Subscription, now time.Time) bool {
	for _, g := range guards {
		if g != nil && !g(ctx, sub, now) {
			return false
		}
	}
	return true
}

func guardShouldExpire(_ context.Context, sub *subscription.Subscription, now time.Time) bool {
	return ShouldExpire(sub, now)
}

// ShouldExpire reports whether the subscription's end date has passed without
// auto-renewal. Terminal subscriptions never re-expire.
func ShouldExpire(sub *subscription.Subscription, now time.Time) bool {
	if sub == nil || sub.Status.IsTerminal() {
		return false
	}
	if sub.AutoRenew || sub.EndDate == nil {
		return false
	}
	return sub.EndDate.Before(now)
}

// RenewalDue reports whether the billing cycle should charge the subscription:
// active with auto-renew on and a next-billing date that has arrived.
func RenewalDue(sub *subscription.Subscription, now time.Time) bool {
	if sub == nil || sub.Status != subscription.StatusActive {
		return false
	}
	if !sub.AutoRenew || sub.NextBillingAt == nil {
		return false
	}
	return !sub.NextBillingAt.After(now)
}

// EligibleForSuspension reports whether the orchestrator should cancel or
// suspend the subscription over payment problems: payment health is critical
// and the recovery window has run out — either a granted grace period has
// elapsed, or the subscription sits past due with no grace granted at all.
func EligibleForSuspension(sub *subscription.Subscription, paymentHealth health.PaymentHealth, now time.Time) bool {
	if sub == nil || paymentHealth != health.PaymentCritical {
		return false
	}

	switch sub.Status {
	case subscription.StatusGrace:
		return sub.GracePeriodEndsAt != nil && sub.GracePeriodEndsAt.Before(now)
	case subscription.StatusPastDue:
		return sub.GracePeriodEndsAt == nil
	default:
		return false
	}
}

// TrialConversionDue reports whether a trialing subscription's trial window
// has ended and the subscription should either activate or expire.
func TrialConversionDue(sub *subscription.Subscription, now time.Time) bool {
	if sub == nil || sub.Status != subscription.StatusTrialing {
		return false
	}
	return sub.IsTrialExpiredAt(now)
}
