package gateway

import (
	"context"
	"time"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/money"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/subscription"
)

// EventType is the normalized payment event type. Each provider adapter maps
// its own webhook vocabulary onto these.
type EventType string

const (
	EventPaymentSucceeded      EventType = "payment_succeeded"
	EventPaymentFailed         EventType = "payment_failed"
	EventPaymentRefunded       EventType = "payment_refunded"
	EventSubscriptionCancelled EventType = "subscription_cancelled"
)

// PaymentEvent is a normalized webhook event. The core consumes these to
// advance Payment records; it never initiates a charge itself.
type PaymentEvent struct {
	Type          EventType
	ProviderEvent string // original provider event name

	ProviderTxID   string
	SubscriptionID string // provider-side subscription id

	Amount     money.Money
	OccurredAt time.Time

	// Masked card metadata when the provider includes it.
	CardBrand string
	CardLast4 string

	RefundReason string

	Raw map[string]any // full provider payload for auditing
}

// Provider validates and parses incoming webhook payloads into normalized
// payment events. Implementations must verify the payload signature to
// prevent webhook spoofing.
type Provider interface {
	ParseWebhook(ctx context.Context, payload []byte, signature string) (*PaymentEvent, error)
}

// ApplyEvent advances a payment record according to a normalized event.
// Succeeded and failed events transition the payment's status; refund events
// record the refund against a completed payment. The caller persists the
// mutated record.
func ApplyEvent(p *subscription.Payment, ev PaymentEvent) error {
	switch ev.Type {
	case EventPaymentSucceeded:
		if ev.ProviderTxID != "" {
			p.ProviderTxID = ev.ProviderTxID
		}
		if ev.CardLast4 != "" {
			p.CardBrand = ev.CardBrand
			p.CardLast4 = ev.CardLast4
		}
		return p.MarkCompleted(ev.OccurredAt)

	case EventPaymentFailed:
		if ev.ProviderTxID != "" {
			p.ProviderTxID = ev.ProviderTxID
		}
		return p.MarkFailed()

	case EventPaymentRefunded:
		amount := ev.Amount
		if amount.IsMissing() {
			// Providers omit the amount on full refunds.
			amount = p.Amount
		}
		return p.ApplyRefund(amount, ev.OccurredAt, ev.RefundReason)

	default:
		return newUnsupportedEventError(ev.Type, ev.ProviderEvent)
	}
}
