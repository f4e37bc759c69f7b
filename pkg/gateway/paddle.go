package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/money"
)

// PaddleConfig holds configuration for the Paddle gateway adapter.
type PaddleConfig struct {
	WebhookSecret string `env:"PADDLE_WEBHOOK_SECRET,required"`
	Environment   string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
}

// PaddleGateway parses Paddle webhooks into normalized payment events.
// The core only consumes payment outcomes, so the adapter needs the webhook
// verifier but never an API client.
type PaddleGateway struct {
	verifier *paddle.WebhookVerifier
}

// NewPaddleGateway creates a Paddle webhook adapter.
func NewPaddleGateway(config PaddleConfig) (*PaddleGateway, error) {
	if config.WebhookSecret == "" {
		return nil, fmt.Errorf("%w: paddle webhook secret is required", ErrInvalidWebhookPayload)
	}
	return &PaddleGateway{verifier: paddle.NewWebhookVerifier(config.WebhookSecret)}, nil
}

// ParseWebhook verifies the payload signature and maps the Paddle event onto
// a normalized payment event. Events outside the payment vocabulary return
// ErrUnsupportedEvent; callers acknowledge and skip them.
func (g *PaddleGateway) ParseWebhook(ctx context.Context, payload []byte, signature string) (*PaymentEvent, error) {
	// The SDK verifier works on http requests, so wrap the raw payload.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/webhook", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request for verification: %w", err)
	}
	req.Header.Set("Paddle-Signature", signature)

	valid, err := g.verifier.Verify(req)
	if err != nil {
		return nil, fmt.Errorf("webhook verification error: %w", err)
	}
	if !valid {
		return nil, ErrWebhookVerificationFailed
	}

	var paddleEvent struct {
		EventID    string         `json:"event_id"`
		EventType  string         `json:"event_type"`
		OccurredAt string         `json:"occurred_at"`
		Data       map[string]any `json:"data"`
	}
	if err := json.Unmarshal(payload, &paddleEvent); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWebhookPayload, err)
	}

	eventType, ok := mapPaddleEventType(paddleEvent.EventType)
	if !ok {
		return nil, newUnsupportedEventError("", paddleEvent.EventType)
	}

	event := &PaymentEvent{
		Type:          eventType,
		ProviderEvent: paddleEvent.EventType,
		Raw:           paddleEvent.Data,
	}

	if at, err := time.Parse(time.RFC3339, paddleEvent.OccurredAt); err == nil {
		event.OccurredAt = at
	}

	if id, ok := paddleEvent.Data["id"].(string); ok {
		event.ProviderTxID = id
	}
	if subID, ok := paddleEvent.Data["subscription_id"].(string); ok {
		event.SubscriptionID = subID
	}

	switch {
	case strings.HasPrefix(paddleEvent.EventType, "transaction."):
		event.Amount = paddleTransactionTotal(paddleEvent.Data)
		event.CardBrand, event.CardLast4 = paddleCardMetadata(paddleEvent.Data)

	case strings.HasPrefix(paddleEvent.EventType, "adjustment."):
		// Adjustments reference the transaction they modify.
		if txID, ok := paddleEvent.Data["transaction_id"].(string); ok {
			event.ProviderTxID = txID
		}
		event.Amount = paddleAdjustmentTotal(paddleEvent.Data)
		if reason, ok := paddleEvent.Data["reason"].(string); ok {
			event.RefundReason = reason
		}
	}

	return event, nil
}

// mapPaddleEventType maps Paddle's event vocabulary onto normalized types.
// Refunds arrive as adjustment events, not transaction ones.
func mapPaddleEventType(paddleEvent string) (EventType, bool) {
	switch paddleEvent {
	case "transaction.completed", "transaction.paid":
		return EventPaymentSucceeded, true
	case "transaction.payment_failed":
		return EventPaymentFailed, true
	case "adjustment.created", "adjustment.updated":
		return EventPaymentRefunded, true
	case "subscription.canceled":
		return EventSubscriptionCancelled, true
	default:
		return "", false
	}
}

// paddleTransactionTotal extracts the grand total from a transaction payload.
// Paddle reports amounts as minor-unit strings ("4990" for 49.90 USD).
func paddleTransactionTotal(data map[string]any) money.Money {
	details, ok := data["details"].(map[string]any)
	if !ok {
		return money.Money{}
	}
	totals, ok := details["totals"].(map[string]any)
	if !ok {
		return money.Money{}
	}
	return paddleTotals(totals)
}

func paddleAdjustmentTotal(data map[string]any) money.Money {
	totals, ok := data["totals"].(map[string]any)
	if !ok {
		return money.Money{}
	}
	return paddleTotals(totals)
}

func paddleTotals(totals map[string]any) money.Money {
	raw, ok := totals["grand_total"].(string)
	if !ok {
		if raw, ok = totals["total"].(string); !ok {
			return money.Money{}
		}
	}
	currencyCode, _ := totals["currency_code"].(string)

	units, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return money.Money{}
	}
	return money.FromMinorUnits(units, currencyCode)
}

// paddleCardMetadata pulls masked card details from the first payment attempt
// that carries them.
func paddleCardMetadata(data map[string]any) (brand, last4 string) {
	attempts, ok := data["payments"].([]any)
	if !ok {
		return "", ""
	}
	for _, a := range attempts {
		attempt, ok := a.(map[string]any)
		if !ok {
			continue
		}
		method, ok := attempt["method_details"].(map[string]any)
		if !ok {
			continue
		}
		card, ok := method["card"].(map[string]any)
		if !ok {
			continue
		}
		brand, _ = card["type"].(string)
		last4, _ = card["last4"].(string)
		if last4 != "" {
			return strings.ToUpper(brand), last4
		}
	}
	return "", ""
}
