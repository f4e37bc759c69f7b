package gateway

import (
	"errors"
	"fmt"
)

var (
	ErrWebhookVerificationFailed = errors.New("webhook signature verification failed")
	ErrInvalidWebhookPayload     = errors.New("invalid webhook payload")
	ErrUnsupportedEvent          = errors.New("unsupported webhook event")
)

func newUnsupportedEventError(t EventType, providerEvent string) error {
	return fmt.Errorf("%w: type %q (provider event %q)", ErrUnsupportedEvent, t, providerEvent)
}
