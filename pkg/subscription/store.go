package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for subscription persistence.
type Store interface {
	// Get retrieves a subscription by ID.
	// Returns ErrSubscriptionNotFound if no subscription exists.
	Get(ctx context.Context, id uuid.UUID) (*Subscription, error)

	// Save creates or updates a subscription.
	Save(ctx context.Context, sub *Subscription) error
}

// PaymentStore defines the interface for payment persistence.
type PaymentStore interface {
	// Get retrieves a payment by ID.
	// Returns ErrPaymentNotFound if no payment exists.
	Get(ctx context.Context, id uuid.UUID) (*Payment, error)

	// ListBySubscription returns all payments belonging to a subscription.
	ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]Payment, error)

	// Save creates or updates a payment.
	Save(ctx context.Context, payment *Payment) error
}

// InvoiceStore defines the interface for invoice persistence.
type InvoiceStore interface {
	// Get retrieves an invoice by ID.
	// Returns ErrInvoiceNotFound if no invoice exists.
	Get(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// ListBySubscription returns all invoices belonging to a subscription.
	ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]Invoice, error)

	// Save creates or updates an invoice.
	Save(ctx context.Context, invoice *Invoice) error
}
