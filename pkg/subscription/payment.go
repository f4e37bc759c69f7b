package subscription

import (
	"time"

	"github.com/google/uuid"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/money"
)

// PaymentStatus represents the processing state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// IsTerminal reports whether a payment has reached a final state. Terminal
// payments are immutable except for the refund fields.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentCompleted || s == PaymentFailed || s == PaymentRefunded
}

// PaymentMethod represents how a payment was made.
type PaymentMethod string

const (
	MethodCard         PaymentMethod = "card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodWallet       PaymentMethod = "wallet"
)

// Payment records a single charge against a subscription. Created by the
// billing cycle or a manual charge; the core never initiates charges, it only
// consumes status transitions reported by the gateway adapter.
type Payment struct {
	ID             uuid.UUID
	SubscriptionID uuid.UUID
	InvoiceID      *uuid.UUID

	Reference    string // human-facing reference code
	ProviderTxID string // gateway transaction id

	Amount money.Money
	Method PaymentMethod
	Status PaymentStatus

	PaidAt *time.Time
	DueAt  *time.Time

	RefundAmount money.Money
	RefundedAt   *time.Time
	RefundReason string

	// Masked card metadata for display; never the full PAN.
	CardBrand string
	CardLast4 string

	PeriodStart *time.Time
	PeriodEnd   *time.Time

	CreatedAt time.Time
}

// MarkCompleted transitions a pending payment to completed.
func (p *Payment) MarkCompleted(at time.Time) error {
	if p.Status.IsTerminal() {
		return ErrPaymentImmutable
	}
	p.Status = PaymentCompleted
	p.PaidAt = &at
	return nil
}

// MarkFailed transitions a pending payment to failed.
func (p *Payment) MarkFailed() error {
	if p.Status.IsTerminal() {
		return ErrPaymentImmutable
	}
	p.Status = PaymentFailed
	return nil
}

// ApplyRefund records a refund against a completed payment. The refund amount
// can never exceed the original amount, and only the refund fields of a
// terminal payment may change.
func (p *Payment) ApplyRefund(amount money.Money, at time.Time, reason string) error {
	if p.Status != PaymentCompleted {
		return ErrRefundNotAllowed
	}
	if amount.Currency != p.Amount.Currency {
		return money.ErrCurrencyMismatch
	}
	if amount.IsNegative() || amount.Amount.GreaterThan(p.Amount.Amount) {
		return ErrRefundExceedsAmount
	}

	p.Status = PaymentRefunded
	p.RefundAmount = amount
	p.RefundedAt = &at
	p.RefundReason = reason
	return nil
}

// SavedCardLabel returns a display string for the masked card metadata,
// e.g. "VISA •••• 4242". Empty when no card metadata is present.
func (p *Payment) SavedCardLabel() string {
	if p.CardLast4 == "" {
		return ""
	}
	if p.CardBrand == "" {
		return "•••• " + p.CardLast4
	}
	return p.CardBrand + " •••• " + p.CardLast4
}
