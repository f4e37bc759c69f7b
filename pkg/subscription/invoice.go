package subscription

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/money"
)

// InvoiceStatus represents the stored state of an invoice.
//
// InvoiceOverdue exists for compatibility with records imported from systems
// that persisted it; this core never writes it. Overdue is a derived property
// (see Invoice.IsOverdue) so it can't go stale.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
	InvoiceVoid    InvoiceStatus = "void"
)

// LineItem is one line of an invoice.
type LineItem struct {
	Description string
	Quantity    int64
	UnitPrice   money.Money
	Amount      money.Money
}

// Invoice records amounts owed for a billing period. The monetary invariant
// total = subtotal + tax - discount must hold; CheckTotals verifies it on
// loaded records and reports violations as data-quality warnings, not errors,
// since historical records may predate the stricter invariant.
type Invoice struct {
	ID             uuid.UUID
	SubscriptionID uuid.UUID
	Number         string

	IssuedAt *time.Time
	DueAt    *time.Time
	Status   InvoiceStatus

	Subtotal money.Money
	Tax      money.Money
	Discount money.Money
	Total    money.Money

	BillingContact BillingContact

	PeriodStart *time.Time
	PeriodEnd   *time.Time

	LineItems []LineItem

	PaymentID *uuid.UUID
	CreatedAt time.Time
}

// IsOverdue reports whether the invoice's due date has passed without payment.
// Derived on demand so the answer is always current.
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.DueAt == nil {
		return false
	}
	return i.DueAt.Before(now) && i.Status != InvoicePaid
}

// CheckTotals verifies total = subtotal + tax - discount. Returns an error
// wrapping ErrInconsistentInvoiceTotals describing the mismatch; callers log
// and surface it as a warning rather than failing the whole summary.
func (i *Invoice) CheckTotals() error {
	expected := i.Subtotal.Amount.Add(i.Tax.Amount).Sub(i.Discount.Amount)
	if expected.Equal(i.Total.Amount) {
		return nil
	}
	return fmt.Errorf("%w: invoice %s has total %s, expected %s",
		ErrInconsistentInvoiceTotals, i.Number, i.Total.Amount, expected)
}
