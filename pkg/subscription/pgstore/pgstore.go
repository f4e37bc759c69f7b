package pgstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/money"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/pg"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/subscription"
)

// SubscriptionStore persists subscriptions in PostgreSQL.
type SubscriptionStore struct {
	pool *pgxpool.Pool
}

func NewSubscriptionStore(pool *pgxpool.Pool) *SubscriptionStore {
	return &SubscriptionStore{pool: pool}
}

const subscriptionColumns = `id, campus_id, campus_name, plan_id, status,
	start_date, end_date, trial_ends_at, next_billing_at,
	price_amount, currency, discount_amount, discount_percent, coupon_code,
	auto_renew, cancelled_at, cancel_reason, grace_period_ends_at,
	usage_counters, billing_contact, created_at, updated_at, deactivated_at`

// Get loads a subscription by id. Returns ErrSubscriptionNotFound when no row
// exists.
func (s *SubscriptionStore) Get(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id)
	sub, err := scanSubscription(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, subscription.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("load subscription: %w", err)
	}
	return sub, nil
}

// Save upserts the subscription row.
func (s *SubscriptionStore) Save(ctx context.Context, sub *subscription.Subscription) error {
	usageJSON, err := json.Marshal(sub.Usage)
	if err != nil {
		return fmt.Errorf("marshal usage counters: %w", err)
	}
	contactJSON, err := json.Marshal(sub.BillingContact)
	if err != nil {
		return fmt.Errorf("marshal billing contact: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO subscriptions (`+subscriptionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23)
		ON CONFLICT (id) DO UPDATE SET
			campus_name = EXCLUDED.campus_name,
			plan_id = EXCLUDED.plan_id,
			status = EXCLUDED.status,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			trial_ends_at = EXCLUDED.trial_ends_at,
			next_billing_at = EXCLUDED.next_billing_at,
			price_amount = EXCLUDED.price_amount,
			currency = EXCLUDED.currency,
			discount_amount = EXCLUDED.discount_amount,
			discount_percent = EXCLUDED.discount_percent,
			coupon_code = EXCLUDED.coupon_code,
			auto_renew = EXCLUDED.auto_renew,
			cancelled_at = EXCLUDED.cancelled_at,
			cancel_reason = EXCLUDED.cancel_reason,
			grace_period_ends_at = EXCLUDED.grace_period_ends_at,
			usage_counters = EXCLUDED.usage_counters,
			billing_contact = EXCLUDED.billing_contact,
			updated_at = EXCLUDED.updated_at,
			deactivated_at = EXCLUDED.deactivated_at`,
		sub.ID, sub.CampusID, sub.CampusName, sub.PlanID, sub.Status,
		sub.StartDate, sub.EndDate, sub.TrialEndsAt, sub.NextBillingAt,
		sub.PriceSnapshot.Amount, sub.PriceSnapshot.Currency,
		sub.DiscountAmount.Amount, sub.DiscountPercent, sub.CouponCode,
		sub.AutoRenew, sub.CancelledAt, sub.CancelReason, sub.GracePeriodEndsAt,
		usageJSON, contactJSON, sub.CreatedAt, sub.UpdatedAt, sub.DeactivatedAt,
	)
	if err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}
	return nil
}

func scanSubscription(row pgx.Row) (*subscription.Subscription, error) {
	var (
		sub         subscription.Subscription
		usageJSON   []byte
		contactJSON []byte
		currency    string
	)
	err := row.Scan(
		&sub.ID, &sub.CampusID, &sub.CampusName, &sub.PlanID, &sub.Status,
		&sub.StartDate, &sub.EndDate, &sub.TrialEndsAt, &sub.NextBillingAt,
		&sub.PriceSnapshot.Amount, &currency,
		&sub.DiscountAmount.Amount, &sub.DiscountPercent, &sub.CouponCode,
		&sub.AutoRenew, &sub.CancelledAt, &sub.CancelReason, &sub.GracePeriodEndsAt,
		&usageJSON, &contactJSON, &sub.CreatedAt, &sub.UpdatedAt, &sub.DeactivatedAt,
	)
	if err != nil {
		return nil, err
	}

	sub.PriceSnapshot.Currency = currency
	sub.DiscountAmount.Currency = currency
	if err := json.Unmarshal(usageJSON, &sub.Usage); err != nil {
		return nil, fmt.Errorf("unmarshal usage counters: %w", err)
	}
	if err := json.Unmarshal(contactJSON, &sub.BillingContact); err != nil {
		return nil, fmt.Errorf("unmarshal billing contact: %w", err)
	}
	return &sub, nil
}

// PaymentStore persists payments in PostgreSQL.
type PaymentStore struct {
	pool *pgxpool.Pool
}

func NewPaymentStore(pool *pgxpool.Pool) *PaymentStore {
	return &PaymentStore{pool: pool}
}

const paymentColumns = `id, subscription_id, invoice_id, reference, provider_tx_id,
	amount, currency, method, status, paid_at, due_at,
	refund_amount, refunded_at, refund_reason,
	card_brand, card_last4, period_start, period_end, created_at`

func (s *PaymentStore) Get(ctx context.Context, id uuid.UUID) (*subscription.Payment, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	p, err := scanPayment(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, subscription.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("load payment: %w", err)
	}
	return p, nil
}

// ListBySubscription returns every payment for the subscription, newest
// first by payment date with undated rows last. The ordering matches how the
// billing summary consumes the collection.
func (s *PaymentStore) ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]subscription.Payment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE subscription_id = $1
		ORDER BY paid_at DESC NULLS LAST, created_at DESC`, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []subscription.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (s *PaymentStore) Save(ctx context.Context, p *subscription.Payment) error {
	var refundAmount any
	if !p.RefundAmount.IsMissing() {
		refundAmount = p.RefundAmount.Amount
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19)
		ON CONFLICT (id) DO UPDATE SET
			invoice_id = EXCLUDED.invoice_id,
			provider_tx_id = EXCLUDED.provider_tx_id,
			status = EXCLUDED.status,
			paid_at = EXCLUDED.paid_at,
			refund_amount = EXCLUDED.refund_amount,
			refunded_at = EXCLUDED.refunded_at,
			refund_reason = EXCLUDED.refund_reason,
			card_brand = EXCLUDED.card_brand,
			card_last4 = EXCLUDED.card_last4`,
		p.ID, p.SubscriptionID, p.InvoiceID, p.Reference, p.ProviderTxID,
		p.Amount.Amount, p.Amount.Currency, p.Method, p.Status, p.PaidAt, p.DueAt,
		refundAmount, p.RefundedAt, p.RefundReason,
		p.CardBrand, p.CardLast4, p.PeriodStart, p.PeriodEnd, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save payment: %w", err)
	}
	return nil
}

func scanPayment(row pgx.Row) (*subscription.Payment, error) {
	var (
		p            subscription.Payment
		currency     string
		refundAmount *decimal.Decimal
	)
	err := row.Scan(
		&p.ID, &p.SubscriptionID, &p.InvoiceID, &p.Reference, &p.ProviderTxID,
		&p.Amount.Amount, &currency, &p.Method, &p.Status, &p.PaidAt, &p.DueAt,
		&refundAmount, &p.RefundedAt, &p.RefundReason,
		&p.CardBrand, &p.CardLast4, &p.PeriodStart, &p.PeriodEnd, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Amount.Currency = currency
	if refundAmount != nil {
		p.RefundAmount = money.New(*refundAmount, currency)
	}
	return &p, nil
}

// InvoiceStore persists invoices in PostgreSQL.
type InvoiceStore struct {
	pool *pgxpool.Pool
}

func NewInvoiceStore(pool *pgxpool.Pool) *InvoiceStore {
	return &InvoiceStore{pool: pool}
}

const invoiceColumns = `id, subscription_id, number, issued_at, due_at, status,
	subtotal, tax, discount, total, currency,
	billing_contact, period_start, period_end, line_items, payment_id, created_at`

func (s *InvoiceStore) Get(ctx context.Context, id uuid.UUID) (*subscription.Invoice, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, subscription.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("load invoice: %w", err)
	}
	return inv, nil
}

// ListBySubscription returns every invoice for the subscription, newest first
// by issue date with undated rows last.
func (s *InvoiceStore) ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]subscription.Invoice, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+invoiceColumns+` FROM invoices
		WHERE subscription_id = $1
		ORDER BY issued_at DESC NULLS LAST, created_at DESC`, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []subscription.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}

func (s *InvoiceStore) Save(ctx context.Context, inv *subscription.Invoice) error {
	contactJSON, err := json.Marshal(inv.BillingContact)
	if err != nil {
		return fmt.Errorf("marshal billing contact: %w", err)
	}
	itemsJSON, err := json.Marshal(inv.LineItems)
	if err != nil {
		return fmt.Errorf("marshal line items: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			number = EXCLUDED.number,
			issued_at = EXCLUDED.issued_at,
			due_at = EXCLUDED.due_at,
			status = EXCLUDED.status,
			subtotal = EXCLUDED.subtotal,
			tax = EXCLUDED.tax,
			discount = EXCLUDED.discount,
			total = EXCLUDED.total,
			currency = EXCLUDED.currency,
			billing_contact = EXCLUDED.billing_contact,
			period_start = EXCLUDED.period_start,
			period_end = EXCLUDED.period_end,
			line_items = EXCLUDED.line_items,
			payment_id = EXCLUDED.payment_id`,
		inv.ID, inv.SubscriptionID, inv.Number, inv.IssuedAt, inv.DueAt, inv.Status,
		inv.Subtotal.Amount, inv.Tax.Amount, inv.Discount.Amount, inv.Total.Amount,
		inv.Total.Currency,
		contactJSON, inv.PeriodStart, inv.PeriodEnd, itemsJSON, inv.PaymentID, inv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save invoice: %w", err)
	}
	return nil
}

func scanInvoice(row pgx.Row) (*subscription.Invoice, error) {
	var (
		inv         subscription.Invoice
		currency    string
		contactJSON []byte
		itemsJSON   []byte
	)
	err := row.Scan(
		&inv.ID, &inv.SubscriptionID, &inv.Number, &inv.IssuedAt, &inv.DueAt, &inv.Status,
		&inv.Subtotal.Amount, &inv.Tax.Amount, &inv.Discount.Amount, &inv.Total.Amount,
		&currency,
		&contactJSON, &inv.PeriodStart, &inv.PeriodEnd, &itemsJSON, &inv.PaymentID, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	inv.Subtotal.Currency = currency
	inv.Tax.Currency = currency
	inv.Discount.Currency = currency
	inv.Total.Currency = currency
	if err := json.Unmarshal(contactJSON, &inv.BillingContact); err != nil {
		return nil, fmt.Errorf("unmarshal billing contact: %w", err)
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &inv.LineItems); err != nil {
			return nil, fmt.Errorf("unmarshal line items: %w", err)
		}
	}

	// Money currencies inside line items travel in the JSON payload itself.
	return &inv, nil
}
