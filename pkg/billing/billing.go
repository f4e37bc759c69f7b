package billing

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/money"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/subscription"
)

// defaultRecentWindow is how many recent payments and invoices a summary carries.
const defaultRecentWindow = 5

// Summary is a point-in-time billing overview for a subscription. On partial
// data it carries best-effort results with explicit zero fields; building a
// summary never fails outright.
type Summary struct {
	PlanID     string
	CampusName string

	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
	NextBillingAt      *time.Time

	// RecentPayments and RecentInvoices hold the most recently dated items,
	// sorted descending by date with undated items last.
	RecentPayments []subscription.Payment
	RecentInvoices []subscription.Invoice

	// TotalPaid sums completed payments only; pending, failed and refunded
	// payments stay visible in the recent list but never count here.
	TotalPaid money.Money

	// TotalOutstanding sums the totals of all invoices not yet paid.
	TotalOutstanding money.Money

	OverdueCount  int
	OverdueAmount money.Money
	OverdueAlert  string

	// PreferredMethod and SavedCard derive from the most recent completed
	// payment; a failed payment never overwrites the displayed card.
	PreferredMethod subscription.PaymentMethod
	SavedCard       string

	// DataWarnings reports invoice records whose stored totals violate
	// total = subtotal + tax - discount. Data quality only, never fatal.
	DataWarnings []string
}

// Aggregator builds billing summaries from a subscription's payment and
// invoice collections. Pure computation over the given snapshots; the
// aggregator performs no I/O beyond logging.
type Aggregator struct {
	log          *slog.Logger
	recentWindow int
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the logger used for data-quality warnings.
func WithLogger(log *slog.Logger) Option {
	return func(a *Aggregator) {
		if log != nil {
			a.log = log
		}
	}
}

// WithRecentWindow overrides how many recent items a summary carries.
func WithRecentWindow(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.recentWindow = n
		}
	}
}

func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		log:          slog.Default(),
		recentWindow: defaultRecentWindow,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Summarize builds a billing summary for the subscription from full payment
// and invoice collections. Callers should snapshot the collections once per
// pass rather than re-querying per field.
func (a *Aggregator) Summarize(sub *subscription.Subscription, payments []subscription.Payment, invoices []subscription.Invoice, now time.Time) Summary {
	currencyCode := resolveCurrency(sub, payments, invoices)

	s := Summary{
		TotalPaid:        money.Zero(currencyCode),
		TotalOutstanding: money.Zero(currencyCode),
		OverdueAmount:    money.Zero(currencyCode),
	}

	if sub != nil {
		s.PlanID = sub.PlanID
		s.CampusName = sub.CampusName
		s.NextBillingAt = sub.NextBillingAt
		s.CurrentPeriodStart, s.CurrentPeriodEnd = currentPeriod(sub, payments)
	}

	s.RecentPayments = recentPayments(payments, a.recentWindow)
	s.RecentInvoices = recentInvoices(invoices, a.recentWindow)

	for _, p := range payments {
		if p.Status == subscription.PaymentCompleted && p.Amount.Currency == currencyCode {
			s.TotalPaid.Amount = s.TotalPaid.Amount.Add(p.Amount.Amount)
		}
	}

	overdueTotal := decimal.Zero
	for _, inv := range invoices {
		if err := inv.CheckTotals(); err != nil {
			a.log.Warn("invoice totals inconsistent", "invoice", inv.Number, "error", err)
			s.DataWarnings = append(s.DataWarnings, err.Error())
		}

		if inv.Status != subscription.InvoicePaid && inv.Total.Currency == currencyCode {
			s.TotalOutstanding.Amount = s.TotalOutstanding.Amount.Add(inv.Total.Amount)
		}
		if inv.IsOverdue(now) {
			s.OverdueCount++
			if inv.Total.Currency == currencyCode {
				overdueTotal = overdueTotal.Add(inv.Total.Amount)
			}
		}
	}
	s.OverdueAmount.Amount = overdueTotal

	if s.OverdueCount > 0 {
		s.OverdueAlert = fmt.Sprintf("%d overdue invoice(s) totalling %s require attention", s.OverdueCount, s.OverdueAmount)
	}

	if latest := latestCompletedPayment(payments); latest != nil {
		s.PreferredMethod = latest.Method
		s.SavedCard = latest.SavedCardLabel()
	}

	return s
}

// resolveCurrency picks the summary currency: the subscription's price
// snapshot when available, otherwise the first dated record's currency.
func resolveCurrency(sub *subscription.Subscription, payments []subscription.Payment, invoices []subscription.Invoice) string {
	if sub != nil && sub.PriceSnapshot.Currency != "" {
		return sub.PriceSnapshot.Currency
	}
	for _, p := range payments {
		if p.Amount.Currency != "" {
			return p.Amount.Currency
		}
	}
	for _, inv := range invoices {
		if inv.Total.Currency != "" {
			return inv.Total.Currency
		}
	}
	return ""
}

// currentPeriod derives the active billing window. The most recent completed
// payment's period takes precedence; otherwise the window runs from the
// subscription start to the next billing date.
func currentPeriod(sub *subscription.Subscription, payments []subscription.Payment) (start, end *time.Time) {
	if latest := latestCompletedPayment(payments); latest != nil && latest.PeriodStart != nil && latest.PeriodEnd != nil {
		return latest.PeriodStart, latest.PeriodEnd
	}

	startDate := sub.StartDate
	return &startDate, sub.NextBillingAt
}

func recentPayments(payments []subscription.Payment, window int) []subscription.Payment {
	sorted := make([]subscription.Payment, len(payments))
	copy(sorted, payments)

	sort.SliceStable(sorted, func(i, j int) bool {
		return dateAfter(sorted[i].PaidAt, sorted[j].PaidAt)
	})

	if len(sorted) > window {
		sorted = sorted[:window]
	}
	return sorted
}

func recentInvoices(invoices []subscription.Invoice, window int) []subscription.Invoice {
	sorted := make([]subscription.Invoice, len(invoices))
	copy(sorted, invoices)

	sort.SliceStable(sorted, func(i, j int) bool {
		return dateAfter(sorted[i].IssuedAt, sorted[j].IssuedAt)
	})

	if len(sorted) > window {
		sorted = sorted[:window]
	}
	return sorted
}

// dateAfter orders descending by date with nil dates last, so a comparator
// over partially dated records never panics and undated items never displace
// dated ones.
func dateAfter(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.After(*b)
	}
}

func latestCompletedPayment(payments []subscription.Payment) *subscription.Payment {
	var latest *subscription.Payment
	for i := range payments {
		p := &payments[i]
		if p.Status != subscription.PaymentCompleted {
			continue
		}
		if latest == nil || dateAfter(p.PaidAt, latest.PaidAt) {
			latest = p
		}
	}
	return latest
}
