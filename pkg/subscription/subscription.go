package subscription

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/money"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/plan"
)

// Status represents the current lifecycle state of a subscription.
type Status string

const (
	StatusTrialing  Status = "trialing"
	StatusActive    Status = "active"
	StatusPastDue   Status = "past_due"
	StatusGrace     Status = "grace"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusExpired
}

// BillingContact is a snapshot of billing details copied at subscription
// creation time, not a live reference. Historical payments and invoices keep
// the contact they were issued against.
type BillingContact struct {
	Name      string
	Email     string
	Phone     string
	Address   string
	City      string
	Country   string
	TaxID     string
	TaxOffice string
}

// UsageCounters tracks current consumption per subscription. The monthly
// counters reset at billing-cycle rollover, not at calendar-month boundaries.
// Storage is tracked in MB while plan ceilings declare GB.
type UsageCounters struct {
	Schools             int64
	Users               int64
	MonthlyAppointments int64
	GalleryItems        int64
	MonthlyPosts        int64
	StorageMB           int64
}

// Get returns the counter value for a resource.
func (u UsageCounters) Get(res plan.Resource) int64 {
	switch res {
	case plan.ResourceSchools:
		return u.Schools
	case plan.ResourceUsers:
		return u.Users
	case plan.ResourceMonthlyAppointments:
		return u.MonthlyAppointments
	case plan.ResourceGalleryItems:
		return u.GalleryItems
	case plan.ResourceMonthlyPosts:
		return u.MonthlyPosts
	case plan.ResourceStorage:
		return u.StorageMB
	}
	return 0
}

// apply adds a delta to a counter, clamping at zero. Deletions reported by
// collaborators must never drive a counter negative.
func (u *UsageCounters) apply(res plan.Resource, delta int64) {
	set := func(target *int64) {
		next := *target + delta
		if next < 0 {
			next = 0
		}
		*target = next
	}

	switch res {
	case plan.ResourceSchools:
		set(&u.Schools)
	case plan.ResourceUsers:
		set(&u.Users)
	case plan.ResourceMonthlyAppointments:
		set(&u.MonthlyAppointments)
	case plan.ResourceGalleryItems:
		set(&u.GalleryItems)
	case plan.ResourceMonthlyPosts:
		set(&u.MonthlyPosts)
	case plan.ResourceStorage:
		set(&u.StorageMB)
	}
}

// Subscription is the mutable aggregate root of the billing domain. Usage
// counters and status change through the methods below; external collaborators
// report deltas, the billing cycle drives rollover and plan changes.
//
// The struct itself is not safe for concurrent mutation. Upstream callers must
// apply a single-writer-per-subscription discipline (row lock or optimistic
// version check) before mutating.
type Subscription struct {
	ID         uuid.UUID
	CampusID   uuid.UUID
	CampusName string // opaque display name supplied by the institution lookup

	PlanID string
	Status Status

	StartDate     time.Time
	EndDate       *time.Time
	TrialEndsAt   *time.Time
	NextBillingAt *time.Time

	// PriceSnapshot is the price at signup, decoupled from the current plan
	// price so historical amounts don't drift when plans are repriced.
	PriceSnapshot   money.Money
	DiscountAmount  money.Money
	DiscountPercent float64
	CouponCode      string

	AutoRenew         bool
	CancelledAt       *time.Time
	CancelReason      string
	GracePeriodEndsAt *time.Time

	Usage          UsageCounters
	BillingContact BillingContact

	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeactivatedAt *time.Time // soft deletion; rows referenced by payments or invoices are never removed
}

// New creates a subscription on the given plan starting now. The plan's price
// is snapshotted and the trial window is derived from the plan's trial days.
func New(campusID uuid.UUID, campusName string, p plan.Plan, contact BillingContact, now time.Time) *Subscription {
	sub := &Subscription{
		ID:             uuid.New(),
		CampusID:       campusID,
		CampusName:     campusName,
		PlanID:         p.ID,
		Status:         StatusActive,
		StartDate:      now,
		PriceSnapshot:  p.Price,
		DiscountAmount: money.Zero(p.Price.Currency),
		AutoRenew:      true,
		BillingContact: contact,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if p.TrialDays > 0 {
		trialEnd := p.TrialEndsAt(now)
		sub.Status = StatusTrialing
		sub.TrialEndsAt = &trialEnd
	}

	return sub
}

func (s *Subscription) IsTrialing() bool {
	return s.Status == StatusTrialing
}

func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

func (s *Subscription) IsCancelled() bool {
	return s.Status == StatusCancelled
}

// IsTrialExpiredAt reports whether the trial window has passed.
func (s *Subscription) IsTrialExpiredAt(now time.Time) bool {
	if s.TrialEndsAt == nil {
		return false
	}
	return now.After(*s.TrialEndsAt)
}

// TrialDaysRemainingAt returns the number of days remaining in the trial at a
// given time. Partial days round up for better UX. Returns 0 if not in trial.
func (s *Subscription) TrialDaysRemainingAt(now time.Time) int {
	if !s.IsTrialing() || s.TrialEndsAt == nil {
		return 0
	}

	remaining := s.TrialEndsAt.Sub(now)
	if remaining <= 0 {
		return 0
	}

	days := remaining.Hours() / 24
	return int(days + 0.5)
}

// AgeAt returns how long the subscription has existed at the given instant.
func (s *Subscription) AgeAt(now time.Time) time.Duration {
	return now.Sub(s.CreatedAt)
}

// ApplyUsageDelta adds a delta (possibly negative) to a usage counter,
// clamping at zero. Overage above the plan ceiling is allowed here; the usage
// meter reports it, callers decide whether to block further growth.
func (s *Subscription) ApplyUsageDelta(res plan.Resource, delta int64) {
	s.Usage.apply(res, delta)
	s.UpdatedAt = time.Now().UTC()
}

// RolloverBillingPeriod resets the monthly counters and advances the next
// billing date. Called by the billing-cycle job exactly at cycle rollover.
func (s *Subscription) RolloverBillingPeriod(next time.Time) {
	s.Usage.MonthlyAppointments = 0
	s.Usage.MonthlyPosts = 0
	s.NextBillingAt = &next
	s.UpdatedAt = time.Now().UTC()
}

// ChangePlan moves the subscription to a new plan, snapshotting the new price.
// Usage counters carry over; proration is the caller's concern.
func (s *Subscription) ChangePlan(p plan.Plan) {
	s.PlanID = p.ID
	s.PriceSnapshot = p.Price
	s.UpdatedAt = time.Now().UTC()
}

// MarkCancelled records a user- or admin-initiated cancellation.
func (s *Subscription) MarkCancelled(at time.Time, reason string) {
	s.Status = StatusCancelled
	s.CancelledAt = &at
	s.CancelReason = reason
	s.AutoRenew = false
	s.UpdatedAt = time.Now().UTC()
}

// GrantGrace moves a past-due subscription into its grace window.
func (s *Subscription) GrantGrace(until time.Time) {
	s.Status = StatusGrace
	s.GracePeriodEndsAt = &until
	s.UpdatedAt = time.Now().UTC()
}

// Deactivate soft-deletes the subscription. Rows stay in place while any
// payment or invoice references them.
func (s *Subscription) Deactivate(at time.Time) {
	s.DeactivatedAt = &at
	s.UpdatedAt = time.Now().UTC()
}

// EffectivePrice applies the discount fields to the price snapshot: the flat
// amount first, then the percentage, rounded to the minor unit. A discount
// can never push the price below zero.
func (s *Subscription) EffectivePrice() money.Money {
	price := s.PriceSnapshot
	if !s.DiscountAmount.IsZero() && s.DiscountAmount.Currency == price.Currency {
		if reduced, err := price.Sub(s.DiscountAmount); err == nil {
			price = reduced
		}
	}
	if s.DiscountPercent > 0 {
		rate := decimal.NewFromFloat(s.DiscountPercent).Div(decimal.NewFromInt(100))
		price = money.New(price.Amount.Mul(decimal.NewFromInt(1).Sub(rate)), price.Currency)
	}
	price = price.RoundToMinorUnit()
	if price.IsNegative() {
		return money.Zero(price.Currency)
	}
	return price
}
