package plan

import (
	"time"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/money"
)

// Resource represents a countable subscription resource type.
type Resource string

const (
	ResourceSchools             Resource = "schools"
	ResourceUsers               Resource = "users"
	ResourceMonthlyAppointments Resource = "monthly_appointments"
	ResourceGalleryItems        Resource = "gallery_items"
	ResourceMonthlyPosts        Resource = "monthly_posts"
	ResourceStorage             Resource = "storage" // ceiling declared in GB, counters run in MB
)

// Resources lists every resource in a stable order.
var Resources = []Resource{
	ResourceSchools,
	ResourceUsers,
	ResourceMonthlyAppointments,
	ResourceGalleryItems,
	ResourceMonthlyPosts,
	ResourceStorage,
}

const (
	// Unlimited indicates no ceiling for a resource (-1 chosen for SQL compatibility).
	Unlimited int64 = -1
)

// Feature is a plan-specific capability flag.
type Feature string

const (
	FeatureAnalytics       Feature = "analytics"
	FeatureCampaigns       Feature = "campaigns"
	FeaturePrioritySupport Feature = "priority_support"
	FeatureCustomDomain    Feature = "custom_domain"
	FeatureAPI             Feature = "api"
	FeatureExport          Feature = "export"
)

// BillingInterval represents the billing frequency for a subscription plan.
type BillingInterval string

const (
	BillingIntervalNone    BillingInterval = "none" // free plans with no billing
	BillingIntervalMonthly BillingInterval = "monthly"
	BillingIntervalAnnual  BillingInterval = "annual"
)

// Plan describes a subscription plan: price, billing period, trial length and
// resource ceilings. Plans are immutable once referenced by an active
// subscription; a new plan version is a new record.
type Plan struct {
	ID          string
	Name        string
	Description string
	Price       money.Money
	Interval    BillingInterval
	TrialDays   int
	Ceilings    map[Resource]int64 // -1 or absent means unlimited
	Features    []Feature
	Public      bool // available for self-service signup
}

// Ceiling returns the configured ceiling for a resource.
// Absent ceilings are unlimited.
func (p Plan) Ceiling(res Resource) int64 {
	c, ok := p.Ceilings[res]
	if !ok {
		return Unlimited
	}
	return c
}

// StorageCeilingMB converts the plan's storage ceiling from GB to MB,
// the unit usage counters are tracked in.
func (p Plan) StorageCeilingMB() int64 {
	gb := p.Ceiling(ResourceStorage)
	if gb == Unlimited {
		return Unlimited
	}
	return gb * 1024
}

// HasFeature reports whether the plan enables a feature flag.
func (p Plan) HasFeature(f Feature) bool {
	for _, have := range p.Features {
		if have == f {
			return true
		}
	}
	return false
}

// TrialEndsAt calculates when the trial period ends.
// Returns startedAt unchanged if no trial is available.
func (p Plan) TrialEndsAt(startedAt time.Time) time.Time {
	if p.TrialDays <= 0 {
		return startedAt
	}
	return startedAt.AddDate(0, 0, p.TrialDays).UTC()
}

// IsTrialActiveAt reports whether a subscription started at startedAt is still
// inside its trial window at the given instant.
func (p Plan) IsTrialActiveAt(startedAt, now time.Time) bool {
	if p.TrialDays <= 0 {
		return false
	}
	return now.Before(p.TrialEndsAt(startedAt))
}
