package usage

import (
	"strings"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/plan"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/subscription"
)

// Band is the aggregate usage health band for a subscription.
type Band string

const (
	BandActive   Band = "ACTIVE"
	BandModerate Band = "MODERATE"
	BandLow      Band = "LOW"
	BandInactive Band = "INACTIVE"
)

const (
	warningThreshold  = 80.0
	exceededThreshold = 100.0
)

// ResourceUsage is the measured state of one resource against its ceiling.
type ResourceUsage struct {
	Used    int64
	Limit   int64 // plan.Unlimited (-1) when the plan sets no ceiling
	Percent float64
}

// Report is a point-in-time usage measurement for a subscription.
type Report struct {
	Resources map[plan.Resource]ResourceUsage

	// Warnings lists every resource at 80% or more of its ceiling but not yet
	// exceeded. All simultaneous warnings are reported, not just the worst.
	Warnings []plan.Resource

	// Exceeded lists every resource at or above its ceiling.
	Exceeded []plan.Resource

	Band     Band
	Advisory string
}

// Measure computes usage percentages, warning and exceeded lists, the
// aggregate band and an optional upgrade advisory for a counters snapshot.
//
// A nil plan means the subscription's plan reference could not be resolved;
// the meter degrades gracefully by treating every ceiling as unlimited so a
// plan lookup failure never blocks billing display.
func Measure(counters subscription.UsageCounters, p *plan.Plan) Report {
	report := Report{
		Resources: make(map[plan.Resource]ResourceUsage, len(plan.Resources)),
	}

	for _, res := range plan.Resources {
		used := counters.Get(res)
		limit := resourceCeiling(p, res)
		pct := percentage(used, limit)

		report.Resources[res] = ResourceUsage{Used: used, Limit: limit, Percent: pct}

		switch {
		case pct >= exceededThreshold:
			report.Exceeded = append(report.Exceeded, res)
		case pct >= warningThreshold:
			report.Warnings = append(report.Warnings, res)
		}
	}

	report.Band = band(report.Resources)
	report.Advisory = advisory(report)

	return report
}

// PlanChangeCheck is the result of vetting a plan switch against current usage.
type PlanChangeCheck struct {
	Comparison *plan.Comparison

	// Blocked lists the resources whose current usage already exceeds the
	// target plan's ceiling. A switch with blockers would put the subscription
	// over its limits on day one.
	Blocked []plan.Resource
}

// IsDowngrade reports whether any ceiling shrinks when moving to the target.
func (c PlanChangeCheck) IsDowngrade() bool {
	return c.Comparison != nil && c.Comparison.HasLoweredCeilings()
}

// CheckPlanChange vets a plan switch before Subscription.ChangePlan: the plan
// diff for display, plus the resources the target plan can no longer hold.
// Callers warn on a downgrade and refuse the switch while Blocked is non-empty.
func CheckPlanChange(counters subscription.UsageCounters, current, target *plan.Plan) PlanChangeCheck {
	check := PlanChangeCheck{Comparison: plan.Compare(current, target)}

	for _, res := range plan.Resources {
		limit := resourceCeiling(target, res)
		if limit == plan.Unlimited {
			continue
		}
		if counters.Get(res) > limit {
			check.Blocked = append(check.Blocked, res)
		}
	}
	return check
}

func resourceCeiling(p *plan.Plan, res plan.Resource) int64 {
	if p == nil {
		return plan.Unlimited
	}
	if res == plan.ResourceStorage {
		return p.StorageCeilingMB()
	}
	return p.Ceiling(res)
}

// percentage returns used/limit as a percentage capped at 100. An unlimited
// ceiling yields 0 rather than a division by an effectively-infinite limit.
// The value stays unrounded; rounding is a presentation concern.
func percentage(used, limit int64) float64 {
	if limit == plan.Unlimited {
		return 0
	}
	if limit == 0 {
		// A ceiling of literally zero is exhausted by any usage at all.
		if used > 0 {
			return 100
		}
		return 0
	}

	pct := float64(used) / float64(limit) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// band derives the aggregate usage health from the unweighted mean of the
// schools, users and storage percentages. The monthly counters are
// intentionally excluded: they reset every cycle and are too noisy to signal
// engagement with the platform itself.
func band(resources map[plan.Resource]ResourceUsage) Band {
	mean := (resources[plan.ResourceSchools].Percent +
		resources[plan.ResourceUsers].Percent +
		resources[plan.ResourceStorage].Percent) / 3

	switch {
	case mean > 60:
		return BandActive
	case mean > 30:
		return BandModerate
	case mean > 10:
		return BandLow
	default:
		return BandInactive
	}
}

// advisory returns upgrade advice when any resource is exceeded or more than
// two are in the warning zone. Advisory text only, never a hard gate.
func advisory(r Report) string {
	if len(r.Exceeded) == 0 && len(r.Warnings) <= 2 {
		return ""
	}

	if len(r.Exceeded) > 0 {
		names := make([]string, 0, len(r.Exceeded))
		for _, res := range r.Exceeded {
			names = append(names, string(res))
		}
		return "Plan limits exceeded for " + strings.Join(names, ", ") + "; upgrade to a higher plan to continue growing."
	}
	return "Several resources are close to their plan limits; consider upgrading to a higher plan."
}
