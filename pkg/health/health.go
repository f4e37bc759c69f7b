package health

import (
	"time"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/plan"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/subscription"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/usage"
)

// PaymentHealth categorizes payment reliability.
type PaymentHealth string

const (
	PaymentGood     PaymentHealth = "GOOD"
	PaymentWarning  PaymentHealth = "WARNING"
	PaymentCritical PaymentHealth = "CRITICAL"
)

// EngagementLevel categorizes current-month content activity.
type EngagementLevel string

const (
	EngagementHigh   EngagementLevel = "HIGH"
	EngagementMedium EngagementLevel = "MEDIUM"
	EngagementLow    EngagementLevel = "LOW"
)

// ScoreBand is the qualitative label for an overall health score.
type ScoreBand string

const (
	BandExcellent ScoreBand = "EXCELLENT"
	BandGood      ScoreBand = "GOOD"
	BandFair      ScoreBand = "FAIR"
	BandPoor      ScoreBand = "POOR"
	BandCritical  ScoreBand = "CRITICAL"
)

// ChurnRisk is the qualitative likelihood that a subscription cancels.
type ChurnRisk string

const (
	ChurnLow      ChurnRisk = "LOW"
	ChurnMedium   ChurnRisk = "MEDIUM"
	ChurnHigh     ChurnRisk = "HIGH"
	ChurnCritical ChurnRisk = "CRITICAL"
)

// Report is a full health evaluation for a subscription at a point in time.
type Report struct {
	PaymentHealth PaymentHealth
	// FailureRate is the failed-payment percentage (0-100). Tolerates float
	// precision here; rates are informational, never money.
	FailureRate float64
	UsageBand   usage.Band
	Engagement  EngagementLevel

	PaymentScore    int
	UsageScore      int
	EngagementScore int
	// OverallScore is the weighted blend of the three sub-scores, truncated
	// to an integer so the reported value never overstates health.
	OverallScore int
	Band         ScoreBand

	ChurnPoints      int
	ChurnRisk        ChurnRisk
	ChurnProbability float64

	RiskFactors     []string
	Recommendations []string

	// Usage carries the underlying per-resource measurement the usage band
	// was derived from, so callers don't re-meter.
	Usage usage.Report
}

// Engine scores subscription health from payment, usage and engagement
// signals. Evaluation is a pure function over the given snapshots; callers
// should snapshot payment collections once per pass, not per sub-score.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate produces a health report for the subscription. A nil plan degrades
// to unlimited ceilings rather than failing; a health summary is best-effort
// by contract.
func (e *Engine) Evaluate(sub *subscription.Subscription, pl *plan.Plan, payments []subscription.Payment, now time.Time) Report {
	var counters subscription.UsageCounters
	if sub != nil {
		counters = sub.Usage
	}

	r := Report{
		Usage: usage.Measure(counters, pl),
	}
	r.UsageBand = r.Usage.Band
	r.PaymentHealth, r.FailureRate = paymentHealth(payments)
	r.Engagement = engagementLevel(counters.MonthlyPosts, counters.MonthlyAppointments)

	r.PaymentScore = paymentScore(r.PaymentHealth)
	r.UsageScore = usageScore(r.UsageBand)
	r.EngagementScore = engagementScore(r.Engagement)

	// Integer hundredths keep the 40/35/25 weighting exact; the division
	// truncates, which is the intended behavior.
	r.OverallScore = (r.PaymentScore*40 + r.UsageScore*35 + r.EngagementScore*25) / 100
	r.Band = scoreBand(r.OverallScore)

	young := sub != nil && now.Sub(sub.StartDate) < 30*24*time.Hour
	r.ChurnPoints = churnPoints(r.PaymentHealth, r.UsageBand, r.Engagement, young)
	r.ChurnRisk = churnRisk(r.ChurnPoints)
	r.ChurnProbability = churnProbability(r.ChurnRisk)

	r.RiskFactors, r.Recommendations = advisories(r.PaymentHealth, r.UsageBand, r.Engagement, young, len(payments) == 0)

	return r
}

// paymentHealth derives the payment category from the failure rate. Both
// boundaries are exclusive: exactly 10% is still GOOD, exactly 20% still
// WARNING. An empty payment history is a risk signal, not a clean slate.
func paymentHealth(payments []subscription.Payment) (PaymentHealth, float64) {
	if len(payments) == 0 {
		return PaymentWarning, 0
	}

	failed := 0
	for _, p := range payments {
		if p.Status == subscription.PaymentFailed {
			failed++
		}
	}

	rate := float64(failed) / float64(len(payments)) * 100
	switch {
	case rate > 20:
		return PaymentCritical, rate
	case rate > 10:
		return PaymentWarning, rate
	default:
		return PaymentGood, rate
	}
}

func engagementLevel(posts, appointments int64) EngagementLevel {
	switch {
	case posts > 10 || appointments > 20:
		return EngagementHigh
	case posts > 5 || appointments > 10:
		return EngagementMedium
	default:
		return EngagementLow
	}
}

// The category-to-score tables below are fixed; downstream churn thresholds
// are tuned against these exact values. An unrecognized category scores 60.

func paymentScore(h PaymentHealth) int {
	switch h {
	case PaymentGood:
		return 90
	case PaymentWarning:
		return 50
	case PaymentCritical:
		return 30
	default:
		return 60
	}
}

func usageScore(b usage.Band) int {
	switch b {
	case usage.BandActive:
		return 90
	case usage.BandModerate:
		return 70
	case usage.BandLow:
		return 50
	case usage.BandInactive:
		return 30
	default:
		return 60
	}
}

func engagementScore(l EngagementLevel) int {
	switch l {
	case EngagementHigh:
		return 90
	case EngagementMedium:
		return 70
	case EngagementLow:
		return 50
	default:
		return 60
	}
}

func scoreBand(score int) ScoreBand {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 70:
		return BandGood
	case score >= 60:
		return BandFair
	case score >= 40:
		return BandPoor
	default:
		return BandCritical
	}
}

// churnPoints is an additive heuristic, deliberately decoupled from the
// health-score weighting.
func churnPoints(p PaymentHealth, u usage.Band, e EngagementLevel, young bool) int {
	points := 0

	switch p {
	case PaymentCritical:
		points += 40
	case PaymentWarning:
		points += 20
	}

	switch u {
	case usage.BandInactive:
		points += 30
	case usage.BandLow:
		points += 15
	}

	switch e {
	case EngagementLow:
		points += 20
	case EngagementMedium:
		points += 10
	}

	if young {
		points += 10
	}

	return points
}

func churnRisk(points int) ChurnRisk {
	switch {
	case points >= 70:
		return ChurnCritical
	case points >= 50:
		return ChurnHigh
	case points >= 30:
		return ChurnMedium
	default:
		return ChurnLow
	}
}

// churnProbability is a heuristic lookup, not a statistical model; dunning
// triggers depend on these exact values.
func churnProbability(risk ChurnRisk) float64 {
	switch risk {
	case ChurnCritical:
		return 0.8
	case ChurnHigh:
		return 0.6
	case ChurnMedium:
		return 0.3
	default:
		return 0.1
	}
}

// advisories emits one risk factor and one recommendation per triggered
// category. The recommendations list is never empty; staff render it directly.
func advisories(p PaymentHealth, u usage.Band, e EngagementLevel, young, noPayments bool) (risks, recs []string) {
	switch {
	case noPayments:
		risks = append(risks, "no payment history on record")
		recs = append(recs, "confirm billing setup and verify the first charge goes through")
	case p == PaymentCritical:
		risks = append(risks, "payment failure rate above 20%")
		recs = append(recs, "review the saved payment method and retry failed charges")
	case p == PaymentWarning:
		risks = append(risks, "elevated payment failure rate")
		recs = append(recs, "contact the campus to update billing details before the next cycle")
	}

	switch u {
	case usage.BandInactive:
		risks = append(risks, "platform usage is inactive")
		recs = append(recs, "schedule an adoption call to re-activate the campus")
	case usage.BandLow:
		risks = append(risks, "platform usage is low")
		recs = append(recs, "share onboarding material to increase day-to-day usage")
	}

	switch e {
	case EngagementLow:
		risks = append(risks, "little content activity this month")
		recs = append(recs, "encourage the campus to publish posts and open appointment slots")
	case EngagementMedium:
		risks = append(risks, "content activity is below target this month")
		recs = append(recs, "suggest campaigns that drive posts and appointments")
	}

	if young {
		risks = append(risks, "subscription is less than 30 days old")
		recs = append(recs, "run an onboarding check-in during the first month")
	}

	if len(recs) == 0 {
		recs = append(recs, "subscription health looks good, no action needed")
	}
	return risks, recs
}
