package notify

import (
	"fmt"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/billing"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/health"
)

// Severity classifies how urgently staff should act on a notice.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Notice is a renderable message for staff. The billing core produces the
// text; dispatchers decide the channel.
type Notice struct {
	Severity  Severity
	Subject   string
	Lines     []string
	Recipient string
	Tag       string // channel-specific grouping tag, e.g. for email analytics
}

// FromHealthReport builds a notice from a health evaluation. Returns nil when
// the report carries no risk factors; healthy subscriptions generate no mail.
func FromHealthReport(campusName, recipient string, r health.Report) *Notice {
	if len(r.RiskFactors) == 0 {
		return nil
	}

	severity := SeverityWarning
	if r.ChurnRisk == health.ChurnHigh || r.ChurnRisk == health.ChurnCritical {
		severity = SeverityCritical
	}

	lines := make([]string, 0, len(r.RiskFactors)+len(r.Recommendations)+1)
	lines = append(lines, fmt.Sprintf("Health score %d (%s), churn risk %s.", r.OverallScore, r.Band, r.ChurnRisk))
	for _, rf := range r.RiskFactors {
		lines = append(lines, "Risk: "+rf)
	}
	for _, rec := range r.Recommendations {
		lines = append(lines, "Recommended: "+rec)
	}

	return &Notice{
		Severity:  severity,
		Subject:   fmt.Sprintf("Subscription health alert: %s", campusName),
		Lines:     lines,
		Recipient: recipient,
		Tag:       "subscription-health",
	}
}

// FromBillingSummary builds a notice from a billing summary's overdue alert.
// Returns nil when nothing is overdue.
func FromBillingSummary(campusName, recipient string, s billing.Summary) *Notice {
	if s.OverdueAlert == "" {
		return nil
	}

	lines := []string{s.OverdueAlert}
	lines = append(lines, fmt.Sprintf("Outstanding balance: %s.", s.TotalOutstanding))
	for _, w := range s.DataWarnings {
		lines = append(lines, "Data warning: "+w)
	}

	return &Notice{
		Severity:  SeverityWarning,
		Subject:   fmt.Sprintf("Overdue invoices: %s", campusName),
		Lines:     lines,
		Recipient: recipient,
		Tag:       "billing-overdue",
	}
}
