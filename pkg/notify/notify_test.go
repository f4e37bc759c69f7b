package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/billing"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/health"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/money"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/notify"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/usage"
)

func TestFromHealthReport(t *testing.T) {
	t.Parallel()

	t.Run("healthy report produces no notice", func(t *testing.T) {
		t.Parallel()
		r := health.Report{
			OverallScore:    90,
			Band:            health.BandExcellent,
			ChurnRisk:       health.ChurnLow,
			Recommendations: []string{"subscription health looks good, no action needed"},
		}
		assert.Nil(t, notify.FromHealthReport("Riverside Academy", "staff@example.com", r))
	})

	t.Run("risky report escalates severity", func(t *testing.T) {
		t.Parallel()
		r := health.Report{
			OverallScore:    35,
			Band:            health.BandCritical,
			UsageBand:       usage.BandInactive,
			ChurnRisk:       health.ChurnCritical,
			RiskFactors:     []string{"platform usage is inactive"},
			Recommendations: []string{"schedule an adoption call to re-activate the campus"},
		}

		n := notify.FromHealthReport("Riverside Academy", "staff@example.com", r)
		require.NotNil(t, n)
		assert.Equal(t, notify.SeverityCritical, n.Severity)
		assert.Contains(t, n.Subject, "Riverside Academy")
		assert.Equal(t, "staff@example.com", n.Recipient)
		assert.Contains(t, n.Lines, "Risk: platform usage is inactive")
		assert.Contains(t, n.Lines, "Recommended: schedule an adoption call to re-activate the campus")
	})

	t.Run("moderate risk stays warning", func(t *testing.T) {
		t.Parallel()
		r := health.Report{
			ChurnRisk:   health.ChurnMedium,
			RiskFactors: []string{"elevated payment failure rate"},
		}
		n := notify.FromHealthReport("Riverside Academy", "staff@example.com", r)
		require.NotNil(t, n)
		assert.Equal(t, notify.SeverityWarning, n.Severity)
	})
}

func TestFromBillingSummary(t *testing.T) {
	t.Parallel()

	t.Run("no overdue means no notice", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, notify.FromBillingSummary("Riverside Academy", "staff@example.com", billing.Summary{}))
	})

	t.Run("overdue alert becomes warning notice", func(t *testing.T) {
		t.Parallel()
		outstanding, err := money.FromString("99.80", "USD")
		require.NoError(t, err)

		s := billing.Summary{
			OverdueCount:     2,
			OverdueAlert:     "2 overdue invoice(s) totalling 99.80 USD require attention",
			TotalOutstanding: outstanding,
			DataWarnings:     []string{"invoice INV-7 totals are inconsistent"},
		}

		n := notify.FromBillingSummary("Riverside Academy", "staff@example.com", s)
		require.NotNil(t, n)
		assert.Equal(t, notify.SeverityWarning, n.Severity)
		assert.Equal(t, s.OverdueAlert, n.Lines[0])
		assert.Contains(t, n.Lines, "Data warning: invoice INV-7 totals are inconsistent")
	})
}

type recordingDispatcher struct {
	notices []notify.Notice
	err     error
}

func (r *recordingDispatcher) Dispatch(_ context.Context, n notify.Notice) error {
	if r.err != nil {
		return r.err
	}
	r.notices = append(r.notices, n)
	return nil
}

func TestMultiDispatcher_BestEffort(t *testing.T) {
	t.Parallel()

	failing := &recordingDispatcher{err: errors.New("smtp down")}
	working := &recordingDispatcher{}

	m := notify.NewMultiDispatcher([]notify.Dispatcher{failing, working})
	err := m.Dispatch(t.Context(), notify.Notice{Subject: "test", Severity: notify.SeverityInfo})

	// A failing channel never fails the fan-out.
	require.NoError(t, err)
	require.Len(t, working.notices, 1)
	assert.Equal(t, "test", working.notices[0].Subject)
}

func TestNewPostmarkDispatcher_RequiresTokens(t *testing.T) {
	t.Parallel()

	_, err := notify.NewPostmarkDispatcher(notify.PostmarkConfig{})
	require.ErrorIs(t, err, notify.ErrInvalidConfig)

	_, err = notify.NewPostmarkDispatcher(notify.PostmarkConfig{
		ServerToken:  "srv",
		AccountToken: "acc",
		SenderEmail:  "billing@example.com",
	})
	require.NoError(t, err)
}
