package usage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/plan"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/subscription"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/usage"
)

func meteredPlan() *plan.Plan {
	return &plan.Plan{
		ID:   "starter_monthly",
		Name: "Starter",
		Ceilings: map[plan.Resource]int64{
			plan.ResourceSchools:             10,
			plan.ResourceUsers:               20,
			plan.ResourceMonthlyAppointments: 100,
			plan.ResourceGalleryItems:        50,
			plan.ResourceMonthlyPosts:        20,
			plan.ResourceStorage:             1, // 1 GB = 1024 MB
		},
	}
}

func TestPercentages(t *testing.T) {
	t.Parallel()

	t.Run("bounded between 0 and 100", func(t *testing.T) {
		t.Parallel()

		counters := subscription.UsageCounters{
			Schools:   9,
			Users:     40, // double the ceiling
			StorageMB: 512,
		}
		report := usage.Measure(counters, meteredPlan())

		assert.InDelta(t, 90, report.Resources[plan.ResourceSchools].Percent, 1e-9)
		assert.InDelta(t, 100, report.Resources[plan.ResourceUsers].Percent, 1e-9, "overage caps at 100")
		assert.InDelta(t, 50, report.Resources[plan.ResourceStorage].Percent, 1e-9, "storage ceiling converts GB to MB")
	})

	t.Run("unlimited ceiling yields zero percent", func(t *testing.T) {
		t.Parallel()

		p := meteredPlan()
		p.Ceilings[plan.ResourceUsers] = plan.Unlimited
		report := usage.Measure(subscription.UsageCounters{Users: 100000}, p)

		assert.Zero(t, report.Resources[plan.ResourceUsers].Percent)
	})

	t.Run("missing plan treats everything as unlimited", func(t *testing.T) {
		t.Parallel()

		report := usage.Measure(subscription.UsageCounters{Schools: 500, Users: 500}, nil)

		for _, res := range plan.Resources {
			assert.Zero(t, report.Resources[res].Percent, string(res))
			assert.Equal(t, plan.Unlimited, report.Resources[res].Limit, string(res))
		}
		assert.Empty(t, report.Warnings)
		assert.Empty(t, report.Exceeded)
		assert.Equal(t, usage.BandInactive, report.Band)
	})

	t.Run("zero ceiling", func(t *testing.T) {
		t.Parallel()

		p := meteredPlan()
		p.Ceilings[plan.ResourceGalleryItems] = 0

		report := usage.Measure(subscription.UsageCounters{GalleryItems: 1}, p)
		assert.InDelta(t, 100, report.Resources[plan.ResourceGalleryItems].Percent, 1e-9)

		report = usage.Measure(subscription.UsageCounters{}, p)
		assert.Zero(t, report.Resources[plan.ResourceGalleryItems].Percent)
	})
}

func TestWarningAndExceededLists(t *testing.T) {
	t.Parallel()

	t.Run("90 percent is a warning, not exceeded", func(t *testing.T) {
		t.Parallel()

		report := usage.Measure(subscription.UsageCounters{Schools: 9}, meteredPlan())

		assert.Contains(t, report.Warnings, plan.ResourceSchools)
		assert.NotContains(t, report.Exceeded, plan.ResourceSchools)
	})

	t.Run("exactly at ceiling is exceeded", func(t *testing.T) {
		t.Parallel()

		report := usage.Measure(subscription.UsageCounters{Schools: 10}, meteredPlan())

		assert.Contains(t, report.Exceeded, plan.ResourceSchools)
		assert.NotContains(t, report.Warnings, plan.ResourceSchools)
	})

	t.Run("all simultaneous warnings reported", func(t *testing.T) {
		t.Parallel()

		counters := subscription.UsageCounters{
			Schools:      9,   // 90%
			Users:        17,  // 85%
			GalleryItems: 45,  // 90%
			StorageMB:    900, // ~88%
		}
		report := usage.Measure(counters, meteredPlan())

		require.Len(t, report.Warnings, 4)
	})
}

func TestBand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		counters subscription.UsageCounters
		want     usage.Band
	}{
		{
			name:     "active above 60 mean",
			counters: subscription.UsageCounters{Schools: 8, Users: 16, StorageMB: 700},
			want:     usage.BandActive,
		},
		{
			name:     "moderate above 30 mean",
			counters: subscription.UsageCounters{Schools: 4, Users: 8, StorageMB: 400},
			want:     usage.BandModerate,
		},
		{
			name:     "low above 10 mean",
			counters: subscription.UsageCounters{Schools: 2, Users: 3, StorageMB: 100},
			want:     usage.BandLow,
		},
		{
			name:     "inactive at 5 percent",
			counters: subscription.UsageCounters{Schools: 1, Users: 1, StorageMB: 0},
			want:     usage.BandInactive,
		},
		{
			name: "monthly counters do not affect the band",
			counters: subscription.UsageCounters{
				MonthlyAppointments: 100,
				MonthlyPosts:        20,
			},
			want: usage.BandInactive,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			report := usage.Measure(tc.counters, meteredPlan())
			assert.Equal(t, tc.want, report.Band)
		})
	}
}

func TestCheckPlanChange(t *testing.T) {
	t.Parallel()

	smaller := &plan.Plan{
		ID:   "solo_monthly",
		Name: "Solo",
		Ceilings: map[plan.Resource]int64{
			plan.ResourceSchools:      1,
			plan.ResourceUsers:        5,
			plan.ResourceStorage:      1,
			plan.ResourceGalleryItems: 10,
		},
	}

	t.Run("downgrade with overage is blocked", func(t *testing.T) {
		t.Parallel()

		counters := subscription.UsageCounters{Schools: 4, Users: 3, StorageMB: 100}
		check := usage.CheckPlanChange(counters, meteredPlan(), smaller)

		assert.True(t, check.IsDowngrade())
		assert.ElementsMatch(t, []plan.Resource{plan.ResourceSchools}, check.Blocked)
	})

	t.Run("downgrade within new ceilings only warns", func(t *testing.T) {
		t.Parallel()

		counters := subscription.UsageCounters{Schools: 1, Users: 4, StorageMB: 100}
		check := usage.CheckPlanChange(counters, meteredPlan(), smaller)

		assert.True(t, check.IsDowngrade())
		assert.Empty(t, check.Blocked)
	})

	t.Run("upgrade passes clean", func(t *testing.T) {
		t.Parallel()

		counters := subscription.UsageCounters{Schools: 9, Users: 19, StorageMB: 1000}
		check := usage.CheckPlanChange(counters, smaller, meteredPlan())

		assert.False(t, check.IsDowngrade())
		assert.Empty(t, check.Blocked)
	})

	t.Run("unresolved plan reference degrades to unlimited", func(t *testing.T) {
		t.Parallel()

		check := usage.CheckPlanChange(subscription.UsageCounters{Schools: 500}, meteredPlan(), nil)

		assert.Nil(t, check.Comparison)
		assert.False(t, check.IsDowngrade())
		assert.Empty(t, check.Blocked)
	})
}

func TestAdvisory(t *testing.T) {
	t.Parallel()

	t.Run("silent under thresholds", func(t *testing.T) {
		t.Parallel()

		report := usage.Measure(subscription.UsageCounters{Schools: 5}, meteredPlan())
		assert.Empty(t, report.Advisory)
	})

	t.Run("two warnings stay silent", func(t *testing.T) {
		t.Parallel()

		report := usage.Measure(subscription.UsageCounters{Schools: 9, Users: 17}, meteredPlan())
		require.Len(t, report.Warnings, 2)
		assert.Empty(t, report.Advisory)
	})

	t.Run("more than two warnings advise an upgrade", func(t *testing.T) {
		t.Parallel()

		report := usage.Measure(subscription.UsageCounters{Schools: 9, Users: 17, GalleryItems: 45}, meteredPlan())
		require.Len(t, report.Warnings, 3)
		assert.NotEmpty(t, report.Advisory)
	})

	t.Run("any exceeded resource advises an upgrade", func(t *testing.T) {
		t.Parallel()

		report := usage.Measure(subscription.UsageCounters{Schools: 12}, meteredPlan())
		require.NotEmpty(t, report.Exceeded)
		assert.Contains(t, report.Advisory, "schools")
	})
}
