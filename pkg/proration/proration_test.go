package proration_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/money"
	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/proration"
)

func usd(v string) money.Money {
	return money.New(decimal.RequireFromString(v), "USD")
}

func TestDaysRemaining(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 180, proration.DaysRemaining(now, now.AddDate(0, 0, 180)))
	assert.Equal(t, 0, proration.DaysRemaining(now, now), "cycle ending now has zero days")
	assert.Equal(t, 0, proration.DaysRemaining(now, now.AddDate(0, 0, -10)), "ended cycle floors at zero")
	assert.Equal(t, 0, proration.DaysRemaining(now, now.Add(12*time.Hour)), "partial day floors down")
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	t.Run("upgrade mid-cycle", func(t *testing.T) {
		t.Parallel()

		// Plan A 1200/year -> Plan B 2400/year with 180 of 365 days left.
		quote, err := proration.Calculate(usd("1200"), usd("2400"), 365, 180)
		require.NoError(t, err)

		assert.Equal(t, 180, quote.DaysRemaining)
		assert.Equal(t, "591.78", quote.Refund.Amount.StringFixed(2))
		assert.Equal(t, "1183.56", quote.Charge.Amount.StringFixed(2))
		assert.Equal(t, "591.78", quote.Net.Amount.StringFixed(2))
	})

	t.Run("downgrade yields negative net", func(t *testing.T) {
		t.Parallel()

		quote, err := proration.Calculate(usd("2400"), usd("1200"), 365, 180)
		require.NoError(t, err)

		assert.True(t, quote.Net.IsNegative(), "negative net means refund due")
		assert.Equal(t, "-591.78", quote.Net.Amount.StringFixed(2))
	})

	t.Run("zero days remaining prorates to zero", func(t *testing.T) {
		t.Parallel()

		quote, err := proration.Calculate(usd("1200"), usd("2400"), 365, 0)
		require.NoError(t, err)

		assert.True(t, quote.Refund.IsZero())
		assert.True(t, quote.Charge.IsZero())
		assert.True(t, quote.Net.IsZero())
	})

	t.Run("symmetry: upgrade then immediate downgrade nets to zero", func(t *testing.T) {
		t.Parallel()

		up, err := proration.Calculate(usd("1200"), usd("2400"), 365, 180)
		require.NoError(t, err)
		down, err := proration.Calculate(usd("2400"), usd("1200"), 365, 180)
		require.NoError(t, err)

		sum, err := up.Net.Add(down.Net)
		require.NoError(t, err)
		assert.True(t, sum.Amount.Abs().LessThanOrEqual(decimal.RequireFromString("0.01")),
			"round trip nets to at most one rounding unit, got %s", sum.Amount)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		t.Parallel()

		_, err := proration.Calculate(usd("1200"), usd("2400"), 0, 10)
		assert.ErrorIs(t, err, proration.ErrInvalidProrationInput)

		_, err = proration.Calculate(money.Money{}, usd("2400"), 365, 10)
		assert.ErrorIs(t, err, proration.ErrInvalidProrationInput)

		_, err = proration.Calculate(usd("1200"), money.Money{}, 365, 10)
		assert.ErrorIs(t, err, proration.ErrInvalidProrationInput)

		_, err = proration.Calculate(usd("1200"), money.New(decimal.NewFromInt(900), "EUR"), 365, 10)
		assert.ErrorIs(t, err, proration.ErrInvalidProrationInput)
	})

	t.Run("negative days clamp to zero", func(t *testing.T) {
		t.Parallel()

		quote, err := proration.Calculate(usd("1200"), usd("2400"), 365, -5)
		require.NoError(t, err)
		assert.Zero(t, quote.DaysRemaining)
		assert.True(t, quote.Net.IsZero())
	})
}

func TestCancellationRefund(t *testing.T) {
	t.Parallel()

	refund, err := proration.CancellationRefund(usd("1200"), 365, 180)
	require.NoError(t, err)
	assert.Equal(t, "591.78", refund.Amount.StringFixed(2))

	_, err = proration.CancellationRefund(usd("1200"), 0, 180)
	assert.ErrorIs(t, err, proration.ErrInvalidProrationInput)
}

func TestInstallments(t *testing.T) {
	t.Parallel()

	t.Run("sum equals total exactly", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			total string
			count int
		}{
			{"1200", 12},
			{"1250.75", 9},
			{"100", 3},
			{"2399.99", 6},
		}

		for _, tc := range cases {
			parts, err := proration.Installments(usd(tc.total), tc.count)
			require.NoError(t, err)
			require.Len(t, parts, tc.count)

			sum := decimal.Zero
			for _, p := range parts {
				sum = sum.Add(p.Amount)
			}
			assert.True(t, sum.Equal(decimal.RequireFromString(tc.total)),
				"total %s in %d parts: sum %s", tc.total, tc.count, sum)
		}
	})

	t.Run("invalid inputs", func(t *testing.T) {
		t.Parallel()

		_, err := proration.Installments(usd("1200"), 0)
		assert.ErrorIs(t, err, proration.ErrInvalidProrationInput)
		assert.ErrorIs(t, err, money.ErrInvalidInstallmentCount)

		_, err = proration.Installments(money.Money{}, 3)
		assert.ErrorIs(t, err, proration.ErrInvalidProrationInput)
	})
}
