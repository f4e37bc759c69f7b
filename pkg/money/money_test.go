package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/money"
)

func TestMoneyArithmetic(t *testing.T) {
	t.Parallel()

	t.Run("add and sub require matching currency", func(t *testing.T) {
		t.Parallel()

		usd := money.New(decimal.NewFromInt(10), "USD")
		eur := money.New(decimal.NewFromInt(10), "EUR")

		_, err := usd.Add(eur)
		assert.ErrorIs(t, err, money.ErrCurrencyMismatch)

		sum, err := usd.Add(money.New(decimal.NewFromInt(5), "USD"))
		require.NoError(t, err)
		assert.True(t, sum.Amount.Equal(decimal.NewFromInt(15)))
	})

	t.Run("sub may go negative", func(t *testing.T) {
		t.Parallel()

		small := money.New(decimal.NewFromInt(3), "USD")
		big := money.New(decimal.NewFromInt(7), "USD")

		diff, err := small.Sub(big)
		require.NoError(t, err)
		assert.True(t, diff.IsNegative())
	})

	t.Run("mul ratio keeps full precision until rounding", func(t *testing.T) {
		t.Parallel()

		// 1200 * 180/365 = 591.7808... -> 591.78 after half-up rounding
		price := money.New(decimal.NewFromInt(1200), "USD")
		prorated := price.MulRatio(180, 365).RoundToMinorUnit()
		assert.Equal(t, "591.78", prorated.Amount.StringFixed(2))
	})
}

func TestRoundToMinorUnit(t *testing.T) {
	t.Parallel()

	t.Run("half up at the boundary", func(t *testing.T) {
		t.Parallel()

		m := money.New(decimal.RequireFromString("10.005"), "USD")
		assert.Equal(t, "10.01", m.RoundToMinorUnit().Amount.StringFixed(2))
	})

	t.Run("zero-decimal currency", func(t *testing.T) {
		t.Parallel()

		m := money.New(decimal.RequireFromString("1200.5"), "JPY")
		assert.Equal(t, "1201", m.RoundToMinorUnit().Amount.String())
	})

	t.Run("unknown currency falls back to two places", func(t *testing.T) {
		t.Parallel()

		m := money.New(decimal.RequireFromString("9.999"), "???")
		assert.Equal(t, "10.00", m.RoundToMinorUnit().Amount.StringFixed(2))
	})
}

func TestSplit(t *testing.T) {
	t.Parallel()

	t.Run("rejects non-positive count", func(t *testing.T) {
		t.Parallel()

		_, err := money.New(decimal.NewFromInt(100), "USD").Split(0)
		assert.ErrorIs(t, err, money.ErrInvalidInstallmentCount)

		_, err = money.New(decimal.NewFromInt(100), "USD").Split(-3)
		assert.ErrorIs(t, err, money.ErrInvalidInstallmentCount)
	})

	t.Run("sum of installments equals total exactly", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			total string
			n     int
		}{
			{"1200", 12},
			{"100", 3},
			{"999.99", 7},
			{"0.05", 4},
			{"2400", 1},
		}

		for _, tc := range cases {
			total := money.New(decimal.RequireFromString(tc.total), "USD")
			parts, err := total.Split(tc.n)
			require.NoError(t, err)
			require.Len(t, parts, tc.n)

			sum := decimal.Zero
			for _, p := range parts {
				sum = sum.Add(p.Amount)
			}
			assert.True(t, sum.Equal(total.RoundToMinorUnit().Amount),
				"total %s split %d: sum %s", tc.total, tc.n, sum)
		}
	})

	t.Run("last installment absorbs the remainder", func(t *testing.T) {
		t.Parallel()

		parts, err := money.New(decimal.NewFromInt(100), "USD").Split(3)
		require.NoError(t, err)

		assert.Equal(t, "33.33", parts[0].Amount.StringFixed(2))
		assert.Equal(t, "33.33", parts[1].Amount.StringFixed(2))
		assert.Equal(t, "33.34", parts[2].Amount.StringFixed(2))
	})
}

func TestFormat(t *testing.T) {
	t.Parallel()

	m := money.New(decimal.RequireFromString("1234.5"), "USD")
	formatted := m.Format()
	assert.Contains(t, formatted, "$")

	unknown := money.New(decimal.RequireFromString("9.5"), "???")
	assert.Equal(t, "9.50 ???", unknown.Format())
}
