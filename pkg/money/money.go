package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money represents a monetary amount in a single currency.
// Amounts are fixed-precision decimals; binary floats are never used for
// currency values, only for display conversion.
type Money struct {
	Amount   decimal.Decimal
	Currency string // ISO 4217 currency code
}

// New creates a Money value from a decimal amount and currency code.
func New(amount decimal.Decimal, currencyCode string) Money {
	return Money{Amount: amount, Currency: currencyCode}
}

// FromString parses a decimal string into a Money value.
func FromString(amount, currencyCode string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, err
	}
	return Money{Amount: d, Currency: currencyCode}, nil
}

// FromMinorUnits converts an amount expressed in the currency's minor units
// (cents for USD) into a Money value. Payment gateways report totals this way.
func FromMinorUnits(units int64, currencyCode string) Money {
	return Money{Amount: decimal.New(units, -minorUnitScale(currencyCode)), Currency: currencyCode}
}

// Zero returns a zero amount in the given currency.
func Zero(currencyCode string) Money {
	return Money{Amount: decimal.Zero, Currency: currencyCode}
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// IsMissing reports whether the value carries no usable amount,
// i.e. the zero value of the type.
func (m Money) IsMissing() bool {
	return m.Currency == "" && m.Amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// Add returns m + other. Both values must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Sub returns m - other. The result may be negative; callers decide whether
// a negative amount means a refund or an error.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}, nil
}

// MulRatio returns m scaled by num/den without rounding. Intermediate
// amounts stay at full precision; rounding happens once, at the edge,
// via RoundToMinorUnit.
func (m Money) MulRatio(num, den int64) Money {
	scaled := m.Amount.Mul(decimal.NewFromInt(num)).Div(decimal.NewFromInt(den))
	return Money{Amount: scaled, Currency: m.Currency}
}

// RoundToMinorUnit rounds the amount to the currency's minor unit using
// half-up rounding. Unknown currencies round to two decimal places.
func (m Money) RoundToMinorUnit() Money {
	return Money{Amount: m.Amount.Round(minorUnitScale(m.Currency)), Currency: m.Currency}
}

// Split divides the amount into n installments rounded to the minor unit.
// The last installment absorbs the rounding remainder so the parts always
// sum to the rounded total exactly. The first part doubles as the down
// payment for new subscriptions.
func (m Money) Split(n int) ([]Money, error) {
	if n <= 0 {
		return nil, ErrInvalidInstallmentCount
	}

	total := m.RoundToMinorUnit()
	base := total.Amount.Div(decimal.NewFromInt(int64(n))).Round(minorUnitScale(m.Currency))

	parts := make([]Money, n)
	running := decimal.Zero
	for i := range n - 1 {
		parts[i] = Money{Amount: base, Currency: m.Currency}
		running = running.Add(base)
	}
	parts[n-1] = Money{Amount: total.Amount.Sub(running), Currency: m.Currency}

	return parts, nil
}

// Format renders the amount for display using CLDR currency data.
// This is a presentation helper; the float conversion is acceptable here
// because the value is already rounded and never fed back into arithmetic.
func (m Money) Format() string {
	unit, err := currency.ParseISO(m.Currency)
	if err != nil {
		return m.Amount.StringFixed(2) + " " + m.Currency
	}
	f, _ := m.RoundToMinorUnit().Amount.Float64()
	return message.NewPrinter(language.English).Sprint(currency.Symbol(unit.Amount(f)))
}

func (m Money) String() string {
	return m.Amount.StringFixed(minorUnitScale(m.Currency)) + " " + m.Currency
}

// minorUnitScale returns the number of decimal places for a currency's
// minor unit (2 for USD, 0 for JPY). Falls back to 2 for unknown codes.
func minorUnitScale(currencyCode string) int32 {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return 2
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}
