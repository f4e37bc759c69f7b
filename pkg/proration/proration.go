package proration

import (
	"errors"
	"time"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/money"
)

// ErrInvalidProrationInput marks proration calls with a zero cycle length or
// missing plan prices. Fatal to that call: the caller must not proceed with
// the plan change.
var ErrInvalidProrationInput = errors.New("cannot calculate proration for this period")

// Quote is the result of prorating a mid-cycle plan change.
type Quote struct {
	DaysRemaining int

	// Refund is the unused portion of the old plan's price for the remaining
	// days; Charge is the owed portion of the new plan's price for the same
	// days. Both are half-up rounded to the currency's minor unit.
	Refund money.Money
	Charge money.Money

	// Net is Charge - Refund. Negative means a refund is due to the
	// subscriber (a downgrade after heavy pre-payment), not an error.
	Net money.Money
}

// DaysRemaining returns the whole days between now and the cycle end,
// floored at zero. A cycle that has already ended prorates to zero.
func DaysRemaining(now, periodEnd time.Time) int {
	if !periodEnd.After(now) {
		return 0
	}
	return int(periodEnd.Sub(now).Hours() / 24)
}

// Calculate prorates a plan change: the refund for the unused remainder of
// the old plan and the charge for the same remainder of the new plan.
func Calculate(oldPrice, newPrice money.Money, cycleLengthDays, daysRemaining int) (Quote, error) {
	if cycleLengthDays <= 0 {
		return Quote{}, errors.Join(ErrInvalidProrationInput, errors.New("cycle length must be positive"))
	}
	if oldPrice.IsMissing() || newPrice.IsMissing() {
		return Quote{}, errors.Join(ErrInvalidProrationInput, errors.New("plan prices are required"))
	}
	if oldPrice.Currency != newPrice.Currency {
		return Quote{}, errors.Join(ErrInvalidProrationInput, money.ErrCurrencyMismatch)
	}
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	refund := oldPrice.MulRatio(int64(daysRemaining), int64(cycleLengthDays)).RoundToMinorUnit()
	charge := newPrice.MulRatio(int64(daysRemaining), int64(cycleLengthDays)).RoundToMinorUnit()

	// Both operands share a currency; Sub cannot fail here.
	net, _ := charge.Sub(refund)

	return Quote{
		DaysRemaining: daysRemaining,
		Refund:        refund,
		Charge:        charge,
		Net:           net,
	}, nil
}

// CancellationRefund returns the refund due when a subscription is cancelled
// mid-cycle: the unused portion of the current price for the remaining days.
func CancellationRefund(price money.Money, cycleLengthDays, daysRemaining int) (money.Money, error) {
	quote, err := Calculate(price, money.Zero(price.Currency), cycleLengthDays, daysRemaining)
	if err != nil {
		return money.Money{}, err
	}
	return quote.Refund, nil
}

// Installments splits a total (typically the annual cost of a new
// subscription) into count equal parts, half-up rounded to the minor unit.
// The last installment absorbs the rounding remainder so the parts sum to the
// total exactly; the first part doubles as the down payment.
func Installments(total money.Money, count int) ([]money.Money, error) {
	if total.IsMissing() {
		return nil, errors.Join(ErrInvalidProrationInput, errors.New("total amount is required"))
	}

	parts, err := total.Split(count)
	if err != nil {
		return nil, errors.Join(ErrInvalidProrationInput, err)
	}
	return parts, nil
}
