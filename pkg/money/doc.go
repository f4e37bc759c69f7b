// Package money provides fixed-precision monetary values for subscription
// billing arithmetic.
//
// All amounts are decimal.Decimal values paired with an ISO 4217 currency
// code. Intermediate calculations (proration ratios, discount application)
// keep full precision; rounding to the currency's minor unit happens once,
// at the edge, with half-up rounding so financial amounts are never rounded
// down implicitly.
//
// Installment splitting is exact by construction: the last installment
// absorbs any rounding remainder, so the sum of the parts always equals the
// rounded total.
//
//	total := money.New(decimal.NewFromInt(1200), "USD")
//	parts, err := total.Split(12)
//	// sum(parts) == 1200.00 exactly
//
// Formatting via Format is a presentation concern layered on top of the
// computed values and is safe to ignore for accounting purposes.
package money
