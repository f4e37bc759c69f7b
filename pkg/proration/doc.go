// Package proration computes charge and refund amounts for mid-cycle plan
// changes and cancellations, plus installment schedules for new
// subscriptions.
//
// All amounts are fixed-precision decimals rounded half-up to the currency's
// minor unit, and only at the edge: the remaining-days ratio is applied at
// full precision first. The net amount of a quote may be negative, which
// means a refund is due, not an error.
//
// Calls are idempotent pure functions and safe to retry. Invalid inputs
// (zero cycle length, missing prices) fail with ErrInvalidProrationInput
// rather than dividing by zero or proceeding with a garbage result.
package proration
