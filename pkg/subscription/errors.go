package subscription

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrInvoiceNotFound      = errors.New("invoice not found")

	ErrPaymentImmutable    = errors.New("payment is in a terminal state")
	ErrRefundNotAllowed    = errors.New("refund requires a completed payment")
	ErrRefundExceedsAmount = errors.New("refund amount exceeds payment amount")

	ErrInconsistentInvoiceTotals = errors.New("invoice totals are inconsistent")
)
