// Package subscription defines the billing domain model: the Subscription
// aggregate root with its usage counters and billing-contact snapshot, plus
// the Payment and Invoice records it owns.
//
// The aggregate exposes a controlled mutation API instead of raw field
// access: usage deltas clamp at zero, billing-period rollover resets exactly
// the two monthly counters, refunds can never exceed the original payment
// amount, and terminal payments are immutable except for their refund fields.
// Overdue is always derived from the due date and status rather than stored,
// so it can't go stale.
//
// All computations downstream of this package (usage metering, proration,
// billing summaries, health scoring) are pure functions over snapshots of
// these types. The package performs no I/O; persistence sits behind the
// Store, PaymentStore and InvoiceStore interfaces, with in-memory
// implementations here and a PostgreSQL implementation in the pgstore
// subpackage.
//
// Concurrent counter increments on the same subscription must be serialized
// upstream (row-level lock or optimistic version check); the aggregate
// assumes it receives already-serialized values.
package subscription
