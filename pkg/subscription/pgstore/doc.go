// Package pgstore provides PostgreSQL-backed implementations of the
// subscription, payment and invoice stores. Monetary amounts are stored as
// numeric columns alongside an ISO currency code; usage counters, billing
// contacts and invoice line items are stored as jsonb snapshots.
package pgstore
