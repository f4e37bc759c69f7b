// Package billing aggregates a subscription's payments and invoices into a
// point-in-time summary: recent activity, lifetime totals, overdue exposure
// and saved payment method. Summaries are best-effort over whatever data is
// available; inconsistent records degrade to warnings instead of failures.
package billing
