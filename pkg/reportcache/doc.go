// Package reportcache caches computed health reports and billing summaries in
// Redis. Both are pure functions over payment and invoice collections, but
// expensive ones; the cache keeps hot request paths from re-scanning
// collections on every render.
package reportcache
