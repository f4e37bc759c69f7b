// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool with
// startup retries, goose schema migrations routed through slog, a health
// probe, and error classifiers for the SQLSTATE codes the billing stores care
// about.
package pg
