// Package health scores subscription health on a 0-100 scale from three
// independent signals: payment reliability, platform usage and current-month
// engagement. The score maps to a qualitative band and an additive churn-risk
// heuristic with a fixed probability table. All thresholds and score tables
// are contractual; downstream dunning triggers are tuned against them.
package health
