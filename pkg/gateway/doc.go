// Package gateway normalizes payment provider webhooks into payment events
// the billing core can consume. The core never initiates charges; it only
// reacts to completed, failed and refunded outcomes reported by the provider.
package gateway
