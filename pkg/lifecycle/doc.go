// Package lifecycle models the subscription status graph and the predicates
// external orchestrators use to drive it. The machine is table-driven and
// stateless: it resolves what the next status would be for an event, while
// transition execution and persistence stay with the caller (billing-cycle
// job, webhook consumer, admin action).
package lifecycle
