// Package plan defines the subscription plan catalog: prices, billing
// intervals, trial lengths and per-resource ceilings.
//
// A Plan is leaf data with no behavior beyond lookup. Plans are immutable
// once referenced by an active subscription; publishing different terms means
// creating a new plan record, so historical subscriptions never drift.
//
// Ceilings are int64 values where -1 (Unlimited) or an absent entry means no
// limit. The storage ceiling is declared in GB while runtime counters track
// MB; StorageCeilingMB does the conversion in exactly one place.
//
// Catalogs load from a Source. Two sources ship with the package: an
// in-memory source for tests and static configuration, and a YAML file
// source:
//
//	plans:
//	  - id: starter_monthly
//	    name: Starter
//	    price: "49.90"
//	    currency: USD
//	    interval: monthly
//	    trial_days: 14
//	    ceilings:
//	      schools: 1
//	      users: 5
//	      monthly_appointments: 100
//	      gallery_items: 50
//	      monthly_posts: 20
//	      storage: 5
//	    public: true
//
// Prices in plan files are decimal strings to avoid float parsing artifacts.
package plan
