package plan

import (
	"context"
	"errors"
	"maps"
	"slices"
)

// Source defines how plans are loaded into a catalog.
type Source interface {
	Load(ctx context.Context) (map[string]Plan, error)
}

// Catalog holds an immutable set of plans keyed by ID.
// The backing map is never modified after construction, so lookups are safe
// for concurrent use without locking.
type Catalog struct {
	plans map[string]Plan
}

// NewCatalog loads and validates plans from the given source.
func NewCatalog(ctx context.Context, src Source) (*Catalog, error) {
	if src == nil {
		panic("plan: Source is required")
	}

	plans, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}
	if len(plans) == 0 {
		return nil, ErrNoPlansConfigured
	}

	if err := validatePlans(plans); err != nil {
		return nil, err
	}

	return &Catalog{plans: plans}, nil
}

// Get returns the plan with the given ID. The returned plan is a copy;
// mutating it does not affect the catalog.
func (c *Catalog) Get(id string) (Plan, error) {
	p, ok := c.plans[id]
	if !ok {
		return Plan{}, ErrPlanNotFound
	}
	return clonePlan(p), nil
}

// Lookup is like Get but returns nil instead of an error, matching the
// degraded-mode contract of the usage meter: a missing plan means every
// ceiling is treated as unlimited, not a hard failure.
func (c *Catalog) Lookup(id string) *Plan {
	p, ok := c.plans[id]
	if !ok {
		return nil
	}
	cp := clonePlan(p)
	return &cp
}

// List returns all plans sorted by ID.
func (c *Catalog) List() []Plan {
	out := make([]Plan, 0, len(c.plans))
	for _, id := range slices.Sorted(maps.Keys(c.plans)) {
		out = append(out, clonePlan(c.plans[id]))
	}
	return out
}

// PublicPlans returns the plans available for self-service signup, sorted by ID.
func (c *Catalog) PublicPlans() []Plan {
	out := make([]Plan, 0, len(c.plans))
	for _, id := range slices.Sorted(maps.Keys(c.plans)) {
		if c.plans[id].Public {
			out = append(out, clonePlan(c.plans[id]))
		}
	}
	return out
}

func clonePlan(p Plan) Plan {
	p.Ceilings = maps.Clone(p.Ceilings)
	p.Features = slices.Clone(p.Features)
	return p
}

func validatePlans(plans map[string]Plan) error {
	for id, p := range plans {
		if id == "" || p.ID == "" {
			return errors.Join(ErrInvalidPlanConfiguration, errors.New("plan ID cannot be empty"))
		}
		if p.ID != id {
			return errors.Join(ErrInvalidPlanConfiguration, errors.New("plan map key must match plan ID"))
		}
		if p.Name == "" {
			return errors.Join(ErrInvalidPlanConfiguration, errors.New("plan name cannot be empty: "+id))
		}
		if p.TrialDays < 0 {
			return errors.Join(ErrInvalidPlanConfiguration, errors.New("trial days cannot be negative: "+id))
		}
		if p.Price.IsNegative() {
			return errors.Join(ErrInvalidPlanConfiguration, errors.New("plan price cannot be negative: "+id))
		}
		for res, ceiling := range p.Ceilings {
			if ceiling < Unlimited {
				return errors.Join(ErrInvalidPlanConfiguration,
					errors.New("invalid ceiling for "+string(res)+" in plan "+id))
			}
		}
	}
	return nil
}
