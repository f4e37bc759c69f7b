package plan

import "slices"

// Comparison contains the differences between two plans.
// Used to validate downgrades and communicate changes before a plan switch.
type Comparison struct {
	NewFeatures      []Feature
	LostFeatures     []Feature
	RaisedCeilings   map[Resource]CeilingChange
	LoweredCeilings  map[Resource]CeilingChange
	NewResources     map[Resource]int64
	RemovedResources map[Resource]int64
}

// CeilingChange represents a change in a resource ceiling.
type CeilingChange struct {
	From int64
	To   int64
}

// HasLoweredCeilings reports whether any ceilings shrink when moving to the
// target plan. Callers use this to warn about overage before a downgrade.
func (c *Comparison) HasLoweredCeilings() bool {
	return len(c.LoweredCeilings) > 0 || len(c.RemovedResources) > 0
}

// Compare returns the differences between the current and target plans.
func Compare(current, target *Plan) *Comparison {
	if current == nil || target == nil {
		return nil
	}

	cmp := &Comparison{
		NewFeatures:      make([]Feature, 0),
		LostFeatures:     make([]Feature, 0),
		RaisedCeilings:   make(map[Resource]CeilingChange),
		LoweredCeilings:  make(map[Resource]CeilingChange),
		NewResources:     make(map[Resource]int64),
		RemovedResources: make(map[Resource]int64),
	}

	for _, f := range target.Features {
		if !slices.Contains(current.Features, f) {
			cmp.NewFeatures = append(cmp.NewFeatures, f)
		}
	}
	for _, f := range current.Features {
		if !slices.Contains(target.Features, f) {
			cmp.LostFeatures = append(cmp.LostFeatures, f)
		}
	}

	for res, targetCeiling := range target.Ceilings {
		currentCeiling, exists := current.Ceilings[res]
		if !exists {
			cmp.NewResources[res] = targetCeiling
			continue
		}
		if targetCeiling == currentCeiling {
			continue
		}

		change := CeilingChange{From: currentCeiling, To: targetCeiling}

		// Unlimited-to-limited counts as a decrease so callers never lose
		// unlimited access without a warning.
		switch {
		case currentCeiling == Unlimited:
			cmp.LoweredCeilings[res] = change
		case targetCeiling == Unlimited:
			cmp.RaisedCeilings[res] = change
		case targetCeiling > currentCeiling:
			cmp.RaisedCeilings[res] = change
		default:
			cmp.LoweredCeilings[res] = change
		}
	}

	for res, currentCeiling := range current.Ceilings {
		if _, exists := target.Ceilings[res]; !exists {
			cmp.RemovedResources[res] = currentCeiling
		}
	}

	return cmp
}
