package plan

import "errors"

var (
	ErrPlanNotFound             = errors.New("subscription plan not found")
	ErrNoPlansConfigured        = errors.New("no subscription plans configured")
	ErrInvalidPlanConfiguration = errors.New("invalid subscription plan configuration")
	ErrFailedToLoadPlans        = errors.New("failed to load subscription plans")
)
