package plan

import (
	"context"
	"errors"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ceyhuntekkaya/search-for-education-parent-sub006/pkg/money"
)

// yamlPlan mirrors Plan for file-based catalogs. Prices are decimal strings
// so plan files never lose sub-unit precision through float parsing.
type yamlPlan struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Price       string           `yaml:"price"`
	Currency    string           `yaml:"currency"`
	Interval    string           `yaml:"interval"`
	TrialDays   int              `yaml:"trial_days"`
	Ceilings    map[string]int64 `yaml:"ceilings"`
	Features    []string         `yaml:"features"`
	Public      bool             `yaml:"public"`
}

type yamlSource struct {
	path string
}

// NewYAMLSource returns a Source that loads the plan catalog from a YAML file.
// The file holds a top-level `plans` list; see the package documentation for
// the expected layout.
func NewYAMLSource(path string) Source {
	return &yamlSource{path: path}
}

func (s *yamlSource) Load(ctx context.Context) (map[string]Plan, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	var doc struct {
		Plans []yamlPlan `yaml:"plans"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	plans := make(map[string]Plan, len(doc.Plans))
	for _, yp := range doc.Plans {
		p, err := yp.toPlan()
		if err != nil {
			return nil, errors.Join(ErrInvalidPlanConfiguration, err)
		}
		plans[p.ID] = p
	}
	return plans, nil
}

func (yp yamlPlan) toPlan() (Plan, error) {
	price := money.Zero(yp.Currency)
	if yp.Price != "" {
		amount, err := decimal.NewFromString(yp.Price)
		if err != nil {
			return Plan{}, errors.New("invalid price for plan " + yp.ID + ": " + yp.Price)
		}
		price = money.New(amount, yp.Currency)
	}

	interval := BillingInterval(yp.Interval)
	switch interval {
	case BillingIntervalNone, BillingIntervalMonthly, BillingIntervalAnnual:
	case "":
		interval = BillingIntervalNone
	default:
		return Plan{}, errors.New("invalid billing interval for plan " + yp.ID + ": " + yp.Interval)
	}

	ceilings := make(map[Resource]int64, len(yp.Ceilings))
	for res, c := range yp.Ceilings {
		ceilings[Resource(res)] = c
	}

	features := make([]Feature, 0, len(yp.Features))
	for _, f := range yp.Features {
		features = append(features, Feature(f))
	}

	return Plan{
		ID:          yp.ID,
		Name:        yp.Name,
		Description: yp.Description,
		Price:       price,
		Interval:    interval,
		TrialDays:   yp.TrialDays,
		Ceilings:    ceilings,
		Features:    features,
		Public:      yp.Public,
	}, nil
}
