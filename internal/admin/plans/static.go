package plans

import "context"

// StaticService serves the fixed plan matrix. Billing is handled outside the
// console, so there is nothing dynamic behind this screen.
type StaticService struct{}

// NewStaticService constructs the static plan data source.
func NewStaticService() *StaticService {
	return &StaticService{}
}

// Plans returns the available tiers.
func (s *StaticService) Plans(ctx context.Context) ([]Plan, error) {
	return []Plan{
		{
			Name:         "Free",
			Tagline:      "Free plan with limited quotas: 100 optimizations, 3 campaign creations and 15 ad group creations per billing cycle",
			MonthlyPrice: "$0.00",
			Current:      true,
			Features: []Feature{
				{Label: "3 Shopping Campaigns", Included: true},
				{Label: "AI Enhanced Attributes", Included: true},
				{Label: "AI optimization", Included: true},
				{Label: "Custom Label Automation", Included: true},
				{Label: "Dedicated account manager", Included: false},
				{Label: "Early access to new features", Included: false},
				{Label: "Email support", Included: true},
				{Label: "Priority chat support", Included: false},
				{Label: "SKU's Amount - 200", Included: true},
			},
		},
	}, nil
}

// FAQs returns the plans page questions.
func (s *StaticService) FAQs(ctx context.Context) ([]FAQ, error) {
	return []FAQ{
		{
			Question: "What happens when I hit a quota?",
			Answer:   "Actions that exceed the quota are paused until the next billing cycle starts.",
		},
		{
			Question: "Can I change plans at any time?",
			Answer:   "Yes. Upgrades take effect immediately; downgrades apply from the next cycle.",
		},
	}, nil
}
