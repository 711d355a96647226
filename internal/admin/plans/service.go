package plans

import "context"

// Feature is one line of the plan feature matrix.
type Feature struct {
	Label    string
	Included bool
}

// Plan describes a subscription tier shown on the plans page.
type Plan struct {
	Name         string
	Tagline      string
	MonthlyPrice string
	Features     []Feature
	Current      bool
}

// FAQ is one collapsible question on the plans page.
type FAQ struct {
	Question string
	Answer   string
}

// Service exposes plan data for the plans screen.
type Service interface {
	Plans(ctx context.Context) ([]Plan, error)
	FAQs(ctx context.Context) ([]FAQ, error)
}
