package plans

import (
	"context"
	"io"

	"github.com/a-h/templ"

	adminplans "adflow.dev/adflow-admin/internal/admin/plans"
	"adflow.dev/adflow-admin/internal/admin/templates/helpers"
	"adflow.dev/adflow-admin/internal/admin/templates/layout"
)

// PageData represents the plans screen payload.
type PageData struct {
	Title string
	Plans []adminplans.Plan
	FAQs  []adminplans.FAQ
}

// BuildPageData prepares the plans payload.
func BuildPageData(list []adminplans.Plan, faqs []adminplans.FAQ) PageData {
	return PageData{Title: "Plans", Plans: list, FAQs: faqs}
}

// Page renders the subscription plans screen.
func Page(data PageData) templ.Component {
	return layout.Page(layout.PageData{Title: data.Title}, body(data))
}

func body(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		cards := make([]templ.Component, 0, len(data.Plans))
		for _, plan := range data.Plans {
			cards = append(cards, planCard(plan))
		}

		faqs := make([]templ.Component, 0, len(data.FAQs))
		for _, faq := range data.FAQs {
			faqs = append(faqs, helpers.El("details", helpers.Attrs{"class": "rounded-lg border border-slate-200 bg-white p-4"},
				helpers.El("summary", helpers.Attrs{"class": "cursor-pointer text-sm font-medium"}, helpers.Text(faq.Question)),
				helpers.El("p", helpers.Attrs{"class": "mt-2 text-sm text-slate-600"}, helpers.Text(faq.Answer)),
			))
		}

		root := helpers.El("div", helpers.Attrs{"class": "mx-auto max-w-3xl space-y-6"},
			helpers.El("h1", helpers.Attrs{"class": "text-2xl font-semibold tracking-tight"}, helpers.Text("Plans")),
			helpers.El("div", helpers.Attrs{"class": "grid gap-4 sm:grid-cols-2"}, cards...),
			helpers.If(len(faqs) > 0, helpers.Group(
				helpers.El("h2", helpers.Attrs{"class": "text-lg font-semibold"}, helpers.Text("Frequently asked questions")),
				helpers.El("div", helpers.Attrs{"class": "space-y-2"}, faqs...),
			)),
		)
		return root.Render(ctx, w)
	})
}

func planCard(plan adminplans.Plan) templ.Component {
	features := make([]templ.Component, 0, len(plan.Features))
	for _, feature := range plan.Features {
		marker := "−"
		class := "text-slate-400"
		if feature.Included {
			marker = "✓"
			class = "text-emerald-600"
		}
		features = append(features, helpers.El("li", helpers.Attrs{"class": "flex items-center gap-2 text-sm"},
			helpers.El("span", helpers.Attrs{"class": class}, helpers.Text(marker)),
			helpers.Text(feature.Label),
		))
	}

	attrs := helpers.Attrs{"class": "space-y-3 rounded-lg border border-slate-200 bg-white p-5", "data-testid": "plan-card"}
	if plan.Current {
		attrs["class"] = "space-y-3 rounded-lg border-2 border-emerald-600 bg-white p-5"
	}

	return helpers.El("div", attrs,
		helpers.El("div", helpers.Attrs{"class": "flex items-center justify-between"},
			helpers.El("h2", helpers.Attrs{"class": "text-lg font-semibold"}, helpers.Text(plan.Name)),
			helpers.If(plan.Current, helpers.El("span", helpers.Attrs{"class": helpers.BadgeClass("success")}, helpers.Text("Current plan"))),
		),
		helpers.El("p", helpers.Attrs{"class": "text-sm text-slate-600"}, helpers.Text(plan.Tagline)),
		helpers.El("p", helpers.Attrs{"class": "text-2xl font-semibold"}, helpers.Text(plan.MonthlyPrice)),
		helpers.El("ul", helpers.Attrs{"class": "space-y-1"}, features...),
	)
}
