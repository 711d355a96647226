package partials

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"adflow.dev/adflow-admin/internal/admin/templates/helpers"
)

// Topbar renders the header bar with the product search form and the
// signed-in account.
func Topbar(searchTerm string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		searchForm := helpers.El("form",
			helpers.Attrs{
				"action": helpers.Href(ctx, "/products"),
				"method": "get",
				"class":  "flex items-center gap-2",
				"role":   "search",
			},
			helpers.El("input", helpers.Attrs{
				"type":        "search",
				"name":        "search",
				"value":       searchTerm,
				"placeholder": "Search products",
				"class":       "w-64 rounded-md border border-slate-300 px-3 py-1.5 text-sm",
			}),
			helpers.El("button", helpers.Attrs{
				"type":  "submit",
				"class": "rounded-md bg-slate-900 px-3 py-1.5 text-sm font-medium text-white",
			}, helpers.Text("Search")),
		)

		var account templ.Component
		if email := helpers.UserEmail(ctx); email != "" {
			account = helpers.El("div", helpers.Attrs{"class": "flex items-center gap-3"},
				helpers.El("span", helpers.Attrs{"class": "text-sm text-slate-600", "data-testid": "account-email"}, helpers.Text(email)),
				helpers.El("a", helpers.Attrs{
					"href":  helpers.Href(ctx, "/logout"),
					"class": "text-sm font-medium text-slate-900 hover:underline",
				}, helpers.Text("Sign out")),
			)
		} else {
			account = helpers.El("a", helpers.Attrs{
				"href":  helpers.Href(ctx, "/login"),
				"class": "text-sm font-medium text-slate-900 hover:underline",
			}, helpers.Text("Sign in"))
		}

		header := helpers.El("header",
			helpers.Attrs{"class": "flex items-center justify-between border-b border-slate-200 bg-white px-6 py-3"},
			helpers.El("a", helpers.Attrs{
				"href":  helpers.Href(ctx, "/"),
				"class": "text-lg font-semibold tracking-tight text-slate-900",
			}, helpers.Text("AdFlow")),
			searchForm,
			account,
		)
		return header.Render(ctx, w)
	})
}

// Flash renders a dismissible notice with a semantic tone.
func Flash(tone, message string) templ.Component {
	if message == "" {
		return helpers.Group()
	}
	return helpers.El("div", helpers.Attrs{
		"class": helpers.BadgeClass(tone),
		"role":  "status",
	}, helpers.Text(message))
}
