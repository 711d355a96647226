package home

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"adflow.dev/adflow-admin/internal/admin/templates/helpers"
	"adflow.dev/adflow-admin/internal/admin/templates/layout"
)

// PageData represents the landing screen payload.
type PageData struct {
	Title        string
	ProductCount int
	TagCount     int
}

// Page renders the landing screen with quick links into the console.
func Page(data PageData) templ.Component {
	return layout.Page(layout.PageData{Title: data.Title}, body(data))
}

func body(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		root := helpers.El("div", helpers.Attrs{"class": "mx-auto max-w-3xl space-y-6"},
			helpers.El("h1", helpers.Attrs{"class": "text-2xl font-semibold tracking-tight"}, helpers.Text("Welcome to AdFlow")),
			helpers.El("p", helpers.Attrs{"class": "text-sm text-slate-600"},
				helpers.Text("Manage your catalog, sync products and keep your listings up to date.")),
			helpers.El("div", helpers.Attrs{"class": "grid grid-cols-2 gap-4"},
				statCard(fmt.Sprintf("%d", data.ProductCount), "products in catalog"),
				statCard(fmt.Sprintf("%d", data.TagCount), "tags available"),
			),
			helpers.El("div", helpers.Attrs{"class": "flex gap-3"},
				helpers.El("a", helpers.Attrs{
					"href":  helpers.Href(ctx, "/products/new"),
					"class": "rounded-md bg-emerald-600 px-4 py-2 text-sm font-medium text-white",
				}, helpers.Text("Add a product")),
				helpers.El("a", helpers.Attrs{
					"href":  helpers.Href(ctx, "/products"),
					"class": "rounded-md border border-slate-300 px-4 py-2 text-sm font-medium",
				}, helpers.Text("View products")),
			),
		)
		return root.Render(ctx, w)
	})
}

func statCard(value, label string) templ.Component {
	return helpers.El("div", helpers.Attrs{"class": "rounded-lg border border-slate-200 bg-white p-4"},
		helpers.El("p", helpers.Attrs{"class": "text-3xl font-semibold"}, helpers.Text(value)),
		helpers.El("p", helpers.Attrs{"class": "text-sm text-slate-500"}, helpers.Text(label)),
	)
}
