package products

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"adflow.dev/adflow-admin/internal/admin/templates/helpers"
	"adflow.dev/adflow-admin/internal/admin/templates/layout"
)

// ListPage renders the products index with chrome.
func ListPage(data ListPageData) templ.Component {
	return layout.Page(layout.PageData{Title: data.Title, SearchTerm: data.SearchTerm}, ListFragment(data))
}

// ListFragment renders the products table. Row deletes swap this fragment.
func ListFragment(data ListPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var content templ.Component
		switch {
		case data.Error != "":
			content = helpers.El("p", helpers.Attrs{"class": helpers.BadgeClass("danger"), "role": "alert"},
				helpers.Text(data.Error))
		case len(data.Products) == 0:
			content = emptyState(ctx, data.SearchTerm)
		default:
			content = productTable(ctx, data)
		}

		root := helpers.El("div", helpers.Attrs{"id": "product-list", "class": "space-y-4"},
			helpers.El("div", helpers.Attrs{"class": "flex items-center justify-between"},
				helpers.El("h1", helpers.Attrs{"class": "text-2xl font-semibold tracking-tight"}, helpers.Text("Products")),
				helpers.El("a", helpers.Attrs{
					"href":  helpers.Href(ctx, "/products/new"),
					"class": "rounded-md bg-emerald-600 px-4 py-2 text-sm font-medium text-white",
				}, helpers.Text("Add product")),
			),
			content,
		)
		return root.Render(ctx, w)
	})
}

func emptyState(ctx context.Context, searchTerm string) templ.Component {
	message := "No products yet. Create your first one."
	if strings.TrimSpace(searchTerm) != "" {
		message = fmt.Sprintf("No products match %q.", searchTerm)
	}
	return helpers.El("p", helpers.Attrs{"class": "rounded-lg border border-dashed border-slate-300 p-8 text-center text-sm text-slate-500", "data-testid": "empty-state"},
		helpers.Text(message))
}

func productTable(ctx context.Context, data ListPageData) templ.Component {
	headerCells := []templ.Component{}
	for _, col := range []string{"Name", "Price", "Stock", "Tags", "Media", "Created", ""} {
		headerCells = append(headerCells, helpers.El("th",
			helpers.Attrs{"class": "px-3 py-2 text-left text-xs font-medium uppercase text-slate-500"},
			helpers.Text(col)))
	}

	rows := make([]templ.Component, 0, len(data.Products))
	for _, item := range data.Products {
		detailURL := helpers.Href(ctx, fmt.Sprintf("/products/%d", item.ID))
		rows = append(rows, helpers.El("tr", helpers.Attrs{"class": "border-t border-slate-100", "data-testid": "product-row"},
			helpers.El("td", helpers.Attrs{"class": "px-3 py-2"},
				helpers.El("a", helpers.Attrs{"href": detailURL, "class": "font-medium text-slate-900 hover:underline"},
					helpers.Highlight(item.Name, data.SearchTerm)),
			),
			helpers.El("td", helpers.Attrs{"class": "px-3 py-2"}, helpers.Text(item.Price)),
			helpers.El("td", helpers.Attrs{"class": "px-3 py-2"}, helpers.Text(item.Stock)),
			helpers.El("td", helpers.Attrs{"class": "px-3 py-2 text-sm text-slate-500"}, helpers.Text(strings.Join(item.TagNames, ", "))),
			helpers.El("td", helpers.Attrs{"class": "px-3 py-2 text-sm text-slate-500"}, helpers.Text(item.MediaCount)),
			helpers.El("td", helpers.Attrs{"class": "px-3 py-2 text-sm text-slate-500"}, helpers.Text(helpers.Date(item.CreatedAt, "2006-01-02"))),
			helpers.El("td", helpers.Attrs{"class": "px-3 py-2 text-right"},
				helpers.If(helpers.HasAnyRole(ctx, "admin"),
					helpers.El("button", helpers.Attrs{
						"type":       "button",
						"class":      "text-sm text-rose-600 hover:underline",
						"hx-delete":  helpers.Href(ctx, fmt.Sprintf("/products/%d", item.ID)),
						"hx-target":  "#product-list",
						"hx-swap":    "outerHTML",
						"hx-confirm": fmt.Sprintf("Delete %s?", item.Name),
					}, helpers.Text("Delete"))),
			),
		))
	}

	return helpers.El("table", helpers.Attrs{"class": "w-full border-collapse rounded-lg bg-white text-sm shadow-sm"},
		helpers.El("thead", nil, helpers.El("tr", nil, headerCells...)),
		helpers.El("tbody", nil, rows...),
	)
}

// DetailPage renders a single product with chrome.
func DetailPage(data DetailPageData) templ.Component {
	return layout.Page(layout.PageData{Title: data.Title}, detailBody(data.Product))
}

func detailBody(product DetailView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		sections := []templ.Component{
			helpers.El("div", helpers.Attrs{"class": "flex items-center justify-between"},
				helpers.El("h1", helpers.Attrs{"class": "text-2xl font-semibold tracking-tight"}, helpers.Text(product.Name)),
				helpers.El("a", helpers.Attrs{"href": helpers.Href(ctx, "/products"), "class": "text-sm text-slate-600 hover:underline"},
					helpers.Text("Back to products")),
			),
			definitionList(product),
		}

		if len(product.Variants) > 0 {
			sections = append(sections, variantTable(product.Variants))
		}
		if len(product.Images) > 0 || len(product.Videos) > 0 {
			sections = append(sections, mediaGallery(product))
		}

		root := helpers.El("div", helpers.Attrs{"class": "mx-auto max-w-3xl space-y-6"}, sections...)
		return root.Render(ctx, w)
	})
}

func definitionList(product DetailView) templ.Component {
	pairs := []struct{ label, value string }{
		{"Price", product.Price},
		{"Stock", product.Stock},
		{"Tags", strings.Join(product.Tags, ", ")},
		{"Created", helpers.Date(product.CreatedAt, "2006-01-02 15:04")},
	}

	items := make([]templ.Component, 0, len(pairs)*2+2)
	for _, pair := range pairs {
		items = append(items,
			helpers.El("dt", helpers.Attrs{"class": "text-xs font-medium uppercase text-slate-500"}, helpers.Text(pair.label)),
			helpers.El("dd", helpers.Attrs{"class": "text-sm"}, helpers.Text(pair.value)),
		)
	}
	items = append(items,
		helpers.El("dt", helpers.Attrs{"class": "text-xs font-medium uppercase text-slate-500"}, helpers.Text("Description")),
		helpers.El("dd", helpers.Attrs{"class": "text-sm whitespace-pre-line"}, helpers.Text(product.Description)),
	)

	return helpers.El("dl", helpers.Attrs{"class": "grid grid-cols-2 gap-2 rounded-lg border border-slate-200 bg-white p-4"}, items...)
}

func variantTable(variants []VariantView) templ.Component {
	headerCells := []templ.Component{}
	for _, col := range []string{"Name", "SKU", "Price", "Color", "Size", "Stock"} {
		headerCells = append(headerCells, helpers.El("th",
			helpers.Attrs{"class": "px-3 py-2 text-left text-xs font-medium uppercase text-slate-500"},
			helpers.Text(col)))
	}

	rows := make([]templ.Component, 0, len(variants))
	for _, variant := range variants {
		rows = append(rows, helpers.El("tr", helpers.Attrs{"class": "border-t border-slate-100"},
			helpers.El("td", helpers.Attrs{"class": "px-3 py-2"}, helpers.Text(variant.Name)),
			helpers.El("td", helpers.Attrs{"class": "px-3 py-2"}, helpers.Text(variant.SKU)),
			helpers.El("td", helpers.Attrs{"class": "px-3 py-2"}, helpers.Text(variant.Price)),
			helpers.El("td", helpers.Attrs{"class": "px-3 py-2"}, helpers.Text(variant.Color)),
			helpers.El("td", helpers.Attrs{"class": "px-3 py-2"}, helpers.Text(variant.Size)),
			helpers.El("td", helpers.Attrs{"class": "px-3 py-2"}, helpers.Text(variant.Stock)),
		))
	}

	return helpers.El("table", helpers.Attrs{"class": "w-full border-collapse rounded-lg bg-white text-sm shadow-sm"},
		helpers.El("thead", nil, helpers.El("tr", nil, headerCells...)),
		helpers.El("tbody", nil, rows...),
	)
}

func mediaGallery(product DetailView) templ.Component {
	items := make([]templ.Component, 0, len(product.Images)+len(product.Videos))
	for _, image := range product.Images {
		items = append(items, helpers.El("img", helpers.Attrs{
			"src":   image.URL,
			"alt":   image.AltText,
			"class": "h-32 w-32 rounded-md border border-slate-200 object-cover",
		}))
	}
	for _, video := range product.Videos {
		items = append(items, helpers.El("video", helpers.Attrs{
			"src":      video.URL,
			"controls": "controls",
			"class":    "h-32 w-48 rounded-md border border-slate-200",
		}, helpers.Text("")))
	}
	return helpers.El("div", helpers.Attrs{"class": "flex flex-wrap gap-3"}, items...)
}
