package composer

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"adflow.dev/adflow-admin/internal/admin/templates/helpers"
	"adflow.dev/adflow-admin/internal/admin/templates/layout"
)

// Page renders the full composer page.
func Page(data PageData) templ.Component {
	return layout.Page(layout.PageData{Title: data.Title}, body(data))
}

func body(data PageData) templ.Component {
	return helpers.El("div", helpers.Attrs{"class": "mx-auto max-w-3xl space-y-6"},
		helpers.El("h1", helpers.Attrs{"class": "text-2xl font-semibold tracking-tight"}, helpers.Text("Add product")),
		FormFragment(data.Form, data.KnownTags),
		helpers.El("div", helpers.Attrs{"id": "submission-result"}, ResultFragment(data.Result)),
	)
}

// FormFragment renders the whole draft form. Every draft mutation swaps this
// fragment back in so the rendered state always matches the server draft.
func FormFragment(form FormData, known []TagView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		root := helpers.El("form",
			helpers.Attrs{
				"id":          "composer-form",
				"class":       "space-y-6 rounded-lg border border-slate-200 bg-white p-6",
				"hx-swap":     "outerHTML",
				"hx-target":   "#composer-form",
				"hx-encoding": "multipart/form-data",
			},
			fieldSection(ctx, form),
			tagSection(ctx, form, known),
			variantSection(ctx, form.Variants),
			mediaSection(ctx, form),
			helpers.El("div", helpers.Attrs{"class": "flex justify-end gap-3 border-t border-slate-100 pt-4"},
				helpers.El("button", helpers.Attrs{
					"type":      "button",
					"class":     "rounded-md bg-emerald-600 px-4 py-2 text-sm font-medium text-white",
					"hx-post":   helpers.Href(ctx, "/products/new/submit"),
					"hx-target": "#submission-result",
					"hx-swap":   "innerHTML",
				}, helpers.Text("Create product")),
			),
		)
		return root.Render(ctx, w)
	})
}

func fieldSection(ctx context.Context, form FormData) templ.Component {
	fieldsURL := helpers.Href(ctx, "/products/new/fields")
	return helpers.El("fieldset", helpers.Attrs{"class": "grid grid-cols-2 gap-4"},
		labeledInput("Name", "name", form.Name, fieldsURL),
		labeledInput("Price", "price", form.Price, fieldsURL),
		labeledInput("Stock", "stock", form.Stock, fieldsURL),
		helpers.El("label", helpers.Attrs{"class": "col-span-2 flex flex-col gap-1 text-sm font-medium"},
			helpers.Text("Description"),
			helpers.El("textarea", helpers.Attrs{
				"name":       "description",
				"rows":       "4",
				"class":      "rounded-md border border-slate-300 px-3 py-2 text-sm font-normal",
				"hx-post":    fieldsURL,
				"hx-trigger": "change",
			}, helpers.Text(form.Description)),
		),
	)
}

func labeledInput(label, name, value, postURL string) templ.Component {
	return helpers.El("label", helpers.Attrs{"class": "flex flex-col gap-1 text-sm font-medium"},
		helpers.Text(label),
		helpers.El("input", helpers.Attrs{
			"type":       "text",
			"name":       name,
			"value":      value,
			"class":      "rounded-md border border-slate-300 px-3 py-2 text-sm font-normal",
			"hx-post":    postURL,
			"hx-trigger": "change",
		}),
	)
}

func tagSection(ctx context.Context, form FormData, known []TagView) templ.Component {
	chips := make([]templ.Component, 0, len(form.Tags))
	for _, tag := range form.Tags {
		chips = append(chips, helpers.El("span",
			helpers.Attrs{"class": helpers.BadgeClass(""), "data-testid": "tag-chip"},
			helpers.Text(tag.Name),
			helpers.El("button", helpers.Attrs{
				"type":    "button",
				"class":   "ml-1 text-slate-500 hover:text-slate-900",
				"hx-post": helpers.Href(ctx, "/products/new/tags/remove"),
				"hx-vals": fmt.Sprintf(`{"tag_id": %d}`, tag.ID),
				"aria-label": "Remove " + tag.Name,
			}, helpers.Text("×")),
		))
	}

	options := make([]templ.Component, 0, len(known)+1)
	options = append(options, helpers.El("option", helpers.Attrs{"value": ""}, helpers.Text("")))
	for _, tag := range known {
		options = append(options, helpers.El("option", helpers.Attrs{"value": tag.Name}, helpers.Text(tag.Name)))
	}

	section := helpers.El("div", helpers.Attrs{"id": "tag-picker", "class": "space-y-2"},
		helpers.El("h2", helpers.Attrs{"class": "text-sm font-medium"}, helpers.Text("Tags")),
		helpers.El("div", helpers.Attrs{"class": "flex flex-wrap gap-2"}, chips...),
		helpers.El("div", helpers.Attrs{"class": "flex items-center gap-2"},
			helpers.El("input", helpers.Attrs{
				"type":        "text",
				"name":        "tag",
				"list":        "known-tags",
				"placeholder": "Add a tag",
				"class":       "rounded-md border border-slate-300 px-3 py-1.5 text-sm",
			}),
			helpers.El("datalist", helpers.Attrs{"id": "known-tags"}, options...),
			helpers.El("button", helpers.Attrs{
				"type":    "button",
				"class":   "rounded-md bg-slate-900 px-3 py-1.5 text-sm font-medium text-white",
				"hx-post": helpers.Href(ctx, "/products/new/tags"),
			}, helpers.Text("Add tag")),
		),
		helpers.If(form.TagError != "", helpers.El("p",
			helpers.Attrs{"class": "text-sm text-rose-600", "data-testid": "tag-error", "role": "alert"},
			helpers.Text(form.TagError))),
	)
	return section
}

func variantSection(ctx context.Context, variants []VariantView) templ.Component {
	headerCells := []templ.Component{}
	for _, col := range []string{"Name", "SKU", "Price", "Color", "Size", "Stock", ""} {
		headerCells = append(headerCells, helpers.El("th",
			helpers.Attrs{"class": "px-2 py-1 text-left text-xs font-medium uppercase text-slate-500"},
			helpers.Text(col)))
	}

	rows := make([]templ.Component, 0, len(variants))
	for _, variant := range variants {
		editURL := helpers.Href(ctx, fmt.Sprintf("/products/new/variants/%d", variant.Index))
		cells := []templ.Component{
			variantCell(editURL, variant.Index, "name", variant.Name),
			variantCell(editURL, variant.Index, "sku", variant.SKU),
			variantCell(editURL, variant.Index, "price", variant.Price),
			variantCell(editURL, variant.Index, "color", variant.Color),
			variantCell(editURL, variant.Index, "size", variant.Size),
			variantCell(editURL, variant.Index, "stock", variant.Stock),
			helpers.El("td", helpers.Attrs{"class": "px-2 py-1"},
				helpers.El("button", helpers.Attrs{
					"type":       "button",
					"class":      "text-sm text-rose-600 hover:underline",
					"hx-post":    helpers.Href(ctx, fmt.Sprintf("/products/new/variants/%d/delete", variant.Index)),
					"aria-label": fmt.Sprintf("Remove variant %d", variant.Index+1),
				}, helpers.Text("Remove")),
			),
		}
		rows = append(rows, helpers.El("tr", helpers.Attrs{"data-testid": "variant-row"}, cells...))
	}

	return helpers.El("div", helpers.Attrs{"id": "variant-table", "class": "space-y-2"},
		helpers.El("h2", helpers.Attrs{"class": "text-sm font-medium"}, helpers.Text("Variants")),
		helpers.If(len(variants) > 0, helpers.El("table", helpers.Attrs{"class": "w-full border-collapse text-sm"},
			helpers.El("thead", nil, helpers.El("tr", nil, headerCells...)),
			helpers.El("tbody", nil, rows...),
		)),
		helpers.El("button", helpers.Attrs{
			"type":    "button",
			"class":   "rounded-md border border-slate-300 px-3 py-1.5 text-sm font-medium",
			"hx-post": helpers.Href(ctx, "/products/new/variants"),
		}, helpers.Text("Add variant")),
	)
}

func variantCell(editURL string, index int, field, value string) templ.Component {
	return helpers.El("td", helpers.Attrs{"class": "px-2 py-1"},
		helpers.El("input", helpers.Attrs{
			"type":       "text",
			"name":       "variant_" + field,
			"value":      value,
			"class":      "w-full rounded border border-slate-200 px-2 py-1 text-sm",
			"hx-post":    editURL,
			"hx-trigger": "change",
			"hx-vals":    fmt.Sprintf(`{"field": %q}`, field),
		}),
	)
}

func mediaSection(ctx context.Context, form FormData) templ.Component {
	items := make([]templ.Component, 0, len(form.Images)+len(form.Videos))
	for _, media := range append(append([]MediaView{}, form.Images...), form.Videos...) {
		items = append(items, helpers.El("li",
			helpers.Attrs{"class": "flex items-center justify-between rounded border border-slate-200 px-3 py-1.5 text-sm", "data-testid": "media-item"},
			helpers.Text(media.Name),
			helpers.El("span", helpers.Attrs{"class": "text-xs text-slate-500"}, helpers.Text(media.Kind+" · "+media.Size)),
		))
	}

	return helpers.El("div", helpers.Attrs{"id": "media-list", "class": "space-y-2"},
		helpers.El("h2", helpers.Attrs{"class": "text-sm font-medium"}, helpers.Text("Media")),
		helpers.El("div", helpers.Attrs{"class": "grid grid-cols-2 gap-4 text-sm"},
			helpers.El("label", helpers.Attrs{"class": "flex flex-col gap-1 font-medium"},
				helpers.Text("Images"),
				helpers.El("input", helpers.Attrs{
					"type":     "file",
					"name":     "images",
					"accept":   "image/*",
					"multiple": "multiple",
					"hx-post":  helpers.Href(ctx, "/products/new/media"),
					"hx-trigger": "change",
				}),
			),
			helpers.El("label", helpers.Attrs{"class": "flex flex-col gap-1 font-medium"},
				helpers.Text("Videos"),
				helpers.El("input", helpers.Attrs{
					"type":     "file",
					"name":     "videos",
					"accept":   "video/*",
					"multiple": "multiple",
					"hx-post":  helpers.Href(ctx, "/products/new/media"),
					"hx-trigger": "change",
				}),
			),
		),
		helpers.If(len(items) > 0, helpers.El("ul", helpers.Attrs{"class": "space-y-1"}, items...)),
	)
}

// ResultFragment renders the submission outcome panel. A nil view renders
// nothing so the placeholder stays empty until the first submit.
func ResultFragment(view *ResultView) templ.Component {
	if view == nil {
		return helpers.Group()
	}

	tone := "success"
	if !view.Succeeded {
		tone = "danger"
	} else if anyFailed(view.Media) {
		tone = "warning"
	}

	items := make([]templ.Component, 0, len(view.Media))
	for _, media := range view.Media {
		status := "uploaded"
		class := "text-emerald-700"
		if !media.Succeeded {
			status = "failed"
			class = "text-rose-700"
			if media.Detail != "" {
				status = "failed: " + media.Detail
			}
		}
		items = append(items, helpers.El("li",
			helpers.Attrs{"class": "flex items-center justify-between text-sm", "data-testid": "media-outcome"},
			helpers.Text(media.Name+" ("+media.Kind+")"),
			helpers.El("span", helpers.Attrs{"class": class}, helpers.Text(status)),
		))
	}

	return helpers.El("div",
		helpers.Attrs{"class": "space-y-3 rounded-lg border border-slate-200 bg-white p-4", "data-testid": "submission-result"},
		helpers.El("p", helpers.Attrs{"class": helpers.BadgeClass(tone), "role": "status"}, helpers.Text(view.Message)),
		helpers.If(len(items) > 0, helpers.El("ul", helpers.Attrs{"class": "space-y-1"}, items...)),
	)
}

func anyFailed(media []MediaOutcomeView) bool {
	for _, item := range media {
		if !item.Succeeded {
			return true
		}
	}
	return false
}
