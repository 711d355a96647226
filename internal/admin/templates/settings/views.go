package settings

import (
	"context"
	"io"

	"github.com/a-h/templ"

	adminsettings "adflow.dev/adflow-admin/internal/admin/settings"
	"adflow.dev/adflow-admin/internal/admin/templates/helpers"
	"adflow.dev/adflow-admin/internal/admin/templates/layout"
)

// PageData represents the settings screen payload.
type PageData struct {
	Title    string
	Overview adminsettings.Overview
	Saved    bool
}

// BuildPageData prepares the settings payload.
func BuildPageData(overview adminsettings.Overview, saved bool) PageData {
	return PageData{Title: "Settings", Overview: overview, Saved: saved}
}

// Page renders the settings screen with chrome.
func Page(data PageData) templ.Component {
	return layout.Page(layout.PageData{Title: data.Title}, Fragment(data))
}

// Fragment renders the settings body. Preference saves swap this fragment.
func Fragment(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		accounts := make([]templ.Component, 0, len(data.Overview.Accounts))
		for _, account := range data.Overview.Accounts {
			accounts = append(accounts, helpers.El("li",
				helpers.Attrs{"class": "flex flex-col rounded-lg border border-slate-200 bg-white p-4", "data-testid": "connected-account"},
				helpers.El("span", helpers.Attrs{"class": "text-sm font-medium"}, helpers.Text(account.Title)),
				helpers.El("span", helpers.Attrs{"class": "text-sm text-slate-500"}, helpers.Text(account.Subtitle)),
			))
		}

		root := helpers.El("div", helpers.Attrs{"id": "settings", "class": "mx-auto max-w-3xl space-y-6"},
			helpers.El("h1", helpers.Attrs{"class": "text-2xl font-semibold tracking-tight"}, helpers.Text("Settings")),
			helpers.If(data.Saved, helpers.El("p",
				helpers.Attrs{"class": helpers.BadgeClass("success"), "role": "status"},
				helpers.Text("Preferences saved."))),
			helpers.El("h2", helpers.Attrs{"class": "text-lg font-semibold"}, helpers.Text("Connected accounts")),
			helpers.El("ul", helpers.Attrs{"class": "space-y-2"}, accounts...),
			preferencesForm(ctx, data.Overview.Preferences),
		)
		return root.Render(ctx, w)
	})
}

func preferencesForm(ctx context.Context, prefs adminsettings.Preferences) templ.Component {
	return helpers.El("form", helpers.Attrs{
		"class":     "space-y-4 rounded-lg border border-slate-200 bg-white p-4",
		"hx-post":   helpers.Href(ctx, "/settings/preferences"),
		"hx-target": "#settings",
		"hx-swap":   "outerHTML",
	},
		helpers.El("h2", helpers.Attrs{"class": "text-lg font-semibold"}, helpers.Text("Store preferences")),
		helpers.El("div", helpers.Attrs{"class": "grid grid-cols-2 gap-4"},
			selectField("Target country", "country", prefs.Country, []option{
				{"us", "United States"},
				{"in", "India"},
				{"gb", "United Kingdom"},
				{"ca", "Canada"},
			}),
			selectField("Language", "language", prefs.Language, []option{
				{"en", "English"},
				{"hi", "Hindi"},
				{"fr", "French"},
				{"es", "Spanish"},
			}),
		),
		helpers.El("button", helpers.Attrs{
			"type":  "submit",
			"class": "rounded-md bg-slate-900 px-4 py-2 text-sm font-medium text-white",
		}, helpers.Text("Save preferences")),
	)
}

type option struct {
	Value string
	Label string
}

func selectField(label, name, selected string, options []option) templ.Component {
	opts := make([]templ.Component, 0, len(options))
	for _, opt := range options {
		attrs := helpers.Attrs{"value": opt.Value}
		if opt.Value == selected {
			attrs["selected"] = "selected"
		}
		opts = append(opts, helpers.El("option", attrs, helpers.Text(opt.Label)))
	}
	return helpers.El("label", helpers.Attrs{"class": "flex flex-col gap-1 text-sm font-medium"},
		helpers.Text(label),
		helpers.El("select", helpers.Attrs{"name": name, "class": "rounded-md border border-slate-300 px-3 py-2 text-sm font-normal"}, opts...),
	)
}
