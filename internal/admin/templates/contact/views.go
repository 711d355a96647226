package contact

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"adflow.dev/adflow-admin/internal/admin/templates/helpers"
	"adflow.dev/adflow-admin/internal/admin/templates/layout"
)

// PageData represents the contact screen payload.
type PageData struct {
	Title string
	Name  string
	Email string
	Sent  bool
	Error string
}

// Page renders the contact screen with chrome.
func Page(data PageData) templ.Component {
	return layout.Page(layout.PageData{Title: data.Title}, Fragment(data))
}

// Fragment renders the contact form. Sends swap this fragment.
func Fragment(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var notice templ.Component
		switch {
		case data.Sent:
			notice = helpers.El("p", helpers.Attrs{"class": helpers.BadgeClass("success"), "role": "status"},
				helpers.Text("Thanks, we received your message."))
		case data.Error != "":
			notice = helpers.El("p", helpers.Attrs{"class": helpers.BadgeClass("danger"), "role": "alert"},
				helpers.Text(data.Error))
		}

		root := helpers.El("div", helpers.Attrs{"id": "contact", "class": "mx-auto max-w-xl space-y-6"},
			helpers.El("h1", helpers.Attrs{"class": "text-2xl font-semibold tracking-tight"}, helpers.Text("Contact us")),
			notice,
			helpers.El("form", helpers.Attrs{
				"class":     "space-y-4 rounded-lg border border-slate-200 bg-white p-4",
				"hx-post":   helpers.Href(ctx, "/contact"),
				"hx-target": "#contact",
				"hx-swap":   "outerHTML",
			},
				textField("Name", "name", data.Name),
				textField("Email", "email", data.Email),
				helpers.El("label", helpers.Attrs{"class": "flex flex-col gap-1 text-sm font-medium"},
					helpers.Text("Message"),
					helpers.El("textarea", helpers.Attrs{
						"name":  "message",
						"rows":  "5",
						"class": "rounded-md border border-slate-300 px-3 py-2 text-sm font-normal",
					}, helpers.Text("")),
				),
				helpers.El("button", helpers.Attrs{
					"type":  "submit",
					"class": "rounded-md bg-slate-900 px-4 py-2 text-sm font-medium text-white",
				}, helpers.Text("Send message")),
			),
		)
		return root.Render(ctx, w)
	})
}

func textField(label, name, value string) templ.Component {
	return helpers.El("label", helpers.Attrs{"class": "flex flex-col gap-1 text-sm font-medium"},
		helpers.Text(label),
		helpers.El("input", helpers.Attrs{
			"type":  "text",
			"name":  name,
			"value": value,
			"class": "rounded-md border border-slate-300 px-3 py-2 text-sm font-normal",
		}),
	)
}
