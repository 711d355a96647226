package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"adflow.dev/adflow-admin/internal/admin/httpserver/middleware"
	"adflow.dev/adflow-admin/internal/admin/templates/helpers"
	"adflow.dev/adflow-admin/internal/admin/templates/partials"
)

// PageData carries the chrome-level state shared by every full page.
type PageData struct {
	Title      string
	SearchTerm string
}

// Page wraps body in the console chrome: document head, htmx runtime, topbar,
// sidebar and the CSRF token htmx forwards on every mutating request.
func Page(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := data.Title
		if title == "" {
			title = "AdFlow Admin"
		} else {
			title = title + " · AdFlow Admin"
		}

		csrfToken := middleware.CSRFTokenFromContext(ctx)

		head := helpers.El("head", nil,
			helpers.El("meta", helpers.Attrs{"charset": "utf-8"}),
			helpers.El("meta", helpers.Attrs{"name": "viewport", "content": "width=device-width, initial-scale=1"}),
			helpers.El("meta", helpers.Attrs{"name": "csrf-token", "content": csrfToken}),
			helpers.El("title", nil, helpers.Text(title)),
			helpers.El("link", helpers.Attrs{"rel": "stylesheet", "href": helpers.Href(ctx, "/static/css/admin.css")}),
			helpers.El("script", helpers.Attrs{"src": "https://unpkg.com/htmx.org@1.9.12", "defer": "defer"}, helpers.Text("")),
		)

		doc := helpers.Group(
			helpers.Raw("<!DOCTYPE html>"),
			helpers.El("html", helpers.Attrs{"lang": "en"},
				head,
				helpers.El("body", helpers.Attrs{
					"class":      "min-h-screen bg-slate-50 text-slate-900",
					"hx-headers": `{"X-CSRF-Token": "`+csrfToken+`"}`,
				},
					partials.Topbar(data.SearchTerm),
					helpers.El("div", helpers.Attrs{"class": "flex"},
						partials.Sidebar(partials.MenuItems()),
						helpers.El("main", helpers.Attrs{"class": "flex-1 p-6", "id": "main"}, body),
					),
				),
			),
		)
		return doc.Render(ctx, w)
	})
}

// Bare renders body without chrome, for login and error pages.
func Bare(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		doc := helpers.Group(
			helpers.Raw("<!DOCTYPE html>"),
			helpers.El("html", helpers.Attrs{"lang": "en"},
				helpers.El("head", nil,
					helpers.El("meta", helpers.Attrs{"charset": "utf-8"}),
					helpers.El("title", nil, helpers.Text(title)),
					helpers.El("link", helpers.Attrs{"rel": "stylesheet", "href": helpers.Href(ctx, "/static/css/admin.css")}),
				),
				helpers.El("body", helpers.Attrs{"class": "min-h-screen bg-slate-50 text-slate-900"},
					helpers.El("main", helpers.Attrs{"class": "mx-auto max-w-md p-8"}, body),
				),
			),
		)
		return doc.Render(ctx, w)
	})
}
