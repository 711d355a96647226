package auth

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"adflow.dev/adflow-admin/internal/admin/templates/helpers"
	"adflow.dev/adflow-admin/internal/admin/templates/layout"
)

// LoginPage renders the sign-in screen without console chrome.
func LoginPage(data LoginPageData) templ.Component {
	return layout.Bare("Sign in · AdFlow Admin", loginForm(data))
}

func loginForm(data LoginPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var notice templ.Component
		switch {
		case data.Error != "":
			notice = helpers.El("p", helpers.Attrs{"class": helpers.BadgeClass("danger"), "role": "alert"}, helpers.Text(data.Error))
		case data.Message != "":
			notice = helpers.El("p", helpers.Attrs{"class": helpers.BadgeClass("warning"), "role": "status"}, helpers.Text(data.Message))
		}

		root := helpers.El("div", helpers.Attrs{"class": "space-y-6 rounded-lg border border-slate-200 bg-white p-6 shadow-sm"},
			helpers.El("h1", helpers.Attrs{"class": "text-xl font-semibold tracking-tight"}, helpers.Text("Sign in to AdFlow")),
			notice,
			helpers.El("form", helpers.Attrs{"method": "post", "action": data.LoginPath, "class": "space-y-4"},
				helpers.El("input", helpers.Attrs{"type": "hidden", "name": "csrf_token", "value": data.CSRFToken}),
				helpers.El("input", helpers.Attrs{"type": "hidden", "name": "next", "value": data.Next}),
				helpers.El("label", helpers.Attrs{"class": "flex flex-col gap-1 text-sm font-medium"},
					helpers.Text("Email"),
					helpers.El("input", helpers.Attrs{
						"type":  "email",
						"name":  "email",
						"value": data.Email,
						"class": "rounded-md border border-slate-300 px-3 py-2 text-sm font-normal",
					}),
				),
				helpers.El("label", helpers.Attrs{"class": "flex flex-col gap-1 text-sm font-medium"},
					helpers.Text("ID token"),
					helpers.El("input", helpers.Attrs{
						"type":  "password",
						"name":  "id_token",
						"class": "rounded-md border border-slate-300 px-3 py-2 text-sm font-normal",
					}),
				),
				helpers.El("button", helpers.Attrs{
					"type":  "submit",
					"class": "w-full rounded-md bg-slate-900 px-4 py-2 text-sm font-medium text-white",
				}, helpers.Text("Sign in")),
			),
		)
		return root.Render(ctx, w)
	})
}
