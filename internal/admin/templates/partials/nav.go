package partials

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"adflow.dev/adflow-admin/internal/admin/templates/helpers"
)

// NavItem describes one sidebar entry.
type NavItem struct {
	Key         string
	Label       string
	Route       string
	MatchPrefix bool
	Roles       []string
}

// MenuItems returns the console navigation in display order.
func MenuItems() []NavItem {
	return []NavItem{
		{Key: "home", Label: "Home", Route: "/"},
		{Key: "products", Label: "Products", Route: "/products", MatchPrefix: true},
		{Key: "add-product", Label: "Add product", Route: "/products/new"},
		{Key: "plans", Label: "Plans", Route: "/plans"},
		{Key: "settings", Label: "Settings", Route: "/settings", Roles: []string{"admin"}},
		{Key: "contact", Label: "Contact us", Route: "/contact"},
	}
}

func visibleItems(ctx context.Context, items []NavItem) []NavItem {
	result := make([]NavItem, 0, len(items))
	for _, item := range items {
		if !helpers.HasAnyRole(ctx, item.Roles...) {
			continue
		}
		result = append(result, item)
	}
	return result
}

// Sidebar renders the navigation menu, filtered by the current user's roles
// and with the active route highlighted.
func Sidebar(items []NavItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		links := make([]templ.Component, 0, len(items))
		for _, item := range visibleItems(ctx, items) {
			// "Add product" must stay distinct from the products list.
			active := helpers.NavActive(ctx, joinRoute(ctx, item.Route), false)
			if !active && item.MatchPrefix {
				active = helpers.NavActive(ctx, joinRoute(ctx, item.Route), true) &&
					helpers.RequestPath(ctx) != joinRoute(ctx, "/products/new")
			}

			attrs := helpers.Attrs{
				"href":  helpers.Href(ctx, item.Route),
				"class": helpers.NavClass(active),
			}
			if active {
				attrs["aria-current"] = "page"
			}
			links = append(links, helpers.El("a", attrs, helpers.Text(item.Label)))
		}

		aside := helpers.El("aside", helpers.Attrs{"class": "w-56 shrink-0 border-r border-slate-200 bg-white p-4"},
			helpers.El("nav", helpers.Attrs{"class": "flex flex-col gap-1", "aria-label": "Main"}, links...),
		)
		return aside.Render(ctx, w)
	})
}

func joinRoute(ctx context.Context, route string) string {
	return helpers.Href(ctx, route)
}
