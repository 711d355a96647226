package partials

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"adflow.dev/adflow-admin/internal/admin/httpserver/middleware"
)

func renderContext(t *testing.T, path string, user *middleware.User) context.Context {
	t.Helper()

	var ctx context.Context
	handler := middleware.RequestInfoMiddleware("/admin")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctx = r.Context()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	if user != nil {
		ctx = middleware.ContextWithUser(ctx, user)
	}
	return ctx
}

func TestSidebarFiltersByRole(t *testing.T) {
	t.Parallel()

	ctx := renderContext(t, "/admin/products", &middleware.User{Roles: []string{"viewer"}})

	var buf bytes.Buffer
	require.NoError(t, Sidebar(MenuItems()).Render(ctx, &buf))

	doc := parseHTML(t, buf.Bytes())

	require.Equal(t, 0, doc.Find(`a[href="/admin/settings"]`).Length(), "settings must be hidden without the admin role")
	require.Equal(t, 1, doc.Find(`a[href="/admin/products"]`).Length(), "products link should render")
}

func TestSidebarHighlightsActiveRoute(t *testing.T) {
	t.Parallel()

	ctx := renderContext(t, "/admin/products/42", &middleware.User{Roles: []string{"admin"}})

	var buf bytes.Buffer
	require.NoError(t, Sidebar(MenuItems()).Render(ctx, &buf))

	doc := parseHTML(t, buf.Bytes())

	productsLink := doc.Find(`a[href="/admin/products"]`)
	require.Equal(t, 1, productsLink.Length())
	require.Equal(t, "page", productsLink.AttrOr("aria-current", ""), "active route highlights current page")
	require.Contains(t, productsLink.AttrOr("class", ""), "bg-slate-900")
}

func TestSidebarComposerIsDistinctFromList(t *testing.T) {
	t.Parallel()

	ctx := renderContext(t, "/admin/products/new", &middleware.User{Roles: []string{"admin"}})

	var buf bytes.Buffer
	require.NoError(t, Sidebar(MenuItems()).Render(ctx, &buf))

	doc := parseHTML(t, buf.Bytes())

	composerLink := doc.Find(`a[href="/admin/products/new"]`)
	require.Equal(t, "page", composerLink.AttrOr("aria-current", ""), "composer link should be active")

	listLink := doc.Find(`a[href="/admin/products"]`)
	require.Empty(t, listLink.AttrOr("aria-current", ""), "list link must not be active on the composer")
}

func parseHTML(t *testing.T, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err)
	return doc
}
