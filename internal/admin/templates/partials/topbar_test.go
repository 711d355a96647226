package partials

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"adflow.dev/adflow-admin/internal/admin/httpserver/middleware"
)

func TestTopbarShowsSignedInAccount(t *testing.T) {
	t.Parallel()

	ctx := renderContext(t, "/admin/products", &middleware.User{Email: "staff@example.com", Roles: []string{"admin"}})

	var buf bytes.Buffer
	require.NoError(t, Topbar("tote").Render(ctx, &buf))

	doc := parseHTML(t, buf.Bytes())

	require.Equal(t, "staff@example.com", doc.Find(`[data-testid="account-email"]`).Text())
	require.Equal(t, 1, doc.Find(`a[href="/admin/logout"]`).Length())

	search := doc.Find(`input[name="search"]`)
	require.Equal(t, 1, search.Length())
	require.Equal(t, "tote", search.AttrOr("value", ""))
}

func TestTopbarAnonymousShowsSignIn(t *testing.T) {
	t.Parallel()

	ctx := renderContext(t, "/admin", nil)

	var buf bytes.Buffer
	require.NoError(t, Topbar("").Render(ctx, &buf))

	doc := parseHTML(t, buf.Bytes())
	require.Equal(t, 1, doc.Find(`a[href="/admin/login"]`).Length())
	require.Equal(t, 0, doc.Find(`[data-testid="account-email"]`).Length())
}
