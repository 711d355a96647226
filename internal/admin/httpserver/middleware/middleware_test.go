package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"adflow.dev/adflow-admin/internal/admin/httpserver/middleware"
	"adflow.dev/adflow-admin/internal/admin/session"
)

type staticAuthenticator struct {
	user *middleware.User
	err  error
}

func (s *staticAuthenticator) Authenticate(_ *http.Request, _ string) (*middleware.User, error) {
	return s.user, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRedirectsWithoutToken(t *testing.T) {
	t.Parallel()

	handler := middleware.Auth(nil, "/login", nil)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAuthHTMXGetsRedirectHeader(t *testing.T) {
	t.Parallel()

	handler := middleware.HTMX()(middleware.Auth(nil, "/login", nil)(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("HX-Redirect"))
}

func TestAuthExpiredTokenRedirectsWithReason(t *testing.T) {
	t.Parallel()

	auth := &staticAuthenticator{err: middleware.NewAuthError(middleware.ReasonTokenExpired, middleware.ErrTokenExpired)}
	handler := middleware.Auth(auth, "/login", nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "expired", loc.Query().Get("reason"))
}

func TestAuthAcceptsCookieToken(t *testing.T) {
	t.Parallel()

	var seen *middleware.User
	handler := middleware.Auth(nil, "/login", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = middleware.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.AddCookie(&http.Cookie{Name: "idToken", Value: "cookie-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	require.Equal(t, "cookie-token", seen.Token)
}

func TestRequireRoleForbidsMissingRole(t *testing.T) {
	t.Parallel()

	auth := &staticAuthenticator{user: &middleware.User{UID: "u1", Roles: []string{"viewer"}}}
	handler := middleware.Auth(auth, "/login", nil)(middleware.RequireRole("admin")(okHandler()))

	req := httptest.NewRequest(http.MethodDelete, "/products/1", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	t.Parallel()

	auth := &staticAuthenticator{user: &middleware.User{UID: "u1", Roles: []string{"admin"}}}
	handler := middleware.Auth(auth, "/login", nil)(middleware.RequireRole("admin")(okHandler()))

	req := httptest.NewRequest(http.MethodDelete, "/products/1", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionMiddlewareRoundTrip(t *testing.T) {
	t.Parallel()

	mgr, err := session.NewManager(session.Config{HashKey: []byte("0123456789abcdef0123456789abcdef")})
	require.NoError(t, err)

	var id string
	handler := middleware.Session(mgr, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = middleware.SessionID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, id)
	require.NotEmpty(t, rec.Result().Cookies())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	second := httptest.NewRecorder()
	var again string
	middleware.Session(mgr, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		again = middleware.SessionID(r.Context())
	})).ServeHTTP(second, req)

	require.Equal(t, id, again)
}

func TestCSRFRejectsMutationWithoutToken(t *testing.T) {
	t.Parallel()

	handler := middleware.CSRF(middleware.CSRFConfig{})(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products/new/submit", nil))

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCSRFAcceptsHeaderToken(t *testing.T) {
	t.Parallel()

	handler := middleware.CSRF(middleware.CSRFConfig{})(okHandler())

	// First request issues the cookie.
	get := httptest.NewRecorder()
	handler.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/products/new", nil))
	cookies := get.Result().Cookies()
	require.NotEmpty(t, cookies)
	token := cookies[0].Value

	req := httptest.NewRequest(http.MethodPost, "/products/new/submit", strings.NewReader(""))
	req.AddCookie(cookies[0])
	req.Header.Set("X-CSRF-Token", token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireHTMXHidesFragments(t *testing.T) {
	t.Parallel()

	handler := middleware.HTMX()(middleware.RequireHTMX()(okHandler()))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/new/tags", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/products/new/tags", nil)
	req.Header.Set("HX-Request", "true")
	ok := httptest.NewRecorder()
	handler.ServeHTTP(ok, req)
	require.Equal(t, http.StatusOK, ok.Code)
}

func TestBasePathFromContext(t *testing.T) {
	t.Parallel()

	var base string
	handler := middleware.RequestInfoMiddleware("/admin/")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		base = middleware.BasePathFromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin/products", nil))

	require.Equal(t, "/admin", base)
}
