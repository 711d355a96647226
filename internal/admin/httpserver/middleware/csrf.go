package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"

	"go.uber.org/zap"
)

type csrfContextKey string

const csrfTokenKey csrfContextKey = "csrf.token"

const (
	// DefaultCSRFCookieName is the double-submit cookie carrying the token.
	DefaultCSRFCookieName = "adflow_csrf"
	// CSRFHeaderName is the header htmx sends the token in.
	CSRFHeaderName = "X-CSRF-Token"
	// CSRFFieldName is the form field fallback for plain form posts.
	CSRFFieldName = "csrf_token"
)

// CSRFConfig tunes the double-submit cookie protection.
type CSRFConfig struct {
	CookieName   string
	CookieSecure bool
	Logger       *zap.Logger
}

// CSRF issues a per-browser token cookie and verifies it on mutating requests.
// The session CSRF token is preferred when a session is present so tokens
// rotate with login state.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCSRFCookieName
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := currentCSRFToken(r, cfg.CookieName)
			if token == "" {
				generated, err := generateCSRFToken()
				if err != nil {
					cfg.Logger.Error("csrf token generation failed", zap.Error(err))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				token = generated
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    token,
					Path:     "/",
					Secure:   cfg.CookieSecure,
					HttpOnly: false,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), csrfTokenKey, token)
			r = r.WithContext(ctx)

			if isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			submitted := r.Header.Get(CSRFHeaderName)
			if submitted == "" {
				submitted = r.PostFormValue(CSRFFieldName)
			}
			if submitted == "" || subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
				cfg.Logger.Warn("csrf token mismatch",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				)
				http.Error(w, "invalid CSRF token", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CSRFTokenFromContext returns the token templates must embed in forms and
// htmx headers.
func CSRFTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(csrfTokenKey).(string)
	return token
}

func currentCSRFToken(r *http.Request, cookieName string) string {
	if sess, ok := SessionFromContext(r.Context()); ok {
		if token := sess.CSRFToken(); token != "" {
			return token
		}
		if token, err := sess.EnsureCSRFToken(); err == nil {
			return token
		}
	}
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func generateCSRFToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
