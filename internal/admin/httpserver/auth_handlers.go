package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	custommw "adflow.dev/adflow-admin/internal/admin/httpserver/middleware"
	appsession "adflow.dev/adflow-admin/internal/admin/session"
	"adflow.dev/adflow-admin/internal/admin/templates/auth"
)

const tokenCookieName = "Authorization"

type authHandlers struct {
	authenticator custommw.Authenticator
	basePath      string
	loginPath     string
	log           *zap.Logger
}

func newAuthHandlers(authenticator custommw.Authenticator, basePath, loginPath string, log *zap.Logger) *authHandlers {
	if authenticator == nil {
		panic("auth: authenticator is required")
	}
	if strings.TrimSpace(basePath) == "" {
		basePath = "/"
	}
	if strings.TrimSpace(loginPath) == "" {
		if basePath == "/" {
			loginPath = "/login"
		} else {
			loginPath = strings.TrimRight(basePath, "/") + "/login"
		}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &authHandlers{
		authenticator: authenticator,
		basePath:      basePath,
		loginPath:     loginPath,
		log:           log,
	}
}

func (h *authHandlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.isAuthenticated(r) {
		target := h.redirectTarget(r.URL.Query().Get("next"))
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	h.renderLoginPage(w, r, h.buildLoginPageData(r, nil), http.StatusOK)
}

func (h *authHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		state := &loginFormState{Error: "The form could not be submitted. Please try again."}
		h.renderLoginPage(w, r, h.buildLoginPageData(r, state), http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	recordedNext := r.PostFormValue("next")
	token := strings.TrimSpace(r.PostFormValue("id_token"))

	state := &loginFormState{Email: email, Next: recordedNext}

	if token == "" {
		state.Error = "Enter your ID token to sign in."
		h.renderLoginPage(w, r, h.buildLoginPageData(r, state), http.StatusBadRequest)
		return
	}

	user, err := h.authenticator.Authenticate(r, token)
	if err != nil || user == nil {
		h.log.Warn("login failed", zap.String("email", email), zap.Error(err))
		state.Error = h.errorMessageFor(err)
		h.renderLoginPage(w, r, h.buildLoginPageData(r, state), http.StatusUnauthorized)
		return
	}

	if sess, ok := custommw.SessionFromContext(r.Context()); ok {
		if user.Email == "" {
			user.Email = email
		}
		sess.SetUser(&appsession.User{UID: user.UID, Email: user.Email})
	}

	issuedToken := token
	if user.Token != "" {
		issuedToken = user.Token
	}
	h.setAuthCookie(w, r, issuedToken)
	h.log.Info("login succeeded", zap.String("uid", user.UID))

	target := h.redirectTarget(recordedNext)
	if custommw.IsHTMXRequest(r.Context()) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *authHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := custommw.SessionFromContext(r.Context()); ok {
		sess.Destroy()
	}
	h.clearAuthCookie(w)

	redirect := h.loginURLWithParams(map[string]string{"status": "logged_out"})

	if custommw.IsHTMXRequest(r.Context()) {
		w.Header().Set("HX-Redirect", redirect)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

type loginFormState struct {
	Email   string
	Next    string
	Error   string
	Message string
}

func (h *authHandlers) buildLoginPageData(r *http.Request, state *loginFormState) auth.LoginPageData {
	q := url.Values{}
	if r.URL != nil {
		q = r.URL.Query()
	}

	next := ""
	if state != nil && state.Next != "" {
		next = h.normalizeNext(state.Next)
	} else {
		next = h.normalizeNext(q.Get("next"))
	}

	message := ""
	if state != nil && strings.TrimSpace(state.Message) != "" {
		message = state.Message
	} else {
		message = h.messageForQuery(q)
	}

	errorText := ""
	email := ""
	if state != nil {
		errorText = state.Error
		email = state.Email
	} else {
		email = strings.TrimSpace(q.Get("email"))
	}

	return auth.LoginPageData{
		Email:     email,
		Message:   message,
		Error:     errorText,
		Next:      next,
		LoginPath: h.loginPath,
		CSRFToken: custommw.CSRFTokenFromContext(r.Context()),
	}
}

func (h *authHandlers) renderLoginPage(w http.ResponseWriter, r *http.Request, data auth.LoginPageData, status int) {
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	templ.Handler(auth.LoginPage(data)).ServeHTTP(w, r)
}

func (h *authHandlers) isAuthenticated(r *http.Request) bool {
	sess, ok := custommw.SessionFromContext(r.Context())
	if !ok {
		return false
	}
	user := sess.User()
	return user != nil && strings.TrimSpace(user.UID) != ""
}

func (h *authHandlers) errorMessageFor(err error) string {
	if err == nil {
		return "Something went wrong. Please try again."
	}
	var authErr *custommw.AuthError
	if errors.As(err, &authErr) {
		switch authErr.Reason {
		case custommw.ReasonTokenExpired:
			return "Your session expired. Please sign in again."
		case custommw.ReasonMissingToken:
			return "Your credentials are incomplete. Please check and retry."
		default:
			return "Sign-in failed. Please check your details."
		}
	}
	if errors.Is(err, custommw.ErrUnauthorized) {
		return "Sign-in failed. Please check your details."
	}
	return "Sign-in failed. Please try again shortly."
}

func (h *authHandlers) messageForQuery(q url.Values) string {
	if q == nil {
		return ""
	}
	if status := q.Get("status"); status == "logged_out" {
		return "You have been signed out."
	}
	switch q.Get("reason") {
	case custommw.ReasonTokenExpired, "expired":
		return "Your session expired. Please sign in again."
	case custommw.ReasonMissingToken:
		return "Please sign in to continue."
	case custommw.ReasonTokenInvalid:
		return "Your sign-in details were invalid. Please try again."
	default:
		return ""
	}
}

func (h *authHandlers) redirectTarget(raw string) string {
	next := h.normalizeNext(raw)
	if next != "" {
		return next
	}
	if strings.TrimSpace(h.basePath) == "" {
		return "/"
	}
	return h.basePath
}

func (h *authHandlers) setAuthCookie(w http.ResponseWriter, r *http.Request, token string) {
	if strings.TrimSpace(token) == "" {
		h.clearAuthCookie(w)
		return
	}
	value := token
	if !strings.HasPrefix(strings.ToLower(token), "bearer ") {
		value = "Bearer " + token
	}
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    value,
		Path:     h.cookiePath(),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *authHandlers) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     h.cookiePath(),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *authHandlers) cookiePath() string {
	if strings.TrimSpace(h.basePath) == "" {
		return "/"
	}
	return h.basePath
}

func (h *authHandlers) loginURLWithParams(params map[string]string) string {
	parsed, err := url.Parse(h.loginPath)
	if err != nil {
		return h.loginPath
	}
	q := parsed.Query()
	for key, val := range params {
		if strings.TrimSpace(val) == "" {
			continue
		}
		q.Set(key, val)
	}
	parsed.RawQuery = q.Encode()
	return parsed.String()
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	trim := func(p string) string {
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		for len(p) > 1 && strings.HasSuffix(p, "/") {
			p = strings.TrimSuffix(p, "/")
		}
		return p
	}
	return trim(a) == trim(b)
}

func (h *authHandlers) normalizeNext(raw string) string {
	sanitized := sanitizeNextTarget(h.basePath, raw)
	if sanitized == "" {
		return ""
	}

	if h.loginPath != "" && samePath(pathOnly(sanitized), h.loginPath) {
		return ""
	}
	return sanitized
}

func sanitizeNextTarget(basePath, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "" || parsed.Host != "" {
		return ""
	}

	pathValue := parsed.Path
	if pathValue == "" {
		pathValue = "/"
	}

	unescaped, err := url.PathUnescape(pathValue)
	if err != nil {
		return ""
	}
	if strings.Contains(unescaped, "\\") {
		return ""
	}

	cleaned := path.Clean(unescaped)
	if !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}
	if strings.HasPrefix(cleaned, "//") {
		return ""
	}

	normalisedBase := normalizeBasePath(basePath)
	if normalisedBase != "/" && !hasSafePrefix(cleaned, normalisedBase) {
		return ""
	}

	target := cleaned
	if parsed.RawQuery != "" {
		target += "?" + parsed.RawQuery
	}
	if parsed.Fragment != "" {
		target += "#" + parsed.Fragment
	}
	return target
}

func hasSafePrefix(pathValue, base string) bool {
	if base == "/" {
		return strings.HasPrefix(pathValue, "/")
	}
	if !strings.HasPrefix(pathValue, base) {
		return false
	}
	if len(pathValue) == len(base) {
		return true
	}
	return pathValue[len(base)] == '/'
}

func pathOnly(raw string) string {
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return parsed.Path
}
