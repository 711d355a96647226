package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	defaultCookieName = "adflow_session"
	defaultCookiePath = "/"
	defaultLifetime   = 12 * time.Hour
	defaultIdle       = 30 * time.Minute
)

// ErrExpired indicates the stored session is no longer valid.
var ErrExpired = errors.New("session expired")

// ErrInvalidConfig indicates the manager was initialised with missing options.
var ErrInvalidConfig = errors.New("session: invalid config")

// User captures the authenticated staff profile persisted in the session.
type User struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
}

// Data is the persisted session payload. The ID also keys the in-progress
// product draft owned by this session.
type Data struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	LastActive time.Time `json:"lastActive"`
	ExpiresAt  time.Time `json:"expiresAt,omitempty"`
	CSRFToken  string    `json:"csrfToken,omitempty"`
	User       *User     `json:"user,omitempty"`
}

// Session holds mutable state for the current request lifecycle.
type Session struct {
	data      Data
	destroyed bool
}

// Config controls cookie encoding and lifecycle limits.
type Config struct {
	CookieName   string
	HashKey      []byte
	BlockKey     []byte
	CookiePath   string
	CookieSecure bool
	Lifetime     time.Duration
	IdleTimeout  time.Duration
	Now          func() time.Time
}

// Manager decodes and persists session state via signed cookies.
type Manager struct {
	cfg   Config
	codec *securecookie.SecureCookie
	now   func() time.Time
}

// NewManager constructs a Manager using the provided configuration.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.HashKey) == 0 {
		return nil, fmt.Errorf("%w: hash key is required", ErrInvalidConfig)
	}
	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = defaultCookiePath
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = defaultLifetime
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = defaultIdle
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	codec := securecookie.New(cfg.HashKey, cfg.BlockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})

	return &Manager{cfg: cfg, codec: codec, now: nowFn}, nil
}

// Load retrieves the session from the request or creates a new one. A
// decodable but expired session returns ErrExpired so the caller can clear
// the cookie before starting over.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil {
		return m.newSession(), nil
	}

	var stored Data
	if err := m.codec.Decode(m.cfg.CookieName, cookie.Value, &stored); err != nil {
		return m.newSession(), nil
	}
	sess := &Session{data: stored}
	if m.isExpired(sess, m.now()) {
		return nil, ErrExpired
	}
	return sess, nil
}

// New returns a fresh empty session.
func (m *Manager) New() *Session {
	return m.newSession()
}

// Save writes the session back as a cookie. Destroyed sessions clear it.
func (m *Manager) Save(w http.ResponseWriter, sess *Session) error {
	if sess == nil {
		return errors.New("session: nil session")
	}
	if sess.destroyed {
		http.SetCookie(w, m.expiredCookie())
		return nil
	}

	sess.Touch(m.now())

	encoded, err := m.codec.Encode(m.cfg.CookieName, sess.data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	cookie := &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    encoded,
		Path:     m.cfg.CookiePath,
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if !sess.data.ExpiresAt.IsZero() {
		cookie.Expires = sess.data.ExpiresAt.UTC()
	}
	http.SetCookie(w, cookie)
	return nil
}

// Destroy invalidates the session cookie immediately.
func (m *Manager) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, m.expiredCookie())
}

func (m *Manager) newSession() *Session {
	now := m.now().UTC()
	return &Session{data: Data{
		ID:         mustGenerateToken(32),
		CreatedAt:  now,
		LastActive: now,
		ExpiresAt:  now.Add(m.cfg.Lifetime),
	}}
}

func (m *Manager) isExpired(sess *Session, now time.Time) bool {
	now = now.UTC()
	if !sess.data.ExpiresAt.IsZero() && now.After(sess.data.ExpiresAt.UTC()) {
		return true
	}
	last := sess.data.LastActive
	if last.IsZero() {
		last = sess.data.CreatedAt
	}
	return !last.IsZero() && now.Sub(last) > m.cfg.IdleTimeout
}

func (m *Manager) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     m.cfg.CookiePath,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ID returns the stable session identifier.
func (s *Session) ID() string { return s.data.ID }

// User returns the persisted user profile, if present.
func (s *Session) User() *User { return s.data.User }

// SetUser updates the session user profile.
func (s *Session) SetUser(user *User) {
	if user == nil {
		s.data.User = nil
		return
	}
	copied := *user
	s.data.User = &copied
}

// EnsureCSRFToken returns the existing CSRF token or generates one.
func (s *Session) EnsureCSRFToken() (string, error) {
	if s.data.CSRFToken != "" {
		return s.data.CSRFToken, nil
	}
	token, err := generateToken(32)
	if err != nil {
		return "", err
	}
	s.data.CSRFToken = token
	return token, nil
}

// CSRFToken returns the stored CSRF token value.
func (s *Session) CSRFToken() string { return s.data.CSRFToken }

// Touch updates the last active timestamp.
func (s *Session) Touch(now time.Time) {
	now = now.UTC()
	if now.After(s.data.LastActive) {
		s.data.LastActive = now
	}
}

// Destroy marks the session for deletion at the end of the request.
func (s *Session) Destroy() { s.destroyed = true }

// Destroyed exposes the destroy marker.
func (s *Session) Destroyed() bool { return s.destroyed }

func mustGenerateToken(length int) string {
	token, err := generateToken(length)
	if err != nil {
		panic(err)
	}
	return token
}

func generateToken(length int) (string, error) {
	if length <= 0 {
		length = 32
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
