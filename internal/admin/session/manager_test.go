package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"adflow.dev/adflow-admin/internal/admin/session"
)

func newManager(t *testing.T, now func() time.Time) *session.Manager {
	t.Helper()
	mgr, err := session.NewManager(session.Config{
		HashKey: []byte("0123456789abcdef0123456789abcdef"),
		Now:     now,
	})
	require.NoError(t, err)
	return mgr
}

func TestManagerRequiresHashKey(t *testing.T) {
	t.Parallel()

	_, err := session.NewManager(session.Config{})
	require.ErrorIs(t, err, session.ErrInvalidConfig)
}

func TestRoundTripPersistsUserAndCSRF(t *testing.T) {
	t.Parallel()

	mgr := newManager(t, nil)

	sess := mgr.New()
	sess.SetUser(&session.User{UID: "staff-1", Email: "staff@example.com"})
	token, err := sess.EnsureCSRFToken()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, mgr.Save(rec, sess))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	loaded, err := mgr.Load(req)
	require.NoError(t, err)
	require.Equal(t, sess.ID(), loaded.ID())
	require.Equal(t, token, loaded.CSRFToken())
	require.NotNil(t, loaded.User())
	require.Equal(t, "staff-1", loaded.User().UID)
}

func TestLoadExpiredSession(t *testing.T) {
	t.Parallel()

	current := time.Now()
	mgr := newManager(t, func() time.Time { return current })

	sess := mgr.New()
	rec := httptest.NewRecorder()
	require.NoError(t, mgr.Save(rec, sess))

	current = current.Add(13 * time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	_, err := mgr.Load(req)
	require.ErrorIs(t, err, session.ErrExpired)
}

func TestLoadGarbageCookieStartsFresh(t *testing.T) {
	t.Parallel()

	mgr := newManager(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "adflow_session", Value: "not-a-session"})

	sess, err := mgr.Load(req)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID())
	require.Nil(t, sess.User())
}

func TestDestroyedSessionClearsCookie(t *testing.T) {
	t.Parallel()

	mgr := newManager(t, nil)
	sess := mgr.New()
	sess.Destroy()

	rec := httptest.NewRecorder()
	require.NoError(t, mgr.Save(rec, sess))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, -1, cookies[0].MaxAge)
	require.Empty(t, cookies[0].Value)
}
