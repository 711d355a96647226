package middleware

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	appsession "adflow.dev/adflow-admin/internal/admin/session"
)

type sessionContextKey string

const sessionKey sessionContextKey = "session.current"

// SessionStore loads and persists per-request session state.
type SessionStore interface {
	Load(r *http.Request) (*appsession.Session, error)
	New() *appsession.Session
	Save(w http.ResponseWriter, sess *appsession.Session) error
}

// Session loads the request session, attaches it to the context and writes it
// back once the handler finishes. Expired sessions are replaced with a fresh
// one so downstream auth can decide how to react.
func Session(store SessionStore, log *zap.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := store.Load(r)
			if err != nil {
				if !errors.Is(err, appsession.ErrExpired) {
					log.Warn("session load failed", zap.Error(err))
				}
				sess = store.New()
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))

			if err := store.Save(w, sess); err != nil {
				log.Error("session save failed", zap.Error(err))
			}
		})
	}
}

// SessionFromContext retrieves the current session if one was loaded.
func SessionFromContext(ctx context.Context) (*appsession.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*appsession.Session)
	return sess, ok && sess != nil
}

// SessionID returns the current session identifier, or empty string.
func SessionID(ctx context.Context) string {
	if sess, ok := SessionFromContext(ctx); ok {
		return sess.ID()
	}
	return ""
}
