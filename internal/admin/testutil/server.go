package testutil

import (
	"net/http/httptest"
	"testing"

	"adflow.dev/adflow-admin/internal/admin/catalog"
	"adflow.dev/adflow-admin/internal/admin/contact"
	"adflow.dev/adflow-admin/internal/admin/httpserver"
	"adflow.dev/adflow-admin/internal/admin/httpserver/middleware"
	adminplans "adflow.dev/adflow-admin/internal/admin/plans"
	adminsettings "adflow.dev/adflow-admin/internal/admin/settings"
	"adflow.dev/adflow-admin/internal/admin/session"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithAuthenticator overrides the authenticator used by the admin server.
func WithAuthenticator(auth middleware.Authenticator) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Authenticator = auth
	}
}

// WithBasePath sets a custom base path for the admin routes.
func WithBasePath(path string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.BasePath = path
	}
}

// WithCatalogService wires a custom catalog service implementation, together
// with a resolver and submitter over it.
func WithCatalogService(service catalog.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.CatalogService = service
		cfg.Resolver = catalog.NewResolver(service, nil)
		cfg.Submitter = catalog.NewSubmitter(service, nil)
	}
}

// WithPlansService wires a custom plans service implementation.
func WithPlansService(service adminplans.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.PlansService = service
	}
}

// WithSettingsService wires a custom settings service implementation.
func WithSettingsService(service adminsettings.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.SettingsService = service
	}
}

// WithContactService wires a custom contact service implementation.
func WithContactService(service contact.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.ContactService = service
	}
}

// NewServer constructs an httptest server running the admin HTTP stack with
// sensible defaults: in-memory services and a passthrough authenticator.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	sessions, err := session.NewManager(session.Config{
		HashKey: []byte("0123456789abcdef0123456789abcdef"),
	})
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}

	svc := catalog.NewStaticService()
	cfg := httpserver.Config{
		Address:         ":0",
		BasePath:        "/admin",
		Authenticator:   middleware.DefaultAuthenticator(),
		SessionStore:    sessions,
		CatalogService:  svc,
		Drafts:          catalog.NewDraftStore(),
		Resolver:        catalog.NewResolver(svc, nil),
		Submitter:       catalog.NewSubmitter(svc, nil),
		PlansService:    adminplans.NewStaticService(),
		SettingsService: adminsettings.NewStaticService(),
		ContactService:  contact.NewStaticService(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	srv := httpserver.New(cfg)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}
