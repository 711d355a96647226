package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"adflow.dev/adflow-admin/internal/admin/catalog"
	"adflow.dev/adflow-admin/internal/admin/contact"
	custommw "adflow.dev/adflow-admin/internal/admin/httpserver/middleware"
	"adflow.dev/adflow-admin/internal/admin/httpserver/ui"
	"adflow.dev/adflow-admin/internal/admin/plans"
	"adflow.dev/adflow-admin/internal/admin/settings"
	"adflow.dev/adflow-admin/public"
)

// Config holds runtime options for the admin HTTP server.
type Config struct {
	Address          string
	BasePath         string
	LoginPath        string
	CSRFCookieName   string
	CSRFCookieSecure bool

	Logger        *zap.Logger
	Authenticator custommw.Authenticator
	SessionStore  custommw.SessionStore

	CatalogService  catalog.Service
	Drafts          *catalog.DraftStore
	Resolver        *catalog.Resolver
	Submitter       *catalog.Submitter
	PlansService    plans.Service
	SettingsService settings.Service
	ContactService  contact.Service
}

// New constructs the HTTP server with the middleware stack, embedded assets
// and all console routes.
func New(cfg Config) *http.Server {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(60 * time.Second))

	basePath := normalizeBasePath(cfg.BasePath)
	loginPath := resolveLoginPath(basePath, cfg.LoginPath)

	if staticContent, err := public.StaticFS(); err != nil {
		log.Error("embed static assets", zap.Error(err))
	} else {
		staticPrefix := basePath
		if staticPrefix == "/" {
			staticPrefix = ""
		}
		router.Handle(staticPrefix+"/static/*",
			http.StripPrefix(staticPrefix+"/static/", http.FileServer(http.FS(staticContent))))
	}

	authenticator := cfg.Authenticator
	if authenticator == nil {
		authenticator = custommw.DefaultAuthenticator()
	}

	handlers := ui.NewHandlers(ui.Dependencies{
		Logger:          log,
		CatalogService:  cfg.CatalogService,
		Drafts:          cfg.Drafts,
		Resolver:        cfg.Resolver,
		Submitter:       cfg.Submitter,
		PlansService:    cfg.PlansService,
		SettingsService: cfg.SettingsService,
		ContactService:  cfg.ContactService,
	})

	mountAdminRoutes(router, basePath, routeOptions{
		Authenticator: authenticator,
		LoginPath:     loginPath,
		BasePath:      basePath,
		Logger:        log,
		SessionStore:  cfg.SessionStore,
		CSRF: custommw.CSRFConfig{
			CookieName:   cfg.CSRFCookieName,
			CookieSecure: cfg.CSRFCookieSecure,
			Logger:       log,
		},
	}, handlers)

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

type routeOptions struct {
	Authenticator custommw.Authenticator
	LoginPath     string
	BasePath      string
	Logger        *zap.Logger
	SessionStore  custommw.SessionStore
	CSRF          custommw.CSRFConfig
}

func mountAdminRoutes(router chi.Router, base string, opts routeOptions, handlers *ui.Handlers) {
	authPages := newAuthHandlers(opts.Authenticator, base, opts.LoginPath, opts.Logger)

	if base != "/" {
		router.Get(base, http.RedirectHandler(base+"/", http.StatusMovedPermanently).ServeHTTP)
	}

	router.Route(base, func(r chi.Router) {
		r.Use(custommw.RequestInfoMiddleware(base))
		r.Use(custommw.Session(opts.SessionStore, opts.Logger))
		r.Use(custommw.HTMX())
		r.Use(custommw.NoStore())
		r.Use(custommw.CSRF(opts.CSRF))

		r.Get("/login", authPages.LoginForm)
		r.Post("/login", authPages.LoginSubmit)

		r.Group(func(r chi.Router) {
			r.Use(custommw.Auth(opts.Authenticator, opts.LoginPath, opts.Logger))

			r.Get("/", handlers.Home)
			r.Get("/logout", authPages.Logout)
			r.Post("/logout", authPages.Logout)

			r.Get("/products", handlers.ProductList)

			r.Route("/products/new", func(r chi.Router) {
				r.Get("/", handlers.Composer)
				r.Post("/fields", handlers.ComposerFields)
				r.Post("/tags", handlers.ComposerTagAdd)
				r.Post("/tags/remove", handlers.ComposerTagRemove)
				r.Post("/variants", handlers.ComposerVariantAdd)
				r.Post("/variants/{index}", handlers.ComposerVariantEdit)
				r.Post("/variants/{index}/delete", handlers.ComposerVariantDelete)
				r.Post("/media", handlers.ComposerMedia)
				r.Post("/submit", handlers.ComposerSubmit)
			})

			r.Get("/products/{id}", handlers.ProductDetail)
			r.With(custommw.RequireRole("admin")).Delete("/products/{id}", handlers.ProductDelete)

			r.Get("/plans", handlers.Plans)
			r.Get("/settings", handlers.Settings)
			r.Post("/settings/preferences", handlers.SettingsPreferences)
			r.Get("/contact", handlers.ContactPage)
			r.Post("/contact", handlers.ContactSend)
		})
	})
}

func normalizeBasePath(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return "/admin"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		return "/"
	}
	return p
}

func resolveLoginPath(base string, override string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	if base == "/" {
		return "/login"
	}
	return base + "/login"
}
