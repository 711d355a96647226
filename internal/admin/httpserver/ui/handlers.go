package ui

import (
	"net/http"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"adflow.dev/adflow-admin/internal/admin/catalog"
	"adflow.dev/adflow-admin/internal/admin/contact"
	"adflow.dev/adflow-admin/internal/admin/plans"
	"adflow.dev/adflow-admin/internal/admin/settings"
	hometpl "adflow.dev/adflow-admin/internal/admin/templates/home"
)

// Dependencies collects external services required by the UI handlers.
type Dependencies struct {
	Logger          *zap.Logger
	CatalogService  catalog.Service
	Drafts          *catalog.DraftStore
	Resolver        *catalog.Resolver
	Submitter       *catalog.Submitter
	PlansService    plans.Service
	SettingsService settings.Service
	ContactService  contact.Service
}

// Handlers exposes HTTP handlers for admin UI pages and fragments.
type Handlers struct {
	log      *zap.Logger
	catalog  catalog.Service
	drafts   *catalog.DraftStore
	resolver *catalog.Resolver
	submit   *catalog.Submitter
	plans    plans.Service
	settings settings.Service
	contact  contact.Service
}

// NewHandlers wires the UI handler set, falling back to in-memory services so
// the console stays usable without a configured backend.
func NewHandlers(deps Dependencies) *Handlers {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	svc := deps.CatalogService
	if svc == nil {
		svc = catalog.NewStaticService()
	}

	drafts := deps.Drafts
	if drafts == nil {
		drafts = catalog.NewDraftStore()
	}

	resolver := deps.Resolver
	if resolver == nil {
		resolver = catalog.NewResolver(svc, nil)
	}

	submitter := deps.Submitter
	if submitter == nil {
		submitter = catalog.NewSubmitter(svc, log)
	}

	plansSvc := deps.PlansService
	if plansSvc == nil {
		plansSvc = plans.NewStaticService()
	}

	settingsSvc := deps.SettingsService
	if settingsSvc == nil {
		settingsSvc = settings.NewStaticService()
	}

	contactSvc := deps.ContactService
	if contactSvc == nil {
		contactSvc = contact.NewStaticService()
	}

	return &Handlers{
		log:      log,
		catalog:  svc,
		drafts:   drafts,
		resolver: resolver,
		submit:   submitter,
		plans:    plansSvc,
		settings: settingsSvc,
		contact:  contactSvc,
	}
}

// Home renders the landing screen.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context(), "")
	if err != nil {
		h.log.Warn("home: list products failed", zap.Error(err))
	}

	if err := h.resolver.Refresh(r.Context()); err != nil {
		h.log.Warn("home: tag refresh failed", zap.Error(err))
	}

	data := hometpl.PageData{
		Title:        "Home",
		ProductCount: len(products),
		TagCount:     len(h.resolver.Known()),
	}
	h.render(w, r, hometpl.Page(data))
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	templ.Handler(component).ServeHTTP(w, r)
}
