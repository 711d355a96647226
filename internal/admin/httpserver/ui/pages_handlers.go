package ui

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	admincontact "adflow.dev/adflow-admin/internal/admin/contact"
	custommw "adflow.dev/adflow-admin/internal/admin/httpserver/middleware"
	adminsettings "adflow.dev/adflow-admin/internal/admin/settings"
	contacttpl "adflow.dev/adflow-admin/internal/admin/templates/contact"
	planstpl "adflow.dev/adflow-admin/internal/admin/templates/plans"
	settingstpl "adflow.dev/adflow-admin/internal/admin/templates/settings"
)

// Plans renders the subscription plans screen.
func (h *Handlers) Plans(w http.ResponseWriter, r *http.Request) {
	list, err := h.plans.Plans(r.Context())
	if err != nil {
		h.log.Error("plans: fetch failed", zap.Error(err))
		http.Error(w, "Plans could not be loaded.", http.StatusBadGateway)
		return
	}
	faqs, err := h.plans.FAQs(r.Context())
	if err != nil {
		h.log.Warn("plans: faq fetch failed", zap.Error(err))
	}

	h.render(w, r, planstpl.Page(planstpl.BuildPageData(list, faqs)))
}

// Settings renders the store settings screen.
func (h *Handlers) Settings(w http.ResponseWriter, r *http.Request) {
	overview, err := h.settings.Overview(r.Context())
	if err != nil {
		h.log.Error("settings: fetch failed", zap.Error(err))
		http.Error(w, "Settings could not be loaded.", http.StatusBadGateway)
		return
	}

	h.render(w, r, settingstpl.Page(settingstpl.BuildPageData(*overview, false)))
}

// SettingsPreferences saves the locale selections and re-renders the
// settings fragment.
func (h *Handlers) SettingsPreferences(w http.ResponseWriter, r *http.Request) {
	prefs := adminsettings.Preferences{
		Country:  strings.TrimSpace(r.FormValue("country")),
		Language: strings.TrimSpace(r.FormValue("language")),
	}

	if err := h.settings.UpdatePreferences(r.Context(), prefs); err != nil {
		h.log.Error("settings: preference update failed", zap.Error(err))
		http.Error(w, "Preferences could not be saved.", http.StatusBadGateway)
		return
	}

	overview, err := h.settings.Overview(r.Context())
	if err != nil {
		h.log.Error("settings: refetch failed", zap.Error(err))
		http.Error(w, "Settings could not be loaded.", http.StatusBadGateway)
		return
	}

	data := settingstpl.BuildPageData(*overview, true)
	if custommw.IsHTMXRequest(r.Context()) {
		h.render(w, r, settingstpl.Fragment(data))
		return
	}
	h.render(w, r, settingstpl.Page(data))
}

// ContactPage renders the contact form, prefilled from the signed-in user.
func (h *Handlers) ContactPage(w http.ResponseWriter, r *http.Request) {
	data := contacttpl.PageData{Title: "Contact us"}
	if user, ok := custommw.UserFromContext(r.Context()); ok && user != nil {
		data.Email = user.Email
	}
	h.render(w, r, contacttpl.Page(data))
}

// ContactSend forwards the message to the backend and re-renders the form.
func (h *Handlers) ContactSend(w http.ResponseWriter, r *http.Request) {
	msg := admincontact.Message{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Email:   strings.TrimSpace(r.FormValue("email")),
		Message: strings.TrimSpace(r.FormValue("message")),
	}

	data := contacttpl.PageData{Title: "Contact us", Name: msg.Name, Email: msg.Email}
	if msg.Message == "" {
		data.Error = "Please write a message before sending."
	} else if err := h.contact.Send(r.Context(), msg); err != nil {
		h.log.Error("contact: send failed", zap.Error(err))
		data.Error = "Your message could not be sent. Try again shortly."
	} else {
		data = contacttpl.PageData{Title: "Contact us", Sent: true}
	}

	if custommw.IsHTMXRequest(r.Context()) {
		h.render(w, r, contacttpl.Fragment(data))
		return
	}
	h.render(w, r, contacttpl.Page(data))
}
