package ui

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"adflow.dev/adflow-admin/internal/admin/catalog"
	custommw "adflow.dev/adflow-admin/internal/admin/httpserver/middleware"
	composertpl "adflow.dev/adflow-admin/internal/admin/templates/composer"
)

// Uploaded files are buffered in the draft until submit; 32 MB covers the
// browser-side multipart memory threshold.
const maxUploadMemory = 32 << 20

// Composer renders the product composer page around the session draft.
func (h *Handlers) Composer(w http.ResponseWriter, r *http.Request) {
	if err := h.resolver.Refresh(r.Context()); err != nil {
		h.log.Warn("composer: tag refresh failed", zap.Error(err))
	}

	draft := h.sessionDraft(r)
	h.render(w, r, composertpl.Page(composertpl.BuildPageData(draft.Clone(), h.resolver.Known())))
}

// ComposerFields applies the scalar form fields to the draft and re-renders
// the form fragment.
func (h *Handlers) ComposerFields(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	draft := h.sessionDraft(r)
	if r.Form.Has("name") {
		draft.Name = r.FormValue("name")
	}
	if r.Form.Has("description") {
		draft.Description = r.FormValue("description")
	}
	if r.Form.Has("price") {
		draft.Price = r.FormValue("price")
	}
	if r.Form.Has("stock") {
		draft.Stock = r.FormValue("stock")
	}

	h.renderForm(w, r, draft, "")
}

// ComposerTagAdd resolves the typed label to a tag, creating it remotely when
// unknown, and selects it on the draft. The typed text is consumed only on
// success; a failed creation leaves the draft untouched and surfaces the error
// next to the input.
func (h *Handlers) ComposerTagAdd(w http.ResponseWriter, r *http.Request) {
	draft := h.sessionDraft(r)
	label := r.FormValue("tag")

	tag, err := h.resolver.Resolve(r.Context(), label)
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyLabel) {
			h.renderForm(w, r, draft, "")
			return
		}
		var tagErr *catalog.TagCreateError
		if errors.As(err, &tagErr) {
			h.log.Warn("composer: tag creation failed",
				zap.String("label", tagErr.Label),
				zap.Error(err))
			h.renderForm(w, r, draft, "Tag "+strconv.Quote(tagErr.Label)+" could not be created.")
			return
		}
		h.log.Error("composer: tag resolution failed", zap.Error(err))
		h.renderForm(w, r, draft, "Tags are unavailable right now.")
		return
	}

	draft.AddTag(tag.ID)
	h.renderForm(w, r, draft, "")
}

// ComposerTagRemove deselects a tag from the draft.
func (h *Handlers) ComposerTagRemove(w http.ResponseWriter, r *http.Request) {
	draft := h.sessionDraft(r)
	if id, err := strconv.ParseInt(r.FormValue("tag_id"), 10, 64); err == nil {
		draft.RemoveTag(id)
	}
	h.renderForm(w, r, draft, "")
}

// ComposerVariantAdd appends an empty variant row.
func (h *Handlers) ComposerVariantAdd(w http.ResponseWriter, r *http.Request) {
	draft := h.sessionDraft(r)
	draft.AddVariant()
	h.renderForm(w, r, draft, "")
}

// ComposerVariantEdit replaces one field of one row, addressed by index.
func (h *Handlers) ComposerVariantEdit(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	draft := h.sessionDraft(r)
	field := r.FormValue("field")
	draft.SetVariantField(index, field, r.FormValue("variant_"+field))
	h.renderForm(w, r, draft, "")
}

// ComposerVariantDelete removes the row at index; later rows shift up.
func (h *Handlers) ComposerVariantDelete(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	draft := h.sessionDraft(r)
	draft.RemoveVariant(index)
	h.renderForm(w, r, draft, "")
}

// ComposerMedia stages uploaded files on the draft. Nothing is sent to the
// remote service until submit.
func (h *Handlers) ComposerMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "invalid upload payload", http.StatusBadRequest)
		return
	}

	draft := h.sessionDraft(r)

	images, err := readMediaFiles(r.MultipartForm.File["images"])
	if err != nil {
		http.Error(w, "image payload could not be read", http.StatusBadRequest)
		return
	}
	draft.AddImages(images...)

	videos, err := readMediaFiles(r.MultipartForm.File["videos"])
	if err != nil {
		http.Error(w, "video payload could not be read", http.StatusBadRequest)
		return
	}
	draft.AddVideos(videos...)

	h.renderForm(w, r, draft, "")
}

// ComposerSubmit runs one submission attempt over a snapshot of the draft.
// The draft is reset only when the product itself was created; media failures
// keep the result visible but do not bring the draft back.
func (h *Handlers) ComposerSubmit(w http.ResponseWriter, r *http.Request) {
	sessionID := custommw.SessionID(r.Context())
	draft := h.drafts.Get(sessionID)

	result := h.submit.Submit(r.Context(), draft.Clone())
	if result.Succeeded {
		h.drafts.Reset(sessionID)
	}

	h.render(w, r, composertpl.ResultFragment(composertpl.ResultPayload(result)))
}

func (h *Handlers) sessionDraft(r *http.Request) *catalog.Draft {
	return h.drafts.Get(custommw.SessionID(r.Context()))
}

func (h *Handlers) renderForm(w http.ResponseWriter, r *http.Request, draft *catalog.Draft, tagError string) {
	known := h.resolver.Known()
	form := composertpl.FormPayload(draft.Clone(), known)
	form.TagError = tagError
	h.render(w, r, composertpl.FormFragment(form, toTagViews(known)))
}

func toTagViews(tags []catalog.Tag) []composertpl.TagView {
	views := make([]composertpl.TagView, 0, len(tags))
	for _, tag := range tags {
		views = append(views, composertpl.TagView{ID: tag.ID, Name: tag.Name})
	}
	return views
}

func readMediaFiles(headers []*multipart.FileHeader) ([]catalog.MediaFile, error) {
	files := make([]catalog.MediaFile, 0, len(headers))
	for _, header := range headers {
		if header == nil || strings.TrimSpace(header.Filename) == "" {
			continue
		}
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, catalog.MediaFile{Name: header.Filename, Content: content})
	}
	return files, nil
}
