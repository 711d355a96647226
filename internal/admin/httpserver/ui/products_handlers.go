package ui

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"adflow.dev/adflow-admin/internal/admin/catalog"
	custommw "adflow.dev/adflow-admin/internal/admin/httpserver/middleware"
	productstpl "adflow.dev/adflow-admin/internal/admin/templates/products"
)

// ProductList renders the products index, optionally filtered by ?search=.
func (h *Handlers) ProductList(w http.ResponseWriter, r *http.Request) {
	searchTerm := strings.TrimSpace(r.URL.Query().Get("search"))

	list, err := h.catalog.ListProducts(r.Context(), searchTerm)
	if err != nil {
		h.log.Error("products: list failed", zap.Error(err))
		data := productstpl.ListPageData{
			Title:      "Products",
			SearchTerm: searchTerm,
			Error:      "Products could not be loaded. Try again shortly.",
		}
		h.renderListOrFragment(w, r, data)
		return
	}

	h.renderListOrFragment(w, r, productstpl.BuildListPageData(searchTerm, list))
}

func (h *Handlers) renderListOrFragment(w http.ResponseWriter, r *http.Request, data productstpl.ListPageData) {
	if custommw.IsHTMXRequest(r.Context()) {
		h.render(w, r, productstpl.ListFragment(data))
		return
	}
	h.render(w, r, productstpl.ListPage(data))
}

// ProductDetail renders a single product page.
func (h *Handlers) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.log.Error("products: fetch failed", zap.Int64("id", id), zap.Error(err))
		http.Error(w, "Product could not be loaded.", http.StatusBadGateway)
		return
	}

	h.render(w, r, productstpl.DetailPage(productstpl.BuildDetailPageData(*product)))
}

// ProductDelete removes a product and re-renders the index fragment.
func (h *Handlers) ProductDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		h.log.Error("products: delete failed", zap.Int64("id", id), zap.Error(err))
		http.Error(w, "Product could not be deleted.", http.StatusBadGateway)
		return
	}
	h.log.Info("product deleted", zap.Int64("id", id))

	list, err := h.catalog.ListProducts(r.Context(), "")
	if err != nil {
		h.log.Warn("products: relist after delete failed", zap.Error(err))
	}
	h.renderListOrFragment(w, r, productstpl.BuildListPageData("", list))
}
