package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"adflow.dev/adflow-admin/internal/admin/catalog"
)

func TestHTTPServiceListTags(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags/", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]catalog.Tag{{ID: 7, Name: "summer"}, {ID: 9, Name: "sale"}})
	}))
	t.Cleanup(ts.Close)

	svc, err := catalog.NewHTTPService(ts.URL+"/api", ts.Client())
	require.NoError(t, err)

	tags, err := svc.ListTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 2)
	require.Equal(t, int64(7), tags[0].ID)
}

func TestHTTPServiceCreateTag(t *testing.T) {
	t.Parallel()

	var payload map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags/", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		defer r.Body.Close()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(catalog.Tag{ID: 12, Name: payload["name"]})
	}))
	t.Cleanup(ts.Close)

	svc, err := catalog.NewHTTPService(ts.URL+"/api", ts.Client())
	require.NoError(t, err)

	tag, err := svc.CreateTag(context.Background(), "Winter")
	require.NoError(t, err)
	require.Equal(t, int64(12), tag.ID)
	require.Equal(t, "Winter", payload["name"], "create must send the original label")
}

func TestHTTPServiceCreateProduct(t *testing.T) {
	t.Parallel()

	var payload catalog.CreateProductRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products/", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		defer r.Body.Close()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(catalog.Product{ID: 55, Name: payload.Name, Price: payload.Price})
	}))
	t.Cleanup(ts.Close)

	svc, err := catalog.NewHTTPService(ts.URL+"/api", ts.Client())
	require.NoError(t, err)

	product, err := svc.CreateProduct(context.Background(), catalog.CreateProductRequest{
		Name:  "Cap",
		Price: "9.99",
		Stock: "3",
		Tags:  []int64{7},
		Variants: []catalog.VariantRow{
			{SKU: "CAP-RED", Name: "Red", Color: "red", Price: "9.99", Stock: "3"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(55), product.ID)
	require.Equal(t, []int64{7}, payload.Tags)
	require.Len(t, payload.Variants, 1)
	require.Equal(t, "CAP-RED", payload.Variants[0].SKU)
}

func TestHTTPServiceCreateProductDecodesFieldErrors(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"name": ["Product name must be unique."], "price": ["Price must be greater than zero."]}`))
	}))
	t.Cleanup(ts.Close)

	svc, err := catalog.NewHTTPService(ts.URL+"/api", ts.Client())
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), catalog.CreateProductRequest{Name: "Dup"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Product name must be unique.")
	require.Contains(t, err.Error(), "Price must be greater than zero.")
}

func TestHTTPServiceUploadImageMultipart(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/product-images/", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "55", r.FormValue("product"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		t.Cleanup(func() { file.Close() })
		require.Equal(t, "hero.jpg", header.Filename)

		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(ts.Close)

	svc, err := catalog.NewHTTPService(ts.URL+"/api", ts.Client())
	require.NoError(t, err)

	err = svc.UploadImage(context.Background(), 55, catalog.MediaFile{Name: "hero.jpg", Content: []byte("jpegbytes")})
	require.NoError(t, err)
}

func TestHTTPServiceUploadVideoFieldName(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/product-videos/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		_, _, err := r.FormFile("video")
		require.NoError(t, err)
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(ts.Close)

	svc, err := catalog.NewHTTPService(ts.URL+"/api", ts.Client())
	require.NoError(t, err)

	err = svc.UploadVideo(context.Background(), 55, catalog.MediaFile{Name: "promo.mp4", Content: []byte("mp4bytes")})
	require.NoError(t, err)
}

func TestHTTPServiceDeleteProduct(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products/55/", r.URL.Path)
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(ts.Close)

	svc, err := catalog.NewHTTPService(ts.URL+"/api", ts.Client())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProduct(context.Background(), 55))
}

func TestHTTPServiceListProductsSearch(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products/", r.URL.Path)
		require.Equal(t, "tote", r.URL.Query().Get("search"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]catalog.Product{{ID: 1, Name: "Canvas Tote", Price: "34.00"}})
	}))
	t.Cleanup(ts.Close)

	svc, err := catalog.NewHTTPService(ts.URL+"/api", ts.Client())
	require.NoError(t, err)

	products, err := svc.ListProducts(context.Background(), "tote")
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Canvas Tote", products[0].Name)
}
