package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// HTTPClient matches the subset of http.Client used by HTTPService.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// HTTPService implements Service backed by the catalog REST API
// (DRF-style endpoints with trailing slashes).
type HTTPService struct {
	base   *url.URL
	client HTTPClient
}

// NewHTTPService constructs a Service that talks to the remote catalog API.
func NewHTTPService(baseURL string, client HTTPClient) (*HTTPService, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("catalog: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse base URL: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPService{base: parsed, client: client}, nil
}

// ListTags retrieves the full tag listing used to seed and refresh the
// known-tags cache.
func (s *HTTPService) ListTags(ctx context.Context) ([]Tag, error) {
	req, err := s.newRequest(ctx, http.MethodGet, s.endpoint("tags"), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.errorFromResponse(resp)
	}

	var tags []Tag
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("catalog: decode tag listing: %w", err)
	}
	return tags, nil
}

// CreateTag registers a new tag label.
func (s *HTTPService) CreateTag(ctx context.Context, name string) (Tag, error) {
	body := map[string]string{"name": name}
	req, err := s.newJSONRequest(ctx, http.MethodPost, s.endpoint("tags"), body)
	if err != nil {
		return Tag{}, err
	}
	resp, err := s.do(req)
	if err != nil {
		return Tag{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return Tag{}, s.errorFromResponse(resp)
	}

	var tag Tag
	if err := json.NewDecoder(resp.Body).Decode(&tag); err != nil {
		return Tag{}, fmt.Errorf("catalog: decode created tag: %w", err)
	}
	return tag, nil
}

// ListProducts retrieves products, optionally filtered by a name search.
func (s *HTTPService) ListProducts(ctx context.Context, search string) ([]Product, error) {
	endpoint := s.endpoint("products")
	if q := strings.TrimSpace(search); q != "" {
		endpoint += "?search=" + url.QueryEscape(q)
	}
	req, err := s.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.errorFromResponse(resp)
	}

	var products []Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("catalog: decode product listing: %w", err)
	}
	return products, nil
}

// GetProduct retrieves one product with nested tags, variants and media.
func (s *HTTPService) GetProduct(ctx context.Context, id int64) (*Product, error) {
	req, err := s.newRequest(ctx, http.MethodGet, s.endpoint("products", id), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, s.errorFromResponse(resp)
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("catalog: decode product: %w", err)
	}
	return &product, nil
}

// CreateProduct creates a product with tag links and embedded variants in a
// single call. The server either returns the new product or an error body; no
// partial states are modeled client-side.
func (s *HTTPService) CreateProduct(ctx context.Context, reqBody CreateProductRequest) (*Product, error) {
	if reqBody.Tags == nil {
		reqBody.Tags = []int64{}
	}
	if reqBody.Variants == nil {
		reqBody.Variants = []VariantRow{}
	}
	req, err := s.newJSONRequest(ctx, http.MethodPost, s.endpoint("products"), reqBody)
	if err != nil {
		return nil, err
	}
	resp, err := s.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, s.errorFromResponse(resp)
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("catalog: decode created product: %w", err)
	}
	return &product, nil
}

// DeleteProduct removes a product.
func (s *HTTPService) DeleteProduct(ctx context.Context, id int64) error {
	req, err := s.newRequest(ctx, http.MethodDelete, s.endpoint("products", id), nil)
	if err != nil {
		return err
	}
	resp, err := s.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return s.errorFromResponse(resp)
	}
	return nil
}

// UploadImage posts one image file as multipart form data.
func (s *HTTPService) UploadImage(ctx context.Context, productID int64, file MediaFile) error {
	return s.uploadMedia(ctx, s.endpoint("product-images"), productID, "image", file)
}

// UploadVideo posts one video file as multipart form data.
func (s *HTTPService) UploadVideo(ctx context.Context, productID int64, file MediaFile) error {
	return s.uploadMedia(ctx, s.endpoint("product-videos"), productID, "video", file)
}

// uploadMedia packages the file with the product identifier and the
// kind-specific field name. The payload is passed through as an opaque blob.
func (s *HTTPService) uploadMedia(ctx context.Context, endpoint string, productID int64, field string, file MediaFile) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("product", strconv.FormatInt(productID, 10)); err != nil {
		return fmt.Errorf("catalog: write product field: %w", err)
	}
	part, err := mw.CreateFormFile(field, file.Name)
	if err != nil {
		return fmt.Errorf("catalog: create form file: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return fmt.Errorf("catalog: write file payload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("catalog: finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return s.errorFromResponse(resp)
	}
	return nil
}

func (s *HTTPService) do(req *http.Request) (*http.Response, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: request failed: %w", err)
	}
	return resp, nil
}

func (s *HTTPService) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
	return req, nil
}

func (s *HTTPService) newJSONRequest(ctx context.Context, method, endpoint string, payload any) (*http.Request, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("catalog: encode payload: %w", err)
	}
	req, err := s.newRequest(ctx, method, endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// endpoint builds an absolute URL under the base path with the trailing slash
// the remote routing expects.
func (s *HTTPService) endpoint(resource string, ids ...int64) string {
	base := strings.TrimRight(s.base.String(), "/")
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("/")
	b.WriteString(resource)
	for _, id := range ids {
		b.WriteString("/")
		b.WriteString(strconv.FormatInt(id, 10))
	}
	b.WriteString("/")
	return b.String()
}

// errorFromResponse turns a non-success response into a readable error.
// DRF bodies are either {"detail": "..."} or a field-to-messages map.
func (s *HTTPService) errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var payload map[string]json.RawMessage
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil && len(payload) > 0 {
		if detail, ok := payload["detail"]; ok {
			var msg string
			if json.Unmarshal(detail, &msg) == nil && msg != "" {
				return fmt.Errorf("catalog: service error (%d): %s", resp.StatusCode, msg)
			}
		}
		if msg := fieldErrors(payload); msg != "" {
			return fmt.Errorf("catalog: service error (%d): %s", resp.StatusCode, msg)
		}
	}
	if len(body) > 0 {
		return fmt.Errorf("catalog: service error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return fmt.Errorf("catalog: service error (%d): %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

func fieldErrors(payload map[string]json.RawMessage) string {
	fields := make([]string, 0, len(payload))
	for field := range payload {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var parts []string
	for _, field := range fields {
		var messages []string
		if json.Unmarshal(payload[field], &messages) == nil && len(messages) > 0 {
			parts = append(parts, field+": "+strings.Join(messages, " "))
		}
	}
	return strings.Join(parts, "; ")
}
