package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// HTTPClient matches the subset of http.Client used by HTTPService.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// HTTPService posts contact messages to the remote contact endpoint. Free
// text is sanitized before it leaves the console.
type HTTPService struct {
	base      *url.URL
	client    HTTPClient
	sanitizer *bluemonday.Policy
}

// NewHTTPService constructs a Service over the remote API base URL.
func NewHTTPService(baseURL string, client HTTPClient) (*HTTPService, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("contact: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("contact: parse base URL: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPService{
		base:      parsed,
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}, nil
}

// Send forwards one message.
func (s *HTTPService) Send(ctx context.Context, msg Message) error {
	msg.Name = s.sanitizer.Sanitize(strings.TrimSpace(msg.Name))
	msg.Message = s.sanitizer.Sanitize(msg.Message)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(msg); err != nil {
		return fmt.Errorf("contact: encode message: %w", err)
	}

	endpoint := strings.TrimRight(s.base.String(), "/") + "/contact/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return fmt.Errorf("contact: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("contact: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		if len(body) > 0 {
			return fmt.Errorf("contact: service error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return fmt.Errorf("contact: service error (%d): %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return nil
}
