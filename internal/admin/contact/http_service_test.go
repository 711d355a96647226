package contact_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"adflow.dev/adflow-admin/internal/admin/contact"
)

func TestHTTPServiceSend(t *testing.T) {
	t.Parallel()

	var payload contact.Message
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/contact/", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		defer r.Body.Close()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(ts.Close)

	svc, err := contact.NewHTTPService(ts.URL+"/api", ts.Client())
	require.NoError(t, err)

	err = svc.Send(context.Background(), contact.Message{
		Name:    "Jun",
		Email:   "jun@example.com",
		Message: `Hello <script>alert("x")</script>there`,
	})
	require.NoError(t, err)
	require.Equal(t, "Jun", payload.Name)
	require.NotContains(t, payload.Message, "<script>")
	require.Contains(t, payload.Message, "Hello")
}

func TestHTTPServiceSendServerError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"email": ["Enter a valid email address."]}`))
	}))
	t.Cleanup(ts.Close)

	svc, err := contact.NewHTTPService(ts.URL+"/api", ts.Client())
	require.NoError(t, err)

	err = svc.Send(context.Background(), contact.Message{Name: "x", Email: "bad"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "valid email")
}
