package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/ticketing-storefront/internal/config"
	"github.com/your-org/ticketing-storefront/internal/pkg/apperrors"
)

func newTestClient(baseURL string) *Client {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return NewClient(&config.Config{
		Upstream: config.UpstreamConfig{
			BaseURL:      baseURL,
			AssetBaseURL: "http://assets.example.com",
			Timeout:      5 * time.Second,
		},
	}, logger)
}

func TestGetAttachesBearerToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)

	var out map[string]string
	err := c.Get(context.Background(), Credential{ClientID: "c1", Token: "tok-123"}, "/ping", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "yes", out["ok"])
}

func TestGetOmitsAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("{}"))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	require.NoError(t, c.Get(context.Background(), Credential{ClientID: "c1"}, "/ping", nil, nil))
	assert.Empty(t, gotAuth)
}

func TestStatusErrorClassification(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, apperrors.ErrValidationRejected},
		{http.StatusUnauthorized, apperrors.ErrAuthRejected},
		{http.StatusForbidden, apperrors.ErrForbidden},
		{http.StatusNotFound, apperrors.ErrNotFound},
		{http.StatusUnprocessableEntity, apperrors.ErrValidationRejected},
		{http.StatusTooManyRequests, apperrors.ErrRateLimited},
		{http.StatusInternalServerError, apperrors.ErrServerError},
		{http.StatusBadGateway, apperrors.ErrServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"error": "nope"}`))
			}))
			defer ts.Close()

			c := newTestClient(ts.URL)
			err := c.Get(context.Background(), Credential{}, "/x", nil, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestErrorEnvelopeShapes(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
		wantDetails map[string]string
	}{
		{
			name:        "nested error object with details",
			body:        `{"error": {"message": "Validation failed", "details": {"email": "is invalid"}}}`,
			wantMessage: "Validation failed",
			wantDetails: map[string]string{"email": "is invalid"},
		},
		{
			name:        "bare string error",
			body:        `{"error": "Event not found"}`,
			wantMessage: "Event not found",
		},
		{
			name:        "top level message",
			body:        `{"message": "Something broke"}`,
			wantMessage: "Something broke",
		},
		{
			name: "unparseable body",
			body: `<html>gateway error</html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			c := newTestClient(ts.URL)
			err := c.Get(context.Background(), Credential{}, "/x", nil, nil)
			require.Error(t, err)

			var ue *Error
			require.True(t, errors.As(err, &ue))
			assert.Equal(t, http.StatusUnprocessableEntity, ue.StatusCode)
			assert.Equal(t, tt.wantMessage, ue.Message)
			assert.Equal(t, tt.wantDetails, ue.Details)
		})
	}
}

func TestTransportErrorMapsToNetworkUnavailable(t *testing.T) {
	// Point at a closed server
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	c := newTestClient(ts.URL)
	err := c.Get(context.Background(), Credential{}, "/x", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrNetworkUnavailable)
}

func TestAuthRejectedHookFiresOn401(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "token expired"}`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)

	var rejected []string
	c.SetAuthRejectedHook(func(ctx context.Context, clientID string) {
		rejected = append(rejected, clientID)
	})

	err := c.Get(context.Background(), Credential{ClientID: "c1", Token: "stale"}, "/x", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrAuthRejected)
	assert.Equal(t, []string{"c1"}, rejected)

	// Anonymous requests never invoke the hook
	rejected = nil
	_ = c.Get(context.Background(), Credential{}, "/x", nil, nil)
	assert.Empty(t, rejected)
}

func TestAssetURL(t *testing.T) {
	c := newTestClient("http://api.example.com/api/v1")

	assert.Equal(t, "", c.AssetURL(""))
	assert.Equal(t, "https://cdn.example.com/a.png", c.AssetURL("https://cdn.example.com/a.png"))
	assert.Equal(t, "http://assets.example.com/uploads/a.png", c.AssetURL("/uploads/a.png"))
	assert.Equal(t, "http://assets.example.com/uploads/a.png", c.AssetURL("uploads/a.png"))
}
