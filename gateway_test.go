package appmax

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *gateway {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gw, err := newGateway(server.URL+"/", "test-key", nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return gw
}

func TestGatewayFetch_Success(t *testing.T) {
	var (
		gotPath        string
		gotContentType string
		gotRequestID   string
		gotBody        map[string]any
	)

	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")

		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success": true, "text": "created", "data": {"id": 7}}`))
	})

	env, err := gw.fetch(context.Background(), "customer", http.MethodPost, map[string]any{"firstname": "Maria"})
	require.NoError(t, err)

	assert.True(t, env.Success)
	assert.Equal(t, "created", env.Text)
	assert.JSONEq(t, `{"id": 7}`, string(env.Data))

	assert.Equal(t, "/customer", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "Maria", gotBody["firstname"])
	assert.Equal(t, "test-key", gotBody["access-token"])
}

func TestGatewayFetch_DoesNotMutateCallerPayload(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": true}`))
	})

	payload := map[string]any{"order_hash": "hash-1"}
	_, err := gw.fetch(context.Background(), "order/refund", http.MethodPost, payload)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"order_hash": "hash-1"}, payload)
	assert.NotContains(t, payload, "access-token")
}

func TestGatewayFetch_SuccessFalse(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "text": "Invalid access token", "data": {"hint": "check the key"}}`))
	})

	_, err := gw.fetch(context.Background(), "customer", http.MethodPost, map[string]any{})

	apiErr := requireAPIError(t, err, ErrCodeAPI)
	assert.Equal(t, "Invalid access token", apiErr.Message)
	assert.JSONEq(t, `{"hint": "check the key"}`, string(apiErr.Data))
}

func TestGatewayFetch_Non2xxDespiteSuccessTrue(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success": true, "text": "looks fine"}`))
	})

	_, err := gw.fetch(context.Background(), "order", http.MethodPost, map[string]any{})

	apiErr := requireAPIError(t, err, ErrCodeAPI)
	assert.Equal(t, "looks fine", apiErr.Message)
}

func TestGatewayFetch_MalformedBody(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway timeout</html>`))
	})

	_, err := gw.fetch(context.Background(), "payment", http.MethodPost, map[string]any{})

	apiErr := requireAPIError(t, err, ErrCodeAPI)
	assert.Equal(t, "Unknown API error", apiErr.Message)
}

func TestGatewayFetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // refuse connections

	gw, err := newGateway(server.URL+"/", "test-key", nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	_, err = gw.fetch(context.Background(), "customer", http.MethodPost, map[string]any{})
	requireAPIError(t, err, ErrCodeUnknown)
}

func TestParseEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		statusCode int
		wantErr    bool
		wantText   string
	}{
		{"success", `{"success": true, "text": "ok"}`, http.StatusOK, false, "ok"},
		{"success 201", `{"success": true}`, http.StatusCreated, false, ""},
		{"success flag false", `{"success": false, "text": "denied"}`, http.StatusOK, true, "denied"},
		{"missing success flag", `{"text": "denied"}`, http.StatusOK, true, "denied"},
		{"status out of range", `{"success": true, "text": "moved"}`, http.StatusMultipleChoices, true, "moved"},
		{"unparseable", `not json`, http.StatusOK, true, "Unknown API error"},
		{"error without text", `{"success": false}`, http.StatusBadRequest, true, "Unknown API error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, apiErr := parseEnvelope([]byte(tt.raw), tt.statusCode)

			if tt.wantErr {
				require.NotNil(t, apiErr)
				assert.Equal(t, ErrCodeAPI, apiErr.Code)
				assert.Equal(t, tt.wantText, apiErr.Message)

				return
			}

			require.Nil(t, apiErr)
			assert.Equal(t, tt.wantText, env.Text)
		})
	}
}

func TestNewHTTPClient_RedirectCap(t *testing.T) {
	client := newHTTPClient(defaultTimeout)

	via := make([]*http.Request, maxRedirects)
	err := client.CheckRedirect(nil, via)
	assert.Error(t, err)

	err = client.CheckRedirect(nil, via[:maxRedirects-1])
	assert.NoError(t, err)
}
