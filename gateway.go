package appmax

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/appmaxhq/appmax-go/internal/logging"
)

const (
	// instrumentationName is used for OpenTelemetry tracer and meter.
	instrumentationName = "github.com/appmaxhq/appmax-go"

	// defaultTimeout bounds each request, including connect and body read.
	defaultTimeout = 30 * time.Second

	// maxRedirects caps redirect following per request.
	maxRedirects = 10

	// httpStatusCategoryDivisor divides status code to get category (2xx, 4xx, 5xx).
	httpStatusCategoryDivisor = 100

	// transportMaxIdleConns is the maximum number of idle connections.
	transportMaxIdleConns = 100

	// transportMaxIdleConnsPerHost is the maximum idle connections per host.
	transportMaxIdleConnsPerHost = 10

	// transportIdleConnTimeout is the idle connection timeout.
	transportIdleConnTimeout = 90 * time.Second

	// headerRequestID carries a fresh ID per request for correlation.
	headerRequestID = "X-Request-ID"
)

// envelope is the wrapper every API response uses. A response is successful
// only when Success is literally true and the HTTP status is 2xx.
type envelope struct {
	Success bool            `json:"success"`
	Text    string          `json:"text"`
	Data    json.RawMessage `json:"data"`
}

// gateway executes authenticated requests against the API. It injects the
// access token into POST bodies, forces HTTP/1.1, and classifies every
// response as a parsed envelope or an APIError. One isolated request per
// call; no retries and no shared mutable state, so it is safe for
// concurrent use.
type gateway struct {
	http    *http.Client
	baseURL string
	apiKey  string
	logger  *slog.Logger

	tracer trace.Tracer

	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// newGateway creates a gateway for the given base URL and credentials.
// httpClient may be nil, in which case a client with the SDK transport
// defaults is built.
func newGateway(baseURL, apiKey string, httpClient *http.Client, logger *slog.Logger) (*gateway, error) {
	if httpClient == nil {
		httpClient = newHTTPClient(defaultTimeout)
	}

	tracer := otel.Tracer(instrumentationName)
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of Appmax API requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Total number of Appmax API requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &gateway{
		http:            httpClient,
		baseURL:         baseURL,
		apiKey:          apiKey,
		logger:          logger,
		tracer:          tracer,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

// newHTTPClient builds the default HTTP client: fixed total timeout,
// bounded redirects, HTTP/1.1 only.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        transportMaxIdleConns,
			MaxIdleConnsPerHost: transportMaxIdleConnsPerHost,
			IdleConnTimeout:     transportIdleConnTimeout,
			ForceAttemptHTTP2:   false,
			TLSNextProto:        map[string]func(string, *tls.Conn) http.RoundTripper{},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}

			return nil
		},
	}
}

// fetch executes one request and returns the parsed response envelope.
// For POST requests with a body, the access token is injected into a copy
// of the payload; the caller's map is never modified. Failures are always
// an *APIError: UNKNOWN_ERROR for transport failures, API_ERROR for
// anything the API rejected.
func (g *gateway) fetch(ctx context.Context, path, method string, body map[string]any) (*envelope, error) {
	startTime := time.Now()
	requestID := uuid.NewString()
	logger := logging.FromContext(ctx, g.logger).With(
		slog.String("method", method),
		slog.String("path", path),
		slog.String("request_id", requestID),
	)

	req, err := g.buildRequest(ctx, path, method, body, requestID)
	if err != nil {
		return nil, err
	}

	ctx, span := g.tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", method, path),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", "appmax-api"),
		),
	)
	defer span.End()

	logger.Log(ctx, logging.LevelTrace, "request start")

	resp, err := g.http.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		g.recordMetrics(ctx, method, 0, time.Since(startTime), "transport_error")
		logger.Debug("request failed", slog.Any("error", err))

		return nil, newError(ErrCodeUnknown, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		g.recordMetrics(ctx, method, resp.StatusCode, time.Since(startTime), "transport_error")

		return nil, newError(ErrCodeUnknown, err.Error())
	}

	duration := time.Since(startTime)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	statusCategory := fmt.Sprintf("%dxx", resp.StatusCode/httpStatusCategoryDivisor)
	g.recordMetrics(ctx, method, resp.StatusCode, duration, statusCategory)

	env, apiErr := parseEnvelope(raw, resp.StatusCode)
	if apiErr != nil {
		span.SetStatus(codes.Error, apiErr.Message)
		logger.Debug("request rejected",
			slog.Int("status", resp.StatusCode),
			slog.String("text", apiErr.Message),
			slog.Duration("duration", duration),
		)

		return nil, apiErr
	}

	logger.Debug("request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	return env, nil
}

// buildRequest constructs the HTTP request, injecting the access token into
// POST bodies and the correlation ID header into every request.
func (g *gateway) buildRequest(ctx context.Context, path, method string, body map[string]any, requestID string) (*http.Request, error) {
	var reqBody io.Reader = http.NoBody
	hasBody := method == http.MethodPost && body != nil

	if hasBody {
		payload := make(map[string]any, len(body)+1)
		for k, v := range body {
			payload[k] = v
		}
		payload["access-token"] = g.apiKey

		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, newErrorf(ErrCodeUnknown, "encoding request body: %v", err)
		}

		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, newErrorf(ErrCodeUnknown, "creating request: %v", err)
	}

	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerRequestID, requestID)

	return req, nil
}

// parseEnvelope decodes the response body and applies the envelope contract:
// a body that does not parse, a success flag that is not literally true, or
// a status outside [200, 300) is an API_ERROR carrying the response's own
// text and data members.
func parseEnvelope(raw []byte, statusCode int) (*envelope, *APIError) {
	var env envelope
	parseErr := json.Unmarshal(raw, &env)

	if parseErr != nil || !env.Success || statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		message := env.Text
		if message == "" {
			message = "Unknown API error"
		}

		return nil, &APIError{Code: ErrCodeAPI, Message: message, Data: env.Data}
	}

	return &env, nil
}

// recordMetrics records per-request metrics.
func (g *gateway) recordMetrics(ctx context.Context, method string, statusCode int, duration time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", "appmax-api"),
		attribute.String("result", result),
	}

	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	g.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	g.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}
