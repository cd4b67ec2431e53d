// Package externalapi is the outbound client for the external REST service watched records are pushed to.
package externalapi

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
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"inquirysync/internal/config"
	"inquirysync/internal/model"
)

// maxBodyBytes bounds how much of a response body is read into memory.
const maxBodyBytes = 1 << 20

// Client pushes record data to the external service.
type Client interface {
	// Create announces a new record and returns the identifier the service generated for it.
	Create(ctx context.Context, payload model.SyncPayload) (model.ExternalReference, error)
	// Update sends changed data for a record the service already knows under ref.
	Update(ctx context.Context, ref model.ExternalReference, payload model.SyncPayload) error
}

// CreateResult is the part of the create response the bridge relies on.
type CreateResult struct {
	ID string `json:"id"`
}

// HTTPClient implements Client over JSON/HTTP.
// It is safe for concurrent use by multiple goroutines.
type HTTPClient struct {
	httpClient *http.Client
	createURL  string
	updateURL  string
	metrics    *Metrics
}

var _ Client = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the default instrumented http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

// WithMetrics records every call in m.
func WithMetrics(m *Metrics) Option {
	return func(c *HTTPClient) {
		c.metrics = m
	}
}

// New creates a client for the endpoints in cfg.
// The default http.Client traces calls with otelhttp, applies cfg.TimeoutSec and does not follow redirects.
func New(cfg config.ExternalAPIConfig, opts ...Option) (*HTTPClient, error) {
	for name, raw := range map[string]string{"create": cfg.CreateURL, "update": cfg.UpdateURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid external api %s url %q", name, raw)
		}
	}

	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &HTTPClient{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		createURL: cfg.CreateURL,
		updateURL: strings.TrimRight(cfg.UpdateURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Create POSTs payload to the create endpoint and decodes the generated identifier.
func (c *HTTPClient) Create(ctx context.Context, payload model.SyncPayload) (ref model.ExternalReference, err error) {
	const op = "create"
	start := time.Now()
	defer func() { c.metrics.observe(op, start, err) }()

	body, err := c.do(ctx, op, http.MethodPost, c.createURL, payload)
	if err != nil {
		return "", err
	}

	var res CreateResult
	if err := json.Unmarshal(body, &res); err != nil {
		return "", &Error{Kind: KindParse, Op: op, Body: string(body), Err: fmt.Errorf("decode create response: %w", err)}
	}
	if res.ID == "" {
		return "", &Error{Kind: KindParse, Op: op, Body: string(body), Err: errors.New("create response has no id")}
	}
	return model.ExternalReference(res.ID), nil
}

// Update PUTs payload to the update endpoint addressed by ref. The response body is ignored.
func (c *HTTPClient) Update(ctx context.Context, ref model.ExternalReference, payload model.SyncPayload) (err error) {
	const op = "update"
	start := time.Now()
	defer func() { c.metrics.observe(op, start, err) }()

	_, err = c.do(ctx, op, http.MethodPut, c.updateURL+"/"+url.PathEscape(ref.String()), payload)
	return err
}

func (c *HTTPClient) do(ctx context.Context, op, method, target string, payload model.SyncPayload) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: transportKind(err), Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Kind: transportKind(err), Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			Kind:       KindTransport,
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        statusError(resp.StatusCode),
		}
	}
	return body, nil
}
