// Package odoo provides bearer-token access to an Odoo JSON execute bridge.
// Every call goes through a single generic endpoint taking a model name, a
// method and its positional/keyword arguments.
package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client defines the Odoo operations used by this application.
type Client interface {
	Execute(ctx context.Context, model, method string, args []any, kwargs map[string]any) (json.RawMessage, error)
	SearchRead(ctx context.Context, model string, opts SearchReadOptions, out any) error
	Create(ctx context.Context, model string, values map[string]any) (int64, error)
}

// SearchReadOptions holds the kwargs for a search_read call.
type SearchReadOptions struct {
	Domain []any    `json:"domain,omitempty"`
	Fields []string `json:"fields,omitempty"`
	Order  string   `json:"order,omitempty"`
	Limit  int      `json:"limit,omitempty"`
}

// APIError is returned when Odoo responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("odoo: HTTP %d: %s", e.StatusCode, e.Body)
}

// Factory builds a Client from endpoint settings. The indirection lets the
// application pick up token changes saved through the config endpoint, and
// lets tests substitute a mock.
type Factory func(apiURL, apiToken string) Client

// DefaultFactory is the Factory backed by NewClient.
func DefaultFactory(apiURL, apiToken string) Client {
	return NewClient(apiURL, apiToken)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit overrides the default outbound rate limit (4 req/s).
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	apiURL   string
	apiToken string
	http     *http.Client
	limiter  *rate.Limiter
}

// NewClient creates a new Odoo client for the given execute endpoint.
func NewClient(apiURL, apiToken string, opts ...Option) Client {
	c := &httpClient{
		apiURL:   apiURL,
		apiToken: apiToken,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(4, 4),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// executePayload is the body posted to the execute endpoint. Kwargs is
// omitted entirely when empty, matching what the bridge expects.
type executePayload struct {
	Model  string         `json:"model"`
	Method string         `json:"method"`
	Args   []any          `json:"args"`
	Kwargs map[string]any `json:"kwargs,omitempty"`
}

func (c *httpClient) Execute(ctx context.Context, model, method string, args []any, kwargs map[string]any) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "odoo: rate limit")
		}
	}

	if args == nil {
		args = []any{}
	}
	payload := executePayload{Model: model, Method: method, Args: args}
	if len(kwargs) > 0 {
		payload.Kwargs = kwargs
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, eris.Wrap(err, "odoo: marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(buf))
	if err != nil {
		return nil, eris.Wrap(err, "odoo: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "odoo: %s.%s", model, method)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "odoo: read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	return unwrapResult(data)
}

// unwrapResult accepts both a bare JSON value and a {"result": ...} envelope;
// the bridge answers with either depending on the route.
func unwrapResult(data []byte) (json.RawMessage, error) {
	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Result != nil {
		return envelope.Result, nil
	}
	return json.RawMessage(data), nil
}

func (c *httpClient) SearchRead(ctx context.Context, model string, opts SearchReadOptions, out any) error {
	kwargs := map[string]any{}
	if opts.Domain != nil {
		kwargs["domain"] = opts.Domain
	}
	if len(opts.Fields) > 0 {
		kwargs["fields"] = opts.Fields
	}
	if opts.Order != "" {
		kwargs["order"] = opts.Order
	}
	if opts.Limit > 0 {
		kwargs["limit"] = opts.Limit
	}

	raw, err := c.Execute(ctx, model, "search_read", nil, kwargs)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return eris.Wrapf(err, "odoo: decode %s.search_read", model)
	}
	return nil
}

func (c *httpClient) Create(ctx context.Context, model string, values map[string]any) (int64, error) {
	raw, err := c.Execute(ctx, model, "create", []any{[]any{values}}, nil)
	if err != nil {
		return 0, err
	}

	// create returns the new ids as an array, or a single id on older bridges.
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err == nil {
		if len(ids) == 0 {
			return 0, eris.Errorf("odoo: %s.create returned no id", model)
		}
		return ids[0], nil
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, eris.Wrapf(err, "odoo: decode %s.create result", model)
	}
	return id, nil
}
