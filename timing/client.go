package timing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/s0up4200/timekeeper/casing"
)

const (
	// DefaultBaseURL is the public API root.
	DefaultBaseURL = "https://web.timingapp.com/api/v1"
	// DefaultTimeout bounds every call.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent when WithUserAgent is not used.
	DefaultUserAgent = "timekeeper/1.0"

	requestIDHeader = "X-Request-Id"
)

// Client is the root API client. It is safe for concurrent use: its
// configuration is fixed at construction and shared by the resource
// clients.
type Client struct {
	transport Transport
	logger    zerolog.Logger
	metrics   MetricsRecorder

	Projects    *ProjectsClient
	TimeEntries *TimeEntriesClient
	Reports     *ReportsClient
}

// NewClient creates a new client authenticating with the given API token
func NewClient(token string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	transport := o.transport
	if transport == nil {
		base, err := parseBaseURL(o.baseURL)
		if err != nil {
			return nil, err
		}

		httpClient := o.httpClient
		if httpClient == nil {
			httpClient = defaultHTTPClient(o.timeout)
		}
		transport = newHTTPTransport(base, token, o.userAgent, httpClient)
	}

	c := &Client{
		transport: transport,
		logger:    o.logger,
		metrics:   o.metrics,
	}
	c.Projects = &ProjectsClient{client: c}
	c.TimeEntries = &TimeEntriesClient{client: c}
	c.Reports = &ReportsClient{client: c}

	return c, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme in %q", ErrInvalidBaseURL, raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %q", ErrInvalidBaseURL, raw)
	}

	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// RequestConfig describes a raw call for endpoints the resource clients do
// not model. Query and Body are sent exactly as given: no key casing is
// applied and the response is not unwrapped.
type RequestConfig struct {
	Method string
	Path   string
	Query  map[string]any
	Body   any
	Header http.Header
}

// Request performs a raw call and decodes the full response body into
// dest when dest is non-nil. Failures are normalized like every other call.
func (c *Client) Request(ctx context.Context, cfg RequestConfig, dest any) error {
	if cfg.Path == "" {
		return errors.New("request path is required")
	}
	method := cfg.Method
	if method == "" {
		method = http.MethodGet
	}

	resp, err := c.call(ctx, &Request{
		Operation: "raw",
		Method:    strings.ToUpper(method),
		Path:      cfg.Path,
		Query:     cfg.Query,
		Body:      cfg.Body,
		Header:    cfg.Header,
	})
	if err != nil {
		return err
	}

	if dest == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// call is the single path to the transport. Every failure the transport
// reports is normalized here, once.
func (c *Client) call(ctx context.Context, req *Request) (*Response, error) {
	requestID := uuid.NewString()
	header := req.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	if header.Get(requestIDHeader) == "" {
		header.Set(requestIDHeader, requestID)
	} else {
		requestID = header.Get(requestIDHeader)
	}
	req.Header = header

	start := time.Now()
	resp, err := c.transport.Do(ctx, req)
	elapsed := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	} else {
		var tErr *TransportError
		if errors.As(err, &tErr) {
			status = tErr.StatusCode
		}
	}
	if c.metrics != nil {
		c.metrics.Observe(req.Operation, req.Method, status, elapsed)
	}

	if err != nil {
		err = normalizeError(err)
		event := c.logger.Debug().
			Err(err).
			Str("operation", req.Operation).
			Str("method", req.Method).
			Str("path", req.Path).
			Str("request_id", requestID).
			Dur("duration", elapsed)
		if apiErr, ok := AsAPIError(err); ok {
			event = event.Int("status", apiErr.Status)
		}
		event.Msg("Timing API request failed")
		return nil, err
	}

	c.logger.Debug().
		Str("operation", req.Operation).
		Str("method", req.Method).
		Str("path", req.Path).
		Str("request_id", requestID).
		Int("status", status).
		Dur("duration", elapsed).
		Msg("Timing API request completed")

	return resp, nil
}

// send performs req and unwraps the response envelope.
func send[T any](ctx context.Context, c *Client, req *Request) (T, error) {
	resp, err := c.call(ctx, req)
	if err != nil {
		var zero T
		return zero, err
	}
	return unwrap[T](resp.Body)
}

// queryParams validates and wire-encodes an optional query. A nil query
// yields nil params.
func queryParams(query any) (map[string]any, error) {
	if err := validateOptions(query); err != nil {
		return nil, err
	}
	return casing.EncodeMap(query)
}

// bodyPayload validates and wire-encodes a request body.
func bodyPayload(opts any) (any, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	return casing.Encode(opts)
}

// resourcePath builds "/<collection>/<id>". id may be a bare identifier or
// a reference such as "/projects/123".
func resourcePath(collection, id string) (string, error) {
	id = strings.TrimSpace(id)
	prefix := "/" + collection + "/"
	id = strings.TrimPrefix(id, prefix)
	if id == "" {
		return "", ErrMissingID
	}
	if strings.Contains(id, "/") {
		return "", fmt.Errorf("invalid %s reference %q", collection, id)
	}
	return prefix + id, nil
}
