package timing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Request describes one call against the API. Path is relative to the
// client's base URL. A nil Query sends no parameters at all, while a
// non-nil empty Query is an explicitly empty parameter set.
type Request struct {
	// Operation names the call for logs and metrics, e.g. "projects.get".
	Operation string
	Method    string
	Path      string
	Query     map[string]any
	Body      any
	Header    http.Header
}

// Response is a successful (2xx) answer from the service.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport performs requests. Implementations must return a
// *TransportError for non-2xx answers and connection failures.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Ensure httpTransport implements Transport at compile time.
var _ Transport = (*httpTransport)(nil)

// httpTransport is the default Transport. Its fields are set once by
// newHTTPTransport and never changed, so one value serves concurrent calls.
type httpTransport struct {
	baseURL    *url.URL
	token      string
	userAgent  string
	httpClient *http.Client
}

func newHTTPTransport(baseURL *url.URL, token, userAgent string, httpClient *http.Client) *httpTransport {
	return &httpTransport{
		baseURL:    baseURL,
		token:      token,
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// Do implements Transport
func (t *httpTransport) Do(ctx context.Context, r *Request) (*Response, error) {
	reqURL := t.resolve(r.Path, r.Query)

	var body io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+t.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", t.userAgent)
	for key, values := range r.Header {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Err:        fmt.Errorf("failed to read response body: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       respBody,
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// resolve joins the base URL and a relative path, keeping the base path
// prefix (e.g. /api/v1).
func (t *httpTransport) resolve(path string, query map[string]any) string {
	u := *t.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawQuery = ""
	if query != nil {
		u.RawQuery = encodeQuery(query).Encode()
	}
	return u.String()
}

func defaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
