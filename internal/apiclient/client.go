// Package apiclient talks to the portal backend over JSON/HTTP.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
)

const maxBodyBytes = 8 << 20

// Observer is notified once per fetch; err is nil on success.
type Observer func(path string, err error)

// Client issues requests against a resolved base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
	observe    Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithObserver registers a callback run after every fetch.
func WithObserver(fn Observer) Option {
	return func(c *Client) { c.observe = fn }
}

// New creates a Client rooted at baseURL (see ResolveBaseURL).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		validate:   validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the root every request path is appended to.
func (c *Client) BaseURL() string { return c.baseURL }

// Request carries the caller's overrides for a single fetch.
type Request struct {
	Method string
	Header http.Header
	Body   io.Reader
}

// RequestOption overrides part of a Request.
type RequestOption func(*Request)

// WithMethod sets the HTTP method (GET by default).
func WithMethod(method string) RequestOption {
	return func(r *Request) { r.Method = method }
}

// WithHeader adds a request header; it wins over the defaults.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) { r.Header.Set(key, value) }
}

// WithBody sets the request body.
func WithBody(body io.Reader) RequestOption {
	return func(r *Request) { r.Body = body }
}

// FetchJSON requests path and decodes the JSON body into T. Non-success
// statuses become an *Error whose message is the body's "message" field or
// "Erro <status> ao acessar <url>". Decoded values are checked against their
// `validate` struct tags.
func FetchJSON[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	out, err := fetchJSON[T](ctx, c, path, opts...)
	if c.observe != nil {
		c.observe(path, err)
	}
	return out, err
}

func fetchJSON[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	var zero T
	url := c.baseURL + path

	reqOpts := Request{Method: http.MethodGet, Header: http.Header{}}
	reqOpts.Header.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(&reqOpts)
	}

	req, err := http.NewRequestWithContext(ctx, reqOpts.Method, url, reqOpts.Body)
	if err != nil {
		return zero, &Error{Kind: KindTransport, URL: url, Message: fmt.Sprintf("Falha ao acessar %s", url), Err: err}
	}
	req.Header = reqOpts.Header

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, &Error{Kind: KindTransport, URL: url, Message: fmt.Sprintf("Falha ao acessar %s", url), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, &Error{
			Kind:    KindStatus,
			Status:  resp.StatusCode,
			URL:     url,
			Message: errorMessage(body, err, resp.StatusCode, url),
		}
	}
	if err != nil {
		return zero, &Error{Kind: KindTransport, Status: resp.StatusCode, URL: url, Message: fmt.Sprintf("Falha ao acessar %s", url), Err: err}
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, malformed(resp.StatusCode, url, err)
	}
	if err := c.check(out); err != nil {
		return zero, malformed(resp.StatusCode, url, err)
	}
	return out, nil
}

// errorMessage prefers a string "message" from a JSON error body.
func errorMessage(body []byte, readErr error, status int, url string) string {
	if readErr == nil && gjson.ValidBytes(body) {
		if msg := gjson.GetBytes(body, "message"); msg.Type == gjson.String && msg.String() != "" {
			return msg.String()
		}
	}
	return statusMessage(status, url)
}

func malformed(status int, url string, err error) *Error {
	return &Error{
		Kind:    KindMalformed,
		Status:  status,
		URL:     url,
		Message: fmt.Sprintf("Resposta inválida de %s", url),
		Err:     err,
	}
}

// check validates a decoded struct, or every struct element of a slice.
func (c *Client) check(v any) error {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Struct:
		return c.validate.Struct(v)
	case reflect.Pointer:
		if rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return nil
		}
		return c.validate.Struct(v)
	case reflect.Slice:
		for i := 0; i < rv.Len(); i++ {
			if err := c.check(rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}
