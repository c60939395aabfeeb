// Package gateway is the HTTP client for the accounting backend. It is the
// only package that performs network I/O; every method is a single round trip.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MrJamesThe3rd/ficore/internal/form"
	"github.com/MrJamesThe3rd/ficore/internal/i18n"
	"github.com/MrJamesThe3rd/ficore/internal/invoice"
	"github.com/MrJamesThe3rd/ficore/internal/transaction"
)

const (
	// maxResponseBody caps how much of any response is read.
	maxResponseBody = 1 << 20
	// maxErrorBody caps how much of a failed response is kept in StatusError.
	maxErrorBody = 512
)

var (
	// ErrUnreachable wraps transport failures: refused connections, timeouts,
	// cancelled contexts.
	ErrUnreachable = errors.New("backend unreachable")
	// ErrMalformedResponse is returned when the 2xx body of a read cannot be
	// decoded.
	ErrMalformedResponse = errors.New("malformed backend response")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
	if e.Body != "" {
		msg += ": " + e.Body
	}

	return msg
}

// Client talks to the backend under a base URL such as http://localhost:5000.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Translations fetches the catalog for lang.
func (c *Client) Translations(ctx context.Context, lang string) (i18n.Catalog, error) {
	path := "/api/translations/" + url.PathEscape(lang)

	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	cat, err := i18n.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrMalformedResponse, path, err)
	}

	return cat, nil
}

func (c *Client) GetInvoice(ctx context.Context, id string) (*invoice.Record, error) {
	return get[invoice.Record](ctx, c, "/api/invoices/"+url.PathEscape(id))
}

func (c *Client) CreateInvoice(ctx context.Context, p invoice.Payload) (*invoice.Record, error) {
	return save[invoice.Record](ctx, c, http.MethodPost, "/api/invoices", p)
}

func (c *Client) UpdateInvoice(ctx context.Context, id string, p invoice.Payload) (*invoice.Record, error) {
	return save[invoice.Record](ctx, c, http.MethodPut, "/api/invoices/"+url.PathEscape(id), p)
}

func (c *Client) CreateTransaction(ctx context.Context, p transaction.Payload) (*transaction.Record, error) {
	return save[transaction.Record](ctx, c, http.MethodPost, "/api/transactions", p)
}

// get fetches path and decodes the response into T. An empty 2xx body yields
// a nil record; an undecodable one is ErrMalformedResponse.
func get[T any](ctx context.Context, c *Client, path string) (*T, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	v, err := decode[T](body)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrMalformedResponse, path, err)
	}

	return v, nil
}

// save performs a write. The status code alone decides the outcome: a 2xx
// whose body is not a record still succeeds, with a nil record.
func save[T any](ctx context.Context, c *Client, method, path string, payload any) (*T, error) {
	body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	v, err := decode[T](body)
	if err != nil {
		slog.Warn("ignoring undecodable response body", "method", method, "path", path, "error", err)
		return nil, nil
	}

	return v, nil
}

func decode[T any](body []byte) (*T, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}

	return &v, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader

	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if key := form.IdempotencyKey(ctx); key != "" && method != http.MethodGet {
		req.Header.Set("Idempotency-Key", key)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUnreachable, method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s %s response: %w", ErrUnreachable, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   trimBody(body),
		}
	}

	return body, nil
}

func trimBody(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= maxErrorBody {
		return s
	}

	cut := maxErrorBody
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut] + "..."
}
