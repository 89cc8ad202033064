// Package http implements the backend resource clients on resty. Every
// request passes through the authenticating pipeline installed by NewClient.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/bft-labs/distclient/internal/domain"
	"github.com/bft-labs/distclient/internal/ports"
	"github.com/bft-labs/distclient/pkg/log"
)

var (
	_ ports.AuthAPI      = (*Client)(nil)
	_ ports.DashboardAPI = (*Client)(nil)
	_ ports.PartnerAPI   = (*Client)(nil)
	_ ports.ProductAPI   = (*Client)(nil)
	_ ports.OperationAPI = (*Client)(nil)
)

// RequestIDHeader carries a per-request UUID for server-side correlation.
const RequestIDHeader = "X-Request-ID"

// DefaultTimeout bounds each request when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// TokenSource yields the current bearer token, or "" when logged out.
// internal/session.Store satisfies it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Config configures a Client.
type Config struct {
	// BaseURL is the backend root, e.g. https://api.example.com
	BaseURL string

	// Timeout bounds each request
	Timeout time.Duration

	// HTTPClient is the underlying transport (optional)
	HTTPClient *http.Client

	// UserAgent is sent with every request (optional)
	UserAgent string
}

// Client implements the ports API interfaces.
type Client struct {
	r      *resty.Client
	tokens TokenSource
	logger log.Logger
}

// NewClient creates a Client whose requests carry the token from tokens.
func NewClient(cfg Config, tokens TokenSource, logger log.Logger) *Client {
	if logger == nil {
		logger = log.Discard
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{tokens: tokens, logger: logger}
	c.r = resty.NewWithClient(hc).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetDisableWarn(true).
		SetLogger(restyLogger{logger}).
		SetHeader("Accept", "application/json").
		OnBeforeRequest(c.authenticate).
		OnAfterResponse(c.logResponse).
		OnError(c.logError)
	if cfg.UserAgent != "" {
		c.r.SetHeader("User-Agent", cfg.UserAgent)
	}
	return c
}

type skipAuthKey struct{}

// withoutAuth marks a request context so the pipeline sends no token.
func withoutAuth(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipAuthKey{}, true)
}

// authenticate attaches the bearer token when one is stored. Storage
// failures are logged and the request proceeds unauthenticated.
func (c *Client) authenticate(_ *resty.Client, r *resty.Request) error {
	r.SetHeader(RequestIDHeader, uuid.NewString())

	ctx := r.Context()
	if skip, _ := ctx.Value(skipAuthKey{}).(bool); skip || c.tokens == nil {
		return nil
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.logger.Warn("token lookup failed, sending unauthenticated",
			log.String("url", r.URL),
			log.Err(err),
		)
		return nil
	}
	if token != "" {
		r.SetAuthToken(token)
	}
	return nil
}

func (c *Client) logResponse(_ *resty.Client, resp *resty.Response) error {
	c.logger.Debug("http response",
		log.String("method", resp.Request.Method),
		log.String("url", resp.Request.URL),
		log.Int("status", resp.StatusCode()),
		log.Duration("duration", resp.Time()),
		log.String("request_id", resp.Request.Header.Get(RequestIDHeader)),
	)
	return nil
}

func (c *Client) logError(req *resty.Request, err error) {
	c.logger.Debug("http request failed",
		log.String("method", req.Method),
		log.String("url", req.URL),
		log.Err(err),
	)
}

// do executes the request and decodes a 2xx JSON body into out (if non-nil).
func (c *Client) do(req *resty.Request, method, path string, out any) error {
	op := method + " " + path

	resp, err := req.Execute(method, path)
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}
	if !resp.IsSuccess() {
		return newHTTPError(resp.StatusCode(), resp.Body())
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &domain.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params query, out any) error {
	return c.do(c.r.R().SetContext(ctx).SetQueryParams(params), http.MethodGet, path, out)
}

// newHTTPError extracts the FastAPI "detail" message, which is either a
// string or a list of validation errors.
func newHTTPError(status int, body []byte) *domain.HTTPError {
	herr := &domain.HTTPError{StatusCode: status, Body: string(body)}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return herr
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		herr.Detail = s
		return herr
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if len(it.Loc) > 0 {
				msgs = append(msgs, fmt.Sprintf("%v: %s", it.Loc[len(it.Loc)-1], it.Msg))
			} else {
				msgs = append(msgs, it.Msg)
			}
		}
		herr.Detail = strings.Join(msgs, "; ")
		return herr
	}

	herr.Detail = string(envelope.Detail)
	return herr
}

// query holds query-string parameters. Blank strings are never stored.
type query map[string]string

func (q query) set(key, value string) {
	if value != "" {
		q[key] = value
	}
}

func (q query) setInt(key string, value int) {
	q[key] = strconv.Itoa(value)
}

// decodeList accepts either a bare JSON array or an object envelope that
// holds the array under key.
func decodeList[T any](body []byte, key string) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	raw, ok := envelope[key]
	if !ok || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return items, nil
}

// list fetches a collection endpoint.
func list[T any](c *Client, ctx context.Context, path string, params query, key string) ([]T, error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, params, &raw); err != nil {
		return nil, err
	}
	items, err := decodeList[T](raw, key)
	if err != nil {
		return nil, &domain.TransportError{Op: http.MethodGet + " " + path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return items, nil
}

// restyLogger forwards resty's internal messages to log.Logger.
type restyLogger struct {
	l log.Logger
}

func (r restyLogger) Errorf(format string, v ...any) {
	r.l.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (r restyLogger) Warnf(format string, v ...any) {
	r.l.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (r restyLogger) Debugf(format string, v ...any) {
	r.l.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
