// Package api is the HTTP client for the news backend. A single Client owns
// transport concerns (base URL, headers, envelope checks, error mapping) and
// exposes one service per endpoint group.
package api

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

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultUserAgent = "newsassist"
	maxBodyBytes     = 8 << 20
	requestIDHeader  = "X-Request-ID"
	tracerName       = "github.com/matheuskafuri/newsassist/internal/api"
)

// Config is the transport configuration. It is built once at startup and
// handed to New; the client never reads the environment itself.
type Config struct {
	BaseURL   string
	Timeout   time.Duration // 0 disables the client-side timeout
	UserAgent string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Config.Timeout is not
// applied to a caller-supplied client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTracerProvider sets where request spans go. Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer(tracerName) }
}

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	base       *url.URL
	userAgent  string
	http       *http.Client
	logger     *slog.Logger
	metrics    *Metrics
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
	validate   *validator.Validate

	Articles *ArticlesService
	Query    *QueryService
	News     *NewsService
	Health   *HealthService
}

// New builds a Client from cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", cfg.BaseURL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", cfg.BaseURL)
	}

	c := &Client{
		base:       base,
		userAgent:  cfg.UserAgent,
		http:       &http.Client{Timeout: cfg.Timeout},
		logger:     slog.Default(),
		tracer:     otel.GetTracerProvider().Tracer(tracerName),
		propagator: propagation.TraceContext{},
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Articles = &ArticlesService{c: c}
	c.Query = &QueryService{c: c}
	c.News = &NewsService{c: c}
	c.Health = &HealthService{c: c}
	return c, nil
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Request describes one call. Route is the path template used for logs,
// metrics and spans; Path is the concrete path.
type Request struct {
	Method string
	Route  string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header
}

// enveloped is implemented by response types that embed Envelope and so must
// carry an explicit success flag.
type enveloped interface{ enveloped() }

// failure is the shape of both application-level and HTTP error bodies.
type failure struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (f failure) text() string {
	if f.Error != "" {
		return f.Error
	}
	return f.Message
}

// Do performs exactly one round trip and decodes a 2xx body into out. Every
// returned error is an *Error.
func (c *Client) Do(ctx context.Context, r Request, out any) (err error) {
	if r.Method == "" {
		r.Method = http.MethodGet
	}
	if r.Route == "" {
		r.Route = r.Path
	}
	reqID := uuid.NewString()
	start := time.Now()

	ctx, span := c.tracer.Start(ctx, "api "+r.Method+" "+r.Route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", r.Method),
			attribute.String("http.route", r.Route),
			attribute.String("request.id", reqID),
		))
	status := 0
	defer func() {
		elapsed := time.Since(start)
		if status != 0 {
			span.SetAttributes(attribute.Int("http.response.status_code", status))
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			var apiErr *Error
			detail := err.Error()
			if errors.As(err, &apiErr) {
				detail = apiErr.Detail()
			}
			c.logger.Warn("api request failed",
				"method", r.Method, "route", r.Route, "status", status,
				"duration", elapsed, "request_id", reqID, "error", detail)
		} else {
			c.logger.Debug("api request",
				"method", r.Method, "route", r.Route, "status", status,
				"duration", elapsed, "request_id", reqID)
		}
		span.End()
		c.metrics.observe(r.Route, r.Method, outcomeOf(err), elapsed.Seconds())
	}()

	req, err := c.newRequest(ctx, r, reqID)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Route: r.Route, Message: transportMessage(err), Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Kind: KindTransport, Route: r.Route, Status: status, Message: transportMessage(err), Err: err}
	}

	if status < 200 || status > 299 {
		return httpError(r.Route, status, body)
	}
	return c.decode(r.Route, status, body, out)
}

func (c *Client) newRequest(ctx context.Context, r Request, reqID string) (*http.Request, error) {
	u := *c.base
	u.Path = c.base.Path + r.Path
	if len(r.Query) > 0 {
		u.RawQuery = r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, &Error{Kind: KindValidation, Route: r.Route, Message: "could not encode request", Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u.String(), body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Route: r.Route, Message: "could not build request", Err: err}
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, reqID)
	c.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))
	return req, nil
}

func (c *Client) decode(route string, status int, body []byte, out any) error {
	var f failure
	if err := json.Unmarshal(body, &f); err != nil {
		// The body may still be valid JSON that is not an object.
		if !json.Valid(body) {
			return &Error{Kind: KindParse, Route: route, Status: status, Message: "invalid JSON in response", Err: err}
		}
	}
	if f.Success != nil && !*f.Success {
		msg := f.text()
		if msg == "" {
			msg = "request failed"
		}
		return &Error{Kind: KindApplication, Route: route, Status: status, Message: msg}
	}
	if out == nil {
		return nil
	}
	if _, ok := out.(enveloped); ok && f.Success == nil {
		return &Error{Kind: KindParse, Route: route, Status: status, Message: "response is missing the success flag"}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindParse, Route: route, Status: status, Message: "unexpected response shape", Err: err}
	}
	if err := c.validate.Struct(out); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return nil
		}
		return &Error{Kind: KindParse, Route: route, Status: status, Message: "unexpected response shape", Err: err}
	}
	return nil
}

func httpError(route string, status int, body []byte) *Error {
	var f failure
	msg := ""
	if err := json.Unmarshal(body, &f); err == nil {
		msg = f.text()
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP error! status: %d", status)
	}
	return &Error{Kind: KindHTTP, Route: route, Status: status, Message: msg}
}

func transportMessage(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "request canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return "request timed out"
	}
	return "network error: could not reach the news service"
}
