package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/pencil-api/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/pencil-api/internal/adapters/clients"

	defaultTimeout = 10 * time.Second

	// backoffJitter spreads each wait by ±25%.
	backoffJitter = 0.25

	// maxResponseBytes bounds a decoded response body.
	maxResponseBytes = 1 << 20
)

// RetryPolicy controls exponential backoff between attempts.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// Config configures a Client.
type Config struct {
	// BaseURL prefixes every request path.
	BaseURL string

	// ServiceName names the upstream in logs, spans and metrics.
	ServiceName string

	// UserAgent is sent on every request when set.
	UserAgent string

	// Timeout bounds each attempt.
	Timeout time.Duration

	Retry   RetryPolicy
	Breaker BreakerConfig

	// Transport replaces the default transport, mostly for tests.
	Transport http.RoundTripper

	Logger *slog.Logger
}

// Client performs JSON GET requests against one upstream with retries,
// a circuit breaker, tracing and request metrics.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	userAgent   string
	retry       RetryPolicy
	breaker     *Breaker
	logger      *slog.Logger

	tracer   trace.Tracer
	duration metric.Float64Histogram
	requests metric.Int64Counter
}

// New creates a client.
func New(cfg Config) (*Client, error) {
	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	if _, err := url.Parse(cfg.BaseURL); err != nil || cfg.BaseURL == "" {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry.MaxAttempts = 1
	}

	if cfg.Retry.Multiplier < 1 {
		cfg.Retry.Multiplier = 1
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("upstream", cfg.ServiceName))

	breaker := NewBreaker(cfg.Breaker)
	breaker.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	meter := otel.Meter(instrumentationName)

	duration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of upstream requests including retries"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requests, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Upstream requests by result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		http:        &http.Client{Timeout: cfg.Timeout, Transport: transport},
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName: cfg.ServiceName,
		userAgent:   cfg.UserAgent,
		retry:       cfg.Retry,
		breaker:     breaker,
		logger:      logger,
		tracer:      otel.Tracer(instrumentationName),
		duration:    duration,
		requests:    requests,
	}, nil
}

// GetJSON requests path with query and decodes a 2xx body into dst.
// Network errors, 429 and 5xx responses are retried. Other statuses
// return a *StatusError at once.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, dst any) error {
	start := time.Now()

	if !c.breaker.Allow() {
		c.record(ctx, 0, start, "circuit_open")
		return ErrCircuitOpen
	}

	target := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	ctx, span := c.tracer.Start(ctx, "GET "+c.serviceName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", http.MethodGet),
			attribute.String("http.url", target),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	logger := logging.FromContext(ctx).With(slog.String("upstream", c.serviceName))

	var lastErr error

	for attempt := range c.retry.MaxAttempts {
		if attempt > 0 {
			wait := c.backoff(attempt)
			logger.DebugContext(ctx, "retrying upstream request",
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", wait),
				slog.Any("error", lastErr),
			)

			select {
			case <-ctx.Done():
				c.breaker.Failure()
				c.record(ctx, 0, start, "canceled")
				span.SetStatus(codes.Error, ctx.Err().Error())

				return ctx.Err()
			case <-time.After(wait):
			}
		}

		status, retry, err := c.attempt(ctx, target, dst)
		if err == nil {
			c.breaker.Success()
			c.record(ctx, status, start, "success")
			span.SetAttributes(attribute.Int("http.status_code", status))

			return nil
		}

		lastErr = err

		if !retry {
			// The upstream answered; a 4xx says nothing about its health.
			c.breaker.Success()
			c.record(ctx, status, start, "rejected")
			span.SetStatus(codes.Error, err.Error())

			return err
		}
	}

	c.breaker.Failure()
	c.record(ctx, 0, start, "error")
	span.SetStatus(codes.Error, lastErr.Error())

	logger.WarnContext(ctx, "upstream request failed",
		slog.Duration("duration", time.Since(start)),
		slog.Any("error", lastErr),
	)

	return fmt.Errorf("%w: %w", ErrRetriesExhausted, lastErr)
}

// attempt performs one request. retry reports whether the failure is
// worth another attempt.
func (c *Client) attempt(ctx context.Context, target string, dst any) (status int, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return 0, false, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, ctx.Err() == nil && retryable(err), err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return resp.StatusCode, true, &StatusError{Service: c.serviceName, StatusCode: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, false, &StatusError{Service: c.serviceName, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(dst); err != nil {
		return resp.StatusCode, false, fmt.Errorf("decoding %s response: %w", c.serviceName, err)
	}

	return resp.StatusCode, false, nil
}

// State returns the breaker state.
func (c *Client) State() State {
	return c.breaker.State()
}

// backoff returns the wait before the given attempt: exponential, capped,
// with jitter.
func (c *Client) backoff(attempt int) time.Duration {
	wait := float64(c.retry.InitialInterval) * math.Pow(c.retry.Multiplier, float64(attempt-1))

	if c.retry.MaxInterval > 0 && wait > float64(c.retry.MaxInterval) {
		wait = float64(c.retry.MaxInterval)
	}

	wait += wait * backoffJitter * (rand.Float64()*2 - 1) //nolint:gosec // jitter only

	return time.Duration(wait)
}

func (c *Client) record(ctx context.Context, status int, start time.Time, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if status > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", status))
	}

	set := metric.WithAttributes(attrs...)
	c.duration.Record(ctx, time.Since(start).Seconds(), set)
	c.requests.Add(ctx, 1, set)
}

// retryable reports whether a transport error may succeed on another try.
// Per-attempt timeouts count; the caller's own cancellation is checked
// separately.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
