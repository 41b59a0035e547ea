// Package catalog implements repository.RecordProvider against the Art Institute
// of Chicago public API (or any API with the same /api/v1/artworks shape).
package catalog

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"catalog-selection/internal/domain/entity"
	"catalog-selection/internal/observability/metrics"
	"catalog-selection/internal/observability/tracing"
	"catalog-selection/internal/repository"
	"catalog-selection/internal/resilience/circuitbreaker"
	"catalog-selection/internal/resilience/retry"
)

const artworksPath = "/api/v1/artworks"

// HTTPProvider fetches catalog pages over HTTP.
//
// Every fetch passes through, in order: the retry loop, the outbound rate
// limiter, and the circuit breaker. An open breaker is not retried.
//
// Thread safety: HTTPProvider is safe for concurrent use.
type HTTPProvider struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	limiter        *RateLimiter
	retryConfig    retry.Config
	config         Config
}

// Option customizes an HTTPProvider.
type Option func(*HTTPProvider)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *HTTPProvider) { p.client = c }
}

// WithRetryConfig replaces the default retry policy.
func WithRetryConfig(cfg retry.Config) Option {
	return func(p *HTTPProvider) { p.retryConfig = cfg }
}

// WithCircuitBreaker replaces the default circuit breaker.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(p *HTTPProvider) { p.circuitBreaker = cb }
}

// NewHTTPProvider creates a provider for the given configuration.
//
// Example:
//
//	cfg, err := LoadConfigFromEnv()
//	if err != nil {
//	    return err
//	}
//	provider := NewHTTPProvider(cfg)
//	page, err := provider.FetchPage(ctx, 1, 0)
func NewHTTPProvider(config Config, opts ...Option) *HTTPProvider {
	p := &HTTPProvider{
		client: &http.Client{
			Timeout: config.Timeout + 5*time.Second, // per-request timeout is applied via context
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12, // Enforce TLS 1.2+
				},
			},
		},
		circuitBreaker: circuitbreaker.New(circuitbreaker.CatalogAPIConfig()),
		limiter:        NewRateLimiter(config.RateLimit, config.RateBurst),
		retryConfig:    retry.CatalogAPIConfig(),
		config:         config,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CircuitBreaker exposes the breaker so health checks can report its state.
func (p *HTTPProvider) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return p.circuitBreaker
}

// FetchPage returns the records of the 1-based page. A limit of 0 selects
// Config.PageSize; larger limits are capped at Config.MaxLimit.
func (p *HTTPProvider) FetchPage(ctx context.Context, page, limit int) (repository.Page, error) {
	if err := entity.ValidatePage(page); err != nil {
		return repository.Page{}, err
	}
	limit = p.config.clampLimit(limit)

	ctx, span := tracing.GetTracer().Start(ctx, "catalog.FetchPage",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.Int("catalog.page", page),
			attribute.Int("catalog.limit", limit),
		))
	defer span.End()

	pageURL, err := p.buildURL(page, limit)
	if err != nil {
		return repository.Page{}, err
	}

	retryCfg := p.retryConfig
	if retryCfg.Retryable == nil {
		retryCfg.Retryable = isRetryable
	}

	start := time.Now()
	var result repository.Page
	err = retry.WithBackoff(ctx, retryCfg, func() error {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
		v, err := p.circuitBreaker.Execute(func() (interface{}, error) {
			return p.doFetch(ctx, pageURL)
		})
		if err != nil {
			return err
		}
		result = v.(repository.Page)
		return nil
	})
	metrics.RecordProviderRequest("api", err == nil, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return repository.Page{}, fmt.Errorf("fetch catalog page %d: %w", page, err)
	}

	span.SetAttributes(
		attribute.Int("catalog.records", len(result.Records)),
		attribute.Int64("catalog.total", result.Total),
	)
	return result, nil
}

// isRetryable adds per-request timeouts to the transient errors retried by
// default. An open circuit breaker is never retried.
func isRetryable(err error) bool {
	return errors.Is(err, ErrTimeout) || retry.IsRetryable(err)
}

func (p *HTTPProvider) buildURL(page, limit int) (string, error) {
	u, err := url.Parse(p.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	u = u.JoinPath(artworksPath)

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("fields", fields)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// doFetch performs one HTTP round trip. It is called through the circuit breaker.
func (p *HTTPProvider) doFetch(ctx context.Context, pageURL string) (interface{}, error) {
	reqCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", p.config.UserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: request exceeded %v", ErrTimeout, p.config.Timeout)
		}
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.config.MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > p.config.MaxBodySize {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrBodyTooLarge, p.config.MaxBodySize)
	}

	var decoded artworksResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	records := make([]entity.Record, 0, len(decoded.Data))
	for _, a := range decoded.Data {
		records = append(records, a.toEntity())
	}
	return repository.Page{Records: records, Total: decoded.Pagination.Total}, nil
}
