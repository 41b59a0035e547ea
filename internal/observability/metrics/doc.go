// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the business metrics of the selection service:
//   - Catalog provider metrics (fetch count, duration, absorbed failures)
//   - Selection metrics (mutations, selected records, persistence failures)
//   - Database connection pool metrics
//   - Catalog mirror job metrics
//   - Circuit breaker state
//
// HTTP metrics live next to the HTTP middleware in internal/handler/http.
// All metrics are registered with the Prometheus default registry and
// exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "catalog-selection/internal/observability/metrics"
//
//	func fetch(ctx context.Context) {
//	    start := time.Now()
//	    page, err := provider.FetchPage(ctx, 1, 0)
//	    metrics.RecordProviderRequest("api", err == nil, time.Since(start))
//	}
package metrics
