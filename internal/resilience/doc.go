// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes circuit breakers and retry logic used around catalog API
// requests and database access.
//
// The package supports:
//   - Circuit breakers for the catalog record provider and the database
//   - Retry logic with exponential backoff and jitter
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.CatalogAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchPage()
//	})
//
//	retryConfig := retry.CatalogAPIConfig()
//	err := retry.WithBackoff(ctx, retryConfig, func() error {
//	    return performOperation()
//	})
package resilience
