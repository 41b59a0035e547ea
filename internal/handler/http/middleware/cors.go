// Package middleware holds cross-cutting HTTP middleware that needs its own
// configuration. Currently CORS for the browser table client.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"catalog-selection/pkg/config"
)

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is a whitelist of permitted origins, compared case-insensitively.
	// Example: ["http://localhost:3000", "https://example.com"]
	AllowedOrigins []string

	// Default: ["GET", "POST", "PUT", "OPTIONS"]
	AllowedMethods []string

	// Default: ["Content-Type", "X-Request-ID"]
	AllowedHeaders []string

	// MaxAge specifies how long preflight results can be cached (in seconds).
	// Default: 86400 (24 hours)
	MaxAge int

	Logger *slog.Logger
}

// LoadCORSConfig reads the CORS policy from the environment.
//
//	CORS_ALLOWED_ORIGINS=http://localhost:3000,https://example.com
//	CORS_ALLOWED_METHODS=GET,POST,PUT
//	CORS_ALLOWED_HEADERS=Content-Type
//	CORS_MAX_AGE=86400
//
// ok is false when CORS_ALLOWED_ORIGINS is unset; the API is then same-origin only.
func LoadCORSConfig() (cfg CORSConfig, ok bool, err error) {
	origins := config.GetEnvStringList("CORS_ALLOWED_ORIGINS", nil)
	if len(origins) == 0 {
		return CORSConfig{}, false, nil
	}
	for _, o := range origins {
		if err := validateOrigin(o); err != nil {
			return CORSConfig{}, false, err
		}
	}

	cfg = CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: config.GetEnvStringList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "OPTIONS"}),
		AllowedHeaders: config.GetEnvStringList("CORS_ALLOWED_HEADERS", []string{"Content-Type", "X-Request-ID"}),
		MaxAge:         config.GetEnvInt("CORS_MAX_AGE", 86400),
	}
	for i, m := range cfg.AllowedMethods {
		cfg.AllowedMethods[i] = strings.ToUpper(m)
	}
	return cfg, true, nil
}

// validateOrigin requires a bare http(s) origin: no path, query, fragment or trailing slash.
func validateOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin URL '%s': %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin must use http or https scheme: %s", origin)
	}
	if u.Host == "" {
		return fmt.Errorf("origin must include a host: %s", origin)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("origin must not include path, query or fragment: %s", origin)
	}
	return nil
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(origin)), "/")
}

// CORS returns an HTTP middleware that handles CORS for cross-origin requests.
//
// Behavior:
//   - If Origin header is empty, skip CORS processing (same-origin request)
//   - If Origin is not allowed, continue without CORS headers
//   - If Origin is allowed and request is OPTIONS (preflight): set the
//     preflight headers and return 204 No Content
//   - Otherwise set Access-Control-Allow-Origin and pass the request on
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o = normalizeOrigin(o); o != "" {
			allowed[o] = struct{}{}
		}
	}
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")
			if _, ok := allowed[normalizeOrigin(origin)]; !ok {
				logger.Warn("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
