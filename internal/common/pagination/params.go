package pagination

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// ErrInvalidPage rejects a page query value that is not a positive integer.
var ErrInvalidPage = errors.New("invalid query parameter: page must be a positive integer")

// Params is one page request.
type Params struct {
	Page  int // 1-based
	Limit int
}

// ParseQueryParams reads ?page= from r. The page size is fixed by
// configuration, so Limit is always cfg.DefaultLimit and ?limit= is ignored.
// There is no upper bound on page; pages past the end are simply empty.
func ParseQueryParams(r *http.Request, cfg Config) (Params, error) {
	p := Params{Page: cfg.DefaultPage, Limit: cfg.DefaultLimit}

	raw := strings.TrimSpace(r.URL.Query().Get("page"))
	if raw == "" {
		return p, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return p, ErrInvalidPage
	}
	p.Page = page
	return p, nil
}
