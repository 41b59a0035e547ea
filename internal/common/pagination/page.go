package pagination

import "math"

// Metadata is the "pagination" object of a page response.
type Metadata struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"` // 1-based
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// CalculateOffset returns the number of records before page. Pages below 1
// and non-positive limits give 0; offsets that do not fit an int saturate at
// math.MaxInt instead of wrapping negative.
func CalculateOffset(page, limit int) int {
	if page < 1 || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// PastEnd reports whether page starts after the last of total records.
// Page 1 is never past the end, so an empty catalog still has a first page.
func PastEnd(page, limit int, total int64) bool {
	if page <= 1 || limit <= 0 {
		return false
	}
	if total <= 0 {
		return true
	}
	return int64(page-1) > (total-1)/int64(limit)
}

// CalculateTotalPages returns ceil(total/limit), and at least 1 so an empty
// catalog still renders page 1 of 1.
func CalculateTotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// ClampLimit resolves a provider limit: 0 or less means the configured page
// size, and nothing above MaxLimit is ever requested.
func (c Config) ClampLimit(limit int) int {
	if limit <= 0 {
		limit = c.DefaultLimit
	}
	if limit > c.MaxLimit {
		limit = c.MaxLimit
	}
	return limit
}

// QueryParams is the LIMIT/OFFSET pair of a storage query.
type QueryParams struct {
	Offset int
	Limit  int
}

// PaginationStrategy turns page parameters into a storage query and query
// results back into response metadata.
type PaginationStrategy interface {
	CalculateQuery(params Params) QueryParams
	BuildMetadata(params Params, total int64) Metadata
}

// OffsetStrategy pages with LIMIT/OFFSET over a stable ordering.
type OffsetStrategy struct{}

func (OffsetStrategy) CalculateQuery(params Params) QueryParams {
	return QueryParams{
		Offset: CalculateOffset(params.Page, params.Limit),
		Limit:  params.Limit,
	}
}

func (OffsetStrategy) BuildMetadata(params Params, total int64) Metadata {
	return Metadata{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: CalculateTotalPages(total, params.Limit),
	}
}
