package pagination

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Error kinds accepted by RecordError.
const (
	ErrorValidation = "validation"
	ErrorProvider   = "provider"
	ErrorDatabase   = "database"
)

var (
	// RequestsTotal counts served catalog pages. page_range buckets the page
	// number so deep paging shows up without one series per page.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_pagination_requests_total",
		Help: "Catalog page requests by status and page range",
	}, []string{"status", "page_range"})

	DurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_pagination_duration_seconds",
		Help:    "Time to build one catalog page",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"operation"})

	TotalCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_total_records",
		Help: "Record count last reported by the catalog source",
	})

	ErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_pagination_errors_total",
		Help: "Catalog page requests that failed, by kind",
	}, []string{"type"})
)

func RecordRequest(statusCode, page int) {
	RequestsTotal.WithLabelValues(strconv.Itoa(statusCode), pageRange(page)).Inc()
}

func RecordDuration(operation string, seconds float64) {
	DurationSeconds.WithLabelValues(operation).Observe(seconds)
}

func UpdateTotalCount(count int64) {
	TotalCount.Set(float64(count))
}

// RecordError counts a failure of kind ErrorValidation, ErrorProvider or ErrorDatabase.
func RecordError(kind string) {
	ErrorsTotal.WithLabelValues(kind).Inc()
}

var pageRanges = []struct {
	upTo  int
	label string
}{
	{1, "1"},
	{10, "2-10"},
	{50, "11-50"},
	{100, "51-100"},
}

func pageRange(page int) string {
	for _, r := range pageRanges {
		if page <= r.upTo {
			return r.label
		}
	}
	return "100+"
}
