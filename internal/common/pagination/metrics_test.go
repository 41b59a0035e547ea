package pagination

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPageRange(t *testing.T) {
	tests := map[int]string{
		1: "1", 2: "2-10", 10: "2-10", 11: "11-50", 50: "11-50",
		51: "51-100", 100: "51-100", 101: "100+", 5000: "100+",
	}
	for page, want := range tests {
		assert.Equal(t, want, pageRange(page), "page %d", page)
	}
}

func TestRecordRequest(t *testing.T) {
	c := RequestsTotal.WithLabelValues("200", "11-50")
	before := testutil.ToFloat64(c)

	RecordRequest(200, 12)
	RecordRequest(200, 50)

	assert.Equal(t, before+2, testutil.ToFloat64(c))
}

func TestRecordError(t *testing.T) {
	c := ErrorsTotal.WithLabelValues(ErrorValidation)
	before := testutil.ToFloat64(c)

	RecordError(ErrorValidation)

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestUpdateTotalCount(t *testing.T) {
	UpdateTotalCount(130271)
	assert.Equal(t, 130271.0, testutil.ToFloat64(TotalCount))
}
