package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "unset", value: "", want: 12},
		{name: "valid", value: "24", want: 24},
		{name: "padded", value: " 7 ", want: 7},
		{name: "negative", value: "-1", want: -1},
		{name: "trailing garbage", value: "12abc", want: 12},
		{name: "word", value: "twelve", want: 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("TEST_INT", 12))
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.5")
	assert.Equal(t, 0.5, GetEnvFloat("TEST_FLOAT", 5))

	t.Setenv("TEST_FLOAT", "fast")
	assert.Equal(t, float64(5), GetEnvFloat("TEST_FLOAT", 5))
}

func TestGetEnvBool(t *testing.T) {
	for value, want := range map[string]bool{"": true, "false": false, "0": false, "TRUE": true, "maybe": true} {
		t.Setenv("TEST_BOOL", value)
		assert.Equal(t, want, GetEnvBool("TEST_BOOL", true), "value %q", value)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "1m30s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "90")
	assert.Equal(t, time.Second, GetEnvDuration("TEST_DURATION", time.Second))
}

func TestGetEnvStringList(t *testing.T) {
	def := []string{"a"}

	t.Setenv("TEST_LIST", "")
	assert.Equal(t, def, GetEnvStringList("TEST_LIST", def))

	t.Setenv("TEST_LIST", " x, ,y ,")
	assert.Equal(t, []string{"x", "y"}, GetEnvStringList("TEST_LIST", def))

	t.Setenv("TEST_LIST", " , ")
	assert.Equal(t, def, GetEnvStringList("TEST_LIST", def))
}

func TestValidateDurationRange(t *testing.T) {
	assert.NoError(t, ValidateDurationRange(time.Second, time.Second, time.Minute))
	assert.Error(t, ValidateDurationRange(time.Millisecond, time.Second, time.Minute))
	assert.Error(t, ValidateDurationRange(time.Hour, time.Second, time.Minute))
	assert.Error(t, ValidateDurationRange(time.Second, time.Minute, time.Second))
	assert.Error(t, ValidatePositiveDuration(0))
}

func TestLoadRateLimitConfig(t *testing.T) {
	t.Setenv("RATELIMIT_ENABLED", "")
	t.Setenv("RATELIMIT_RPS", "")
	t.Setenv("RATELIMIT_BURST", "")
	assert.Equal(t, RateLimitConfig{Enabled: true, RPS: 20, Burst: 40}, LoadRateLimitConfig())

	t.Setenv("RATELIMIT_ENABLED", "false")
	t.Setenv("RATELIMIT_RPS", "0")
	t.Setenv("RATELIMIT_BURST", "-3")
	assert.Equal(t, RateLimitConfig{Enabled: false, RPS: 20, Burst: 40}, LoadRateLimitConfig())

	t.Setenv("RATELIMIT_RPS", "2.5")
	t.Setenv("RATELIMIT_BURST", "5")
	assert.Equal(t, RateLimitConfig{Enabled: false, RPS: 2.5, Burst: 5}, LoadRateLimitConfig())
}
