package lms

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds connection settings for the institutional LMS.
type Config struct {
	Enabled          bool
	BaseURL          string
	Token            string
	TimeoutMs        int
	SubmitIntervalMs int
	MaxRetries       int
	QuotaCacheSize   int
	LogCalls         bool
}

// DefaultConfig returns a disabled Config with conservative defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:          false,
		TimeoutMs:        10000,
		SubmitIntervalMs: 300,
		MaxRetries:       2,
		QuotaCacheSize:   32,
	}
}

// LoadConfig reads SYLLABUS_LMS_* environment variables over the defaults.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("SYLLABUS_LMS_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("SYLLABUS_LMS_BASE_URL"); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("SYLLABUS_LMS_TOKEN"); v != "" {
		cfg.Token = v
	}
	if n, ok := positiveInt("SYLLABUS_LMS_TIMEOUT_MS"); ok {
		cfg.TimeoutMs = n
	}
	if n, ok := positiveInt("SYLLABUS_LMS_SUBMIT_INTERVAL_MS"); ok {
		cfg.SubmitIntervalMs = n
	}
	if v := os.Getenv("SYLLABUS_LMS_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if n, ok := positiveInt("SYLLABUS_LMS_QUOTA_CACHE_SIZE"); ok {
		cfg.QuotaCacheSize = n
	}
	if v := os.Getenv("SYLLABUS_LMS_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}

// SubmitInterval is the minimum spacing between two section submissions.
func (c Config) SubmitInterval() time.Duration {
	return time.Duration(c.SubmitIntervalMs) * time.Millisecond
}

func positiveInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
