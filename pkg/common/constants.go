package common

import "time"

const (
	ProfileCacheTTL = 5 * time.Minute
	SummaryCacheTTL = 1 * time.Minute

	// DefaultLookback is the behavior pipeline's default analysis window.
	DefaultLookback = 24 * time.Hour

	// EscalationLookback is fixed regardless of the caller's window.
	EscalationLookback = 7 * 24 * time.Hour
)

// CacheConfig holds redis connection settings.
type CacheConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TLS      bool
}
