package config

import "time"

// CacheConfig configures the availability response cache.  Only GET
// responses are cached; the TTL is deliberately short because cached
// availability goes stale the moment someone books.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig builds a CacheConfig from the environment.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		TTL:     envDur("CACHE_TTL", 15*time.Second),
		Prefix:  getenv("CACHE_PREFIX", "avail"),
	}
}
