package config

import "time"

// CacheConfig controls the Redis cache in front of GET /api/admin/stats.
// The numbers move with every reservation, so entries live for seconds.
type CacheConfig struct {
    Enabled      bool
    TTL          time.Duration
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads CACHE_ENABLED, CACHE_TTL, CACHE_PREFIX and
// CACHE_MAX_BODY_BYTES.
func LoadCacheConfig() CacheConfig {
    c := CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        TTL:          envDur("CACHE_TTL", 5*time.Second),
        Prefix:       getenv("CACHE_PREFIX", "localrot:cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 64<<10),
    }
    if c.TTL <= 0 {
        c.TTL = 5 * time.Second
    }
    return c
}
