package config

import "time"

// Rate limit key strategies.  Every bucket is per client IP; the variants
// split it further by route or by authenticated user.
const (
    RateKeyIP      = "ip"
    RateKeyIPRoute = "ip_route"
    RateKeyIPUser  = "ip_user"
)

// RateLimitConfig drives the Redis token bucket in front of /api.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    KeyStrategy    string
    Prefix         string
    Debug          bool // expose the bucket key in X-RateLimit-Key
}

func LoadRateLimitConfig() RateLimitConfig {
    return RateLimitConfig{
        Enabled:        envBool("RATE_LIMIT_ENABLED", true),
        Capacity:       envInt("RATE_LIMIT_CAPACITY", 60),
        RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
        TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
        KeyStrategy:    getenv("RATE_LIMIT_KEY_STRATEGY", RateKeyIPRoute),
        Prefix:         getenv("RATE_LIMIT_PREFIX", "localrot:rl"),
        Debug:          envBool("RATE_LIMIT_DEBUG", false),
    }.normalize()
}

// normalize keeps the bucket usable: at least one token, a positive
// interval, and a TTL long enough that an idle bucket refills before it
// expires.
func (c RateLimitConfig) normalize() RateLimitConfig {
    if c.Capacity < 1 {
        c.Capacity = 1
    }
    if c.RefillTokens < 1 {
        c.RefillTokens = 1
    }
    if c.RefillInterval <= 0 {
        c.RefillInterval = time.Second
    }
    if minTTL := 5 * c.RefillInterval; c.TTL < minTTL {
        c.TTL = minTTL
    }
    switch c.KeyStrategy {
    case RateKeyIP, RateKeyIPRoute, RateKeyIPUser:
    default:
        c.KeyStrategy = RateKeyIPRoute
    }
    return c
}
