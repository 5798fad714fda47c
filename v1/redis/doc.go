// Package redis provides the go-redis client used to cache search responses.
//
// RedisClient connects to a standalone instance (optionally over TLS) and
// exposes the handful of operations the service needs: Get/Set on raw bytes
// with a TTL, JSON helpers, Delete and Ping. Missing keys are reported by
// an error for which IsNilError returns true:
//
//	data, err := client.Get(ctx, "search:"+hash)
//	switch {
//	case redis.IsNilError(err):
//		// miss
//	case err != nil:
//		// cache unavailable
//	}
//
// Configuration comes from REDIS_HOST, REDIS_PORT, REDIS_PASSWORD and
// REDIS_DB. FXModule provides *RedisClient; an unreachable server at
// startup is logged, not fatal.
package redis
