package redis

import (
	"errors"

	"github.com/redis/go-redis/v9"
)

// IsNilError reports whether err means the key does not exist.
func IsNilError(err error) bool {
	return errors.Is(err, redis.Nil)
}

// IsClosedError reports whether the client was already closed.
func IsClosedError(err error) bool {
	return errors.Is(err, redis.ErrClosed)
}
