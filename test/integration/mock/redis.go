package mock

import (
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisMock *Redis

// Redis is an in-process Redis backing the shared response cache.
type Redis struct {
	Client *redis.Client
	server *miniredis.Miniredis
}

// NewRedis starts the shared miniredis instance on first use.
func NewRedis() *Redis {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisMock = &Redis{
			Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
			server: server,
		}
	})
	return redisMock
}

// Clear drops every key.
func (r *Redis) Clear() {
	r.server.FlushAll()
}

// FastForward moves key expiry forward by d.
func (r *Redis) FastForward(d time.Duration) {
	r.server.FastForward(d)
}

// Keys returns every stored key.
func (r *Redis) Keys() []string {
	return r.server.Keys()
}
