package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis cria o cliente go-redis e valida a conectividade na subida.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
