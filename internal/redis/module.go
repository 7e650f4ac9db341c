package redis

import (
	"context"

	"github.com/printhauslabs/printhaus/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var Module = fx.Module("redis",
	fx.Provide(NewClient),
)

// NewClient connects to redis when enabled in config. A nil client is
// provided otherwise; consumers treat it as "no cache".
func NewClient(cfg *config.Config, lc fx.Lifecycle) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}
