package cache

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sitehatch/market-backend/pkg/env"
)

type GuardConfig struct {
	addr     string
	password string
	ttl      time.Duration
}

func NewGuardConfig() GuardConfig {
	ttlSeconds, err := strconv.Atoi(env.GetEnv("SUBMIT_GUARD_TTL", "120"))
	if err != nil {
		ttlSeconds = 120
	}
	return GuardConfig{
		addr:     env.GetEnv("REDIS_ADDR", "localhost:6379"),
		password: env.GetEnv("REDIS_PASSWORD", ""),
		ttl:      time.Duration(ttlSeconds) * time.Second,
	}
}

// SubmitGuard holds one short-lived key per in-flight submission token.
// A second submission with the same token inside the TTL is rejected, the
// server-side equivalent of the storefront disabling its submit button.
type SubmitGuard struct {
	client *redis.Client
	cfg    GuardConfig
}

func NewSubmitGuard(cfg GuardConfig) *SubmitGuard {
	return &SubmitGuard{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.addr,
			Password: cfg.password,
		}),
		cfg: cfg,
	}
}

func (g *SubmitGuard) Acquire(ctx context.Context, token string) (bool, error) {
	ok, err := g.client.SetNX(ctx, guardKey(token), 1, g.cfg.ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (g *SubmitGuard) Release(ctx context.Context, token string) {
	if err := g.client.Del(ctx, guardKey(token)).Err(); err != nil {
		slog.Error("err releasing submit guard", "token", token, "err", err)
	}
}

func guardKey(token string) string {
	return "submit:" + token
}
