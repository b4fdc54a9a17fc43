package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/adityanarayanofficial/marketplace-platform/internal/config"
	"github.com/redis/go-redis/v9"
)

// TokenBlacklist is the logout revocation set. Blacklisting a refresh
// token keeps it rejected until its natural expiry; access tokens are
// never blacklisted and run out on their own.
type TokenBlacklist interface {
	Add(ctx context.Context, jti string, ttl time.Duration) error
	Contains(ctx context.Context, jti string) (bool, error)
}

type tokenBlacklist struct {
	client *redis.Client
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {

	redisURL := cfg.RedisConnect.GetDSN()

	// Parse the Redis URL
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Error("Failed to parse Redis URL", slog.Any("error", err))
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Test the connection
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil

}

func NewTokenBlacklist(client *redis.Client) TokenBlacklist {
	return &tokenBlacklist{client: client}
}

func blacklistKey(jti string) string {
	return fmt.Sprintf("token_blacklist:%s", jti)
}

func (b *tokenBlacklist) Add(ctx context.Context, jti string, ttl time.Duration) error {

	if ttl <= 0 {
		// token already expired, nothing worth storing
		return nil
	}

	if err := b.client.Set(ctx, blacklistKey(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token %s: %w", jti, err)
	}

	return nil
}

func (b *tokenBlacklist) Contains(ctx context.Context, jti string) (bool, error) {

	n, err := b.client.Exists(ctx, blacklistKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}

	return n > 0, nil
}
