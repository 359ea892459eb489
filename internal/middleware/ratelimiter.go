package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/staffdesk/employee-manager/internal/config"
)

// LoginLimiter throttles repeated failed login attempts per client IP.
type LoginLimiter interface {
	// Allow reports whether the client may attempt a login. Fails open:
	// a limiter error still allows the attempt.
	Allow(ctx context.Context, clientIP string) (bool, error)

	// RecordFailure counts one failed attempt against the client.
	RecordFailure(ctx context.Context, clientIP string) error

	// Close closes the underlying Redis connection.
	Close() error
}

type redisLoginLimiter struct {
	client *redis.Client
	limit  int64
	logger *slog.Logger
}

// NewLoginLimiter creates a Redis-backed login limiter.
func NewLoginLimiter(cfg *config.Config, logger *slog.Logger) (LoginLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDB),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [LoginLimiter] Connected to Redis",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
	)

	return &redisLoginLimiter{
		client: client,
		limit:  cfg.LoginFailLimit,
		logger: logger,
	}, nil
}

// NewLoginLimiterWithClient wraps a provided redis client (for testing).
func NewLoginLimiterWithClient(client *redis.Client, limit int64, logger *slog.Logger) LoginLimiter {
	return &redisLoginLimiter{
		client: client,
		limit:  limit,
		logger: logger,
	}
}

// failureKey generates the Redis key for a client's failed-attempt count.
// Format: login:fail:{ip}:{YYYY-MM-DD}
func failureKey(clientIP string) string {
	today := time.Now().UTC().Format("2006-01-02")
	return fmt.Sprintf("login:fail:%s:%s", clientIP, today)
}

func (r *redisLoginLimiter) Allow(ctx context.Context, clientIP string) (bool, error) {
	// A limit of 0 or below means unlimited
	if r.limit <= 0 {
		return true, nil
	}

	count, err := r.client.Get(ctx, failureKey(clientIP)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		r.logger.Error("❌ [LoginLimiter] Failed to get failure count", "error", err, "client_ip", clientIP)
		return true, err
	}

	return count < r.limit, nil
}

func (r *redisLoginLimiter) RecordFailure(ctx context.Context, clientIP string) error {
	if r.limit <= 0 {
		return nil
	}

	key := failureKey(clientIP)
	pipe := r.client.Pipeline()
	pipe.Incr(ctx, key)

	// The counter window resets at midnight UTC
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	pipe.Expire(ctx, key, midnight.Sub(now))

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("❌ [LoginLimiter] Failed to record failure", "error", err, "client_ip", clientIP)
		return err
	}
	return nil
}

func (r *redisLoginLimiter) Close() error {
	return r.client.Close()
}

type noOpLoginLimiter struct {
	logger *slog.Logger
}

// NewNoOpLoginLimiter creates a limiter that allows everything, used when
// Redis is unavailable.
func NewNoOpLoginLimiter(logger *slog.Logger) LoginLimiter {
	logger.Warn("⚠️ [LoginLimiter] Using no-op limiter, failed logins are not throttled")
	return &noOpLoginLimiter{logger: logger}
}

func (n *noOpLoginLimiter) Allow(ctx context.Context, clientIP string) (bool, error) {
	return true, nil
}

func (n *noOpLoginLimiter) RecordFailure(ctx context.Context, clientIP string) error {
	return nil
}

func (n *noOpLoginLimiter) Close() error {
	return nil
}
