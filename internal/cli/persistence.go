package cli

import (
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dialbird/canvass/pkg/adapters/memory"
	redisadapter "github.com/dialbird/canvass/pkg/adapters/redis"
	"github.com/dialbird/canvass/pkg/session"
)

// setupPersistence wires a session manager backed by Redis when a URL is
// given, otherwise in-memory. Redis gets a distributed locker too so two
// CLI processes sharing a session serialize their turns.
func setupPersistence(opts RunOptions, logger *slog.Logger) (*session.Manager, error) {
	if opts.RedisURL == "" {
		return session.NewManager(memory.NewStore(), session.WithLogger(logger)), nil
	}

	redisOpts, err := goredis.ParseURL(opts.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := goredis.NewClient(redisOpts)
	store := redisadapter.NewFromClient(client)
	locker := redisadapter.NewLocker(client, "canvass:lock:")

	return session.NewManager(store,
		session.WithLogger(logger),
		session.WithLocker(locker),
	), nil
}
