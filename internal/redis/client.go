// Package redis wraps the go-redis client and provides the generic JSON
// view cache backing the ledger's read models.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client embeds the go-redis client. The ledger uses the same connection for
// the view cache and the event stream.
type Client struct {
	*redis.Client
}

// NewClient connects to Redis and verifies the connection with a ping.
// Redis backs both the read model and the event stream, so a server that
// cannot be reached at boot is fatal rather than a degraded mode.
func NewClient(ctx context.Context, addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &Client{Client: rdb}, nil
}
