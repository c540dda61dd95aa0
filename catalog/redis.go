package catalog

import (
	"context"
	"encoding/json"
	"path"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/redis/go-redis/v9"
)

// The redis store implements the Store interface using Redis as the backend,
// so that multiple client processes can share one schema cache.
// The keys namespace is organized as follows:
// - `/<prefix>/mcpd/servers` for the daemon's server list
// - `/<prefix>/mcpd/tools/<server>` for a server's tool schemas
// Backend failures are logged and reported as cache misses, never as call
// failures: a broken cache only costs an extra daemon fetch.

type redisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore returns a Store backed by Redis. Entries expire after ttl;
// a zero ttl keeps them until Reset.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) Store {
	return &redisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (m *redisStore) serversKey() string {
	return path.Join(m.prefix, "mcpd", "servers")
}

func (m *redisStore) toolsKey(server string) string {
	return path.Join(m.prefix, "mcpd", "tools", server)
}

func (m *redisStore) get(ctx context.Context, key string, out any) bool {
	data, err := m.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.ContextKV(ctx, xlog.ERROR, "reason", "redis get", "key", key, "err", err.Error())
		}
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "unmarshal cached entry", "key", key, "err", err.Error())
		return false
	}
	return true
}

func (m *redisStore) set(ctx context.Context, key string, val any) {
	data, err := json.Marshal(val)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "marshal cached entry", "key", key, "err", err.Error())
		return
	}
	if err := m.client.Set(ctx, key, data, m.ttl).Err(); err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "redis set", "key", key, "err", err.Error())
	}
}

func (m *redisStore) Servers(ctx context.Context) ([]string, bool) {
	var names []string
	if !m.get(ctx, m.serversKey(), &names) {
		return nil, false
	}
	return names, true
}

func (m *redisStore) SetServers(ctx context.Context, names []string) {
	m.set(ctx, m.serversKey(), names)
}

func (m *redisStore) Tools(ctx context.Context, server string) ([]Tool, bool) {
	var tools []Tool
	if !m.get(ctx, m.toolsKey(server), &tools) {
		return nil, false
	}
	return tools, true
}

func (m *redisStore) SetTools(ctx context.Context, server string, tools []Tool) {
	m.set(ctx, m.toolsKey(server), tools)
}

func (m *redisStore) Reset(ctx context.Context) {
	keys := []string{m.serversKey()}

	// Use SCAN instead of KEYS for better performance
	iter := m.client.Scan(ctx, 0, path.Join(m.prefix, "mcpd", "tools")+"/*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "redis scan", "err", err.Error())
	}

	if err := m.client.Del(ctx, keys...).Err(); err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "redis del", "err", err.Error())
	}
}
