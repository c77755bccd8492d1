package cachex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "_dealerseed_cache_"

// deleteIfScript drops KEYS[1] when its stored entry value equals ARGV[1].
var deleteIfScript = redis.NewScript(`
local raw = redis.call("GET", KEYS[1])
if not raw then
	return 0
end
local ok, entry = pcall(cjson.decode, raw)
if ok and type(entry) == "table" and entry["value"] == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Cache shared between processes. Entries are stored as JSON with a
// server-side TTL matching their expiry, so Redis drops them on its own.
type Redis struct {
	cli    *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedis wraps cli. An empty prefix uses a package default; a nil now uses
// time.Now.
func NewRedis(cli *redis.Client, prefix string, now func() time.Time) *Redis {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	if now == nil {
		now = time.Now
	}
	return &Redis{cli: cli, prefix: prefix, now: now}
}

func (r *Redis) Get(ctx context.Context, key string) (Entry, bool, error) {
	raw, err := r.cli.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("cachex: redis get %s: %w", key, err)
	}

	var e Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return Entry{}, false, fmt.Errorf("cachex: invalid entry for %s: %w", key, err)
	}
	if !e.Valid(r.now()) {
		return Entry{}, false, nil
	}
	return e, true, nil
}

// Put stores entry until its expiry. Already expired entries are removed
// instead, since Redis rejects non-positive TTLs.
func (r *Redis) Put(ctx context.Context, key string, entry Entry) error {
	ttl := entry.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return r.Delete(ctx, key)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := r.cli.Set(ctx, r.key(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("cachex: redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.cli.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("cachex: redis del %s: %w", key, err)
	}
	return nil
}

func (r *Redis) DeleteIf(ctx context.Context, key, value string) (bool, error) {
	n, err := deleteIfScript.Run(ctx, r.cli, []string{r.key(key)}, value).Int()
	if err != nil {
		return false, fmt.Errorf("cachex: redis delete-if %s: %w", key, err)
	}
	return n > 0, nil
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}
