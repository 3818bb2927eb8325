package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisCache is a distributed cache implementation backed by Redis.
// Each tenant is stored under a per-id key with a secondary index key
// mapping the identifier slug to the id. SET NX/XX provide the
// compare-and-swap semantics required by TryAdd and TryUpdate.
type redisCache struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisCache creates a Redis-backed tenant cache. keyPrefix namespaces
// the keys so several applications can share one Redis instance; empty
// prefix defaults to "tenantkit".
func NewRedisCache(client redis.UniversalClient, keyPrefix string) Cache {
	if keyPrefix == "" {
		keyPrefix = "tenantkit"
	}
	return &redisCache{client: client, keyPrefix: keyPrefix}
}

func (c *redisCache) idKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:tenant:%s", c.keyPrefix, id)
}

func (c *redisCache) identifierKey(identifier string) string {
	return fmt.Sprintf("%s:tenant:ident:%s", c.keyPrefix, identifier)
}

func (c *redisCache) TryAdd(ctx context.Context, t *Tenant) (bool, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return false, err
	}

	added, err := c.client.SetNX(ctx, c.idKey(t.ID), data, 0).Result()
	if err != nil || !added {
		return false, err
	}

	if err := c.client.Set(ctx, c.identifierKey(t.Identifier), t.ID.String(), 0).Err(); err != nil {
		// Roll the orphaned entry back so a retry can succeed cleanly.
		_ = c.client.Del(ctx, c.idKey(t.ID)).Err()
		return false, err
	}
	return true, nil
}

func (c *redisCache) TryUpdate(ctx context.Context, t *Tenant) (bool, error) {
	prev, ok := c.TryGet(ctx, t.ID)
	if !ok {
		return false, nil
	}

	data, err := json.Marshal(t)
	if err != nil {
		return false, err
	}

	// SET XX fails when the key disappeared between the read and the write,
	// preserving the update-only contract under concurrent removals.
	updated, err := c.client.SetXX(ctx, c.idKey(t.ID), data, 0).Result()
	if err != nil || !updated {
		return false, err
	}

	if prev.Identifier != t.Identifier {
		_ = c.client.Del(ctx, c.identifierKey(prev.Identifier)).Err()
	}
	if err := c.client.Set(ctx, c.identifierKey(t.Identifier), t.ID.String(), 0).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (c *redisCache) TryRemove(ctx context.Context, id uuid.UUID) (bool, error) {
	prev, ok := c.TryGet(ctx, id)

	removed, err := c.client.Del(ctx, c.idKey(id)).Result()
	if err != nil {
		return false, err
	}
	if ok {
		_ = c.client.Del(ctx, c.identifierKey(prev.Identifier)).Err()
	}
	return removed > 0, nil
}

func (c *redisCache) TryGet(ctx context.Context, id uuid.UUID) (*Tenant, bool) {
	data, err := c.client.Get(ctx, c.idKey(id)).Bytes()
	if err != nil {
		return nil, false
	}

	var t Tenant
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, false
	}
	return &t, true
}

func (c *redisCache) TryGetByIdentifier(ctx context.Context, identifier string) (*Tenant, bool) {
	raw, err := c.client.Get(ctx, c.identifierKey(identifier)).Result()
	if err != nil {
		return nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return c.TryGet(ctx, id)
}

// IsCacheMiss reports whether err is the Redis nil-reply sentinel.
func IsCacheMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}
