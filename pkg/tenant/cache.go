package tenant

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Cache mirrors the active tenants for fast request-time lookup. It is a
// performance optimization, never the system of record: a lost entry only
// causes a fallback read from the Store.
//
// The Try* operations report success via the bool; the error carries
// backend failures (network, serialization) for logging. Callers treat
// any error as a miss - cache failures must never surface past the
// component that uses the cache.
type Cache interface {
	// TryAdd stores the tenant only if its key is not already present.
	// Compare-and-swap semantics: under concurrent callers for the same
	// key exactly one succeeds.
	TryAdd(ctx context.Context, t *Tenant) (bool, error)

	// TryUpdate overwrites an existing entry. Fails if the key is absent.
	TryUpdate(ctx context.Context, t *Tenant) (bool, error)

	// TryRemove deletes the entry. Fails if the key is absent.
	TryRemove(ctx context.Context, id uuid.UUID) (bool, error)

	// TryGet retrieves a tenant by its primary key.
	TryGet(ctx context.Context, id uuid.UUID) (*Tenant, bool)

	// TryGetByIdentifier retrieves a tenant by its resolution slug.
	TryGetByIdentifier(ctx context.Context, identifier string) (*Tenant, bool)
}

// inMemoryCache is the default process-local cache implementation.
// Entries are keyed by tenant ID with a secondary identifier index for
// request-time resolution.
type inMemoryCache struct {
	mu           sync.RWMutex
	byID         map[uuid.UUID]*Tenant
	byIdentifier map[string]uuid.UUID
}

// NewInMemoryCache creates an empty in-memory tenant cache.
func NewInMemoryCache() Cache {
	return &inMemoryCache{
		byID:         make(map[uuid.UUID]*Tenant),
		byIdentifier: make(map[string]uuid.UUID),
	}
}

func (c *inMemoryCache) TryAdd(ctx context.Context, t *Tenant) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byID[t.ID]; exists {
		return false, nil
	}

	entry := *t
	c.byID[t.ID] = &entry
	c.byIdentifier[t.Identifier] = t.ID
	return true, nil
}

func (c *inMemoryCache) TryUpdate(ctx context.Context, t *Tenant) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, exists := c.byID[t.ID]
	if !exists {
		return false, nil
	}

	if prev.Identifier != t.Identifier {
		delete(c.byIdentifier, prev.Identifier)
	}

	entry := *t
	c.byID[t.ID] = &entry
	c.byIdentifier[t.Identifier] = t.ID
	return true, nil
}

func (c *inMemoryCache) TryRemove(ctx context.Context, id uuid.UUID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, exists := c.byID[id]
	if !exists {
		return false, nil
	}

	delete(c.byID, id)
	delete(c.byIdentifier, prev.Identifier)
	return true, nil
}

func (c *inMemoryCache) TryGet(ctx context.Context, id uuid.UUID) (*Tenant, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, exists := c.byID[id]
	if !exists {
		return nil, false
	}
	entry := *t
	return &entry, true
}

func (c *inMemoryCache) TryGetByIdentifier(ctx context.Context, identifier string) (*Tenant, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, exists := c.byIdentifier[identifier]
	if !exists {
		return nil, false
	}
	t, exists := c.byID[id]
	if !exists {
		return nil, false
	}
	entry := *t
	return &entry, true
}

// noOpCache disables caching, useful for tests or when caching is unwanted.
type noOpCache struct{}

// NewNoOpCache creates a cache that never stores anything.
func NewNoOpCache() Cache { return &noOpCache{} }

func (noOpCache) TryAdd(context.Context, *Tenant) (bool, error)    { return false, nil }
func (noOpCache) TryUpdate(context.Context, *Tenant) (bool, error) { return false, nil }
func (noOpCache) TryRemove(context.Context, uuid.UUID) (bool, error) {
	return false, nil
}
func (noOpCache) TryGet(context.Context, uuid.UUID) (*Tenant, bool) { return nil, false }
func (noOpCache) TryGetByIdentifier(context.Context, string) (*Tenant, bool) {
	return nil, false
}
