package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"sitedesk/internal/domain"
	"sitedesk/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Collection is a keyed record collection persisted as one JSON array in the
// KV backend. Reads that hit a missing key or corrupt JSON degrade to an
// empty collection; they never fail the caller. Mutations share the owning
// Store's mutex so read-modify-write cycles are serialized.
type Collection[T any, PT interface {
	*T
	domain.Record
}] struct {
	kv     store.KV
	key    string
	mu     *sync.Mutex
	logger *zap.Logger
}

func newCollection[T any, PT interface {
	*T
	domain.Record
}](kv store.KV, key string, mu *sync.Mutex, logger *zap.Logger) *Collection[T, PT] {
	return &Collection[T, PT]{kv: kv, key: key, mu: mu, logger: logger}
}

// GetAll returns the current contents in insertion order.
func (c *Collection[T, PT]) GetAll(ctx context.Context) []T {
	raw, err := c.kv.Get(ctx, c.key)
	if err != nil {
		if !errors.Is(err, store.ErrMiss) {
			c.logger.Warn("collection read failed, treating as empty",
				zap.String("key", c.key), zap.Error(err))
		}
		return nil
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		c.logger.Warn("collection corrupt, treating as empty",
			zap.String("key", c.key), zap.Error(err))
		return nil
	}
	return out
}

// GetByID returns the record or nil when the id is unknown.
func (c *Collection[T, PT]) GetByID(ctx context.Context, id string) *T {
	all := c.GetAll(ctx)
	for i := range all {
		if PT(&all[i]).RecordMeta().ID == id {
			return &all[i]
		}
	}
	return nil
}

// Count reports the current number of records.
func (c *Collection[T, PT]) Count(ctx context.Context) int {
	return len(c.GetAll(ctx))
}

// Add assigns an id and creation timestamp, appends and persists. The stored
// record is returned.
func (c *Collection[T, PT]) Add(ctx context.Context, rec T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addLocked(ctx, rec)
}

func (c *Collection[T, PT]) addLocked(ctx context.Context, rec T) T {
	m := PT(&rec).RecordMeta()
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	all := append(c.GetAll(ctx), rec)
	c.saveLocked(ctx, all)
	return rec
}

// Update applies mutate to the matching record, stamps updatedAt and
// persists. Returns the updated record, or nil when the id is unknown.
func (c *Collection[T, PT]) Update(ctx context.Context, id string, mutate func(PT)) *T {
	c.mu.Lock()
	defer c.mu.Unlock()
	all := c.GetAll(ctx)
	for i := range all {
		pt := PT(&all[i])
		if pt.RecordMeta().ID != id {
			continue
		}
		mutate(pt)
		pt.RecordMeta().UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		c.saveLocked(ctx, all)
		return &all[i]
	}
	return nil
}

// Remove deletes the matching record. Removing an unknown id is a no-op.
func (c *Collection[T, PT]) Remove(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(ctx, id)
}

func (c *Collection[T, PT]) removeLocked(ctx context.Context, id string) {
	all := c.GetAll(ctx)
	kept := all[:0]
	for i := range all {
		if PT(&all[i]).RecordMeta().ID != id {
			kept = append(kept, all[i])
		}
	}
	c.saveLocked(ctx, kept)
}

// ReplaceAll swaps the whole collection, used by cascades, bulk import and
// clear operations.
func (c *Collection[T, PT]) ReplaceAll(ctx context.Context, recs []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saveLocked(ctx, recs)
}

func (c *Collection[T, PT]) saveLocked(ctx context.Context, recs []T) {
	if recs == nil {
		recs = []T{}
	}
	b, err := json.Marshal(recs)
	if err != nil {
		c.logger.Error("collection marshal failed", zap.String("key", c.key), zap.Error(err))
		return
	}
	if err := c.kv.Set(ctx, c.key, string(b)); err != nil {
		c.logger.Error("collection write failed", zap.String("key", c.key), zap.Error(err))
	}
}
