package promotion

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/casadopastor/catalog-service/internal/model"
)

// Cache holds the active-promotion map keyed by variation id, refreshed
// lazily: a read past the TTL refetches synchronously and replaces the
// snapshot whole. Two concurrent readers may both refetch after expiry;
// both compute the same map and the last write wins, so no coordination
// beyond the atomic swap is needed.
type Cache struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time
	snap atomic.Pointer[snapshot]
}

type snapshot struct {
	byVariation map[string]model.Promotion
	loadedAt    time.Time
}

func NewCache(repo Repository, ttl time.Duration) *Cache {
	return &Cache{repo: repo, ttl: ttl, now: time.Now}
}

// Active returns the current promotion per variation id. Callers must treat
// the map as read-only; it is shared between requests.
func (c *Cache) Active(ctx context.Context) (map[string]model.Promotion, error) {
	if s := c.snap.Load(); s != nil && c.now().Sub(s.loadedAt) < c.ttl {
		return s.byVariation, nil
	}
	return c.refresh(ctx)
}

// Invalidate drops the snapshot so the next read refetches.
func (c *Cache) Invalidate() {
	c.snap.Store(nil)
}

func (c *Cache) refresh(ctx context.Context) (map[string]model.Promotion, error) {
	at := c.now()
	promos, joins, err := c.repo.ActiveAt(ctx, at)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.Promotion, len(promos))
	for _, p := range promos {
		byID[p.ID] = p
	}

	byVariation := make(map[string]model.Promotion, len(joins))
	for _, j := range joins {
		p, ok := byID[j.PromotionID]
		if !ok {
			continue
		}
		// Overlapping promotions on one variation: the most recently
		// started one wins.
		if cur, ok := byVariation[j.VariationID]; ok && !p.StartsAt.After(cur.StartsAt) {
			continue
		}
		byVariation[j.VariationID] = p
	}

	c.snap.Store(&snapshot{byVariation: byVariation, loadedAt: at})
	return byVariation, nil
}
