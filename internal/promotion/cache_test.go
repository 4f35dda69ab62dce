package promotion

import (
	"context"
	"testing"
	"time"

	"github.com/casadopastor/catalog-service/internal/model"
	"github.com/casadopastor/catalog-service/internal/promotion/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePromoRepo struct {
	promos []model.Promotion
	joins  []model.PromotionVariation
	calls  int
}

func (f *fakePromoRepo) ActiveAt(_ context.Context, at time.Time) ([]model.Promotion, []model.PromotionVariation, error) {
	f.calls++
	var active []model.Promotion
	for _, p := range f.promos {
		if p.ActiveAt(at) {
			active = append(active, p)
		}
	}
	return active, f.joins, nil
}

func (f *fakePromoRepo) Create(context.Context, *model.Promotion, []string) error { return nil }
func (f *fakePromoRepo) Deactivate(context.Context, string) error                 { return nil }
func (f *fakePromoRepo) FindByID(context.Context, string) (*model.Promotion, error) {
	return nil, ErrNotFound
}
func (f *fakePromoRepo) FindAll(context.Context, *dto.PromotionFilters) ([]model.Promotion, int, error) {
	return nil, 0, nil
}
func (f *fakePromoRepo) VariationIDs(context.Context, string) ([]string, error) { return nil, nil }

func activePromo(id string, startedAgo time.Duration, now time.Time) model.Promotion {
	return model.Promotion{
		BaseModel:     model.BaseModel{ID: id},
		Name:          id,
		DiscountType:  model.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		StartsAt:      now.Add(-startedAgo),
		EndsAt:        now.Add(24 * time.Hour),
		IsActive:      true,
	}
}

func TestCacheServesSnapshotWithinTTL(t *testing.T) {
	now := time.Now()
	repo := &fakePromoRepo{
		promos: []model.Promotion{activePromo("p1", time.Hour, now)},
		joins:  []model.PromotionVariation{{PromotionID: "p1", VariationID: "v1"}},
	}
	c := NewCache(repo, 5*time.Minute)
	c.now = func() time.Time { return now }

	first, err := c.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Contains(t, first, "v1")

	// A promotion created after the snapshot is not visible yet.
	repo.promos = append(repo.promos, activePromo("p2", time.Minute, now))
	repo.joins = append(repo.joins, model.PromotionVariation{PromotionID: "p2", VariationID: "v2"})

	now = now.Add(4 * time.Minute)
	second, err := c.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "read within the TTL must not refetch")
	assert.NotContains(t, second, "v2")
}

func TestCacheRefetchesAfterTTL(t *testing.T) {
	now := time.Now()
	repo := &fakePromoRepo{
		promos: []model.Promotion{activePromo("p1", time.Hour, now)},
		joins:  []model.PromotionVariation{{PromotionID: "p1", VariationID: "v1"}},
	}
	c := NewCache(repo, 5*time.Minute)
	c.now = func() time.Time { return now }

	_, err := c.Active(context.Background())
	require.NoError(t, err)

	repo.promos = append(repo.promos, activePromo("p2", time.Minute, now))
	repo.joins = append(repo.joins, model.PromotionVariation{PromotionID: "p2", VariationID: "v2"})

	now = now.Add(5 * time.Minute)
	refreshed, err := c.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
	assert.Contains(t, refreshed, "v2")
}

func TestCacheInvalidateForcesRefetch(t *testing.T) {
	now := time.Now()
	repo := &fakePromoRepo{
		promos: []model.Promotion{activePromo("p1", time.Hour, now)},
		joins:  []model.PromotionVariation{{PromotionID: "p1", VariationID: "v1"}},
	}
	c := NewCache(repo, 5*time.Minute)
	c.now = func() time.Time { return now }

	_, err := c.Active(context.Background())
	require.NoError(t, err)

	c.Invalidate()
	_, err = c.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestCacheMostRecentlyStartedPromotionWins(t *testing.T) {
	now := time.Now()
	older := activePromo("older", 2*time.Hour, now)
	newer := activePromo("newer", 30*time.Minute, now)
	repo := &fakePromoRepo{
		promos: []model.Promotion{older, newer},
		joins: []model.PromotionVariation{
			{PromotionID: "older", VariationID: "v1"},
			{PromotionID: "newer", VariationID: "v1"},
		},
	}
	c := NewCache(repo, 5*time.Minute)
	c.now = func() time.Time { return now }

	active, err := c.Active(context.Background())
	require.NoError(t, err)
	require.Contains(t, active, "v1")
	assert.Equal(t, "newer", active["v1"].ID)
}

func TestCacheExpiredPromotionNotServed(t *testing.T) {
	now := time.Now()
	expired := model.Promotion{
		BaseModel:     model.BaseModel{ID: "old"},
		DiscountType:  model.DiscountFixed,
		DiscountValue: decimal.NewFromInt(5),
		StartsAt:      now.Add(-48 * time.Hour),
		EndsAt:        now.Add(-24 * time.Hour),
		IsActive:      true,
	}
	repo := &fakePromoRepo{
		promos: []model.Promotion{expired},
		joins:  []model.PromotionVariation{{PromotionID: "old", VariationID: "v1"}},
	}
	c := NewCache(repo, 5*time.Minute)
	c.now = func() time.Time { return now }

	active, err := c.Active(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, active, "v1")
}
