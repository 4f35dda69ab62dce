package listener

import (
	"context"
	"testing"

	"github.com/casadopastor/catalog-service/internal/catalog"
	"github.com/casadopastor/catalog-service/pkg/logger"
	"github.com/stretchr/testify/assert"
)

type fakeUseCase struct {
	catalog.UseCase
	invalidatedSlugs []string
	invalidatedAll   int
}

func (f *fakeUseCase) InvalidateDetail(_ context.Context, slug string) error {
	f.invalidatedSlugs = append(f.invalidatedSlugs, slug)
	return nil
}

func (f *fakeUseCase) InvalidateAllDetails(_ context.Context) error {
	f.invalidatedAll++
	return nil
}

type fakeSnapshot struct {
	invalidated int
}

func (f *fakeSnapshot) Invalidate() {
	f.invalidated++
}

func TestProductChangedInvalidatesSlug(t *testing.T) {
	uc := &fakeUseCase{}
	snap := &fakeSnapshot{}
	l := NewCatalogListener(nil, uc, snap, logger.NewNop())

	l.processMessage(context.Background(), []byte(`{"type":"product.changed","product_id":"prod-1","slug":"abas-para-biblia"}`))

	assert.Equal(t, []string{"abas-para-biblia"}, uc.invalidatedSlugs)
	assert.Zero(t, snap.invalidated)
	assert.Zero(t, uc.invalidatedAll)
}

func TestProductChangedWithoutSlugIgnored(t *testing.T) {
	uc := &fakeUseCase{}
	l := NewCatalogListener(nil, uc, &fakeSnapshot{}, logger.NewNop())

	l.processMessage(context.Background(), []byte(`{"type":"product.changed","product_id":"prod-1"}`))

	assert.Empty(t, uc.invalidatedSlugs)
}

func TestPromotionChangedDropsSnapshotAndCachedDetails(t *testing.T) {
	uc := &fakeUseCase{}
	snap := &fakeSnapshot{}
	l := NewCatalogListener(nil, uc, snap, logger.NewNop())

	l.processMessage(context.Background(), []byte(`{"type":"promotion.changed","promotion_id":"promo-1"}`))

	assert.Equal(t, 1, snap.invalidated)
	assert.Equal(t, 1, uc.invalidatedAll)
	assert.Empty(t, uc.invalidatedSlugs)
}

func TestMalformedEventIgnored(t *testing.T) {
	uc := &fakeUseCase{}
	snap := &fakeSnapshot{}
	l := NewCatalogListener(nil, uc, snap, logger.NewNop())

	l.processMessage(context.Background(), []byte(`{not json`))

	assert.Empty(t, uc.invalidatedSlugs)
	assert.Zero(t, snap.invalidated)
	assert.Zero(t, uc.invalidatedAll)
}

func TestUnknownEventTypeIgnored(t *testing.T) {
	uc := &fakeUseCase{}
	snap := &fakeSnapshot{}
	l := NewCatalogListener(nil, uc, snap, logger.NewNop())

	l.processMessage(context.Background(), []byte(`{"type":"inventory.changed"}`))

	assert.Zero(t, snap.invalidated)
	assert.Zero(t, uc.invalidatedAll)
}
