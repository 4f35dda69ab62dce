package catalog

import (
	"context"

	"github.com/casadopastor/catalog-service/internal/catalog/dto"
	"github.com/casadopastor/catalog-service/internal/locale"
	"github.com/casadopastor/catalog-service/internal/model"
)

// PromotionSource serves the current active-promotion map keyed by
// variation id. Implemented by promotion.Cache.
type PromotionSource interface {
	Active(ctx context.Context) (map[string]model.Promotion, error)
}

type UseCase interface {
	// GetProductBySlug is the storefront read path: localized, fully priced
	// product detail.
	GetProductBySlug(ctx context.Context, slug string, loc locale.Locale) (*dto.ProductDetail, error)

	ListProducts(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error)

	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	AddVariation(ctx context.Context, input *dto.CreateVariationInput) (*model.Variation, error)
	ListVariations(ctx context.Context, productID string) ([]model.Variation, error)

	UpsertTranslation(ctx context.Context, input *dto.UpsertProductTranslationInput) error
	UpsertVariationTranslation(ctx context.Context, input *dto.UpsertVariationTranslationInput) error

	// InvalidateDetail drops cached detail responses for a slug, across all
	// locales. Called by the event listener and after admin writes.
	InvalidateDetail(ctx context.Context, slug string) error
	// InvalidateAllDetails drops every cached detail response; used when the
	// affected slugs cannot be enumerated, such as promotion changes.
	InvalidateAllDetails(ctx context.Context) error
}
