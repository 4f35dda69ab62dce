package catalog

import (
	"context"
	"errors"

	"github.com/casadopastor/catalog-service/internal/catalog/dto"
	"github.com/casadopastor/catalog-service/internal/locale"
	"github.com/casadopastor/catalog-service/internal/model"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrSlugTaken = errors.New("slug already in use")
)

// VariationDetails carries everything the read path needs about a set of
// variations, loaded in a fixed number of queries and joined in memory
// through the id-keyed maps below.
type VariationDetails struct {
	AttributeRows []model.VariationAttributeValue
	// Attributes and Values are the full global dictionaries.
	Attributes map[string]model.Attribute
	Values     map[string]model.AttributeValue
	// Files, Images and Translations are grouped by variation id.
	Files        map[string][]model.File
	Images       map[string][]model.Image
	Translations map[string]model.VariationTranslation
}

type Repository interface {
	// ResolveBySlug finds a product by its native slug, or by a translated
	// slug for the locale when the native lookup misses. The translation
	// row for the locale rides along when one exists.
	ResolveBySlug(ctx context.Context, slug string, loc locale.Locale) (*model.Product, *model.ProductTranslation, error)

	ActiveVariations(ctx context.Context, productID string) ([]model.Variation, error)
	VariationDetails(ctx context.Context, variationIDs []string, loc locale.Locale) (*VariationDetails, error)
	ProductImages(ctx context.Context, productID string) ([]model.Image, error)
	CategoryWithTranslation(ctx context.Context, categoryID string, loc locale.Locale) (*model.Category, *model.CategoryTranslation, error)

	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id string) error

	// Slug uniqueness is enforced per locale: native slugs across products,
	// translated slugs within their locale.
	IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error)
	IsTranslatedSlugUnique(ctx context.Context, loc locale.Locale, slug, excludeProductID string) (bool, error)

	CreateVariation(ctx context.Context, v *model.Variation) error
	ListVariations(ctx context.Context, productID string) ([]model.Variation, error)

	UpsertProductTranslation(ctx context.Context, t *model.ProductTranslation) error
	UpsertVariationTranslation(ctx context.Context, t *model.VariationTranslation) error
}
