package category

import (
	"context"

	"github.com/casadopastor/catalog-service/internal/category/dto"
	"github.com/casadopastor/catalog-service/internal/locale"
	"github.com/casadopastor/catalog-service/internal/model"
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	// ListCategories returns categories with translated text overlaid for
	// the requested locale.
	ListCategories(ctx context.Context, f *dto.CategoryFilters, loc locale.Locale) ([]model.Category, int, error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	UpsertTranslation(ctx context.Context, input *dto.UpsertCategoryTranslationInput) error
}
