package category

import (
	"context"
	"errors"

	"github.com/casadopastor/catalog-service/internal/category/dto"
	"github.com/casadopastor/catalog-service/internal/model"
)

var ErrNotFound = errors.New("category not found")

type Repository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, int, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id string) error

	// TranslationsFor loads the overlay rows for a set of categories in one
	// batched query.
	TranslationsFor(ctx context.Context, categoryIDs []string, loc string) (map[string]model.CategoryTranslation, error)
	UpsertTranslation(ctx context.Context, t *model.CategoryTranslation) error
}
