package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/casadopastor/catalog-service/internal/category"
	"github.com/casadopastor/catalog-service/internal/category/dto"
	"github.com/casadopastor/catalog-service/internal/locale"
	"github.com/casadopastor/catalog-service/internal/model"
	"github.com/casadopastor/catalog-service/pkg/logger"
	"github.com/google/uuid"
)

type categoryUseCase struct {
	repo    category.Repository
	locales locale.Set
	logger  logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, locales locale.Set, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:    repo,
		locales: locales,
		logger:  log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if input.ParentID != nil && *input.ParentID != "" {
		parent, err := uc.repo.FindByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		// One level of nesting only.
		if parent.ParentID != nil {
			return nil, errors.New("subcategories cannot have children of their own")
		}
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ParentID:    input.ParentID,
		Slug:        input.Slug,
		Name:        input.Name,
		Description: input.Description,
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, f *dto.CategoryFilters, loc locale.Locale) ([]model.Category, int, error) {
	categories, count, err := uc.repo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	if uc.locales.IsBase(loc) || len(categories) == 0 {
		return categories, count, nil
	}

	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	translations, err := uc.repo.TranslationsFor(ctx, ids, loc.String())
	if err != nil {
		return nil, 0, err
	}

	for i := range categories {
		if t, ok := translations[categories[i].ID]; ok {
			categories[i].Name = locale.PickText(categories[i].Name, t.Name)
			categories[i].Slug = locale.PickText(categories[i].Slug, t.Slug)
			categories[i].Description = locale.PickRichText(categories[i].Description, t.Description)
		}
	}

	return categories, count, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.ParentID != nil && *input.ParentID != "" {
		if *input.ParentID == cat.ID {
			return nil, errors.New("category cannot be its own parent")
		}
		if _, err := uc.repo.FindByID(ctx, *input.ParentID); err != nil {
			return nil, err
		}
	}

	cat.ParentID = input.ParentID
	cat.Slug = input.Slug
	cat.Name = input.Name
	cat.Description = input.Description
	cat.SortOrder = input.SortOrder
	if input.IsActive != nil {
		cat.IsActive = *input.IsActive
	}
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uc.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *categoryUseCase) UpsertTranslation(ctx context.Context, input *dto.UpsertCategoryTranslationInput) error {
	loc := uc.locales.Normalize(input.Locale)
	if uc.locales.IsBase(loc) {
		return errors.New("base locale text lives on the category itself")
	}
	if !uc.supported(loc) {
		return fmt.Errorf("locale %q is not served", input.Locale)
	}

	if _, err := uc.repo.FindByID(ctx, input.CategoryID); err != nil {
		return err
	}

	t := &model.CategoryTranslation{
		ID:          uuid.New().String(),
		CategoryID:  input.CategoryID,
		Locale:      loc.String(),
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
	}
	return uc.repo.UpsertTranslation(ctx, t)
}

func (uc *categoryUseCase) supported(loc locale.Locale) bool {
	for _, s := range uc.locales.Supported() {
		if s == loc {
			return true
		}
	}
	return false
}
