package usecase

import (
	"context"
	"testing"

	"github.com/casadopastor/catalog-service/internal/category"
	"github.com/casadopastor/catalog-service/internal/category/dto"
	"github.com/casadopastor/catalog-service/internal/locale"
	"github.com/casadopastor/catalog-service/internal/model"
	"github.com/casadopastor/catalog-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategoryRepo struct {
	byID         map[string]*model.Category
	all          []model.Category
	translations map[string]model.CategoryTranslation
	created      *model.Category
	upserted     *model.CategoryTranslation
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *model.Category) error {
	r.created = c
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id string) (*model.Category, error) {
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, category.ErrNotFound
}

func (r *fakeCategoryRepo) FindAll(context.Context, *dto.CategoryFilters) ([]model.Category, int, error) {
	return r.all, len(r.all), nil
}

func (r *fakeCategoryRepo) Update(context.Context, *model.Category) error { return nil }
func (r *fakeCategoryRepo) Delete(context.Context, string) error          { return nil }

func (r *fakeCategoryRepo) TranslationsFor(context.Context, []string, string) (map[string]model.CategoryTranslation, error) {
	if r.translations == nil {
		return map[string]model.CategoryTranslation{}, nil
	}
	return r.translations, nil
}

func (r *fakeCategoryRepo) UpsertTranslation(_ context.Context, t *model.CategoryTranslation) error {
	r.upserted = t
	return nil
}

func newTestCategoryUseCase(repo *fakeCategoryRepo) category.UseCase {
	return NewCategoryUseCase(repo, locale.NewSet("pt", []string{"en", "es"}), logger.NewNop())
}

func TestCreateCategoryRejectsSecondNestingLevel(t *testing.T) {
	rootID := "cat-root"
	childID := "cat-child"
	repo := &fakeCategoryRepo{byID: map[string]*model.Category{
		"cat-root":  {BaseModel: model.BaseModel{ID: "cat-root"}, Slug: "papelaria", Name: "Papelaria"},
		"cat-child": {BaseModel: model.BaseModel{ID: "cat-child"}, ParentID: &rootID, Slug: "adesivos", Name: "Adesivos"},
	}}
	uc := newTestCategoryUseCase(repo)

	_, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{
		ParentID: &childID,
		Slug:     "mini-adesivos",
		Name:     "Mini Adesivos",
	})
	assert.Error(t, err)
	assert.Nil(t, repo.created)
}

func TestCreateCategoryUnderRoot(t *testing.T) {
	rootID := "cat-root"
	repo := &fakeCategoryRepo{byID: map[string]*model.Category{
		"cat-root": {BaseModel: model.BaseModel{ID: "cat-root"}, Slug: "papelaria", Name: "Papelaria"},
	}}
	uc := newTestCategoryUseCase(repo)

	cat, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{
		ParentID: &rootID,
		Slug:     "adesivos",
		Name:     "Adesivos",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, cat.ID)
	assert.True(t, cat.IsActive)
	require.NotNil(t, repo.created)
}

func TestListCategoriesOverlaysTranslations(t *testing.T) {
	repo := &fakeCategoryRepo{
		all: []model.Category{
			{BaseModel: model.BaseModel{ID: "cat-1"}, Slug: "papelaria", Name: "Papelaria", Description: "Tudo de papel"},
			{BaseModel: model.BaseModel{ID: "cat-2"}, Slug: "adesivos", Name: "Adesivos"},
		},
		translations: map[string]model.CategoryTranslation{
			"cat-1": {ID: "ctr-1", CategoryID: "cat-1", Locale: "en", Name: "Stationery", Slug: "stationery"},
		},
	}
	uc := newTestCategoryUseCase(repo)

	categories, count, err := uc.ListCategories(context.Background(), &dto.CategoryFilters{}, "en")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Equal(t, "Stationery", categories[0].Name)
	assert.Equal(t, "stationery", categories[0].Slug)
	// The translation left the description empty; the canonical text stays.
	assert.Equal(t, "Tudo de papel", categories[0].Description)
	// No translation row at all keeps every canonical field.
	assert.Equal(t, "Adesivos", categories[1].Name)
}

func TestListCategoriesBaseLocaleSkipsOverlay(t *testing.T) {
	repo := &fakeCategoryRepo{
		all: []model.Category{
			{BaseModel: model.BaseModel{ID: "cat-1"}, Slug: "papelaria", Name: "Papelaria"},
		},
		translations: map[string]model.CategoryTranslation{
			"cat-1": {ID: "ctr-1", CategoryID: "cat-1", Locale: "en", Name: "Stationery"},
		},
	}
	uc := newTestCategoryUseCase(repo)

	categories, _, err := uc.ListCategories(context.Background(), &dto.CategoryFilters{}, "pt")
	require.NoError(t, err)
	assert.Equal(t, "Papelaria", categories[0].Name)
}

func TestUpsertTranslationRejectsBaseLocale(t *testing.T) {
	repo := &fakeCategoryRepo{byID: map[string]*model.Category{
		"cat-1": {BaseModel: model.BaseModel{ID: "cat-1"}, Slug: "papelaria", Name: "Papelaria"},
	}}
	uc := newTestCategoryUseCase(repo)

	err := uc.UpsertTranslation(context.Background(), &dto.UpsertCategoryTranslationInput{
		CategoryID: "cat-1",
		Locale:     "pt",
		Name:       "Papelaria",
	})
	assert.Error(t, err)
	assert.Nil(t, repo.upserted)
}

func TestUpsertTranslationNormalizesLocale(t *testing.T) {
	repo := &fakeCategoryRepo{byID: map[string]*model.Category{
		"cat-1": {BaseModel: model.BaseModel{ID: "cat-1"}, Slug: "papelaria", Name: "Papelaria"},
	}}
	uc := newTestCategoryUseCase(repo)

	err := uc.UpsertTranslation(context.Background(), &dto.UpsertCategoryTranslationInput{
		CategoryID: "cat-1",
		Locale:     "EN",
		Name:       "Stationery",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, "en", repo.upserted.Locale)
}

func TestUpsertTranslationRejectsUnservedLocale(t *testing.T) {
	repo := &fakeCategoryRepo{byID: map[string]*model.Category{
		"cat-1": {BaseModel: model.BaseModel{ID: "cat-1"}, Slug: "papelaria", Name: "Papelaria"},
	}}
	uc := newTestCategoryUseCase(repo)

	err := uc.UpsertTranslation(context.Background(), &dto.UpsertCategoryTranslationInput{
		CategoryID: "cat-1",
		Locale:     "de",
		Name:       "Schreibwaren",
	})
	assert.Error(t, err)
	assert.Nil(t, repo.upserted)
}
