package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/casadopastor/catalog-service/config"
	"github.com/casadopastor/catalog-service/internal/catalog"
	"github.com/casadopastor/catalog-service/internal/catalog/dto"
	"github.com/casadopastor/catalog-service/internal/locale"
	"github.com/casadopastor/catalog-service/internal/model"
	"github.com/casadopastor/catalog-service/pkg/broker"
	"github.com/casadopastor/catalog-service/pkg/cache"
	"github.com/casadopastor/catalog-service/pkg/logger"
	"github.com/casadopastor/catalog-service/pkg/search"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const productIndex = "products"

type catalogUseCase struct {
	repo             catalog.Repository
	promos           catalog.PromotionSource
	cache            *cache.RedisClient
	es               *search.Client
	publisher        *broker.Publisher
	locales          locale.Set
	placeholderImage string
	detailTTL        time.Duration
	logger           logger.ZapLogger
}

func NewCatalogUseCase(
	repo catalog.Repository,
	promos catalog.PromotionSource,
	redisClient *cache.RedisClient,
	es *search.Client,
	publisher *broker.Publisher,
	locales locale.Set,
	cfg *config.CatalogConfig,
	log logger.ZapLogger,
) catalog.UseCase {
	return &catalogUseCase{
		repo:             repo,
		promos:           promos,
		cache:            redisClient,
		es:               es,
		publisher:        publisher,
		locales:          locales,
		placeholderImage: cfg.PlaceholderImageURL,
		detailTTL:        time.Duration(cfg.DetailCacheTTL) * time.Second,
		logger:           log,
	}
}

func (uc *catalogUseCase) GetProductBySlug(ctx context.Context, slug string, loc locale.Locale) (*dto.ProductDetail, error) {
	cacheKey := fmt.Sprintf("catalog:detail:%s:%s", loc, slug)
	if uc.cache != nil {
		if val, err := uc.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
			var detail dto.ProductDetail
			if err := json.Unmarshal([]byte(val), &detail); err == nil {
				return &detail, nil
			}
		}
	}

	product, tr, err := uc.repo.ResolveBySlug(ctx, slug, loc)
	if err != nil {
		return nil, err
	}

	var (
		variations []model.Variation
		details    *catalog.VariationDetails
		images     []model.Image
		category   *model.Category
		categoryTr *model.CategoryTranslation
		promos     map[string]model.Promotion
	)

	// The variation batch, the image list, the category lookup and the
	// promotion map read disjoint data; they run concurrently.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		variations, err = uc.repo.ActiveVariations(gctx, product.ID)
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(variations))
		for _, v := range variations {
			ids = append(ids, v.ID)
		}
		details, err = uc.repo.VariationDetails(gctx, ids, loc)
		return err
	})

	g.Go(func() error {
		var err error
		images, err = uc.repo.ProductImages(gctx, product.ID)
		return err
	})

	if product.CategoryID != nil {
		categoryID := *product.CategoryID
		g.Go(func() error {
			var err error
			category, categoryTr, err = uc.repo.CategoryWithTranslation(gctx, categoryID, loc)
			if errors.Is(err, catalog.ErrNotFound) {
				// Dangling category reference degrades to no category.
				category, categoryTr = nil, nil
				return nil
			}
			return err
		})
	}

	g.Go(func() error {
		var err error
		promos, err = uc.promos.Active(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	detail := uc.assemble(product, tr, variations, details, images, category, categoryTr, promos)

	if uc.cache != nil {
		if data, err := json.Marshal(detail); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, uc.detailTTL)
		}
	}

	return detail, nil
}

func (uc *catalogUseCase) ListProducts(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey, err := uc.generateListCacheKey(f)
	if err == nil && uc.cache != nil {
		if val, err := uc.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
			var result struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &result); err == nil {
				return result.Products, result.Count, nil
			}
		}
	}

	if f.SearchQuery != "" && uc.es != nil {
		res, err := uc.es.Search(ctx, productIndex, buildSearchQuery(f))
		if err == nil {
			var esProducts []model.Product
			for _, hit := range res.Hits.Hits {
				var p model.Product
				if err := json.Unmarshal(hit.Source, &p); err == nil {
					esProducts = append(esProducts, p)
				}
			}
			return esProducts, res.Hits.Total.Value, nil
		}
		// ES being down must not take the listing with it.
		uc.logger.Error("search failed, falling back to database", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" && uc.cache != nil {
		cacheData := struct {
			Products []model.Product
			Count    int
		}{
			Products: products,
			Count:    count,
		}
		if data, err := json.Marshal(cacheData); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return products, count, nil
}

func (uc *catalogUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	unique, err := uc.repo.IsSlugUnique(ctx, input.Slug, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, catalog.ErrSlugTaken
	}

	now := time.Now()
	categoryID := &input.CategoryID
	if input.CategoryID == "" {
		categoryID = nil
	}

	p := &model.Product{
		BaseModel:        model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Slug:             input.Slug,
		Name:             input.Name,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		CategoryID:       categoryID,
		FileType:         input.FileType,
		IsActive:         true,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)
	go uc.publishProductChanged(context.Background(), p.ID, p.Slug)

	return p, nil
}

func (uc *catalogUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	oldSlug := p.Slug
	if input.Slug != p.Slug {
		unique, err := uc.repo.IsSlugUnique(ctx, input.Slug, p.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, catalog.ErrSlugTaken
		}
	}

	p.Slug = input.Slug
	p.Name = input.Name
	p.Description = input.Description
	p.ShortDescription = input.ShortDescription
	p.FileType = input.FileType
	if input.CategoryID == "" {
		p.CategoryID = nil
	} else {
		p.CategoryID = &input.CategoryID
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	go func(oldSlug, newSlug, id string) {
		ctx := context.Background()
		uc.invalidateListCache(ctx)
		_ = uc.InvalidateDetail(ctx, oldSlug)
		if newSlug != oldSlug {
			_ = uc.InvalidateDetail(ctx, newSlug)
		}
		uc.publishProductChanged(ctx, id, newSlug)
	}(oldSlug, p.Slug, p.ID)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *catalogUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go func(id, slug string) {
		ctx := context.Background()
		uc.invalidateListCache(ctx)
		_ = uc.InvalidateDetail(ctx, slug)
		if uc.es != nil {
			if err := uc.es.Delete(ctx, productIndex, id); err != nil {
				uc.logger.Error("failed to remove product from index", zap.Error(err), zap.String("product_id", id))
			}
		}
		uc.publishProductChanged(ctx, id, slug)
	}(p.ID, p.Slug)

	return nil
}

func (uc *catalogUseCase) AddVariation(ctx context.Context, input *dto.CreateVariationInput) (*model.Variation, error) {
	p, err := uc.repo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if input.Price.IsNegative() {
		return nil, errors.New("price must not be negative")
	}

	now := time.Now()
	v := &model.Variation{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ProductID: input.ProductID,
		Name:      input.Name,
		Price:     input.Price,
		SortOrder: input.SortOrder,
		IsActive:  true,
	}

	if err := uc.repo.CreateVariation(ctx, v); err != nil {
		return nil, err
	}

	go func(slug, id string) {
		ctx := context.Background()
		_ = uc.InvalidateDetail(ctx, slug)
		uc.publishProductChanged(ctx, id, slug)
	}(p.Slug, p.ID)

	return v, nil
}

func (uc *catalogUseCase) ListVariations(ctx context.Context, productID string) ([]model.Variation, error) {
	return uc.repo.ListVariations(ctx, productID)
}

func (uc *catalogUseCase) UpsertTranslation(ctx context.Context, input *dto.UpsertProductTranslationInput) error {
	loc := uc.locales.Normalize(input.Locale)
	if uc.locales.IsBase(loc) {
		return errors.New("base locale text lives on the product itself")
	}
	if !uc.supported(loc) {
		return fmt.Errorf("locale %q is not served", input.Locale)
	}

	p, err := uc.repo.FindByID(ctx, input.ProductID)
	if err != nil {
		return err
	}

	if input.Slug != "" {
		unique, err := uc.repo.IsTranslatedSlugUnique(ctx, loc, input.Slug, input.ProductID)
		if err != nil {
			return err
		}
		if !unique {
			return catalog.ErrSlugTaken
		}
	}

	t := &model.ProductTranslation{
		ID:               uuid.New().String(),
		ProductID:        input.ProductID,
		Locale:           loc.String(),
		Name:             input.Name,
		Slug:             input.Slug,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		SeoTitle:         input.SeoTitle,
		SeoDescription:   input.SeoDescription,
	}
	if err := uc.repo.UpsertProductTranslation(ctx, t); err != nil {
		return err
	}

	go func(slug, id string) {
		ctx := context.Background()
		_ = uc.InvalidateDetail(ctx, slug)
		uc.publishProductChanged(ctx, id, slug)
	}(p.Slug, p.ID)

	return nil
}

func (uc *catalogUseCase) UpsertVariationTranslation(ctx context.Context, input *dto.UpsertVariationTranslationInput) error {
	loc := uc.locales.Normalize(input.Locale)
	if uc.locales.IsBase(loc) {
		return errors.New("base locale text lives on the variation itself")
	}
	if !uc.supported(loc) {
		return fmt.Errorf("locale %q is not served", input.Locale)
	}

	t := &model.VariationTranslation{
		ID:          uuid.New().String(),
		VariationID: input.VariationID,
		Locale:      loc.String(),
		Name:        input.Name,
	}
	if err := uc.repo.UpsertVariationTranslation(ctx, t); err != nil {
		return err
	}

	// The variation's product slug is not at hand here; drop every cached
	// detail rather than leaving a stale name around.
	go func() {
		_ = uc.InvalidateAllDetails(context.Background())
	}()

	return nil
}

func (uc *catalogUseCase) InvalidateDetail(ctx context.Context, slug string) error {
	if uc.cache == nil {
		return nil
	}
	pattern := fmt.Sprintf("catalog:detail:*:%s", slug)
	keys, err := uc.cache.Client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return uc.cache.Client.Del(ctx, keys...).Err()
	}
	return nil
}

func (uc *catalogUseCase) supported(loc locale.Locale) bool {
	for _, s := range uc.locales.Supported() {
		if s == loc {
			return true
		}
	}
	return false
}

// buildSearchQuery carries every filter the database path honors into the
// search body; the text match alone would leak inactive products and ignore
// the category scope.
func buildSearchQuery(f *dto.ProductFilters) map[string]any {
	must := []map[string]any{
		{
			"query_string": map[string]any{
				"query":  fmt.Sprintf("*%s*", f.SearchQuery),
				"fields": []string{"name^3", "slug", "description", "short_description"},
			},
		},
	}
	if f.IsActive != nil {
		must = append(must, map[string]any{"term": map[string]any{"is_active": *f.IsActive}})
	}
	if f.CategoryID != "" {
		must = append(must, map[string]any{"term": map[string]any{"category_id": f.CategoryID}})
	}

	q := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{"must": must},
		},
		"from": (f.Page - 1) * f.PageSize,
	}
	if f.PageSize > 0 {
		q["size"] = f.PageSize
	}
	return q
}

func (uc *catalogUseCase) generateListCacheKey(f *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("catalog:list:%x", md5.Sum(data)), nil
}

func (uc *catalogUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	keys, err := uc.cache.Client.Keys(ctx, "catalog:list:*").Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

// InvalidateAllDetails drops every cached detail response, across slugs and
// locales. Used when the affected slugs cannot be enumerated, promotion
// changes above all: final prices are baked into the cached responses.
func (uc *catalogUseCase) InvalidateAllDetails(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}
	keys, err := uc.cache.Client.Keys(ctx, "catalog:detail:*").Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return uc.cache.Client.Del(ctx, keys...).Err()
	}
	return nil
}

func (uc *catalogUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	mapping := `{
		"mappings": {
			"properties": {
				"slug": { "type": "keyword" },
				"name": { "type": "text" },
				"description": { "type": "text" },
				"short_description": { "type": "text" },
				"category_id": { "type": "keyword" },
				"file_type": { "type": "keyword" },
				"is_active": { "type": "boolean" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, productIndex, mapping)

	if err := uc.es.Index(ctx, productIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err), zap.String("product_id", p.ID))
	}
}

func (uc *catalogUseCase) publishProductChanged(ctx context.Context, id, slug string) {
	if uc.publisher == nil {
		return
	}
	event := map[string]string{"type": "product.changed", "product_id": id, "slug": slug}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := uc.publisher.Publish(ctx, []byte(id), payload); err != nil {
		uc.logger.Error("failed to publish catalog event", zap.Error(err), zap.String("product_id", id))
	}
}
