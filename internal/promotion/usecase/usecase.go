package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/casadopastor/catalog-service/internal/model"
	"github.com/casadopastor/catalog-service/internal/promotion"
	"github.com/casadopastor/catalog-service/internal/promotion/dto"
	"github.com/casadopastor/catalog-service/pkg/broker"
	"github.com/casadopastor/catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DetailCache drops cached storefront responses whose prices a promotion
// change just made stale. Implemented by the catalog use case.
type DetailCache interface {
	InvalidateAllDetails(ctx context.Context) error
}

type promotionUseCase struct {
	repo      promotion.Repository
	cache     *promotion.Cache
	details   DetailCache
	publisher *broker.Publisher
	logger    logger.ZapLogger
}

func NewPromotionUseCase(repo promotion.Repository, cache *promotion.Cache, details DetailCache, publisher *broker.Publisher, log logger.ZapLogger) promotion.UseCase {
	return &promotionUseCase{
		repo:      repo,
		cache:     cache,
		details:   details,
		publisher: publisher,
		logger:    log,
	}
}

func (uc *promotionUseCase) CreatePromotion(ctx context.Context, input *dto.CreatePromotionInput) (*model.Promotion, error) {
	if input.DiscountType != model.DiscountPercentage && input.DiscountType != model.DiscountFixed {
		return nil, errors.New("discount type must be percentage or fixed")
	}
	if input.DiscountValue.IsNegative() {
		return nil, errors.New("discount value must not be negative")
	}
	if !input.EndsAt.After(input.StartsAt) {
		return nil, errors.New("promotion window must end after it starts")
	}
	if len(input.VariationIDs) == 0 {
		return nil, errors.New("promotion must target at least one variation")
	}

	now := time.Now()
	p := &model.Promotion{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:          input.Name,
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		StartsAt:      input.StartsAt,
		EndsAt:        input.EndsAt,
		IsActive:      true,
	}

	if err := uc.repo.Create(ctx, p, input.VariationIDs); err != nil {
		return nil, err
	}

	uc.cache.Invalidate()
	uc.invalidateDetails(ctx)
	go uc.publishChanged(context.Background(), p.ID)

	return p, nil
}

func (uc *promotionUseCase) DeactivatePromotion(ctx context.Context, id string) error {
	if err := uc.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	uc.cache.Invalidate()
	uc.invalidateDetails(ctx)
	go uc.publishChanged(context.Background(), id)
	return nil
}

func (uc *promotionUseCase) GetPromotion(ctx context.Context, id string) (*model.Promotion, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *promotionUseCase) ListPromotions(ctx context.Context, f *dto.PromotionFilters) ([]model.Promotion, int, error) {
	return uc.repo.FindAll(ctx, f)
}

func (uc *promotionUseCase) invalidateDetails(ctx context.Context) {
	if uc.details == nil {
		return
	}
	if err := uc.details.InvalidateAllDetails(ctx); err != nil {
		uc.logger.Error("failed to invalidate cached details", zap.Error(err))
	}
}

func (uc *promotionUseCase) publishChanged(ctx context.Context, id string) {
	if uc.publisher == nil {
		return
	}
	event := map[string]string{"type": "promotion.changed", "promotion_id": id}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := uc.publisher.Publish(ctx, []byte(id), payload); err != nil {
		uc.logger.Error("failed to publish promotion event", zap.Error(err), zap.String("promotion_id", id))
	}
}
