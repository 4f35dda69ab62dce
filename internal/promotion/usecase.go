package promotion

import (
	"context"

	"github.com/casadopastor/catalog-service/internal/model"
	"github.com/casadopastor/catalog-service/internal/promotion/dto"
)

type UseCase interface {
	CreatePromotion(ctx context.Context, input *dto.CreatePromotionInput) (*model.Promotion, error)
	DeactivatePromotion(ctx context.Context, id string) error
	GetPromotion(ctx context.Context, id string) (*model.Promotion, error)
	ListPromotions(ctx context.Context, f *dto.PromotionFilters) ([]model.Promotion, int, error)
}
