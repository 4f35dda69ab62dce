package promotion

import (
	"context"
	"errors"
	"time"

	"github.com/casadopastor/catalog-service/internal/model"
	"github.com/casadopastor/catalog-service/internal/promotion/dto"
)

var ErrNotFound = errors.New("promotion not found")

type Repository interface {
	// ActiveAt returns every promotion whose window covers the instant,
	// together with the join rows scoping them to variations.
	ActiveAt(ctx context.Context, at time.Time) ([]model.Promotion, []model.PromotionVariation, error)

	Create(ctx context.Context, p *model.Promotion, variationIDs []string) error
	Deactivate(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Promotion, error)
	FindAll(ctx context.Context, f *dto.PromotionFilters) ([]model.Promotion, int, error)
	VariationIDs(ctx context.Context, promotionID string) ([]string, error)
}
