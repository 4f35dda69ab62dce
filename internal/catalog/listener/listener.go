package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/casadopastor/catalog-service/internal/catalog"
	"github.com/casadopastor/catalog-service/pkg/broker"
	"github.com/casadopastor/catalog-service/pkg/logger"
	"go.uber.org/zap"
)

// CatalogListener consumes catalog change events and drops the affected
// cached responses. Instances invalidate their own Redis entries on write;
// the listener keeps the caches of every other instance honest.
type CatalogListener struct {
	consumer *broker.Consumer
	uc       catalog.UseCase
	promos   interface{ Invalidate() }
	logger   logger.ZapLogger
}

func NewCatalogListener(consumer *broker.Consumer, uc catalog.UseCase, promos interface{ Invalidate() }, log logger.ZapLogger) *CatalogListener {
	return &CatalogListener{
		consumer: consumer,
		uc:       uc,
		promos:   promos,
		logger:   log,
	}
}

func (l *CatalogListener) Start(ctx context.Context) {
	l.logger.Info("Starting catalog event listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping catalog event listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type catalogEvent struct {
	Type        string `json:"type"`
	ProductID   string `json:"product_id"`
	Slug        string `json:"slug"`
	PromotionID string `json:"promotion_id"`
}

func (l *CatalogListener) processMessage(ctx context.Context, value []byte) {
	var event catalogEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal catalog event", zap.Error(err))
		return
	}

	switch event.Type {
	case "product.changed":
		if event.Slug == "" {
			return
		}
		if err := l.uc.InvalidateDetail(ctx, event.Slug); err != nil {
			l.logger.Error("Failed to invalidate cached detail",
				zap.String("slug", event.Slug), zap.Error(err))
		}
	case "promotion.changed":
		// Prices are stale everywhere the promotion applies; refetch the
		// promotion map on the next read and drop the cached details, which
		// have final prices baked in.
		l.promos.Invalidate()
		if err := l.uc.InvalidateAllDetails(ctx); err != nil {
			l.logger.Error("Failed to invalidate cached details", zap.Error(err))
		}
	}
}
