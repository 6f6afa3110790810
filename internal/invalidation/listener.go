// Package invalidation owns the presentation-cache side of mutations.
// Mutation usecases only announce what changed; this listener decides
// which cached storefront views the change makes stale.
package invalidation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vitrine/catalog-service/internal/events"
	"github.com/vitrine/catalog-service/pkg/broker"
	"github.com/vitrine/catalog-service/pkg/cache"
	"github.com/vitrine/catalog-service/pkg/logger"
	"go.uber.org/zap"
)

type Listener struct {
	consumer *broker.KafkaConsumer
	cache    *cache.RedisClient
	logger   logger.ZapLogger
}

func NewListener(consumer *broker.KafkaConsumer, redis *cache.RedisClient, log logger.ZapLogger) *Listener {
	return &Listener{
		consumer: consumer,
		cache:    redis,
		logger:   log,
	}
}

func (l *Listener) Start(ctx context.Context) {
	l.logger.Info("Starting cache invalidation listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping cache invalidation listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *Listener) processMessage(ctx context.Context, value []byte) {
	var event events.CatalogChanged
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("malformed catalog change event", zap.Error(err))
		return
	}

	for _, pattern := range patternsFor(event.Entity) {
		deleted, err := l.cache.DeleteByPattern(ctx, pattern)
		if err != nil {
			l.logger.Error("cache invalidation failed",
				zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		l.logger.Debug("invalidated cached views",
			zap.String("entity", event.Entity),
			zap.String("entity_id", event.EntityID),
			zap.String("action", event.Action),
			zap.String("pattern", pattern),
			zap.Int("keys", deleted))
	}
}

// patternsFor maps a changed entity to the cached views it can appear
// in. Product pages embed their category, variants and images, so all
// four entities stale the product page cache.
func patternsFor(entity string) []string {
	switch entity {
	case events.EntityCategory:
		return []string{"catalog:categories", "catalog:products:*", "catalog:product:*"}
	case events.EntityProduct:
		return []string{"catalog:products:*", "catalog:product:*"}
	case events.EntityVariant, events.EntityImage:
		return []string{"catalog:product:*"}
	}
	return nil
}
