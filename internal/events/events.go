// Package events carries catalog change notifications. Mutation usecases
// only report what changed; the invalidation listener decides which
// cached views go stale. This keeps persistence logic out of the
// presentation-cache business.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/vitrine/catalog-service/pkg/broker"
)

const (
	EntityCategory = "category"
	EntityProduct  = "product"
	EntityVariant  = "variant"
	EntityImage    = "image"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

type CatalogChanged struct {
	EventID    string    `json:"event_id"`
	Entity     string    `json:"entity"`
	EntityID   string    `json:"entity_id"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, entity, entityID, action string) error
}

type kafkaPublisher struct {
	producer *broker.KafkaProducer
}

func NewKafkaPublisher(producer *broker.KafkaProducer) Publisher {
	return &kafkaPublisher{producer: producer}
}

func (p *kafkaPublisher) Publish(ctx context.Context, entity, entityID, action string) error {
	event := CatalogChanged{
		EventID:    uuid.New().String(),
		Entity:     entity,
		EntityID:   entityID,
		Action:     action,
		OccurredAt: time.Now(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// Key by entity so changes to the same record stay ordered.
	return p.producer.Publish(ctx, []byte(entity+":"+entityID), value)
}
