package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventCatalogUpserted is the type of the event emitted after an upsert.
const EventCatalogUpserted = "catalog.upserted"

// CatalogEvent announces rows written by one upsert request.
type CatalogEvent struct {
	Type           string    `json:"type"`
	OrganizationID string    `json:"organization_id"`
	ProductGroupID *string   `json:"product_group_id"`
	ProductIDs     []string  `json:"product_ids"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// EventPublisher emits catalog change events.
type EventPublisher interface {
	PublishCatalogEvent(ctx context.Context, event CatalogEvent) error
}

// JobPublisher asks for the vector indexes of an organization to be rebuilt.
type JobPublisher interface {
	RequestVectorSync(ctx context.Context, organizationID uuid.UUID) error
}

// Producer is the subset of the kafka client used for events.
type Producer interface {
	Publish(ctx context.Context, key string, payload interface{}, headers map[string]string) error
}

// KafkaEventPublisher writes events keyed by organization id so that one
// organization's events stay ordered.
type KafkaEventPublisher struct {
	producer Producer
}

func NewKafkaEventPublisher(producer Producer) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer}
}

func (p *KafkaEventPublisher) PublishCatalogEvent(ctx context.Context, event CatalogEvent) error {
	return p.producer.Publish(ctx, event.OrganizationID, event, map[string]string{"event-type": event.Type})
}

type deferVectorSyncKey struct{}

// DeferVectorSync marks ctx so that UpsertItemList skips the vector-sync
// request. Callers that apply many item lists for one organization request
// a single sync once they are done.
func DeferVectorSync(ctx context.Context) context.Context {
	return context.WithValue(ctx, deferVectorSyncKey{}, true)
}

func vectorSyncDeferred(ctx context.Context) bool {
	deferred, _ := ctx.Value(deferVectorSyncKey{}).(bool)
	return deferred
}
