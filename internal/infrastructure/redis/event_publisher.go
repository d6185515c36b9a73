package redis

import (
	"context"
	"encoding/json"

	"reward-center/internal/domain"

	"github.com/go-redis/redis/v8"
)

const marketplaceEventsChannel = "marketplace_events"

type EventPublisherImpl struct {
	client *redis.Client
}

func NewEventPublisher(client *redis.Client) *EventPublisherImpl {
	return &EventPublisherImpl{client: client}
}

func (r *EventPublisherImpl) PublishMarketplaceEvent(ctx context.Context, event *domain.MarketplaceEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, marketplaceEventsChannel, payload).Err()
}
