package websocket

import (
	"context"

	"reward-center/internal/domain"
)

type CollectionNotifier struct {
	connManager domain.ConnectionManager
}

func NewCollectionNotifier(connManager domain.ConnectionManager) *CollectionNotifier {
	return &CollectionNotifier{connManager: connManager}
}

func (n *CollectionNotifier) BroadcastToCollection(ctx context.Context, collection string, message interface{}) error {
	return n.connManager.BroadcastToCollection(collection, message)
}
