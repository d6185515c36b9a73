package websocket

import (
	"encoding/json"
	"sync"

	"reward-center/internal/domain"
	"reward-center/pkg/logger"
)

// ConnectionManager indexes live connections two ways: by the collection a
// client watches and by the wallet that authenticated the socket.
type ConnectionManager struct {
	connections map[string]map[string]domain.WebSocketConnection // collection -> wallet -> connection
	walletConns map[string][]domain.WebSocketConnection          // wallet -> connections
	mutex       sync.RWMutex
	log         logger.Logger
}

func NewConnectionManager(log logger.Logger) *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]map[string]domain.WebSocketConnection),
		walletConns: make(map[string][]domain.WebSocketConnection),
		log:         log,
	}
}

func (cm *ConnectionManager) RegisterConnection(wallet, collection string, conn domain.WebSocketConnection) error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	if cm.connections[collection] == nil {
		cm.connections[collection] = make(map[string]domain.WebSocketConnection)
	}
	cm.connections[collection][wallet] = conn

	cm.walletConns[wallet] = append(cm.walletConns[wallet], conn)

	cm.log.Info("Connection registered", "wallet", wallet, "collection", collection)
	return nil
}

func (cm *ConnectionManager) UnregisterConnection(wallet, collection string) error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	if collectionConns, exists := cm.connections[collection]; exists {
		delete(collectionConns, wallet)
		if len(collectionConns) == 0 {
			delete(cm.connections, collection)
		}
	}

	if walletConnections, exists := cm.walletConns[wallet]; exists {
		var newConns []domain.WebSocketConnection
		for _, existingConn := range walletConnections {
			if existingConn.Collection() != collection {
				newConns = append(newConns, existingConn)
			}
		}

		if len(newConns) == 0 {
			delete(cm.walletConns, wallet)
		} else {
			cm.walletConns[wallet] = newConns
		}
	}

	cm.log.Info("Connection unregistered", "wallet", wallet, "collection", collection)
	return nil
}

func (cm *ConnectionManager) getConnectionsForCollection(collection string) []domain.WebSocketConnection {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	var connections []domain.WebSocketConnection
	if collectionConns, exists := cm.connections[collection]; exists {
		for _, conn := range collectionConns {
			connections = append(connections, conn)
		}
	}

	return connections
}

func (cm *ConnectionManager) getConnectionsForWallet(wallet string) []domain.WebSocketConnection {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	return cm.walletConns[wallet]
}

func (cm *ConnectionManager) BroadcastToCollection(collection string, message interface{}) error {
	connections := cm.getConnectionsForCollection(collection)

	messageBytes, err := json.Marshal(message)
	if err != nil {
		return err
	}

	for _, conn := range connections {
		if err := conn.Send(messageBytes); err != nil {
			cm.log.Error("Failed to send message", "wallet", conn.Wallet(),
				"collection", collection, "error", err)
			// Continue to other connections
		}
	}

	return nil
}

func (cm *ConnectionManager) NotifyWallet(wallet string, message interface{}) error {
	connections := cm.getConnectionsForWallet(wallet)

	messageBytes, err := json.Marshal(message)
	if err != nil {
		return err
	}

	for _, conn := range connections {
		if err := conn.Send(messageBytes); err != nil {
			cm.log.Error("Failed to send message", "wallet", wallet, "error", err)
		}
	}

	return nil
}
