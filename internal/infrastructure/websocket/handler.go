package websocket

import (
	"net/http"

	"reward-center/internal/api/middleware"
	"reward-center/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// Handler upgrades marketplace watch requests. A client authenticates with
// its wallet token and subscribes to one collection's event stream.
type Handler struct {
	auth        *middleware.JWTAuth
	connManager *ConnectionManager
	log         logger.Logger
}

func NewHandler(auth *middleware.JWTAuth, connManager *ConnectionManager, log logger.Logger) *Handler {
	return &Handler{
		auth:        auth,
		connManager: connManager,
		log:         log,
	}
}

func (h *Handler) HandleConnection(c echo.Context) error {
	collection := c.Param("collection")
	if collection == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "collection required"})
	}

	claims, err := h.auth.ParseToken(c.QueryParam("token"))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}
	wallet := claims.Wallet

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Error("Failed to upgrade connection", "error", err)
		return nil
	}

	wsConn := NewConnection(conn, wallet, collection, h.log)

	if err := h.connManager.RegisterConnection(wallet, collection, wsConn); err != nil {
		h.log.Error("Failed to register connection", "error", err)
		conn.Close()
		return nil
	}

	go h.handleMessages(wsConn, wallet, collection)
	return nil
}

func (h *Handler) handleMessages(conn *Connection, wallet, collection string) {
	defer func() {
		h.connManager.UnregisterConnection(wallet, collection)
		conn.Close()
	}()

	for {
		var msg map[string]interface{}
		if err := conn.conn.ReadJSON(&msg); err != nil {
			h.log.Debug("Connection closed", "wallet", wallet, "collection", collection, "error", err)
			break
		}

		msgType, ok := msg["type"].(string)
		if !ok {
			continue
		}

		switch msgType {
		case "ping":
			conn.Send(map[string]string{"type": "pong"})
		}
	}
}

type Connection struct {
	conn       *websocket.Conn
	wallet     string
	collection string
	log        logger.Logger
}

func NewConnection(conn *websocket.Conn, wallet, collection string, log logger.Logger) *Connection {
	return &Connection{
		conn:       conn,
		wallet:     wallet,
		collection: collection,
		log:        log,
	}
}

func (wsc *Connection) Send(message interface{}) error {
	return wsc.conn.WriteJSON(message)
}

func (wsc *Connection) Close() error {
	return wsc.conn.Close()
}

func (wsc *Connection) Wallet() string {
	return wsc.wallet
}

func (wsc *Connection) Collection() string {
	return wsc.collection
}
