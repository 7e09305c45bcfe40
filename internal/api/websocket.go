// websocket.go - WebSocket feed of live value updates
package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/plc-dashboard/backend/internal/models"
)

// WebSocket message types for the value feed protocol
const (
	// Client -> Server messages
	MsgTypeSubscribe   = "subscribe"
	MsgTypeUnsubscribe = "unsubscribe"
	MsgTypePing        = "ping"

	// Server -> Client messages
	MsgTypeConnected   = "connected"
	MsgTypeAck         = "ack"
	MsgTypeValueUpdate = "value:update"
	MsgTypeError       = "error"
	MsgTypePong        = "pong"
)

// Frame encodings negotiated via the ?encoding= query parameter
const (
	EncodingJSON    = "json"
	EncodingMsgpack = "msgpack"
)

// WSMessage is the client -> server message envelope
type WSMessage struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// SubscribePayload selects which PLC's values a client wants. An empty
// plcId subscribes to every PLC.
type SubscribePayload struct {
	PLCID string `json:"plcId"`
}

// ValueFrame is the server -> client value update envelope
type ValueFrame struct {
	Type      string               `json:"type" msgpack:"type"`
	PLCID     string               `json:"plcId" msgpack:"plcId"`
	Updates   []models.ValueUpdate `json:"updates" msgpack:"updates"`
	Timestamp int64                `json:"timestamp" msgpack:"timestamp"`
}

// WSErrorResponse is the server -> client error envelope
type WSErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// wsClient is one connected dashboard client. Writes are serialized by mu;
// plcs holds the subscribed PLC ids (empty set = all).
type wsClient struct {
	conn     *websocket.Conn
	encoding string
	mu       sync.Mutex
	plcs     map[string]bool
}

func (cl *wsClient) subscribedTo(plcID string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.plcs) == 0 || cl.plcs[plcID]
}

// ValuesHandler manages WebSocket connections for the live value feed
type ValuesHandler struct {
	upgrader websocket.Upgrader
	clients  map[*wsClient]struct{}
	mu       sync.RWMutex
}

// NewValuesHandler creates a new value feed handler
func NewValuesHandler() *ValuesHandler {
	return &ValuesHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Dashboard runs on a separate dev origin
				return true
			},
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
		},
		clients: make(map[*wsClient]struct{}),
	}
}

// HandleWebSocket upgrades the connection and services the feed protocol
func (h *ValuesHandler) HandleWebSocket(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	encoding := c.QueryParam("encoding")
	if encoding != EncodingMsgpack {
		encoding = EncodingJSON
	}

	client := &wsClient{
		conn:     ws,
		encoding: encoding,
		plcs:     make(map[string]bool),
	}

	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, client)
		h.mu.Unlock()
	}()

	logrus.WithField("encoding", encoding).Debug("value feed client connected")

	h.sendJSON(client, map[string]interface{}{
		"type":      MsgTypeConnected,
		"timestamp": time.Now().UnixMilli(),
	})

	for {
		var msg WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).Debug("value feed connection error")
			}
			break
		}

		switch msg.Type {
		case MsgTypePing:
			h.sendJSON(client, map[string]interface{}{
				"type":      MsgTypePong,
				"timestamp": time.Now().UnixMilli(),
			})
		case MsgTypeSubscribe:
			h.handleSubscribe(client, msg, true)
		case MsgTypeUnsubscribe:
			h.handleSubscribe(client, msg, false)
		default:
			h.sendError(client, "Unknown message type: "+msg.Type, "INVALID_TYPE")
		}
	}

	logrus.Debug("value feed client disconnected")
	return nil
}

func (h *ValuesHandler) handleSubscribe(client *wsClient, msg WSMessage, subscribe bool) {
	var payload SubscribePayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			h.sendError(client, "Invalid subscribe payload: "+err.Error(), "INVALID_PAYLOAD")
			return
		}
	}

	client.mu.Lock()
	if payload.PLCID != "" {
		if subscribe {
			client.plcs[payload.PLCID] = true
		} else {
			delete(client.plcs, payload.PLCID)
		}
	}
	client.mu.Unlock()

	h.sendJSON(client, map[string]interface{}{
		"type":      MsgTypeAck,
		"timestamp": time.Now().UnixMilli(),
	})
}

// BroadcastValues pushes one PLC's value updates to every subscribed client.
// Implements the simulator's Broadcaster dependency.
func (h *ValuesHandler) BroadcastValues(plcID string, updates []models.ValueUpdate) {
	if len(updates) == 0 {
		return
	}

	frame := ValueFrame{
		Type:      MsgTypeValueUpdate,
		PLCID:     plcID,
		Updates:   updates,
		Timestamp: time.Now().UnixMilli(),
	}

	h.mu.RLock()
	clients := make([]*wsClient, 0, len(h.clients))
	for cl := range h.clients {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	for _, cl := range clients {
		if !cl.subscribedTo(plcID) {
			continue
		}
		if cl.encoding == EncodingMsgpack {
			data, err := msgpack.Marshal(frame)
			if err != nil {
				logrus.WithError(err).Error("failed to encode value frame")
				continue
			}
			cl.mu.Lock()
			err = cl.conn.WriteMessage(websocket.BinaryMessage, data)
			cl.mu.Unlock()
			if err != nil {
				logrus.WithError(err).Debug("failed to send value frame")
			}
			continue
		}
		h.sendJSON(cl, frame)
	}
}

// ClientCount reports the number of connected feed clients
func (h *ValuesHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *ValuesHandler) sendJSON(client *wsClient, v interface{}) {
	client.mu.Lock()
	defer client.mu.Unlock()
	if err := client.conn.WriteJSON(v); err != nil {
		logrus.WithError(err).Debug("failed to send websocket message")
	}
}

func (h *ValuesHandler) sendError(client *wsClient, message, code string) {
	h.sendJSON(client, WSErrorResponse{
		Type:    MsgTypeError,
		Message: message,
		Code:    code,
	})
}
