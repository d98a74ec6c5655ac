package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/minimax-chess/internal/model"
	"github.com/benbeisheim/minimax-chess/internal/service"
	"github.com/benbeisheim/minimax-chess/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// conn serialises writes; broadcasts and replies share one socket.
type conn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (c *conn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteJSON(v)
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)
	client := &conn{Conn: c}

	if err := wsc.gameService.RegisterConnection(gameID, playerID, client); err != nil {
		log.Printf("failed to register connection for %s in game %s: %v", playerID, gameID, err)
		if errors.Is(err, model.ErrDuplicateConnection) {
			client.mu.Lock()
			_ = c.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
			client.mu.Unlock()
		} else {
			wsc.sendError(client, err)
		}
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("read error from %s: %v", playerID, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(client, fmt.Errorf("malformed message: %w", err))
			continue
		}
		if err := wsc.handleMessage(client, gameID, playerID, msg); err != nil {
			log.Printf("game %s: message %s from %s: %v", gameID, msg.Type, playerID, err)
			wsc.sendError(client, err)
		}
	}
}

func (wsc *WebSocketController) handleMessage(client model.Observer, gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.SimpleMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		// the resulting state reaches every client through the broadcast
		return wsc.gameService.HandleMove(gameID, playerID, move)

	case ws.MessageTypeHint:
		hint, err := wsc.gameService.Hint(gameID)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeHint, hint)
		if err != nil {
			return err
		}
		return client.WriteJSON(reply)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(client model.Observer, err error) {
	msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if merr != nil {
		return
	}
	if werr := client.WriteJSON(msg); werr != nil {
		log.Printf("failed to send error: %v", werr)
	}
}
