package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/craps/craps"
	"github.com/lox/craps/internal/table"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

var ErrConnectionClosed = errors.New("connection closed")

// Connection is one WebSocket client playing at its own table
type Connection struct {
	id        uint64
	conn      *websocket.Conn
	send      chan *Message
	table     *table.Table
	clock     quartz.Clock
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	sendMu    sync.RWMutex
	closed    bool
}

// NewConnection wraps conn and seats it at tbl
func NewConnection(id uint64, conn *websocket.Conn, tbl *table.Table, clock quartz.Clock, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		id:     id,
		conn:   conn,
		send:   make(chan *Message, 64),
		table:  tbl,
		clock:  clock,
		logger: logger.WithPrefix("conn").With("id", id),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	unsubscribe := c.table.Events().Subscribe(table.SubscriberFunc(c.onTableEvent))
	go func() {
		<-c.ctx.Done()
		unsubscribe()
	}()
	go c.writePump()
	go c.readPump()
}

// Done is closed when the connection ends
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		c.sendMu.Lock()
		c.closed = true
		close(c.send)
		c.sendMu.Unlock()
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues msg for the write pump
func (c *Connection) SendMessage(msg *Message) error {
	c.sendMu.RLock()
	defer c.sendMu.RUnlock()
	if c.closed {
		return ErrConnectionClosed
	}

	select {
	case c.send <- msg:
		return nil
	default:
		c.logger.Warn("Connection send buffer full, dropping message", "type", msg.Type)
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages. It is the only goroutine that acts on
// the table for this connection.
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}
		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes one client message
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "requestId", msg.RequestID)

	switch msg.Type {
	case MessageTypePlaceBet:
		var data PlaceBetData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendErr(msg.RequestID, err)
			return
		}
		if _, err := c.table.PlaceBet(data.Category, data.Amount); err != nil {
			c.sendErr(msg.RequestID, err)
			return
		}
		c.sendState(msg.RequestID)

	case MessageTypePlaceOdds:
		var data PlaceOddsData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, "invalid_message", "Failed to parse odds data")
			return
		}
		if _, err := c.table.PlaceOddsBet(data.Number, data.Amount); err != nil {
			c.sendErr(msg.RequestID, err)
			return
		}
		c.sendState(msg.RequestID)

	case MessageTypeRoll:
		var data RollData
		if len(msg.Data) > 0 && string(msg.Data) != "null" {
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				c.sendError(msg.RequestID, "invalid_message", "Failed to parse roll data")
				return
			}
		}
		c.handleRoll(msg.RequestID, data)

	case MessageTypeTakeDown:
		var data TakeDownData
		if len(msg.Data) > 0 && string(msg.Data) != "null" {
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				c.sendErr(msg.RequestID, err)
				return
			}
		}
		if _, err := c.table.TakeDown(data.Categories...); err != nil {
			c.sendErr(msg.RequestID, err)
			return
		}
		c.sendState(msg.RequestID)

	case MessageTypeGetState:
		c.sendState(msg.RequestID)

	default:
		c.sendError(msg.RequestID, "unknown_message_type", "Unknown message type: "+string(msg.Type))
	}
}

func (c *Connection) handleRoll(requestID string, data RollData) {
	var (
		round table.Round
		err   error
	)
	switch {
	case data.Die1 == nil && data.Die2 == nil:
		round, err = c.table.Roll()
	case data.Die1 != nil && data.Die2 != nil:
		round, err = c.table.RollDice(*data.Die1, *data.Die2)
	default:
		c.sendError(requestID, craps.CodeInvalidRoll.String(), "Set both die1 and die2 or neither")
		return
	}
	if err != nil {
		c.sendErr(requestID, err)
		return
	}

	c.reply(requestID, MessageTypeRollResult, RollResultData{
		Round:    round,
		Net:      round.Outcome.Net(),
		Returned: round.Outcome.TotalReturned(),
		State:    newStateData(c.table),
	})
}

// onTableEvent forwards point changes so clients can redraw the puck
func (c *Connection) onTableEvent(e table.GameEvent) {
	change, ok := e.(table.PointChangeEvent)
	if !ok {
		return
	}
	c.reply("", MessageTypePointChange, PointChangeData{From: change.From, To: change.To})
}

func (c *Connection) sendState(requestID string) {
	c.reply(requestID, MessageTypeState, newStateData(c.table))
}

func (c *Connection) reply(requestID string, messageType MessageType, data any) {
	msg, err := NewMessage(messageType, data, c.clock.Now())
	if err != nil {
		c.logger.Error("Failed to encode message", "type", messageType, "error", err)
		return
	}
	msg.RequestID = requestID
	if err := c.SendMessage(msg); err != nil {
		c.logger.Debug("Dropped message", "type", messageType, "error", err)
	}
}

// sendErr maps an engine or table error onto the wire error codes
func (c *Connection) sendErr(requestID string, err error) {
	c.sendError(requestID, errorCode(err), err.Error())
}

func (c *Connection) sendError(requestID, code, message string) {
	c.reply(requestID, MessageTypeError, ErrorData{Code: code, Message: message})
}

func errorCode(err error) string {
	var betErr *craps.BetError
	switch {
	case errors.As(err, &betErr):
		return betErr.Code.String()
	case errors.Is(err, table.ErrBelowMinimum):
		return "below_minimum"
	case errors.Is(err, table.ErrAboveMaximum):
		return "above_maximum"
	case errors.Is(err, table.ErrRollInProgress):
		return "roll_in_progress"
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return "invalid_message"
	}
	return "internal_error"
}
