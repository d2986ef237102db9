package server

import (
	"encoding/json"
	"time"

	"github.com/lox/craps/craps"
	"github.com/lox/craps/internal/table"
)

// MessageType identifies a message on the wire
type MessageType string

const (
	// Client → Server
	MessageTypePlaceBet  MessageType = "place_bet"
	MessageTypePlaceOdds MessageType = "place_odds"
	MessageTypeRoll      MessageType = "roll"
	MessageTypeTakeDown  MessageType = "take_down"
	MessageTypeGetState  MessageType = "get_state"

	// Server → Client
	MessageTypeState       MessageType = "state"
	MessageTypeRollResult  MessageType = "roll_result"
	MessageTypePointChange MessageType = "point_change"
	MessageTypeError       MessageType = "error"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a message stamped with now
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
	}, nil
}

// Client → Server Messages

type PlaceBetData struct {
	Category craps.BetCategory `json:"category"`
	Amount   craps.Money       `json:"amount"`
}

type PlaceOddsData struct {
	Number int         `json:"number"`
	Amount craps.Money `json:"amount"`
}

// RollData optionally fixes the dice. Both or neither must be set.
type RollData struct {
	Die1 *int `json:"die1,omitempty"`
	Die2 *int `json:"die2,omitempty"`
}

// TakeDownData lists categories to return; empty means all removable bets.
type TakeDownData struct {
	Categories []craps.BetCategory `json:"categories,omitempty"`
}

// Server → Client Messages

// StateData is the table snapshot sent in state and roll_result messages.
type StateData = table.Snapshot

type RollResultData struct {
	Round    table.Round `json:"round"`
	Net      craps.Money `json:"net"`
	Returned craps.Money `json:"returned"`
	State    StateData   `json:"state"`
}

type PointChangeData struct {
	From craps.Point `json:"from"`
	To   craps.Point `json:"to"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// newStateData builds the wire view of a table
func newStateData(t *table.Table) StateData {
	return t.Snapshot()
}
