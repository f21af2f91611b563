package amqp

import (
	"encoding/json"
	"time"
)

// LedgerChangeMessage tells the export worker that a user's ledger
// changed. It carries only identifiers; the worker re-reads the rows
// from storage so it always exports the current state.
type LedgerChangeMessage struct {
	UserID    string    `json:"user_id"`
	Month     string    `json:"month,omitempty"` // YYYY-MM, empty for account changes
	Kind      string    `json:"kind"`            // transaction, transfer, account
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerChangeMessage(userID, month, kind string) *LedgerChangeMessage {
	return &LedgerChangeMessage{
		UserID:    userID,
		Month:     month,
		Kind:      kind,
		Timestamp: time.Now(),
	}
}

func (m *LedgerChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerChangeMessageFromJSON(data []byte) (*LedgerChangeMessage, error) {
	var msg LedgerChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
