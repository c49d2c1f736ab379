package amqp

import (
	"encoding/json"
	"time"
)

// Actions carried by record events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// RecordEvent announces a mutation of a commission record. Consumers
// receive enough to build an audit trail without re-reading the row.
type RecordEvent struct {
	Category        string    `json:"category"` // vendas, cobrancas, consultas, procedimentos
	Action          string    `json:"action"`
	RecordID        int64     `json:"record_id"`
	OwnerID         int64     `json:"owner_id"`
	CommissionCents int64     `json:"commission_cents"`
	Timestamp       time.Time `json:"timestamp"`
}

func NewRecordEvent(category, action string, recordID, ownerID, commissionCents int64) *RecordEvent {
	return &RecordEvent{
		Category:        category,
		Action:          action,
		RecordID:        recordID,
		OwnerID:         ownerID,
		CommissionCents: commissionCents,
		Timestamp:       time.Now(),
	}
}

func (e *RecordEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func RecordEventFromJSON(data []byte) (*RecordEvent, error) {
	var e RecordEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
