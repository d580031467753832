package checkout

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPaid = "OrderPaid"

	TopicOrderPaid = "order.paid"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_id
	Payload       json.RawMessage `json:"payload"`
}

type OrderPaidPayload struct {
	OrderID string `json:"order_id"`
	UserID  int64  `json:"user_id"`
}

// Partition key = order_id so every event for one order keeps its order.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
