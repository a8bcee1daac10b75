package models

import "time"

type Record struct {
	Key   []byte
	Value []byte
	Topic string
}

type ConsumerConfig struct {
	Brokers        []string
	Name           string
	Topic          string
	RecordsPerPoll int
}

// SettlementEvent is emitted by the backend settlement process once a payment
// completes or fails.
type SettlementEvent struct {
	OperationID string    `json:"operation_id"`
	State       State     `json:"state"`
	SettledAt   time.Time `json:"settled_at"`
}

// OperationEvent announces a persisted operation change to other sessions.
type OperationEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	Operation  Operation `json:"operation"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventSubmitted = "submitted"
	EventApproved  = "approved"
	EventRejected  = "rejected"
	EventSettled   = "settled"
)
