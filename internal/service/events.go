package service

import (
	"time"

	"go-inventory-tracker/internal/model"
)

const (
	EventStockUpdate        = "stock_update"
	EventTransactionsPurged = "transactions_purged"
)

// Event describes a committed inventory change pushed to realtime clients
type Event struct {
	Type     string         `json:"type"`
	Action   model.Action   `json:"action,omitempty"`
	Product  *model.Product `json:"product,omitempty"`
	Quantity int64          `json:"quantity"`
	Count    int64          `json:"count,omitempty"`
	User     Actor          `json:"user"`
	Message  string         `json:"message"`
	At       time.Time      `json:"at"`
}

// Notifier receives events after the unit of work committed. Publish must not block.
type Notifier interface {
	Publish(event Event)
}

type nopNotifier struct{}

func (nopNotifier) Publish(Event) {}

// NopNotifier discards every event
var NopNotifier Notifier = nopNotifier{}
